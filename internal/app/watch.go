package app

import (
	"context"

	"github.com/rs/zerolog/log"
)

// Watch compiles once and again after every change to the description,
// reporting each outcome to onResult, until ctx is done.
func (s Service) Watch(ctx context.Context, req WatchRequest, onResult func(CompileResult, error)) error {
	onResult(s.Compile(ctx, req.Compile))
	return s.Watcher.Watch(ctx, []string{req.Compile.DescriptionPath}, func(path string) {
		log.Ctx(ctx).Debug().Str("path", path).Msg("recompiling")
		onResult(s.Compile(ctx, req.Compile))
	})
}
