package adapters

import (
	"context"
	"path/filepath"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"

	"insight-specs/internal/ports"
)

// DescriptionWatcher reports writes to description files. It watches the
// parent directories so editors that replace files on save are seen.
type DescriptionWatcher struct{}

func NewDescriptionWatcher() DescriptionWatcher {
	return DescriptionWatcher{}
}

// Watch blocks until ctx is done or the watcher fails.
func (w DescriptionWatcher) Watch(ctx context.Context, paths []string, onChange func(path string)) error {
	if len(paths) == 0 {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("no files to watch")
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to start file watcher").
			WithCause(err)
	}
	defer watcher.Close()

	watched := map[string]string{}
	dirs := map[string]struct{}{}
	for _, path := range paths {
		abs, err := filepath.Abs(path)
		if err != nil {
			return errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("invalid watch path").
				WithCause(err)
		}
		watched[abs] = path
		dir := filepath.Dir(abs)
		if _, ok := dirs[dir]; ok {
			continue
		}
		if err := watcher.Add(dir); err != nil {
			return errbuilder.New().
				WithCode(errbuilder.CodeNotFound).
				WithMsg("failed to watch " + dir).
				WithCause(err)
		}
		dirs[dir] = struct{}{}
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			abs, err := filepath.Abs(event.Name)
			if err != nil {
				continue
			}
			if path, ok := watched[abs]; ok {
				log.Ctx(ctx).Debug().Str("path", path).Str("op", event.Op.String()).Msg("description changed")
				onChange(path)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("file watcher failed").
				WithCause(err)
		}
	}
}

var _ ports.WatcherPort = DescriptionWatcher{}
