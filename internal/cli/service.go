package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"insight-specs/internal/adapters"
	"insight-specs/internal/app"
	"insight-specs/internal/ports"
)

const (
	cacheBackendNone  = "none"
	cacheBackendFile  = "file"
	cacheBackendRedis = "redis"
)

type cacheOptions struct {
	Backend   string
	Dir       string
	RedisAddr string
}

func newAppService(ctx context.Context, opts cacheOptions) (app.Service, error) {
	cache, err := newCache(ctx, opts)
	if err != nil {
		return app.Service{}, err
	}
	return app.NewService().WithCache(cache), nil
}

func newCache(ctx context.Context, opts cacheOptions) (ports.CachePort, error) {
	switch strings.ToLower(strings.TrimSpace(opts.Backend)) {
	case "", cacheBackendNone:
		return adapters.NewNullSpecCache(), nil
	case cacheBackendFile:
		return adapters.NewFileSpecCache(opts.Dir)
	case cacheBackendRedis:
		return adapters.NewRedisSpecCache(ctx, opts.RedisAddr)
	default:
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("unknown cache backend %q (want none, file or redis)", opts.Backend))
	}
}

// specErrors reports a description that does not fit its chart.
func specErrors(errs []string) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeFailedPrecondition).
		WithMsg(fmt.Sprintf("spec has %d error(s): %s", len(errs), strings.Join(errs, " ")))
}
