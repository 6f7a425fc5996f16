package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"insight-specs/internal/app"
	"insight-specs/internal/shared"
)

type compileOptions struct {
	OutputDir          string
	GroupedAggregation bool
	CheckDocument      bool
	Watch              bool
	CacheBackend       string
	CacheDir           string
	RedisAddr          string
	CacheTTL           time.Duration
}

func newCompileCommand() *cobra.Command {
	opts := compileOptions{}
	cmd := &cobra.Command{
		Use:   "compile <description>",
		Short: "Compile an insight description into a Vega spec",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompile(cmd.Context(), cmd, args[0], opts)
		},
	}
	cmd.Flags().StringVar(&opts.OutputDir, "output", "", "Output directory (stdout when empty)")
	cmd.Flags().BoolVar(&opts.GroupedAggregation, "grouped-aggregation", false, "Add grouped aggregate data sources")
	cmd.Flags().BoolVar(&opts.CheckDocument, "check-document", true, "Check the compiled document before writing it")
	cmd.Flags().BoolVar(&opts.Watch, "watch", false, "Recompile when the description changes")
	cmd.Flags().StringVar(&opts.CacheBackend, "cache", cacheBackendNone, "Cache backend (none, file, redis)")
	cmd.Flags().StringVar(&opts.CacheDir, "cache-dir", "", "File cache directory")
	cmd.Flags().StringVar(&opts.RedisAddr, "redis-addr", "", "Redis cache address")
	cmd.Flags().DurationVar(&opts.CacheTTL, "cache-ttl", 24*time.Hour, "Cache entry lifetime")
	_ = viper.BindPFlag("output", cmd.Flags().Lookup("output"))
	_ = viper.BindPFlag("grouped_aggregation", cmd.Flags().Lookup("grouped-aggregation"))
	_ = viper.BindPFlag("check_document", cmd.Flags().Lookup("check-document"))
	_ = viper.BindPFlag("cache.backend", cmd.Flags().Lookup("cache"))
	_ = viper.BindPFlag("cache.dir", cmd.Flags().Lookup("cache-dir"))
	_ = viper.BindPFlag("cache.redis_addr", cmd.Flags().Lookup("redis-addr"))
	_ = viper.BindPFlag("cache.ttl", cmd.Flags().Lookup("cache-ttl"))
	return cmd
}

func runCompile(ctx context.Context, cmd *cobra.Command, path string, opts compileOptions) error {
	service, err := newAppService(ctx, cacheOptions{
		Backend:   resolveString(cmd, opts.CacheBackend, "cache.backend", "cache"),
		Dir:       resolveString(cmd, opts.CacheDir, "cache.dir", "cache-dir"),
		RedisAddr: resolveString(cmd, opts.RedisAddr, "cache.redis_addr", "redis-addr"),
	})
	if err != nil {
		return err
	}
	defer service.Cache.Close()

	req := app.CompileRequest{
		DescriptionPath:    path,
		OutputDir:          resolveString(cmd, opts.OutputDir, "output", "output"),
		GroupedAggregation: resolveBool(cmd, opts.GroupedAggregation, "grouped_aggregation", "grouped-aggregation"),
		CheckDocument:      resolveBool(cmd, opts.CheckDocument, "check_document", "check-document"),
		CacheTTL:           resolveDuration(cmd, opts.CacheTTL, "cache.ttl", "cache-ttl"),
	}

	if !opts.Watch {
		result, err := service.Compile(ctx, req)
		if err != nil {
			return err
		}
		return reportCompile(result)
	}

	if req.OutputDir == "" {
		return errWatchNeedsOutput
	}
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()
	return service.Watch(ctx, app.WatchRequest{Compile: req}, func(result app.CompileResult, err error) {
		if err != nil {
			log.Ctx(ctx).Error().Msg(shared.ErrorMessage(err))
			return
		}
		if reportErr := reportCompile(result); reportErr != nil {
			log.Ctx(ctx).Error().Msg(shared.ErrorMessage(reportErr))
		}
	})
}

func reportCompile(result app.CompileResult) error {
	if len(result.Errors) > 0 {
		for _, msg := range result.Errors {
			fmt.Fprintf(os.Stderr, "- %s\n", msg)
		}
		return specErrors(result.Errors)
	}
	if result.OutputPath == "" {
		_, err := os.Stdout.Write(result.Document)
		return err
	}
	status := "compiled"
	if result.Cached {
		status = "cached"
	}
	fmt.Printf("%s: %s -> %s\n", status, result.Name, result.OutputPath)
	return nil
}

func resolveDuration(cmd *cobra.Command, value time.Duration, key string, flagName string) time.Duration {
	if cmd == nil {
		return value
	}
	if flagChanged(cmd, flagName) {
		return value
	}
	return viper.GetDuration(key)
}

var errWatchNeedsOutput = errbuilder.New().
	WithCode(errbuilder.CodeInvalidArgument).
	WithMsg("--watch requires --output")
