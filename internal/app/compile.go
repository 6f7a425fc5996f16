package app

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"

	"insight-specs/internal/adapters"
	"insight-specs/internal/core"
	"insight-specs/internal/types"
)

func (s Service) Compile(ctx context.Context, req CompileRequest) (CompileResult, error) {
	desc, err := s.loadDescription(ctx, req.DescriptionPath)
	if err != nil {
		return CompileResult{}, err
	}
	result := CompileResult{
		Name:       desc.Name,
		Chart:      desc.Insight.Chart,
		BuildID:    s.NewBuildID(),
		OutputPath: outputPath(req.OutputDir, desc.Name, req.DescriptionPath),
	}
	logger := log.Ctx(ctx).With().Str("build_id", result.BuildID).Str("insight", desc.Name).Logger()
	ctx = logger.WithContext(ctx)

	specContext := types.NewSpecContext(desc)
	options := core.CompileOptions{GroupedAggregation: req.GroupedAggregation}
	result.Fingerprint, err = core.Fingerprint(specContext, options)
	if err != nil {
		return CompileResult{}, err
	}

	cached, hit, err := s.Cache.Get(ctx, result.Fingerprint)
	if err != nil {
		logger.Warn().Err(err).Msg("cache read failed")
	}
	if hit {
		result.Document = cached
		result.Cached = true
		logger.Debug().Str("fingerprint", result.Fingerprint).Msg("spec served from cache")
		return result, s.writeOutput(result.OutputPath, cached)
	}

	compiled, err := s.Compiler.Compile(ctx, specContext, options)
	if err != nil {
		return CompileResult{}, err
	}
	if !compiled.OK() {
		result.Errors = compiled.Errors
		logger.Debug().Strs("errors", compiled.Errors).Msg("spec not compiled")
		return result, nil
	}
	if req.CheckDocument {
		if err := core.CheckDocument(ctx, compiled.VegaSpec); err != nil {
			return CompileResult{}, err
		}
	}

	if result.OutputPath != "" {
		result.Document, err = s.Output.Write(result.OutputPath, compiled.VegaSpec)
	} else {
		result.Document, err = adapters.EncodeSpec(compiled.VegaSpec)
	}
	if err != nil {
		return CompileResult{}, err
	}
	if err := s.Cache.Set(ctx, result.Fingerprint, result.Document, req.CacheTTL); err != nil {
		logger.Warn().Err(err).Msg("cache write failed")
	}
	logger.Debug().
		Str("chart", result.Chart).
		Str("fingerprint", result.Fingerprint).
		Int("bytes", len(result.Document)).
		Msg("spec compiled")
	return result, nil
}

func (s Service) writeOutput(path string, document []byte) error {
	if path == "" {
		return nil
	}
	return s.Output.WriteRaw(path, document)
}

// outputPath names the document after the insight, or after the
// description file when the insight has no name.
func outputPath(dir, name, descriptionPath string) string {
	if dir == "" {
		return ""
	}
	name = strings.TrimSpace(name)
	if name == "" {
		base := filepath.Base(descriptionPath)
		name = strings.TrimSuffix(base, filepath.Ext(base))
	}
	return filepath.Join(dir, name+".json")
}
