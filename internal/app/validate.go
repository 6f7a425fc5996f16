package app

import (
	"context"

	"github.com/rs/zerolog/log"

	"insight-specs/internal/core"
	"insight-specs/internal/types"
)

// Validate checks a description and the fit of its columns to its chart
// without building a document.
func (s Service) Validate(ctx context.Context, req ValidateRequest) (ValidateResult, error) {
	desc, err := s.loadDescription(ctx, req.DescriptionPath)
	if err != nil {
		return ValidateResult{}, err
	}
	chart, err := s.Catalog.Resolve(desc.Insight.Chart)
	if err != nil {
		return ValidateResult{}, err
	}
	specContext := types.NewSpecContext(desc)
	errs := core.Validate(chart.Capabilities(), specContext.Columns)
	log.Ctx(ctx).Debug().Str("chart", chart.Name()).Int("errors", len(errs)).Msg("spec validated")
	return ValidateResult{Name: desc.Name, Chart: chart.Name(), Errors: errs}, nil
}
