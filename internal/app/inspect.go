package app

import (
	"context"
	"strings"

	"insight-specs/internal/core"
	"insight-specs/internal/types"
)

// Inspect compiles a description without writing or caching it and reports
// the resolved layout signals. With grouped aggregation on and inline rows
// present, the synthesized aggregate sources are evaluated over the rows.
func (s Service) Inspect(ctx context.Context, req InspectRequest) (InspectResult, error) {
	desc, err := s.loadDescription(ctx, req.DescriptionPath)
	if err != nil {
		return InspectResult{}, err
	}
	specContext := types.NewSpecContext(desc)
	options := core.CompileOptions{GroupedAggregation: req.GroupedAggregation}
	fingerprint, err := core.Fingerprint(specContext, options)
	if err != nil {
		return InspectResult{}, err
	}
	result := InspectResult{Name: desc.Name, Chart: desc.Insight.Chart, Fingerprint: fingerprint}

	compiled, err := s.Compiler.Compile(ctx, specContext, options)
	if err != nil {
		return InspectResult{}, err
	}
	if !compiled.OK() {
		result.Errors = compiled.Errors
		return result, nil
	}

	doc := compiled.VegaSpec
	var aggregates []*types.Data
	for _, data := range doc.Data {
		result.Data = append(result.Data, data.Name)
		if strings.HasPrefix(data.Name, types.DataAggregate+"_") {
			aggregates = append(aggregates, data)
		}
	}
	values := core.EvaluateSignals(doc.Signals)
	result.Signals = values.Values
	result.Unresolved = values.Unresolved

	if len(aggregates) == 0 || len(desc.Data) == 0 {
		return result, nil
	}
	preview, err := core.PreviewAggregates(desc.Data, aggregates[0].Source, aggregates)
	if err != nil {
		return InspectResult{}, err
	}
	for _, data := range aggregates {
		summary := InspectAggregate{Name: data.Name, Rows: preview.Tables[data.Name], Extents: map[string][2]float64{}}
		for _, transform := range data.Transform {
			if extent, ok := transform.(*types.ExtentTransform); ok {
				if bounds, ok := preview.Extents[extent.Signal]; ok {
					summary.Extents[extent.Signal] = bounds
				}
			}
		}
		result.Aggregates = append(result.Aggregates, summary)
	}
	return result, nil
}
