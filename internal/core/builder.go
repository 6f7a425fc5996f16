package core

import (
	"context"

	assert "github.com/ZanzyTHEbar/assert-lib"
	"github.com/rs/zerolog/log"

	"insight-specs/internal/ports"
	"insight-specs/internal/types"
)

// SpecBuilder assembles one document from a chart's builder props.
type SpecBuilder struct {
	registry ports.LayoutRegistryPort
	color    ports.ColorPort
	axes     ports.AxesPort
}

func NewSpecBuilder(registry ports.LayoutRegistryPort, color ports.ColorPort, axes ports.AxesPort) SpecBuilder {
	return SpecBuilder{registry: registry, color: color, axes: axes}
}

// Build returns either the errors that stopped the build or a complete
// document. Failures of the color or axis composers are returned as Go
// errors.
func (b SpecBuilder) Build(ctx context.Context, props types.SpecBuilderProps) (types.SpecResult, error) {
	result := types.SpecResult{Capabilities: props.Capabilities}
	specContext := props.SpecContext

	if errs := Validate(props.Capabilities, specContext.Columns); len(errs) > 0 {
		log.Ctx(ctx).Debug().Strs("errors", errs).Msg("spec invalid")
		result.Errors = errs
		return result, nil
	}

	doc, root, signals := InitSpec(specContext)
	global := types.NewGlobalScope(doc, root, types.DataSource, signals)

	binding, err := b.color.Apply(global, specContext)
	if err != nil {
		return types.SpecResult{}, err
	}
	if binding.DataName != "" {
		global.DataName = binding.DataName
	}
	assert.NotEmpty(ctx, global.DataName, "primary data source must be set")

	pairs := props.Layouts
	faceted := props.FacetLayout != nil
	if faceted {
		global.AddSignals(props.FacetLayout.Signals...)
		global.AddScales(props.FacetLayout.Scales...)
		pairs = append([]types.LayoutPair{props.FacetLayout.Layout}, pairs...)
	}

	it := IterateLayouts(ctx, b.registry, global, pairs, props.AxisScales)
	if len(it.Errors) > 0 {
		result.Errors = it.Errors
		return result, nil
	}

	if len(it.Scales) > 0 {
		var first *types.InnerScope
		if faceted {
			first = it.First
		}
		if err := b.axes.Apply(global, specContext, props.AxisScales, it.Scales, first, props.FacetLayout); err != nil {
			return types.SpecResult{}, err
		}
		log.Ctx(ctx).Debug().Int("scales", len(it.Scales)).Bool("faceted", faceted).Msg("axes added")
	}

	if props.GroupedAggregation && len(it.Groupings) > 0 {
		global.AddData(SynthesizeAggregates(it.Groupings, it.Sums, global.DataName)...)
	}

	var mark *types.Mark
	if it.Last != nil {
		mark = it.Last.Mark
	}
	materialized := MaterializeOffsets(global, it.Offsets)
	MergeEncodingRules(mark, it.RuleMaps)
	BindOffsets(mark, materialized)
	FinalizeColor(mark, b.color.Fill(binding, specContext), b.color.Opacity(specContext))

	result.VegaSpec = doc
	log.Ctx(ctx).Debug().
		Str("chart", specContext.Insight.Chart).
		Int("stages", len(pairs)).
		Int("groupings", len(it.Groupings)).
		Msg("spec built")
	return result, nil
}
