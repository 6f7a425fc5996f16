package adapters

import (
	"fmt"

	"insight-specs/internal/ports"
	"insight-specs/internal/shared"
	"insight-specs/internal/types"
)

const (
	fieldColorRank     = "__colorRank"
	defaultQuantScheme = "blues"
	legendOffsetRight  = "120"
)

// ColorAdapter colors the terminal marks by the column bound to the color
// role. Categorical columns with more distinct values than the legend
// allows keep their most frequent values and fold the rest into "Other".
type ColorAdapter struct{}

func NewColorAdapter() ColorAdapter {
	return ColorAdapter{}
}

func (a ColorAdapter) Apply(global *types.GlobalScope, specContext types.SpecContext) (types.ColorBinding, error) {
	global.AddSignals(
		&types.Signal{Name: types.SignalMarkOpacity, Value: markOpacity(specContext.ViewOptions)},
		&types.Signal{Name: types.SignalColorReverse, Value: specContext.Insight.ColorReverse},
	)
	binding := types.ColorBinding{DataName: global.DataName}
	column := specContext.Columns[types.RoleColor]
	if column == nil {
		return binding, nil
	}
	binding.Field = column.Name
	if specContext.Insight.DirectColor {
		return binding, nil
	}

	scheme := specContext.Insight.Scheme
	if column.Quantitative {
		if scheme == "" {
			scheme = defaultQuantScheme
		}
		global.AddScales(&types.Scale{
			Name:    types.ScaleColor,
			Type:    "quantize",
			Domain:  types.DataRef{Data: global.DataName, Field: column.Name},
			Range:   types.SchemeRef{Scheme: scheme, Count: specContext.Insight.ColorBins},
			Reverse: types.SignalRef{Signal: types.SignalColorReverse},
			Nice:    true,
			Zero:    shared.Bool(false),
		})
		a.addLegend(global, column.Name)
		return binding, nil
	}

	if scheme == "" {
		scheme = types.DefaultColorScheme
	}
	maxLegends := specContext.ViewOptions.MaxLegends
	if maxLegends <= 0 {
		maxLegends = types.DefaultMaxLegends
	}
	if column.Stats.DistinctValueCount > maxLegends {
		binding = a.topColors(global, column.Name, maxLegends)
	}
	global.AddData(&types.Data{
		Name:   types.DataLegend,
		Source: binding.DataName,
		Transform: []types.Transform{
			types.Aggregate([]string{binding.Field}, []types.FieldOp{types.CountOp()}),
		},
	})
	global.AddScales(&types.Scale{
		Name:    types.ScaleColor,
		Type:    "ordinal",
		Domain:  types.DataRef{Data: types.DataLegend, Field: binding.Field, Sort: true},
		Range:   types.SchemeRef{Scheme: scheme},
		Reverse: types.SignalRef{Signal: types.SignalColorReverse},
	})
	a.addLegend(global, column.Name)
	return binding, nil
}

// topColors ranks the values of field by row count and looks each row's
// value up among the top maxLegends, defaulting to "Other".
func (a ColorAdapter) topColors(global *types.GlobalScope, field string, maxLegends int) types.ColorBinding {
	global.AddData(
		&types.Data{
			Name:   types.DataTopColorLookup,
			Source: global.DataName,
			Transform: []types.Transform{
				types.Aggregate([]string{field}, []types.FieldOp{types.CountOp()}),
				types.RowNumber(nil, &types.Compare{
					Field: []string{types.FieldCount, field},
					Order: []string{"descending", "ascending"},
				}, fieldColorRank),
				types.Filter(fmt.Sprintf("%s <= %d", shared.DatumField(fieldColorRank), maxLegends)),
			},
		},
		&types.Data{
			Name:   types.DataColor,
			Source: global.DataName,
			Transform: []types.Transform{
				&types.LookupTransform{
					Type:    "lookup",
					From:    types.DataTopColorLookup,
					Key:     field,
					Fields:  []string{field},
					Values:  []string{field},
					As:      []string{types.FieldTopColor},
					Default: types.OtherColorLabel,
				},
			},
		},
	)
	return types.ColorBinding{Field: types.FieldTopColor, DataName: types.DataColor}
}

func (a ColorAdapter) addLegend(global *types.GlobalScope, title string) {
	global.MarkGroup.Legends = append(global.MarkGroup.Legends, &types.Legend{
		Fill:   types.ScaleColor,
		Title:  title,
		Orient: "right",
	})
	if offset := global.Signals.PlotOffsetRight; offset != nil {
		offset.Update = legendOffsetRight
	}
}

func (a ColorAdapter) Fill(binding types.ColorBinding, specContext types.SpecContext) types.EncodeRule {
	if binding.Field == "" {
		color := specContext.ViewOptions.DefaultColor
		if color == "" {
			color = types.DefaultColor
		}
		return types.EncodeRule{Value: color}
	}
	if specContext.Insight.DirectColor {
		return types.EncodeRule{Field: binding.Field}
	}
	return types.EncodeRule{Scale: types.ScaleColor, Field: binding.Field}
}

func (a ColorAdapter) Opacity(specContext types.SpecContext) types.EncodeRule {
	return types.EncodeRule{Signal: types.SignalMarkOpacity}
}

func markOpacity(view types.ViewOptions) float64 {
	if view.MarkOpacity > 0 {
		return view.MarkOpacity
	}
	return types.DefaultMarkOpacity
}

var _ ports.ColorPort = ColorAdapter{}
