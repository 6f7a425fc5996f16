package charts

import (
	"insight-specs/internal/layouts"
	"insight-specs/internal/types"
)

const ScatterPlotName = "scatterplot"

type ScatterPlot struct{}

func NewScatterPlot() ScatterPlot {
	return ScatterPlot{}
}

func (ScatterPlot) Name() string {
	return ScatterPlotName
}

func (ScatterPlot) Capabilities() types.SpecCapabilities {
	return types.SpecCapabilities{
		Roles: []types.RoleCapability{
			{Role: types.RoleX, ExcludeCategoric: true, AxisSelection: "quantitative"},
			{Role: types.RoleY, ExcludeCategoric: true, AxisSelection: "quantitative"},
			{Role: types.RoleColor, AllowNone: true},
			{Role: types.RoleFacet, AllowNone: true},
			{Role: types.RoleFacetV, AllowNone: true},
		},
	}
}

func (ScatterPlot) AxisScales(specContext types.SpecContext) *types.AxisScales {
	return &types.AxisScales{
		X: &types.AxisScale{Type: "quantitative", Title: columnName(specContext, types.RoleX)},
		Y: &types.AxisScale{Type: "quantitative", Title: columnName(specContext, types.RoleY)},
	}
}

func (ScatterPlot) Layouts(specContext types.SpecContext) ([]types.LayoutPair, error) {
	return []types.LayoutPair{
		{Kind: layouts.KindScatter, Props: layouts.ScatterProps{
			XField: columnName(specContext, types.RoleX),
			YField: columnName(specContext, types.RoleY),
			Filter: specContext.Insight.Filter,
		}},
	}, nil
}
