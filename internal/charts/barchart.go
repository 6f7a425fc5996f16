package charts

import (
	"insight-specs/internal/layouts"
	"insight-specs/internal/types"
)

const (
	BarChartVertical   = "barchartV"
	BarChartHorizontal = "barchartH"
)

// BarChart stacks one unit square per row inside a band per category.
type BarChart struct {
	name string
}

func NewBarChart(name string) BarChart {
	return BarChart{name: name}
}

func (c BarChart) Name() string {
	return c.name
}

func (c BarChart) vertical() bool {
	return c.name == BarChartVertical
}

func (c BarChart) bandRole() types.Role {
	if c.vertical() {
		return types.RoleX
	}
	return types.RoleY
}

func (c BarChart) Capabilities() types.SpecCapabilities {
	return types.SpecCapabilities{
		Roles: []types.RoleCapability{
			{Role: c.bandRole(), Binnable: true, AxisSelection: "discrete"},
			{Role: types.RoleSize, AllowNone: true, ExcludeCategoric: true},
			{Role: types.RoleColor, AllowNone: true},
			{Role: types.RoleSort, AllowNone: true},
			{Role: types.RoleFacet, AllowNone: true},
			{Role: types.RoleFacetV, AllowNone: true},
		},
		CountsAreSummed: true,
	}
}

func (c BarChart) AxisScales(specContext types.SpecContext) *types.AxisScales {
	category := &types.AxisScale{Type: "discrete", Title: columnName(specContext, c.bandRole())}
	count := &types.AxisScale{Type: "quantitative", Title: "Count", Aggregate: "count"}
	if specContext.Insight.TotalStyle == types.TotalStyleSumStrip {
		if size := columnName(specContext, types.RoleSize); size != "" {
			count = &types.AxisScale{Type: "quantitative", Title: size, Aggregate: "sum"}
		}
	}
	if c.vertical() {
		return &types.AxisScales{X: category, Y: count}
	}
	return &types.AxisScales{X: count, Y: category}
}

func (c BarChart) Layouts(specContext types.SpecContext) ([]types.LayoutPair, error) {
	band := layouts.BandProps{
		Orientation: layouts.BandVertical,
		Field:       columnName(specContext, c.bandRole()),
		Filter:      specContext.Insight.Filter,
		Padding:     0.1,
	}
	if !c.vertical() {
		band.Orientation = layouts.BandHorizontal
	}
	if specContext.Insight.TotalStyle == types.TotalStyleSumStrip {
		band.SumField = columnName(specContext, types.RoleSize)
	}
	return []types.LayoutPair{
		{Kind: layouts.KindBand, Props: band},
		{Kind: layouts.KindSquare, Props: layouts.SquareProps{SortField: columnName(specContext, types.RoleSort)}},
	}, nil
}

func columnName(specContext types.SpecContext, role types.Role) string {
	if column := specContext.Columns[role]; column != nil {
		return column.Name
	}
	return ""
}
