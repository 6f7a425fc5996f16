package adapters

import (
	"insight-specs/internal/ports"
	"insight-specs/internal/shared"
	"insight-specs/internal/types"
)

const (
	axisOffsetLeft   = "40"
	axisOffsetBottom = "30"
	facetTitleOffset = "24"
)

// AxesAdapter draws one axis per scale contributed by the layout stages.
// In a faceted document the stage axes repeat every cell, so they are drawn
// without labels, pushed out by the plot padding, and the facet values get
// title axes of their own.
type AxesAdapter struct{}

func NewAxesAdapter() AxesAdapter {
	return AxesAdapter{}
}

func (a AxesAdapter) Apply(global *types.GlobalScope, specContext types.SpecContext, axisScales *types.AxisScales, scales []*types.GlobalScales, first *types.InnerScope, facet *types.FacetLayout) error {
	faceted := first != nil && facet != nil
	var xTitle, yTitle string
	if axisScales != nil {
		if axisScales.X != nil {
			xTitle = axisScales.X.Title
		}
		if axisScales.Y != nil {
			yTitle = axisScales.Y.Title
		}
	}

	var hasX, hasY bool
	for _, contributed := range scales {
		if contributed == nil || !contributed.ShowAxes {
			continue
		}
		for _, scale := range contributed.Scales.X {
			global.MarkGroup.Axes = append(global.MarkGroup.Axes, stageAxis(scale, "bottom", xTitle, facet, faceted))
			hasX = true
		}
		for _, scale := range contributed.Scales.Y {
			global.MarkGroup.Axes = append(global.MarkGroup.Axes, stageAxis(scale, "left", yTitle, facet, faceted))
			hasY = true
		}
	}
	if hasX {
		global.Signals.PlotOffsetBottom.Update = axisOffsetBottom
	}
	if hasY {
		global.Signals.PlotOffsetLeft.Update = axisOffsetLeft
	}

	if faceted {
		a.facetTitles(global, specContext, first, facet)
	}
	return nil
}

func (a AxesAdapter) facetTitles(global *types.GlobalScope, specContext types.SpecContext, first *types.InnerScope, facet *types.FacetLayout) {
	column := specContext.Columns[types.RoleFacet]
	if column == nil {
		return
	}
	global.MarkGroup.Scales = append(global.MarkGroup.Scales, &types.Scale{
		Name:   types.ScaleFacetColTitle,
		Type:   "band",
		Domain: types.DataRef{Data: first.DataName, Field: column.Name, Sort: true},
		Range:  []any{0, types.SignalRef{Signal: types.SignalPlotWidthOut}},
	})
	global.MarkGroup.Axes = append(global.MarkGroup.Axes, &types.Axis{
		Scale:  types.ScaleFacetColTitle,
		Orient: "top",
		Title:  column.Name,
		Domain: shared.Bool(false),
		Offset: facet.FacetPadding.Top,
	})
	global.Signals.PlotOffsetTop.Update = facetTitleOffset

	row := specContext.Columns[types.RoleFacetV]
	if row == nil || facet.Style != types.FacetStyleCross {
		return
	}
	global.MarkGroup.Scales = append(global.MarkGroup.Scales, &types.Scale{
		Name:   types.ScaleFacetRowTitle,
		Type:   "band",
		Domain: types.DataRef{Data: first.DataName, Field: row.Name, Sort: true},
		Range:  []any{0, types.SignalRef{Signal: types.SignalPlotHeightOut}},
	})
	global.MarkGroup.Axes = append(global.MarkGroup.Axes, &types.Axis{
		Scale:  types.ScaleFacetRowTitle,
		Orient: "right",
		Title:  row.Name,
		Domain: shared.Bool(false),
		Offset: facet.FacetPadding.Right,
	})
	global.Signals.PlotOffsetRight.Update = facetTitleOffset
}

func stageAxis(scale *types.Scale, orient, title string, facet *types.FacetLayout, faceted bool) *types.Axis {
	axis := &types.Axis{
		Scale:  scale.Name,
		Orient: orient,
		Title:  title,
		Grid:   scale.Type == "linear",
	}
	if !faceted {
		return axis
	}
	axis.Labels = shared.Bool(false)
	axis.Title = ""
	if orient == "bottom" {
		axis.Offset = facet.PlotPadding.Y
	} else {
		axis.Offset = facet.PlotPadding.X
	}
	return axis
}

var _ ports.AxesPort = AxesAdapter{}
