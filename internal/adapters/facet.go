package adapters

import (
	"github.com/ZanzyTHEbar/errbuilder-go"

	"insight-specs/internal/layouts"
	"insight-specs/internal/ports"
	"insight-specs/internal/types"
)

// FacetAdapter splits the plot into one cell per facet value. A second
// facet column switches the default style to cross.
type FacetAdapter struct{}

func NewFacetAdapter() FacetAdapter {
	return FacetAdapter{}
}

func (a FacetAdapter) Layout(specContext types.SpecContext, axisScales *types.AxisScales) (*types.FacetLayout, error) {
	facet := specContext.Columns[types.RoleFacet]
	if facet == nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("facet layout requires a facet column")
	}
	fields := []string{facet.Name}
	style := specContext.Insight.FacetStyle
	if row := specContext.Columns[types.RoleFacetV]; row != nil {
		fields = append(fields, row.Name)
		if style == "" {
			style = types.FacetStyleCross
		}
	}
	if style == "" {
		style = types.FacetStyleWrap
	}

	padding := specContext.ViewOptions.FacetPadding
	if padding <= 0 {
		padding = types.DefaultFacetPadding
	}
	return &types.FacetLayout{
		Layout: types.LayoutPair{
			Kind:  layouts.KindCell,
			Props: layouts.CellProps{Fields: fields, Style: style},
		},
		Signals: []*types.Signal{
			{Name: types.SignalFacetPaddingTop, Value: padding},
			{Name: types.SignalFacetPaddingBottom, Value: padding},
			{Name: types.SignalFacetPaddingLeft, Value: padding},
		},
		Style:        style,
		FacetPadding: types.Padding{Top: padding, Bottom: padding, Left: padding, Right: padding},
		PlotPadding:  types.PlotPadding{X: padding, Y: padding},
	}, nil
}

var _ ports.FacetPort = FacetAdapter{}
