package ports

import "insight-specs/internal/types"

// ColorPort installs color data, scales and legends into the document and
// supplies the fill and opacity rules of the terminal mark.
type ColorPort interface {
	Apply(global *types.GlobalScope, specContext types.SpecContext) (types.ColorBinding, error)
	Fill(binding types.ColorBinding, specContext types.SpecContext) types.EncodeRule
	Opacity(specContext types.SpecContext) types.EncodeRule
}

type AxesPort interface {
	Apply(global *types.GlobalScope, specContext types.SpecContext, axisScales *types.AxisScales, scales []*types.GlobalScales, first *types.InnerScope, facet *types.FacetLayout) error
}

type FacetPort interface {
	Layout(specContext types.SpecContext, axisScales *types.AxisScales) (*types.FacetLayout, error)
}
