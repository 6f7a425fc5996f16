package types

// SpecResult is the outcome of one compile: either errors or a document,
// never both.
type SpecResult struct {
	Errors       []string         `json:"errors,omitempty"`
	VegaSpec     *VegaSpec        `json:"vegaSpec"`
	Capabilities SpecCapabilities `json:"specCapabilities"`
}

func (r SpecResult) OK() bool {
	return len(r.Errors) == 0 && r.VegaSpec != nil
}

type Padding struct {
	Top    float64
	Bottom float64
	Left   float64
	Right  float64
}

type PlotPadding struct {
	X float64
	Y float64
}

// FacetLayout is produced by the facet composer when a facet column is
// bound. Style is the resolved facet style, never empty.
type FacetLayout struct {
	Layout       LayoutPair
	Style        FacetStyle
	Signals      []*Signal
	Scales       []*Scale
	FacetPadding Padding
	PlotPadding  PlotPadding
}

// SpecBuilderProps is everything a chart recipe hands to the builder.
type SpecBuilderProps struct {
	SpecContext        SpecContext
	Capabilities       SpecCapabilities
	AxisScales         *AxisScales
	Layouts            []LayoutPair
	FacetLayout        *FacetLayout
	GroupedAggregation bool
}

// ColorBinding is what the color composer hands the builder: the field
// marks are colored by and the data source stages should read from.
type ColorBinding struct {
	Field    string
	DataName string
}
