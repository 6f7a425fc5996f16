package types

// Signal names shared by the compiler and the layout stages.
const (
	SignalMinCellWidth       = "MinCellWidth"
	SignalMinCellHeight      = "MinCellHeight"
	SignalViewportHeight     = "ViewportHeight"
	SignalViewportWidth      = "ViewportWidth"
	SignalPlotOffsetLeft     = "PlotOffsetLeft"
	SignalPlotOffsetTop      = "PlotOffsetTop"
	SignalPlotOffsetBottom   = "PlotOffsetBottom"
	SignalPlotOffsetRight    = "PlotOffsetRight"
	SignalPlotHeightIn       = "PlotHeightIn"
	SignalPlotWidthIn        = "PlotWidthIn"
	SignalPlotHeightOut      = "PlotHeightOut"
	SignalPlotWidthOut       = "PlotWidthOut"
	SignalHeight             = "height"
	SignalWidth              = "width"
	SignalFacetPaddingBottom = "FacetPaddingBottom"
	SignalFacetPaddingLeft   = "FacetPaddingLeft"
	SignalFacetPaddingTop    = "FacetPaddingTop"
	SignalColorReverse       = "ColorReverse"
	SignalMarkOpacity        = "MarkOpacity"
	SignalTextSize           = "TextSize"
	SignalTextTitleSize      = "TextTitleSize"
)

// ZeroSignal is the offset expression of a stage that does not move its
// children.
const ZeroSignal = "0"

// Field names synthesized into data sources.
const (
	FieldCount      = "__count"
	FieldSum        = "__sum"
	FieldSumOfCount = "__sumOfCount"
	FieldSumOfSum   = "__sumOfSum"
	FieldOffsetX    = "__offsetX"
	FieldOffsetY    = "__offsetY"
	FieldOffsetH    = "__offsetH"
	FieldOffsetW    = "__offsetW"
	FieldTopColor   = "__topColor"
)

const (
	DataInput          = "input"
	DataSource         = "data_source"
	DataLegend         = "data_legend"
	DataTopColorLookup = "data_topcolorlookup"
	DataColor          = "data_color"
	DataOffsets        = "data_offsets"
	DataAggregate      = "data_aggregate"
)

const (
	ScaleColor         = "scale_color"
	ScaleFacetColTitle = "scale_facet_col_title"
	ScaleFacetRowTitle = "scale_facet_row_title"
)

// Layout defaults.
const (
	DefaultMinCellWidth  = 10
	DefaultMinCellHeight = 10
	DefaultMaxLegends    = 20
	DefaultFacetPadding  = 16
	DefaultMarkOpacity   = 1.0
	DefaultColor         = "steelblue"
	DefaultColorScheme   = "category20"
	DefaultTextSize      = 10
	DefaultTextTitleSize = 13
	OtherColorLabel      = "Other"
)
