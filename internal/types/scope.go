package types

// SizeSignals names the signals holding the height and width available to
// a stage.
type SizeSignals struct {
	LayoutHeight string
	LayoutWidth  string
}

// Offsets holds the current position and size expressions of a scope.
type Offsets struct {
	X string
	Y string
	H string
	W string
}

type OffsetAxis string

const (
	AxisX OffsetAxis = "x"
	AxisY OffsetAxis = "y"
	AxisH OffsetAxis = "h"
	AxisW OffsetAxis = "w"
)

var OffsetAxes = []OffsetAxis{AxisX, AxisY, AxisH, AxisW}

type OffsetKind int

const (
	OffsetAbsent OffsetKind = iota
	OffsetPassThrough
	OffsetSignal
	OffsetFormula
)

// OffsetSlot is one stage's contribution to one axis: nothing, a
// pass-through, a constant or signal expression, or a formula computed per
// datum whose As names the resulting field.
type OffsetSlot struct {
	Kind    OffsetKind
	Signal  string
	Formula *FormulaTransform
}

func PassThrough() OffsetSlot {
	return OffsetSlot{Kind: OffsetPassThrough}
}

func SignalOffset(signal string) OffsetSlot {
	return OffsetSlot{Kind: OffsetSignal, Signal: signal}
}

func FormulaOffset(formula *FormulaTransform) OffsetSlot {
	return OffsetSlot{Kind: OffsetFormula, Formula: formula}
}

type Offset2 struct {
	X OffsetSlot
	Y OffsetSlot
	H OffsetSlot
	W OffsetSlot
}

func (o Offset2) Slot(axis OffsetAxis) OffsetSlot {
	switch axis {
	case AxisX:
		return o.X
	case AxisY:
		return o.Y
	case AxisH:
		return o.H
	case AxisW:
		return o.W
	default:
		return OffsetSlot{}
	}
}

// OutField accumulates the terms summed into one synthesized offset field.
type OutField struct {
	Field string
	Terms []string
}

type OutFieldMap map[OffsetAxis]*OutField

type FieldOp struct {
	Field string `json:"field,omitempty"`
	Op    string `json:"op"`
	As    string `json:"as"`
}

// CountOp is the implicit operation of every grouping.
func CountOp() FieldOp {
	return FieldOp{Op: "count", As: FieldCount}
}

type Grouping struct {
	ID       int       `json:"id"`
	Groupby  []string  `json:"groupby"`
	FieldOps []FieldOp `json:"fieldOps"`
}

type AxisScale struct {
	Type      string
	Title     string
	Aggregate string
}

// AxisScales is the chart's registry of axis-bearing roles.
type AxisScales struct {
	X *AxisScale
	Y *AxisScale
	Z *AxisScale
}

type AxisScaleSet struct {
	X []*Scale
	Y []*Scale
	Z []*Scale
}

// GlobalScales are the scales a stage exposes to the axis composer.
type GlobalScales struct {
	ShowAxes bool
	Scales   AxisScaleSet
}

type GlobalSignals struct {
	MinCellWidth     *Signal
	MinCellHeight    *Signal
	PlotOffsetLeft   *Signal
	PlotOffsetTop    *Signal
	PlotOffsetBottom *Signal
	PlotOffsetRight  *Signal
	PlotHeightOut    *Signal
	PlotWidthOut     *Signal
}

// GlobalScope is the document-wide state shared by every stage of one
// build. It is created once and never replaced.
type GlobalScope struct {
	Scope        *VegaSpec
	MarkGroup    *Mark
	DataName     string
	MarkDataName string
	Offsets      Offsets
	SizeSignals  SizeSignals
	Signals      GlobalSignals
}

func NewGlobalScope(scope *VegaSpec, markGroup *Mark, dataName string, signals GlobalSignals) *GlobalScope {
	return &GlobalScope{
		Scope:     scope,
		MarkGroup: markGroup,
		DataName:  dataName,
		Offsets: Offsets{
			X: ZeroSignal,
			Y: ZeroSignal,
			H: SignalPlotHeightIn,
			W: SignalPlotWidthIn,
		},
		SizeSignals: SizeSignals{
			LayoutHeight: SignalPlotHeightIn,
			LayoutWidth:  SignalPlotWidthIn,
		},
		Signals: signals,
	}
}

func (g *GlobalScope) AddData(data ...*Data) {
	g.Scope.Data = append(g.Scope.Data, data...)
}

func (g *GlobalScope) AddSignals(signals ...*Signal) {
	g.Scope.Signals = append(g.Scope.Signals, signals...)
}

func (g *GlobalScope) AddScales(scales ...*Scale) {
	g.Scope.Scales = append(g.Scope.Scales, scales...)
}

// SetMarkDataName records the data source feeding the terminal mark.
func (g *GlobalScope) SetMarkDataName(name string) {
	g.MarkDataName = name
}

// MarkDataSource returns the terminal mark's data source, falling back to
// the color-resolved primary source.
func (g *GlobalScope) MarkDataSource() string {
	if g.MarkDataName != "" {
		return g.MarkDataName
	}
	return g.DataName
}

// FindData returns the named data source of the document or the root group.
func (g *GlobalScope) FindData(name string) *Data {
	for _, data := range g.Scope.Data {
		if data.Name == name {
			return data
		}
	}
	if g.MarkGroup != nil {
		for _, data := range g.MarkGroup.Data {
			if data.Name == name {
				return data
			}
		}
	}
	return nil
}

// InnerScope is the state one stage hands to the next. Groupby lists the
// fields the stage partitions its children by, outermost first.
type InnerScope struct {
	ID              int
	Prefix          string
	DataName        string
	SizeSignals     SizeSignals
	Offsets         Offsets
	Offset2         *Offset2
	Groupby         []string
	GlobalScales    *GlobalScales
	EncodingRuleMap map[string][]EncodeRule
	Mark            *Mark
}

// RootScope is the synthetic parent of the first stage.
func RootScope(g *GlobalScope) InnerScope {
	return InnerScope{
		DataName:    g.DataName,
		SizeSignals: g.SizeSignals,
		Offsets:     g.Offsets,
	}
}

type LayoutPair struct {
	Kind  string
	Props any
}

type LayoutBuildProps struct {
	GlobalScope *GlobalScope
	ParentScope InnerScope
	AxesScales  *AxisScales
	Groupings   []Grouping
	ID          int
}
