package core

import (
	"errors"

	"insight-specs/internal/layouts"
	"insight-specs/internal/ports"
	"insight-specs/internal/types"
)

type stubColor struct{}

func (stubColor) Apply(global *types.GlobalScope, specContext types.SpecContext) (types.ColorBinding, error) {
	return types.ColorBinding{DataName: global.DataName}, nil
}

func (stubColor) Fill(binding types.ColorBinding, specContext types.SpecContext) types.EncodeRule {
	return types.EncodeRule{Value: types.DefaultColor}
}

func (stubColor) Opacity(specContext types.SpecContext) types.EncodeRule {
	return types.EncodeRule{Signal: types.SignalMarkOpacity}
}

type recordingAxes struct {
	calls  int
	scales []*types.GlobalScales
	first  *types.InnerScope
	facet  *types.FacetLayout
}

func (a *recordingAxes) Apply(global *types.GlobalScope, specContext types.SpecContext, axisScales *types.AxisScales, scales []*types.GlobalScales, first *types.InnerScope, facet *types.FacetLayout) error {
	a.calls++
	a.scales = scales
	a.first = first
	a.facet = facet
	return nil
}

// stubLayout returns a fixed scope and records the parent it was built on.
type stubLayout struct {
	scope   types.InnerScope
	groupby []string
	sumOp   *types.FieldOp
	err     error
	parents *[]types.InnerScope
	build   types.LayoutBuildProps
}

func (l *stubLayout) Build() (types.InnerScope, error) {
	if l.parents != nil {
		*l.parents = append(*l.parents, l.build.ParentScope)
	}
	if l.err != nil {
		return types.InnerScope{}, l.err
	}
	return l.scope, nil
}

func (l *stubLayout) Grouping() []string { return l.groupby }

func (l *stubLayout) AggregateSumOp() *types.FieldOp { return l.sumOp }

// stubRegistry serves stubLayout props and falls back to the real stages.
type stubRegistry struct {
	real layouts.Registry
}

func newStubRegistry() stubRegistry {
	return stubRegistry{real: layouts.NewRegistry()}
}

func (r stubRegistry) New(pair types.LayoutPair, build types.LayoutBuildProps) (ports.Layout, error) {
	if stub, ok := pair.Props.(*stubLayout); ok {
		stub.build = build
		return stub, nil
	}
	return r.real.New(pair, build)
}

func (r stubRegistry) Kinds() []string {
	return append([]string{"stub"}, r.real.Kinds()...)
}

var errStageFailed = errors.New("stage exploded")

func newTestGlobal(specContext types.SpecContext) *types.GlobalScope {
	doc, root, signals := InitSpec(specContext)
	return types.NewGlobalScope(doc, root, types.DataSource, signals)
}

func barChartContext() types.SpecContext {
	return types.NewSpecContext(types.Description{
		APIVersion: "v1",
		Name:       "sales",
		Insight: types.Insight{
			Chart:   "barchartV",
			Columns: types.InsightColumns{X: "Region", Size: "Sales"},
			Size:    types.Size{Width: 400, Height: 300},
		},
		Columns: []types.Column{
			{Name: "Region", Type: types.ColumnTypeString},
			{Name: "Sales", Type: types.ColumnTypeNumber, Quantitative: true},
		},
	})
}
