package layouts

import (
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"insight-specs/internal/shared"
	"insight-specs/internal/types"
)

func newGlobalScope() *types.GlobalScope {
	group := &types.Mark{Type: types.MarkTypeGroup}
	doc := &types.VegaSpec{Marks: []*types.Mark{group}}
	signals := types.GlobalSignals{
		PlotHeightOut: &types.Signal{Name: types.SignalPlotHeightOut, Update: types.SignalPlotHeightIn},
		PlotWidthOut:  &types.Signal{Name: types.SignalPlotWidthOut, Update: types.SignalPlotWidthIn},
	}
	return types.NewGlobalScope(doc, group, types.DataSource, signals)
}

func buildProps(global *types.GlobalScope, parent types.InnerScope, id int) types.LayoutBuildProps {
	return types.LayoutBuildProps{
		GlobalScope: global,
		ParentScope: parent,
		AxesScales:  &types.AxisScales{},
		ID:          id,
	}
}

func TestRegistryUnknownKindSuggests(t *testing.T) {
	registry := NewRegistry()
	global := newGlobalScope()

	_, err := registry.New(types.LayoutPair{Kind: "bnad"}, buildProps(global, types.RootScope(global), 0))
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeNotFound, errbuilder.CodeOf(err))
	assert.Contains(t, shared.ErrorMessage(err), `unknown layout kind "bnad"`)

	_, err = registry.New(types.LayoutPair{Kind: "scat"}, buildProps(global, types.RootScope(global), 0))
	require.Error(t, err)
	assert.Contains(t, shared.ErrorMessage(err), `did you mean "scatter"`)
}

func TestRegistryKinds(t *testing.T) {
	assert.Equal(t, []string{KindBand, KindCell, KindScatter, KindSquare}, NewRegistry().Kinds())
}

func TestRegistryRejectsWrongProps(t *testing.T) {
	registry := NewRegistry()
	global := newGlobalScope()
	_, err := registry.New(types.LayoutPair{Kind: KindBand, Props: SquareProps{}}, buildProps(global, types.RootScope(global), 0))
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))
}

func TestBandBuildVertical(t *testing.T) {
	global := newGlobalScope()
	layout, err := NewBand(BandProps{Field: "Region", SumField: "Sales", Filter: "datum.Sales > 0"}, buildProps(global, types.RootScope(global), 0))
	require.NoError(t, err)

	scope, err := layout.Build()
	require.NoError(t, err)

	assert.Equal(t, "band_0", scope.Prefix)
	assert.Equal(t, types.DataSource, scope.DataName)
	assert.Equal(t, []string{"Region"}, scope.Groupby)
	assert.Equal(t, types.SizeSignals{LayoutHeight: types.SignalPlotHeightIn, LayoutWidth: "band_0_bandwidth"}, scope.SizeSignals)
	require.NotNil(t, scope.Offset2)
	assert.Equal(t, types.OffsetFormula, scope.Offset2.X.Kind)
	assert.Equal(t, `scale('band_0_scale', datum["Region"])`, scope.Offset2.X.Formula.Expr)
	assert.Equal(t, types.OffsetPassThrough, scope.Offset2.Y.Kind)
	assert.Equal(t, types.SignalOffset("band_0_bandwidth"), scope.Offset2.W)
	require.NotNil(t, scope.GlobalScales)
	require.Len(t, scope.GlobalScales.Scales.X, 1)
	assert.Equal(t, "band_0_scale", scope.GlobalScales.Scales.X[0].Name)
	assert.Equal(t, []types.EncodeRule{{Test: "!(datum.Sales > 0)", Value: 0}}, scope.EncodingRuleMap["height"])

	require.Len(t, global.Scope.Scales, 1)
	require.Len(t, global.Scope.Signals, 1)
	assert.Equal(t, "bandwidth('band_0_scale')", global.Scope.Signals[0].Update)

	assert.Equal(t, []string{"Region"}, layout.Grouping())
	assert.Equal(t, &types.FieldOp{Field: "Sales", Op: "sum", As: types.FieldSum}, layout.AggregateSumOp())
}

func TestBandBuildHorizontal(t *testing.T) {
	global := newGlobalScope()
	layout, err := NewBand(BandProps{Field: "Region", Orientation: BandHorizontal}, buildProps(global, types.RootScope(global), 2))
	require.NoError(t, err)

	scope, err := layout.Build()
	require.NoError(t, err)
	assert.Equal(t, "band_2_bandwidth", scope.SizeSignals.LayoutHeight)
	assert.Equal(t, types.OffsetFormula, scope.Offset2.Y.Kind)
	assert.Equal(t, types.OffsetPassThrough, scope.Offset2.X.Kind)
	assert.Nil(t, scope.EncodingRuleMap)
	assert.Nil(t, layout.AggregateSumOp())
}

func TestBandRequiresField(t *testing.T) {
	global := newGlobalScope()
	_, err := NewBand(BandProps{}, buildProps(global, types.RootScope(global), 0))
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))
}

func TestSquareBuildAfterBand(t *testing.T) {
	global := newGlobalScope()
	band, err := NewBand(BandProps{Field: "Region"}, buildProps(global, types.RootScope(global), 0))
	require.NoError(t, err)
	bandScope, err := band.Build()
	require.NoError(t, err)

	square, err := NewSquare(SquareProps{SortField: "Sales"}, buildProps(global, bandScope, 1))
	require.NoError(t, err)
	scope, err := square.Build()
	require.NoError(t, err)

	require.NotNil(t, scope.Mark)
	assert.Equal(t, "square_1_data", scope.Mark.From.Data)
	assert.Equal(t, "square_1_data", global.MarkDataSource())
	assert.Same(t, scope.Mark, global.MarkGroup.Marks[0])
	assert.Equal(t, types.SignalOffset("square_1_size"), scope.Offset2.H)

	counts := global.FindData("square_1_counts")
	require.NotNil(t, counts)
	assert.Equal(t, "data_source", counts.Source)
	aggregate, ok := counts.Transform[0].(*types.AggregateTransform)
	require.True(t, ok)
	assert.Equal(t, []string{"Region"}, aggregate.Groupby)

	data := global.FindData("square_1_data")
	require.NotNil(t, data)
	window, ok := data.Transform[0].(*types.WindowTransform)
	require.True(t, ok)
	assert.Equal(t, []string{"Region"}, window.Groupby)
	assert.Equal(t, []string{"__square_1_index"}, window.As)

	assert.Nil(t, square.Grouping())
	assert.Nil(t, square.AggregateSumOp())
}

func TestScatterBuild(t *testing.T) {
	global := newGlobalScope()
	scatter, err := NewScatter(ScatterProps{XField: "Price", YField: "Sales", Filter: "datum.Price > 10"}, buildProps(global, types.RootScope(global), 0))
	require.NoError(t, err)

	scope, err := scatter.Build()
	require.NoError(t, err)
	require.NotNil(t, scope.GlobalScales)
	assert.True(t, scope.GlobalScales.ShowAxes)
	assert.Equal(t, "scatter_0_x", scope.GlobalScales.Scales.X[0].Name)
	assert.Equal(t, "scatter_0_y", scope.GlobalScales.Scales.Y[0].Name)
	assert.Len(t, scope.EncodingRuleMap, 2)
	assert.Equal(t, types.DataSource, global.MarkDataSource())
	assert.Len(t, global.Scope.Scales, 2)
}

func TestScatterRequiresFields(t *testing.T) {
	global := newGlobalScope()
	_, err := NewScatter(ScatterProps{XField: "Price"}, buildProps(global, types.RootScope(global), 0))
	require.Error(t, err)
}

func TestCellWrapOverridesPlotSize(t *testing.T) {
	global := newGlobalScope()
	cell, err := NewCell(CellProps{Fields: []string{"Region"}}, buildProps(global, types.RootScope(global), 0))
	require.NoError(t, err)

	scope, err := cell.Build()
	require.NoError(t, err)
	assert.Equal(t, "cell_0_data", scope.DataName)
	assert.Equal(t, []string{"Region"}, scope.Groupby)
	assert.Equal(t, types.SizeSignals{LayoutHeight: "cell_0_height", LayoutWidth: "cell_0_width"}, scope.SizeSignals)
	assert.Equal(t, "cell_0_cols * (cell_0_width + FacetPaddingLeft)", global.Signals.PlotWidthOut.Update)
	assert.Equal(t, "cell_0_rows * (cell_0_height + FacetPaddingTop + FacetPaddingBottom)", global.Signals.PlotHeightOut.Update)
	assert.NotNil(t, global.FindData("cell_0_cells"))
	assert.Equal(t, []string{"Region"}, cell.Grouping())
}

func TestCellCross(t *testing.T) {
	global := newGlobalScope()
	cell, err := NewCell(CellProps{Fields: []string{"Region", "Year"}, Style: types.FacetStyleCross}, buildProps(global, types.RootScope(global), 0))
	require.NoError(t, err)

	_, err = cell.Build()
	require.NoError(t, err)
	assert.NotNil(t, global.FindData("cell_0_colindex"))
	assert.NotNil(t, global.FindData("cell_0_rowindex"))
	data := global.FindData("cell_0_data")
	require.NotNil(t, data)
	lookup, ok := data.Transform[0].(*types.LookupTransform)
	require.True(t, ok)
	assert.Equal(t, []string{"__cell_0_colindex"}, lookup.Values)
}

func TestCellRejectsBadFields(t *testing.T) {
	global := newGlobalScope()
	_, err := NewCell(CellProps{}, buildProps(global, types.RootScope(global), 0))
	require.Error(t, err)
	_, err = NewCell(CellProps{Fields: []string{"Region"}, Style: types.FacetStyleCross}, buildProps(global, types.RootScope(global), 0))
	require.Error(t, err)
}
