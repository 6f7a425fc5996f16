package core

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"insight-specs/internal/charts"
	"insight-specs/internal/layouts"
	"insight-specs/internal/types"
)

func barChartProps(t *testing.T, specContext types.SpecContext) types.SpecBuilderProps {
	t.Helper()
	chart := charts.NewBarChart(charts.BarChartVertical)
	pairs, err := chart.Layouts(specContext)
	require.NoError(t, err)
	return types.SpecBuilderProps{
		SpecContext:  specContext,
		Capabilities: chart.Capabilities(),
		AxisScales:   chart.AxisScales(specContext),
		Layouts:      pairs,
	}
}

func TestSpecBuilderBarChart(t *testing.T) {
	axes := &recordingAxes{}
	builder := NewSpecBuilder(newStubRegistry(), stubColor{}, axes)

	result, err := builder.Build(t.Context(), barChartProps(t, barChartContext()))
	require.NoError(t, err)
	require.Empty(t, result.Errors)
	require.NotNil(t, result.VegaSpec)
	assert.True(t, result.OK())

	assert.Equal(t, 1, axes.calls)
	require.Len(t, axes.scales, 1)
	assert.Nil(t, axes.first)
	assert.Nil(t, axes.facet)

	root := result.VegaSpec.Marks[0]
	require.Len(t, root.Marks, 1)
	mark := root.Marks[0]
	assert.Equal(t, types.DataOffsets, mark.From.Data)
	assert.Equal(t, []types.EncodeRule{{Field: types.FieldOffsetX}}, mark.Encode.Update["x"].Rules)
	assert.Equal(t, []types.EncodeRule{{Field: types.FieldOffsetY}}, mark.Encode.Update["y"].Rules)
	assert.Equal(t, []types.EncodeRule{{Signal: types.SignalMarkOpacity}}, mark.Encode.Update["opacity"].Rules)

	require.Len(t, root.Data, 1)
	assert.Equal(t, "square_1_data", root.Data[0].Source)

	require.NoError(t, CheckDocument(t.Context(), result.VegaSpec))
}

func TestSpecBuilderIsDeterministic(t *testing.T) {
	builder := NewSpecBuilder(newStubRegistry(), stubColor{}, &recordingAxes{})
	specContext := barChartContext()
	specContext.Insight.Filter = "datum.Sales > 2"

	first, err := builder.Build(t.Context(), barChartProps(t, specContext))
	require.NoError(t, err)
	second, err := builder.Build(t.Context(), barChartProps(t, specContext))
	require.NoError(t, err)

	a, err := json.Marshal(first.VegaSpec)
	require.NoError(t, err)
	b, err := json.Marshal(second.VegaSpec)
	require.NoError(t, err)
	assert.JSONEq(t, string(a), string(b))
}

func TestSpecBuilderFilterRulesPrecedeMarkValue(t *testing.T) {
	builder := NewSpecBuilder(newStubRegistry(), stubColor{}, &recordingAxes{})
	specContext := barChartContext()
	specContext.Insight.Filter = "datum.Sales > 2"

	result, err := builder.Build(t.Context(), barChartProps(t, specContext))
	require.NoError(t, err)
	height := result.VegaSpec.Marks[0].Marks[0].Encode.Update["height"]
	require.True(t, height.List)
	assert.Equal(t, []types.EncodeRule{
		{Test: "!(datum.Sales > 2)", Value: 0},
		{Signal: "square_1_size"},
	}, height.Rules)
}

func TestSpecBuilderStageFailureReturnsOnlyErrors(t *testing.T) {
	builder := NewSpecBuilder(newStubRegistry(), stubColor{}, &recordingAxes{})
	props := barChartProps(t, barChartContext())
	props.Layouts = append(props.Layouts, types.LayoutPair{Kind: "stub", Props: &stubLayout{err: errStageFailed}})

	result, err := builder.Build(t.Context(), props)
	require.NoError(t, err)
	assert.Equal(t, []string{"layout 2 (stub): stage exploded"}, result.Errors)
	assert.Nil(t, result.VegaSpec)
	assert.False(t, result.OK())
}

func TestSpecBuilderValidationErrors(t *testing.T) {
	builder := NewSpecBuilder(newStubRegistry(), stubColor{}, &recordingAxes{})
	specContext := barChartContext()
	delete(specContext.Columns, types.RoleX)

	result, err := builder.Build(t.Context(), barChartProps(t, specContext))
	require.NoError(t, err)
	assert.Equal(t, []string{"Field x is required."}, result.Errors)
	assert.Nil(t, result.VegaSpec)
	assert.NotEmpty(t, result.Capabilities.Roles)
}

func TestSpecBuilderGroupedAggregation(t *testing.T) {
	builder := NewSpecBuilder(newStubRegistry(), stubColor{}, &recordingAxes{})
	specContext := barChartContext()
	specContext.Insight.TotalStyle = types.TotalStyleSumStrip
	props := barChartProps(t, specContext)
	props.GroupedAggregation = true

	result, err := builder.Build(t.Context(), props)
	require.NoError(t, err)
	var names []string
	for _, data := range result.VegaSpec.Data {
		names = append(names, data.Name)
	}
	assert.Contains(t, names, "data_aggregate_0")
	require.NoError(t, CheckDocument(t.Context(), result.VegaSpec))
}

func TestSpecBuilderFaceted(t *testing.T) {
	axes := &recordingAxes{}
	builder := NewSpecBuilder(newStubRegistry(), stubColor{}, axes)
	props := barChartProps(t, barChartContext())
	props.FacetLayout = &types.FacetLayout{
		Layout: types.LayoutPair{Kind: layouts.KindCell, Props: layouts.CellProps{Fields: []string{"Region"}}},
		Style:  types.FacetStyleWrap,
		Signals: []*types.Signal{
			{Name: types.SignalFacetPaddingTop, Value: 16},
			{Name: types.SignalFacetPaddingBottom, Value: 16},
			{Name: types.SignalFacetPaddingLeft, Value: 16},
		},
	}

	result, err := builder.Build(t.Context(), props)
	require.NoError(t, err)
	require.Empty(t, result.Errors)
	require.NotNil(t, axes.first)
	assert.Same(t, props.FacetLayout, axes.facet)
	assert.Equal(t, "cell_0", axes.first.Prefix)
	assert.Equal(t, "cell_0_height", axes.first.SizeSignals.LayoutHeight)

	offsets := result.VegaSpec.Marks[0].Data[0]
	sumX, ok := offsets.Transform[len(offsets.Transform)-2].(*types.FormulaTransform)
	require.True(t, ok)
	assert.Equal(t, `datum["__cell_0_x"] + datum["__band_1_position"] + datum["__square_2_x"]`, sumX.Expr)
	require.NoError(t, CheckDocument(t.Context(), result.VegaSpec))
}
