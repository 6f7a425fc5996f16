package core

import (
	"errors"
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"insight-specs/internal/types"
)

func TestIterateLayoutsChainsScopes(t *testing.T) {
	global := newTestGlobal(barChartContext())
	var parents []types.InnerScope
	first := &stubLayout{
		scope:   types.InnerScope{Prefix: "a", DataName: "a_data", Groupby: []string{"Region"}},
		groupby: []string{"Region"},
		sumOp:   &types.FieldOp{Field: "Sales", Op: "sum", As: types.FieldSum},
		parents: &parents,
	}
	second := &stubLayout{
		scope: types.InnerScope{
			Prefix:          "b",
			DataName:        "b_data",
			Offset2:         &types.Offset2{X: types.SignalOffset("b_x")},
			GlobalScales:    &types.GlobalScales{ShowAxes: true},
			EncodingRuleMap: map[string][]types.EncodeRule{"fill": {{Value: "red"}}},
			Mark:            &types.Mark{Type: types.MarkTypeRect},
		},
		parents: &parents,
	}

	it := IterateLayouts(t.Context(), newStubRegistry(), global, []types.LayoutPair{
		{Kind: "stub", Props: first},
		{Kind: "stub", Props: second},
	}, &types.AxisScales{})

	require.Empty(t, it.Errors)
	require.Len(t, parents, 2)
	assert.Equal(t, types.DataSource, parents[0].DataName)
	assert.Equal(t, "a_data", parents[1].DataName)
	assert.Equal(t, 1, second.build.ID)
	require.Len(t, second.build.Groupings, 1)

	require.NotNil(t, it.First)
	require.NotNil(t, it.Last)
	assert.Equal(t, "a", it.First.Prefix)
	assert.Equal(t, 0, it.First.ID)
	assert.Equal(t, "b", it.Last.Prefix)
	assert.Equal(t, 1, it.Last.ID)

	require.Len(t, it.Groupings, 1)
	assert.Equal(t, []types.FieldOp{
		types.CountOp(),
		{Field: "Sales", Op: "sum", As: types.FieldSum},
	}, it.Groupings[0].FieldOps)
	assert.True(t, it.Sums)
	assert.Len(t, it.Offsets, 1)
	assert.Len(t, it.Scales, 1)
	assert.Len(t, it.RuleMaps, 1)
}

func TestIterateLayoutsGroupingWithoutSum(t *testing.T) {
	global := newTestGlobal(barChartContext())
	it := IterateLayouts(t.Context(), newStubRegistry(), global, []types.LayoutPair{
		{Kind: "stub", Props: &stubLayout{groupby: []string{"Region"}}},
	}, &types.AxisScales{})

	require.Len(t, it.Groupings, 1)
	assert.Equal(t, []types.FieldOp{types.CountOp()}, it.Groupings[0].FieldOps)
	assert.False(t, it.Sums)
}

func TestIterateLayoutsStopsAtFirstFailure(t *testing.T) {
	global := newTestGlobal(barChartContext())
	var parents []types.InnerScope
	it := IterateLayouts(t.Context(), newStubRegistry(), global, []types.LayoutPair{
		{Kind: "stub", Props: &stubLayout{scope: types.InnerScope{Prefix: "ok"}, parents: &parents}},
		{Kind: "broken", Props: &stubLayout{err: errStageFailed, parents: &parents}},
		{Kind: "stub", Props: &stubLayout{parents: &parents}},
	}, &types.AxisScales{})

	assert.Equal(t, []string{"layout 1 (broken): stage exploded"}, it.Errors)
	assert.Len(t, parents, 2)
}

func TestIterateLayoutsKeepsErrorCause(t *testing.T) {
	global := newTestGlobal(barChartContext())
	cause := errors.New("column Region has no values")
	it := IterateLayouts(t.Context(), newStubRegistry(), global, []types.LayoutPair{
		{Kind: "stub", Props: &stubLayout{err: errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("build band scale").
			WithCause(cause)}},
	}, &types.AxisScales{})

	assert.Equal(t, []string{"layout 0 (stub): build band scale: column Region has no values"}, it.Errors)
}

func TestIterateLayoutsUnknownKind(t *testing.T) {
	global := newTestGlobal(barChartContext())
	it := IterateLayouts(t.Context(), newStubRegistry(), global, []types.LayoutPair{
		{Kind: "nope"},
	}, &types.AxisScales{})

	require.Len(t, it.Errors, 1)
	assert.Contains(t, it.Errors[0], `layout 0 (nope): unknown layout kind "nope"`)
}
