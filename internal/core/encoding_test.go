package core

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"insight-specs/internal/types"
)

func rectMark() *types.Mark {
	return &types.Mark{
		Type: types.MarkTypeRect,
		Encode: &types.Encode{
			Update: map[string]*types.Channel{
				"fill":   types.SingleRule(types.EncodeRule{Value: "steelblue"}),
				"height": types.SingleRule(types.EncodeRule{Signal: "size"}),
				"x":      types.SingleRule(types.EncodeRule{Field: "__x"}),
			},
		},
	}
}

func TestMergeEncodingRulesLaterStageWins(t *testing.T) {
	mark := rectMark()
	rA := types.EncodeRule{Test: "datum.a", Value: "red"}
	rB := types.EncodeRule{Test: "datum.b", Value: "blue"}

	MergeEncodingRules(mark, []map[string][]types.EncodeRule{
		{"fill": {rA}},
		{"fill": {rB}},
	})

	fill := mark.Encode.Update["fill"]
	assert.True(t, fill.List)
	assert.Equal(t, []types.EncodeRule{rB, rA, {Value: "steelblue"}}, fill.Rules)
}

func TestMergeEncodingRulesKeepsStageOrder(t *testing.T) {
	mark := rectMark()
	r1 := types.EncodeRule{Test: "a", Value: 0}
	r2 := types.EncodeRule{Test: "b", Value: 0}
	MergeEncodingRules(mark, []map[string][]types.EncodeRule{{"height": {r1, r2}}})
	assert.Equal(t, []types.EncodeRule{r1, r2, {Signal: "size"}}, mark.Encode.Update["height"].Rules)
}

func TestMergeEncodingRulesSkipsAbsentChannels(t *testing.T) {
	mark := rectMark()
	MergeEncodingRules(mark, []map[string][]types.EncodeRule{{"stroke": {{Value: "black"}}}})
	assert.NotContains(t, mark.Encode.Update, "stroke")
}

func TestBindOffsetsOverridesPosition(t *testing.T) {
	mark := rectMark()
	mark.From = &types.From{Data: "square_1_data"}
	BindOffsets(mark, types.OutFieldMap{
		types.AxisX: {Field: types.FieldOffsetX},
		types.AxisY: {Field: types.FieldOffsetY},
	})
	assert.Equal(t, types.DataOffsets, mark.From.Data)
	assert.Equal(t, []types.EncodeRule{{Field: types.FieldOffsetX}}, mark.Encode.Update["x"].Rules)
	assert.Equal(t, []types.EncodeRule{{Field: types.FieldOffsetY}}, mark.Encode.Update["y"].Rules)
}

func TestFinalizeColorReplacesStageRules(t *testing.T) {
	mark := rectMark()
	MergeEncodingRules(mark, []map[string][]types.EncodeRule{{"fill": {{Test: "x", Value: "red"}}}})
	FinalizeColor(mark, types.EncodeRule{Scale: types.ScaleColor, Field: "Region"}, types.EncodeRule{Signal: types.SignalMarkOpacity})

	raw, err := json.Marshal(mark.Encode.Update["fill"])
	require.NoError(t, err)
	assert.JSONEq(t, `{"scale":"scale_color","field":"Region"}`, string(raw))
	assert.Equal(t, []types.EncodeRule{{Signal: types.SignalMarkOpacity}}, mark.Encode.Update["opacity"].Rules)
}
