package core

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"insight-specs/internal/types"
)

func TestEvaluateSignals(t *testing.T) {
	values := EvaluateSignals([]*types.Signal{
		{Name: "a", Value: 4},
		{Name: "b", Update: "max(a, 10) / 2"},
		{Name: "c", Update: "ceil(sqrt(a)) + b"},
		{Name: "bw", Update: "bandwidth('s')"},
		{Name: "d", Update: "bw * 2"},
		{Name: "label", Value: "text"},
	})

	assert.Equal(t, 4.0, values.Values["a"])
	assert.Equal(t, 5.0, values.Values["b"])
	assert.Equal(t, 7.0, values.Values["c"])
	assert.Contains(t, values.Unresolved, "bw")
	assert.Contains(t, values.Unresolved, "d")
	assert.Contains(t, values.Unresolved, "label")
}
