package core

import (
	"fmt"
	"math"

	"github.com/expr-lang/expr"

	"insight-specs/internal/types"
)

// SignalValues holds the signals EvaluateSignals could resolve and the
// reason each remaining signal could not be resolved.
type SignalValues struct {
	Values     map[string]float64
	Unresolved map[string]string
}

// EvaluateSignals resolves the numeric signal graph in document order.
// Signals depending on the renderer (scale bandwidths, data extents) stay
// unresolved along with everything that depends on them.
func EvaluateSignals(signals []*types.Signal) SignalValues {
	result := SignalValues{
		Values:     map[string]float64{},
		Unresolved: map[string]string{},
	}
	env := map[string]any{
		"sqrt": func(x any) float64 {
			value, _ := toFloat(x)
			return math.Sqrt(value)
		},
	}
	for _, signal := range signals {
		if signal.Update == "" {
			value, ok := toFloat(signal.Value)
			if !ok {
				result.Unresolved[signal.Name] = fmt.Sprintf("non-numeric value %v", signal.Value)
				continue
			}
			result.Values[signal.Name] = value
			env[signal.Name] = value
			continue
		}
		output, err := expr.Eval(signal.Update, env)
		if err != nil {
			result.Unresolved[signal.Name] = err.Error()
			delete(env, signal.Name)
			continue
		}
		value, ok := toFloat(output)
		if !ok {
			result.Unresolved[signal.Name] = fmt.Sprintf("non-numeric result %v", output)
			delete(env, signal.Name)
			continue
		}
		result.Values[signal.Name] = value
		env[signal.Name] = value
	}
	return result
}

func toFloat(value any) (float64, bool) {
	switch v := value.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case int32:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint64:
		return float64(v), true
	default:
		return 0, false
	}
}
