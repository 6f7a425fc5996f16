package core

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"insight-specs/internal/ports"
	"insight-specs/internal/shared"
	"insight-specs/internal/types"
)

// LayoutIteration collects what the stages of one build contributed.
type LayoutIteration struct {
	First     *types.InnerScope
	Last      *types.InnerScope
	Errors    []string
	Scales    []*types.GlobalScales
	RuleMaps  []map[string][]types.EncodeRule
	Groupings []types.Grouping
	Offsets   []types.Offset2
	Sums      bool
}

// IterateLayouts folds the layout pairs over the scope chain. Each stage
// reads the scope returned by its predecessor. The first failing stage
// stops the fold and is reported as the only error.
func IterateLayouts(ctx context.Context, registry ports.LayoutRegistryPort, global *types.GlobalScope, pairs []types.LayoutPair, axisScales *types.AxisScales) LayoutIteration {
	var it LayoutIteration
	parent := types.RootScope(global)

	for i, pair := range pairs {
		build := types.LayoutBuildProps{
			GlobalScope: global,
			ParentScope: parent,
			AxesScales:  axisScales,
			Groupings:   append([]types.Grouping(nil), it.Groupings...),
			ID:          i,
		}
		scope, groupby, sumOp, err := buildLayout(registry, pair, build)
		if err != nil {
			it.Errors = []string{fmt.Sprintf("layout %d (%s): %s", i, pair.Kind, shared.ErrorTrace(err))}
			log.Ctx(ctx).Debug().Int("stage", i).Str("layout", pair.Kind).Err(err).Msg("layout failed")
			break
		}

		scope.ID = i
		if scope.Offset2 != nil {
			it.Offsets = append(it.Offsets, *scope.Offset2)
		}
		if len(groupby) > 0 {
			it.Groupings = append(it.Groupings, types.Grouping{
				ID:       i,
				Groupby:  groupby,
				FieldOps: []types.FieldOp{types.CountOp()},
			})
			if sumOp != nil {
				last := &it.Groupings[len(it.Groupings)-1]
				last.FieldOps = append(last.FieldOps, *sumOp)
				it.Sums = true
			}
		}
		if scope.GlobalScales != nil {
			it.Scales = append(it.Scales, scope.GlobalScales)
		}
		if len(scope.EncodingRuleMap) > 0 {
			it.RuleMaps = append(it.RuleMaps, scope.EncodingRuleMap)
		}
		if i == 0 {
			first := scope
			it.First = &first
		}
		last := scope
		it.Last = &last
		parent = scope

		log.Ctx(ctx).Debug().Int("stage", i).Str("layout", pair.Kind).Str("data", scope.DataName).Msg("layout built")
	}
	return it
}

func buildLayout(registry ports.LayoutRegistryPort, pair types.LayoutPair, build types.LayoutBuildProps) (types.InnerScope, []string, *types.FieldOp, error) {
	layout, err := registry.New(pair, build)
	if err != nil {
		return types.InnerScope{}, nil, nil, err
	}
	scope, err := layout.Build()
	if err != nil {
		return types.InnerScope{}, nil, nil, err
	}
	return scope, layout.Grouping(), layout.AggregateSumOp(), nil
}
