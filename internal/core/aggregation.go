package core

import (
	"fmt"

	"insight-specs/internal/types"
)

// AggregateFieldOps returns the operations of every grouping level. The
// finest level counts rows and, with sums, totals the value field. The
// next level rolls those up into running sums, and every coarser level
// sums the running sums of the level below it.
func AggregateFieldOps(groupings []types.Grouping, sums bool) [][]types.FieldOp {
	n := len(groupings)
	levels := make([][]types.FieldOp, n)
	sumField := valueSumField(groupings)
	for i := range groupings {
		ops := []types.FieldOp{types.CountOp()}
		switch {
		case i == n-1:
			if sums && sumField != "" {
				ops = append(ops, types.FieldOp{Field: sumField, Op: "sum", As: types.FieldSum})
			}
		case i == n-2:
			ops = append(ops, types.FieldOp{Field: types.FieldCount, Op: "sum", As: types.FieldSumOfCount})
			if sums && sumField != "" {
				ops = append(ops, types.FieldOp{Field: types.FieldSum, Op: "sum", As: types.FieldSumOfSum})
			}
		default:
			ops = append(ops, types.FieldOp{Field: types.FieldSumOfCount, Op: "sum", As: types.FieldSumOfCount})
			if sums && sumField != "" {
				ops = append(ops, types.FieldOp{Field: types.FieldSumOfSum, Op: "sum", As: types.FieldSumOfSum})
			}
		}
		levels[i] = ops
	}
	return levels
}

// SynthesizeAggregates builds one aggregate data source per grouping level,
// finest first. Each level groups by the groupby fields of every level
// from the outermost down to itself, reads the output of the level below
// (the finest reads source) and publishes the extent of every output field
// as a signal named <data>_<field>_extent.
func SynthesizeAggregates(groupings []types.Grouping, sums bool, source string) []*types.Data {
	levels := AggregateFieldOps(groupings, sums)
	data := make([]*types.Data, 0, len(groupings))
	upstream := source
	for i := len(groupings) - 1; i >= 0; i-- {
		var groupby []string
		for _, grouping := range groupings[:i+1] {
			groupby = append(groupby, grouping.Groupby...)
		}
		name := fmt.Sprintf("%s_%d", types.DataAggregate, groupings[i].ID)
		transforms := []types.Transform{types.Aggregate(groupby, levels[i])}
		for _, op := range levels[i] {
			transforms = append(transforms, types.Extent(op.As, AggregateExtentSignal(name, op.As)))
		}
		data = append(data, &types.Data{Name: name, Source: upstream, Transform: transforms})
		upstream = name
	}
	return data
}

func AggregateExtentSignal(dataName, field string) string {
	return fmt.Sprintf("%s_%s_extent", dataName, field)
}

func valueSumField(groupings []types.Grouping) string {
	for _, grouping := range groupings {
		for _, op := range grouping.FieldOps {
			if op.Op == "sum" && op.Field != "" {
				return op.Field
			}
		}
	}
	return ""
}
