package core

import (
	"insight-specs/internal/shared"
	"insight-specs/internal/types"
)

var offsetFields = map[types.OffsetAxis]string{
	types.AxisX: types.FieldOffsetX,
	types.AxisY: types.FieldOffsetY,
	types.AxisH: types.FieldOffsetH,
	types.AxisW: types.FieldOffsetW,
}

// materializedAxes are the axes written into the offset data source.
var materializedAxes = []types.OffsetAxis{types.AxisX, types.AxisY}

// AccumulateOffsets collects, per axis and in stage order, the terms summed
// into each offset field. A formula slot contributes a reference to its
// output field and its transform; a signal slot contributes the signal
// unless it is the zero signal. Axes without terms are absent.
func AccumulateOffsets(offsets []types.Offset2) (types.OutFieldMap, []*types.FormulaTransform) {
	out := types.OutFieldMap{}
	var formulas []*types.FormulaTransform
	for _, axis := range types.OffsetAxes {
		for _, offset := range offsets {
			slot := offset.Slot(axis)
			var term string
			switch slot.Kind {
			case types.OffsetFormula:
				if slot.Formula == nil {
					continue
				}
				formulas = append(formulas, slot.Formula)
				term = shared.DatumField(slot.Formula.As)
			case types.OffsetSignal:
				if slot.Signal == "" || slot.Signal == types.ZeroSignal {
					continue
				}
				term = slot.Signal
			default:
				continue
			}
			field, ok := out[axis]
			if !ok {
				field = &types.OutField{Field: offsetFields[axis]}
				out[axis] = field
			}
			field.Terms = append(field.Terms, term)
		}
	}
	return out, formulas
}

// MaterializeOffsets writes the x and y offset sums into a data source on
// the root group reading from the terminal mark's source, and returns the
// axes it materialized.
func MaterializeOffsets(global *types.GlobalScope, offsets []types.Offset2) types.OutFieldMap {
	out, formulas := AccumulateOffsets(offsets)
	materialized := types.OutFieldMap{}
	var sums []types.Transform
	for _, axis := range materializedAxes {
		field, ok := out[axis]
		if !ok {
			continue
		}
		materialized[axis] = field
		sums = append(sums, types.Formula(shared.SumExpr(field.Terms), field.Field))
	}
	if len(sums) == 0 {
		return materialized
	}

	transforms := make([]types.Transform, 0, len(formulas)+len(sums))
	for _, formula := range formulas {
		transforms = append(transforms, formula)
	}
	transforms = append(transforms, sums...)
	global.MarkGroup.Data = append(global.MarkGroup.Data, &types.Data{
		Name:      types.DataOffsets,
		Source:    global.MarkDataSource(),
		Transform: transforms,
	})
	return materialized
}
