package layouts

import (
	"fmt"

	"insight-specs/internal/ports"
	"insight-specs/internal/shared"
	"insight-specs/internal/types"
)

// SquareProps configures the unit-square stage. Each row becomes one square
// packed into a grid sized so the fullest group fits its cell.
type SquareProps struct {
	SortField string
	Filter    string
}

type Square struct {
	props  SquareProps
	build  types.LayoutBuildProps
	prefix string
}

func NewSquare(props any, build types.LayoutBuildProps) (ports.Layout, error) {
	p, ok := props.(SquareProps)
	if !ok {
		return nil, propsError(KindSquare, props)
	}
	return &Square{props: p, build: build, prefix: fmt.Sprintf("square_%d", build.ID)}, nil
}

func (s *Square) Build() (types.InnerScope, error) {
	global := s.build.GlobalScope
	parent := s.build.ParentScope
	height := parent.SizeSignals.LayoutHeight
	width := parent.SizeSignals.LayoutWidth

	countsName := shared.ScopedName(s.prefix, "counts")
	dataName := shared.ScopedName(s.prefix, "data")
	extent := shared.ScopedName(s.prefix, "extent")
	maxCount := shared.ScopedName(s.prefix, "maxcount")
	cols := shared.ScopedName(s.prefix, "cols")
	rows := shared.ScopedName(s.prefix, "rows")
	size := shared.ScopedName(s.prefix, "size")
	indexField := fmt.Sprintf("__%s_index", s.prefix)

	var sort *types.Compare
	if s.props.SortField != "" {
		sort = &types.Compare{Field: []string{s.props.SortField}, Order: []string{"ascending"}}
	}
	global.AddData(
		&types.Data{
			Name:   countsName,
			Source: parent.DataName,
			Transform: []types.Transform{
				types.Aggregate(parent.Groupby, []types.FieldOp{types.CountOp()}),
				types.Extent(types.FieldCount, extent),
			},
		},
		&types.Data{
			Name:   dataName,
			Source: parent.DataName,
			Transform: []types.Transform{
				types.RowNumber(parent.Groupby, sort, indexField),
			},
		},
	)
	global.SetMarkDataName(dataName)
	global.AddSignals(
		&types.Signal{Name: maxCount, Update: fmt.Sprintf("max(1, %s[1])", extent)},
		&types.Signal{Name: cols, Update: fmt.Sprintf("max(1, ceil(sqrt(%s * %s / max(1, %s))))", maxCount, width, height)},
		&types.Signal{Name: rows, Update: fmt.Sprintf("ceil(%s / %s)", maxCount, cols)},
		&types.Signal{Name: size, Update: fmt.Sprintf("max(1, min(%s / %s, %s / %s))", width, cols, height, rows)},
	)

	index := fmt.Sprintf("(%s - 1)", shared.DatumField(indexField))
	x := types.Formula(
		fmt.Sprintf("(%s %% %s) * %s", index, cols, size),
		fmt.Sprintf("__%s_x", s.prefix),
	)
	y := types.Formula(
		fmt.Sprintf("%s - (floor(%s / %s) + 1) * %s", height, index, cols, size),
		fmt.Sprintf("__%s_y", s.prefix),
	)

	mark := &types.Mark{
		Type: types.MarkTypeRect,
		Name: shared.ScopedName(s.prefix, "marks"),
		From: &types.From{Data: dataName},
		Encode: &types.Encode{
			Update: map[string]*types.Channel{
				"x":       types.SingleRule(types.EncodeRule{Field: x.As}),
				"y":       types.SingleRule(types.EncodeRule{Field: y.As}),
				"width":   types.SingleRule(types.EncodeRule{Signal: size}),
				"height":  types.SingleRule(types.EncodeRule{Signal: size}),
				"fill":    types.SingleRule(types.EncodeRule{Value: types.DefaultColor}),
				"opacity": types.SingleRule(types.EncodeRule{Value: types.DefaultMarkOpacity}),
			},
		},
	}
	global.MarkGroup.Marks = append(global.MarkGroup.Marks, mark)

	return types.InnerScope{
		Prefix:      s.prefix,
		DataName:    dataName,
		SizeSignals: types.SizeSignals{LayoutHeight: size, LayoutWidth: size},
		Offsets: types.Offsets{
			X: shared.DatumField(x.As),
			Y: shared.DatumField(y.As),
			H: size,
			W: size,
		},
		Offset2: &types.Offset2{
			X: types.FormulaOffset(x),
			Y: types.FormulaOffset(y),
			H: types.SignalOffset(size),
			W: types.SignalOffset(size),
		},
		EncodingRuleMap: filterRules(s.props.Filter, "height", "width"),
		Mark:            mark,
	}, nil
}

func (s *Square) Grouping() []string {
	return nil
}

func (s *Square) AggregateSumOp() *types.FieldOp {
	return nil
}
