package layouts

import (
	"fmt"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"insight-specs/internal/ports"
	"insight-specs/internal/shared"
	"insight-specs/internal/types"
)

type ScatterProps struct {
	XField string
	YField string
	Filter string
}

// Scatter places one point per row on linear x and y scales.
type Scatter struct {
	props  ScatterProps
	build  types.LayoutBuildProps
	prefix string
}

func NewScatter(props any, build types.LayoutBuildProps) (ports.Layout, error) {
	p, ok := props.(ScatterProps)
	if !ok {
		return nil, propsError(KindScatter, props)
	}
	if p.XField == "" || p.YField == "" {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("scatter layout requires x and y fields")
	}
	return &Scatter{props: p, build: build, prefix: fmt.Sprintf("scatter_%d", build.ID)}, nil
}

func (s *Scatter) Build() (types.InnerScope, error) {
	global := s.build.GlobalScope
	parent := s.build.ParentScope
	height := parent.SizeSignals.LayoutHeight
	width := parent.SizeSignals.LayoutWidth

	xScale := &types.Scale{
		Name:   shared.ScopedName(s.prefix, "x"),
		Type:   "linear",
		Domain: types.DataRef{Data: parent.DataName, Field: s.props.XField},
		Range:  []any{0, types.SignalRef{Signal: width}},
		Nice:   true,
		Zero:   shared.Bool(false),
	}
	yScale := &types.Scale{
		Name:   shared.ScopedName(s.prefix, "y"),
		Type:   "linear",
		Domain: types.DataRef{Data: parent.DataName, Field: s.props.YField},
		Range:  []any{types.SignalRef{Signal: height}, 0},
		Nice:   true,
		Zero:   shared.Bool(false),
	}
	global.AddScales(xScale, yScale)

	pointSize := shared.ScopedName(s.prefix, "pointsize")
	global.AddSignals(&types.Signal{
		Name:   pointSize,
		Update: fmt.Sprintf("max(2, min(%s, %s) / 80)", width, height),
	})
	global.SetMarkDataName(parent.DataName)

	x := types.Formula(
		fmt.Sprintf("scale('%s', %s) - %s / 2", xScale.Name, shared.DatumField(s.props.XField), pointSize),
		fmt.Sprintf("__%s_x", s.prefix),
	)
	y := types.Formula(
		fmt.Sprintf("scale('%s', %s) - %s / 2", yScale.Name, shared.DatumField(s.props.YField), pointSize),
		fmt.Sprintf("__%s_y", s.prefix),
	)

	mark := &types.Mark{
		Type: types.MarkTypeRect,
		Name: shared.ScopedName(s.prefix, "marks"),
		From: &types.From{Data: parent.DataName},
		Encode: &types.Encode{
			Update: map[string]*types.Channel{
				"x":       types.SingleRule(types.EncodeRule{Field: x.As}),
				"y":       types.SingleRule(types.EncodeRule{Field: y.As}),
				"width":   types.SingleRule(types.EncodeRule{Signal: pointSize}),
				"height":  types.SingleRule(types.EncodeRule{Signal: pointSize}),
				"fill":    types.SingleRule(types.EncodeRule{Value: types.DefaultColor}),
				"opacity": types.SingleRule(types.EncodeRule{Value: types.DefaultMarkOpacity}),
			},
		},
	}
	global.MarkGroup.Marks = append(global.MarkGroup.Marks, mark)

	return types.InnerScope{
		Prefix:      s.prefix,
		DataName:    parent.DataName,
		SizeSignals: types.SizeSignals{LayoutHeight: pointSize, LayoutWidth: pointSize},
		Offsets: types.Offsets{
			X: shared.DatumField(x.As),
			Y: shared.DatumField(y.As),
			H: pointSize,
			W: pointSize,
		},
		Offset2: &types.Offset2{
			X: types.FormulaOffset(x),
			Y: types.FormulaOffset(y),
			H: types.SignalOffset(pointSize),
			W: types.SignalOffset(pointSize),
		},
		GlobalScales: &types.GlobalScales{
			ShowAxes: true,
			Scales: types.AxisScaleSet{
				X: []*types.Scale{xScale},
				Y: []*types.Scale{yScale},
			},
		},
		EncodingRuleMap: filterRules(s.props.Filter, "height", "width"),
		Mark:            mark,
	}, nil
}

func (s *Scatter) Grouping() []string {
	return nil
}

func (s *Scatter) AggregateSumOp() *types.FieldOp {
	return nil
}
