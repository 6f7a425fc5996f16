package layouts

import (
	"fmt"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"insight-specs/internal/ports"
	"insight-specs/internal/shared"
	"insight-specs/internal/types"
)

type BandOrientation string

const (
	BandVertical   BandOrientation = "vertical"
	BandHorizontal BandOrientation = "horizontal"
)

// BandProps configures a band stage. Vertical bands split the width by the
// distinct values of Field; horizontal bands split the height.
type BandProps struct {
	Orientation BandOrientation
	Field       string
	SumField    string
	Filter      string
	Padding     float64
}

type Band struct {
	props  BandProps
	build  types.LayoutBuildProps
	prefix string
}

func NewBand(props any, build types.LayoutBuildProps) (ports.Layout, error) {
	p, ok := props.(BandProps)
	if !ok {
		return nil, propsError(KindBand, props)
	}
	if p.Field == "" {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("band layout requires a groupby field")
	}
	if p.Orientation == "" {
		p.Orientation = BandVertical
	}
	return &Band{props: p, build: build, prefix: fmt.Sprintf("band_%d", build.ID)}, nil
}

func (b *Band) Build() (types.InnerScope, error) {
	global := b.build.GlobalScope
	parent := b.build.ParentScope
	vertical := b.props.Orientation == BandVertical

	scaleName := shared.ScopedName(b.prefix, "scale")
	bandwidth := shared.ScopedName(b.prefix, "bandwidth")
	extent := parent.SizeSignals.LayoutWidth
	if !vertical {
		extent = parent.SizeSignals.LayoutHeight
	}

	scale := &types.Scale{
		Name:    scaleName,
		Type:    "band",
		Domain:  types.DataRef{Data: parent.DataName, Field: b.props.Field, Sort: true},
		Range:   []any{0, types.SignalRef{Signal: extent}},
		Padding: shared.Float(b.props.Padding),
		Round:   true,
	}
	global.AddScales(scale)
	global.AddSignals(&types.Signal{Name: bandwidth, Update: fmt.Sprintf("bandwidth('%s')", scaleName)})

	position := types.Formula(
		fmt.Sprintf("scale('%s', %s)", scaleName, shared.DatumField(b.props.Field)),
		fmt.Sprintf("__%s_position", b.prefix),
	)

	scope := types.InnerScope{
		Prefix:          b.prefix,
		DataName:        parent.DataName,
		Offsets:         parent.Offsets,
		Groupby:         append(append([]string(nil), parent.Groupby...), b.props.Field),
		GlobalScales:    &types.GlobalScales{ShowAxes: true},
		EncodingRuleMap: filterRules(b.props.Filter, "height", "width"),
	}
	if vertical {
		scope.SizeSignals = types.SizeSignals{LayoutHeight: parent.SizeSignals.LayoutHeight, LayoutWidth: bandwidth}
		scope.Offsets.X = shared.DatumField(position.As)
		scope.Offsets.W = bandwidth
		scope.Offset2 = &types.Offset2{
			X: types.FormulaOffset(position),
			Y: types.PassThrough(),
			H: types.PassThrough(),
			W: types.SignalOffset(bandwidth),
		}
		scope.GlobalScales.Scales.X = []*types.Scale{scale}
	} else {
		scope.SizeSignals = types.SizeSignals{LayoutHeight: bandwidth, LayoutWidth: parent.SizeSignals.LayoutWidth}
		scope.Offsets.Y = shared.DatumField(position.As)
		scope.Offsets.H = bandwidth
		scope.Offset2 = &types.Offset2{
			X: types.PassThrough(),
			Y: types.FormulaOffset(position),
			H: types.SignalOffset(bandwidth),
			W: types.PassThrough(),
		}
		scope.GlobalScales.Scales.Y = []*types.Scale{scale}
	}
	return scope, nil
}

func (b *Band) Grouping() []string {
	return []string{b.props.Field}
}

func (b *Band) AggregateSumOp() *types.FieldOp {
	if b.props.SumField == "" {
		return nil
	}
	return &types.FieldOp{Field: b.props.SumField, Op: "sum", As: types.FieldSum}
}
