package core

import (
	"fmt"

	"insight-specs/internal/types"
)

// InitSpec builds the document skeleton: the raw and primary data sources,
// the root mark group positioned purely by signals, and the signal graph
// deriving plot geometry from the requested size.
func InitSpec(specContext types.SpecContext) (*types.VegaSpec, *types.Mark, types.GlobalSignals) {
	size := specContext.Insight.Size

	signals := types.GlobalSignals{
		MinCellWidth:     &types.Signal{Name: types.SignalMinCellWidth, Value: types.DefaultMinCellWidth},
		MinCellHeight:    &types.Signal{Name: types.SignalMinCellHeight, Value: types.DefaultMinCellHeight},
		PlotOffsetLeft:   zeroSignal(types.SignalPlotOffsetLeft),
		PlotOffsetTop:    zeroSignal(types.SignalPlotOffsetTop),
		PlotOffsetBottom: zeroSignal(types.SignalPlotOffsetBottom),
		PlotOffsetRight:  zeroSignal(types.SignalPlotOffsetRight),
		PlotHeightOut:    &types.Signal{Name: types.SignalPlotHeightOut, Update: types.SignalPlotHeightIn},
		PlotWidthOut:     &types.Signal{Name: types.SignalPlotWidthOut, Update: types.SignalPlotWidthIn},
	}

	root := &types.Mark{
		Type:  types.MarkTypeGroup,
		Style: "cell",
		Encode: &types.Encode{
			Update: map[string]*types.Channel{
				"x":      signalChannel(types.SignalPlotOffsetLeft),
				"y":      signalChannel(types.SignalPlotOffsetTop),
				"height": signalChannel(types.SignalPlotHeightOut),
				"width":  signalChannel(types.SignalPlotWidthOut),
			},
		},
	}

	doc := &types.VegaSpec{
		Schema: types.VegaSchemaURL,
		Data: []*types.Data{
			{Name: types.DataInput, Values: specContext.Data},
			{Name: types.DataSource, Source: types.DataInput, Transform: []types.Transform{}},
		},
		Signals: []*types.Signal{
			signals.MinCellWidth,
			signals.MinCellHeight,
			{Name: types.SignalViewportHeight, Update: fmt.Sprintf("max(%s, %s)", types.SignalMinCellHeight, number(size.Height))},
			{Name: types.SignalViewportWidth, Update: fmt.Sprintf("max(%s, %s)", types.SignalMinCellWidth, number(size.Width))},
			signals.PlotOffsetLeft,
			signals.PlotOffsetTop,
			signals.PlotOffsetBottom,
			signals.PlotOffsetRight,
			{
				Name: types.SignalPlotHeightIn,
				Update: fmt.Sprintf("%s - %s - %s",
					types.SignalViewportHeight, types.SignalPlotOffsetTop, types.SignalPlotOffsetBottom),
			},
			{
				Name: types.SignalPlotWidthIn,
				Update: fmt.Sprintf("%s - %s - %s",
					types.SignalViewportWidth, types.SignalPlotOffsetLeft, types.SignalPlotOffsetRight),
			},
			signals.PlotHeightOut,
			signals.PlotWidthOut,
			{
				Name: types.SignalHeight,
				Update: fmt.Sprintf("%s + %s + %s",
					types.SignalPlotOffsetTop, types.SignalPlotHeightOut, types.SignalPlotOffsetBottom),
			},
			{
				Name: types.SignalWidth,
				Update: fmt.Sprintf("%s + %s + %s",
					types.SignalPlotWidthOut, types.SignalPlotOffsetLeft, types.SignalPlotOffsetRight),
			},
			{Name: types.SignalTextSize, Value: types.DefaultTextSize},
			{Name: types.SignalTextTitleSize, Value: types.DefaultTextTitleSize},
		},
		Marks: []*types.Mark{root},
	}
	return doc, root, signals
}

func zeroSignal(name string) *types.Signal {
	return &types.Signal{Name: name, Update: types.ZeroSignal}
}

func signalChannel(signal string) *types.Channel {
	return types.SingleRule(types.EncodeRule{Signal: signal})
}

func number(value float64) string {
	return fmt.Sprintf("%g", value)
}
