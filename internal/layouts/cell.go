package layouts

import (
	"fmt"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"insight-specs/internal/ports"
	"insight-specs/internal/shared"
	"insight-specs/internal/types"
)

// CellProps configures the facet cell stage. Wrap style flows the distinct
// values of Fields into a near-square grid; cross style uses Fields[0] for
// columns and Fields[1] for rows.
type CellProps struct {
	Fields []string
	Style  types.FacetStyle
}

type Cell struct {
	props  CellProps
	build  types.LayoutBuildProps
	prefix string
}

func NewCell(props any, build types.LayoutBuildProps) (ports.Layout, error) {
	p, ok := props.(CellProps)
	if !ok {
		return nil, propsError(KindCell, props)
	}
	if len(p.Fields) == 0 || len(p.Fields) > 2 {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("cell layout requires one or two facet fields, got %d", len(p.Fields)))
	}
	if p.Style == types.FacetStyleCross && len(p.Fields) != 2 {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("cross facet style requires two facet fields")
	}
	if p.Style == "" {
		p.Style = types.FacetStyleWrap
	}
	return &Cell{props: p, build: build, prefix: fmt.Sprintf("cell_%d", build.ID)}, nil
}

func (c *Cell) Build() (types.InnerScope, error) {
	global := c.build.GlobalScope
	parent := c.build.ParentScope

	dataName := shared.ScopedName(c.prefix, "data")
	cols := shared.ScopedName(c.prefix, "cols")
	rows := shared.ScopedName(c.prefix, "rows")
	cellWidth := shared.ScopedName(c.prefix, "width")
	cellHeight := shared.ScopedName(c.prefix, "height")
	colField := fmt.Sprintf("__%s_col", c.prefix)
	rowField := fmt.Sprintf("__%s_row", c.prefix)

	var lookups []types.Transform
	if c.props.Style == types.FacetStyleCross {
		colExtent := shared.ScopedName(c.prefix, "colextent")
		rowExtent := shared.ScopedName(c.prefix, "rowextent")
		colData, colIndex := c.indexData("colindex", parent.DataName, c.props.Fields[0], colExtent)
		rowData, rowIndex := c.indexData("rowindex", parent.DataName, c.props.Fields[1], rowExtent)
		global.AddData(colData, rowData)
		global.AddSignals(
			&types.Signal{Name: cols, Update: fmt.Sprintf("max(1, %s[1])", colExtent)},
			&types.Signal{Name: rows, Update: fmt.Sprintf("max(1, %s[1])", rowExtent)},
		)
		lookups = []types.Transform{
			lookupIndex(colData.Name, c.props.Fields[0], colIndex, colField),
			lookupIndex(rowData.Name, c.props.Fields[1], rowIndex, rowField),
			types.Formula(fmt.Sprintf("%s - 1", shared.DatumField(colField)), colField),
			types.Formula(fmt.Sprintf("%s - 1", shared.DatumField(rowField)), rowField),
		}
	} else {
		key := fmt.Sprintf("__%s_key", c.prefix)
		indexField := fmt.Sprintf("__%s_index", c.prefix)
		extent := shared.ScopedName(c.prefix, "extent")
		cellsData := &types.Data{
			Name:   shared.ScopedName(c.prefix, "cells"),
			Source: parent.DataName,
			Transform: []types.Transform{
				types.Aggregate(c.props.Fields, []types.FieldOp{types.CountOp()}),
				types.Formula(c.keyExpr(), key),
				types.RowNumber(nil, &types.Compare{Field: c.props.Fields}, indexField),
				types.Extent(indexField, extent),
			},
		}
		global.AddData(cellsData)
		global.AddSignals(
			&types.Signal{Name: cols, Update: fmt.Sprintf("max(1, ceil(sqrt(max(1, %s[1]))))", extent)},
			&types.Signal{Name: rows, Update: fmt.Sprintf("max(1, ceil(%s[1] / %s))", extent, cols)},
		)
		lookups = []types.Transform{
			types.Formula(c.keyExpr(), key),
			&types.LookupTransform{
				Type:   "lookup",
				From:   cellsData.Name,
				Key:    key,
				Fields: []string{key},
				Values: []string{indexField},
				As:     []string{indexField},
			},
			types.Formula(fmt.Sprintf("(%s - 1) %% %s", shared.DatumField(indexField), cols), colField),
			types.Formula(fmt.Sprintf("floor((%s - 1) / %s)", shared.DatumField(indexField), cols), rowField),
		}
	}

	global.AddData(&types.Data{Name: dataName, Source: parent.DataName, Transform: lookups})
	global.AddSignals(
		&types.Signal{
			Name: cellWidth,
			Update: fmt.Sprintf("max(%s, %s / %s - %s)",
				types.SignalMinCellWidth, parent.SizeSignals.LayoutWidth, cols, types.SignalFacetPaddingLeft),
		},
		&types.Signal{
			Name: cellHeight,
			Update: fmt.Sprintf("max(%s, %s / %s - %s - %s)",
				types.SignalMinCellHeight, parent.SizeSignals.LayoutHeight, rows,
				types.SignalFacetPaddingTop, types.SignalFacetPaddingBottom),
		},
	)
	if out := global.Signals.PlotWidthOut; out != nil {
		out.Update = fmt.Sprintf("%s * (%s + %s)", cols, cellWidth, types.SignalFacetPaddingLeft)
	}
	if out := global.Signals.PlotHeightOut; out != nil {
		out.Update = fmt.Sprintf("%s * (%s + %s + %s)", rows, cellHeight, types.SignalFacetPaddingTop, types.SignalFacetPaddingBottom)
	}

	x := types.Formula(
		fmt.Sprintf("%s * (%s + %s) + %s", shared.DatumField(colField), cellWidth, types.SignalFacetPaddingLeft, types.SignalFacetPaddingLeft),
		fmt.Sprintf("__%s_x", c.prefix),
	)
	y := types.Formula(
		fmt.Sprintf("%s * (%s + %s + %s) + %s", shared.DatumField(rowField), cellHeight,
			types.SignalFacetPaddingTop, types.SignalFacetPaddingBottom, types.SignalFacetPaddingTop),
		fmt.Sprintf("__%s_y", c.prefix),
	)

	return types.InnerScope{
		Prefix:      c.prefix,
		DataName:    dataName,
		SizeSignals: types.SizeSignals{LayoutHeight: cellHeight, LayoutWidth: cellWidth},
		Offsets: types.Offsets{
			X: shared.DatumField(x.As),
			Y: shared.DatumField(y.As),
			H: cellHeight,
			W: cellWidth,
		},
		Offset2: &types.Offset2{
			X: types.FormulaOffset(x),
			Y: types.FormulaOffset(y),
			H: types.SignalOffset(cellHeight),
			W: types.SignalOffset(cellWidth),
		},
		Groupby: append([]string(nil), c.props.Fields...),
	}, nil
}

func (c *Cell) Grouping() []string {
	return append([]string(nil), c.props.Fields...)
}

func (c *Cell) AggregateSumOp() *types.FieldOp {
	return nil
}

// indexData numbers the distinct values of field from 1 and records the
// highest number in the extent signal.
func (c *Cell) indexData(name, source, field, extent string) (*types.Data, string) {
	indexField := fmt.Sprintf("__%s_%s", c.prefix, name)
	return &types.Data{
		Name:   shared.ScopedName(c.prefix, name),
		Source: source,
		Transform: []types.Transform{
			types.Aggregate([]string{field}, []types.FieldOp{types.CountOp()}),
			types.RowNumber(nil, &types.Compare{Field: []string{field}}, indexField),
			types.Extent(indexField, extent),
		},
	}, indexField
}

func lookupIndex(from, field, indexField, as string) *types.LookupTransform {
	return &types.LookupTransform{
		Type:   "lookup",
		From:   from,
		Key:    field,
		Fields: []string{field},
		Values: []string{indexField},
		As:     []string{as},
	}
}

func (c *Cell) keyExpr() string {
	if len(c.props.Fields) == 1 {
		return fmt.Sprintf("'' + %s", shared.DatumField(c.props.Fields[0]))
	}
	return fmt.Sprintf("%s + '|' + %s", shared.DatumField(c.props.Fields[0]), shared.DatumField(c.props.Fields[1]))
}
