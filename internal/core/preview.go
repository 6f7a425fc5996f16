package core

import (
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/aclements/go-moremath/stats"
	"github.com/aclements/go-moremath/vec"

	"insight-specs/internal/types"
)

// AggregatePreview is the result of running aggregate data sources over
// inline rows: the rows of every source and the extent signal values.
type AggregatePreview struct {
	Tables  map[string][]map[string]any
	Extents map[string][2]float64
}

// PreviewAggregates runs the aggregate and extent transforms of data in
// order. Sources named source read rows; every other source must be one of
// the earlier entries of data.
func PreviewAggregates(rows []map[string]any, source string, data []*types.Data) (AggregatePreview, error) {
	preview := AggregatePreview{
		Tables:  map[string][]map[string]any{},
		Extents: map[string][2]float64{},
	}
	for _, entry := range data {
		current, ok := preview.Tables[entry.Source]
		if entry.Source == source {
			current, ok = rows, true
		}
		if !ok {
			return AggregatePreview{}, errbuilder.New().
				WithCode(errbuilder.CodeNotFound).
				WithMsg(fmt.Sprintf("preview of %s: unknown source %s", entry.Name, entry.Source))
		}
		for _, transform := range entry.Transform {
			switch t := transform.(type) {
			case *types.AggregateTransform:
				aggregated, err := aggregateRows(current, t)
				if err != nil {
					return AggregatePreview{}, err
				}
				current = aggregated
			case *types.ExtentTransform:
				values := fieldValues(current, t.Field)
				if len(values) == 0 {
					continue
				}
				low, high := stats.Bounds(values)
				preview.Extents[t.Signal] = [2]float64{low, high}
			default:
				return AggregatePreview{}, errbuilder.New().
					WithCode(errbuilder.CodeInvalidArgument).
					WithMsg(fmt.Sprintf("preview of %s: unsupported transform %s", entry.Name, transform.TransformType()))
			}
		}
		preview.Tables[entry.Name] = current
	}
	return preview, nil
}

func aggregateRows(rows []map[string]any, t *types.AggregateTransform) ([]map[string]any, error) {
	var order []string
	groups := map[string][]map[string]any{}
	for _, row := range rows {
		parts := make([]string, len(t.Groupby))
		for i, field := range t.Groupby {
			parts[i] = fmt.Sprint(row[field])
		}
		key := strings.Join(parts, "\x1f")
		if _, ok := groups[key]; !ok {
			order = append(order, key)
		}
		groups[key] = append(groups[key], row)
	}

	out := make([]map[string]any, 0, len(order))
	for _, key := range order {
		members := groups[key]
		result := map[string]any{}
		for _, field := range t.Groupby {
			result[field] = members[0][field]
		}
		for i, op := range t.Ops {
			var field string
			if i < len(t.Fields) && t.Fields[i] != nil {
				field = *t.Fields[i]
			}
			values := fieldValues(members, field)
			var value float64
			switch op {
			case "count":
				value = float64(len(members))
			case "sum":
				value = vec.Sum(values)
			case "mean":
				value = stats.Mean(values)
			case "min":
				value, _ = stats.Bounds(values)
			case "max":
				_, value = stats.Bounds(values)
			default:
				return nil, errbuilder.New().
					WithCode(errbuilder.CodeInvalidArgument).
					WithMsg(fmt.Sprintf("unsupported aggregate op %s", op))
			}
			result[t.As[i]] = value
		}
		out = append(out, result)
	}
	return out, nil
}

func fieldValues(rows []map[string]any, field string) []float64 {
	if field == "" {
		return nil
	}
	values := make([]float64, 0, len(rows))
	for _, row := range rows {
		if value, ok := toFloat(row[field]); ok {
			values = append(values, value)
		}
	}
	return values
}
