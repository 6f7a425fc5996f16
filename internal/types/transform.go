package types

// Transform is one step of a data source's transform pipeline.
type Transform interface {
	TransformType() string
}

type FormulaTransform struct {
	Type string `json:"type"`
	Expr string `json:"expr"`
	As   string `json:"as"`
}

func Formula(expr, as string) *FormulaTransform {
	return &FormulaTransform{Type: "formula", Expr: expr, As: as}
}

func (t *FormulaTransform) TransformType() string { return t.Type }

type FilterTransform struct {
	Type string `json:"type"`
	Expr string `json:"expr"`
}

func Filter(expr string) *FilterTransform {
	return &FilterTransform{Type: "filter", Expr: expr}
}

func (t *FilterTransform) TransformType() string { return t.Type }

// AggregateTransform fields use nil for operations without an input field
// (count).
type AggregateTransform struct {
	Type    string    `json:"type"`
	Groupby []string  `json:"groupby"`
	Fields  []*string `json:"fields,omitempty"`
	Ops     []string  `json:"ops,omitempty"`
	As      []string  `json:"as,omitempty"`
}

// Aggregate builds an aggregate transform applying ops in order.
func Aggregate(groupby []string, ops []FieldOp) *AggregateTransform {
	t := &AggregateTransform{
		Type:    "aggregate",
		Groupby: append([]string(nil), groupby...),
	}
	for _, op := range ops {
		if op.Field == "" {
			t.Fields = append(t.Fields, nil)
		} else {
			field := op.Field
			t.Fields = append(t.Fields, &field)
		}
		t.Ops = append(t.Ops, op.Op)
		t.As = append(t.As, op.As)
	}
	return t
}

func (t *AggregateTransform) TransformType() string { return t.Type }

type ExtentTransform struct {
	Type   string `json:"type"`
	Field  string `json:"field"`
	Signal string `json:"signal"`
}

func Extent(field, signal string) *ExtentTransform {
	return &ExtentTransform{Type: "extent", Field: field, Signal: signal}
}

func (t *ExtentTransform) TransformType() string { return t.Type }

type WindowTransform struct {
	Type    string    `json:"type"`
	Groupby []string  `json:"groupby,omitempty"`
	Sort    *Compare  `json:"sort,omitempty"`
	Ops     []string  `json:"ops"`
	Fields  []*string `json:"fields,omitempty"`
	As      []string  `json:"as"`
}

type Compare struct {
	Field []string `json:"field"`
	Order []string `json:"order,omitempty"`
}

// RowNumber numbers rows within each groupby partition starting at 1.
func RowNumber(groupby []string, sort *Compare, as string) *WindowTransform {
	return &WindowTransform{
		Type:    "window",
		Groupby: append([]string(nil), groupby...),
		Sort:    sort,
		Ops:     []string{"row_number"},
		As:      []string{as},
	}
}

func (t *WindowTransform) TransformType() string { return t.Type }

type LookupTransform struct {
	Type    string   `json:"type"`
	From    string   `json:"from"`
	Key     string   `json:"key"`
	Fields  []string `json:"fields"`
	Values  []string `json:"values,omitempty"`
	As      []string `json:"as,omitempty"`
	Default any      `json:"default,omitempty"`
}

func (t *LookupTransform) TransformType() string { return t.Type }
