package types

type ColumnType string

const (
	ColumnTypeString  ColumnType = "string"
	ColumnTypeNumber  ColumnType = "number"
	ColumnTypeInteger ColumnType = "integer"
	ColumnTypeBoolean ColumnType = "boolean"
	ColumnTypeDate    ColumnType = "date"
)

type ColumnStats struct {
	DistinctValueCount int      `yaml:"distinct_value_count" toml:"distinct_value_count" json:"distinctValueCount"`
	Min                *float64 `yaml:"min,omitempty" toml:"min,omitempty" json:"min,omitempty"`
	Max                *float64 `yaml:"max,omitempty" toml:"max,omitempty" json:"max,omitempty"`
	HasNegative        bool     `yaml:"has_negative,omitempty" toml:"has_negative,omitempty" json:"hasNegative,omitempty"`
}

type Column struct {
	Name         string      `yaml:"name" toml:"name" json:"name"`
	Type         ColumnType  `yaml:"type" toml:"type" json:"type"`
	Quantitative bool        `yaml:"quantitative" toml:"quantitative" json:"quantitative"`
	Stats        ColumnStats `yaml:"stats,omitempty" toml:"stats,omitempty" json:"stats"`
}

// InsightColumns names the column bound to each data role. An empty string
// leaves the role unbound.
type InsightColumns struct {
	X      string `yaml:"x,omitempty" toml:"x,omitempty" json:"x,omitempty"`
	Y      string `yaml:"y,omitempty" toml:"y,omitempty" json:"y,omitempty"`
	Z      string `yaml:"z,omitempty" toml:"z,omitempty" json:"z,omitempty"`
	Color  string `yaml:"color,omitempty" toml:"color,omitempty" json:"color,omitempty"`
	Size   string `yaml:"size,omitempty" toml:"size,omitempty" json:"size,omitempty"`
	Facet  string `yaml:"facet,omitempty" toml:"facet,omitempty" json:"facet,omitempty"`
	FacetV string `yaml:"facet_v,omitempty" toml:"facet_v,omitempty" json:"facetV,omitempty"`
	Sort   string `yaml:"sort,omitempty" toml:"sort,omitempty" json:"sort,omitempty"`
	UID    string `yaml:"uid,omitempty" toml:"uid,omitempty" json:"uid,omitempty"`
}

// Role returns the column name bound to role.
func (c InsightColumns) Role(role Role) string {
	switch role {
	case RoleX:
		return c.X
	case RoleY:
		return c.Y
	case RoleZ:
		return c.Z
	case RoleColor:
		return c.Color
	case RoleSize:
		return c.Size
	case RoleFacet:
		return c.Facet
	case RoleFacetV:
		return c.FacetV
	case RoleSort:
		return c.Sort
	case RoleUID:
		return c.UID
	default:
		return ""
	}
}

type Size struct {
	Width  float64 `yaml:"width" toml:"width" json:"width"`
	Height float64 `yaml:"height" toml:"height" json:"height"`
}

type FacetStyle string

const (
	FacetStyleWrap  FacetStyle = "wrap"
	FacetStyleCross FacetStyle = "cross"
)

type TotalStyle string

const (
	TotalStyleCountSquare TotalStyle = "count-square"
	TotalStyleSumStrip    TotalStyle = "sum-strip"
)

type Insight struct {
	Chart        string         `yaml:"chart" toml:"chart" json:"chart"`
	Columns      InsightColumns `yaml:"columns" toml:"columns" json:"columns"`
	Size         Size           `yaml:"size" toml:"size" json:"size"`
	Scheme       string         `yaml:"scheme,omitempty" toml:"scheme,omitempty" json:"scheme,omitempty"`
	FacetStyle   FacetStyle     `yaml:"facet_style,omitempty" toml:"facet_style,omitempty" json:"facetStyle,omitempty"`
	TotalStyle   TotalStyle     `yaml:"total_style,omitempty" toml:"total_style,omitempty" json:"totalStyle,omitempty"`
	Filter       string         `yaml:"filter,omitempty" toml:"filter,omitempty" json:"filter,omitempty"`
	ColorBins    int            `yaml:"color_bins,omitempty" toml:"color_bins,omitempty" json:"colorBins,omitempty"`
	DirectColor  bool           `yaml:"direct_color,omitempty" toml:"direct_color,omitempty" json:"directColor,omitempty"`
	ColorReverse bool           `yaml:"color_reverse,omitempty" toml:"color_reverse,omitempty" json:"colorReverse,omitempty"`
}

type ViewOptions struct {
	MaxLegends   int     `yaml:"max_legends,omitempty" toml:"max_legends,omitempty" json:"maxLegends,omitempty"`
	FacetPadding float64 `yaml:"facet_padding,omitempty" toml:"facet_padding,omitempty" json:"facetPadding,omitempty"`
	MarkOpacity  float64 `yaml:"mark_opacity,omitempty" toml:"mark_opacity,omitempty" json:"markOpacity,omitempty"`
	DefaultColor string  `yaml:"default_color,omitempty" toml:"default_color,omitempty" json:"defaultColor,omitempty"`
}

// Description is the on-disk form of a single insight together with the
// columns of its data set.
type Description struct {
	APIVersion string           `yaml:"api_version" toml:"api_version"`
	Name       string           `yaml:"name" toml:"name"`
	Insight    Insight          `yaml:"insight" toml:"insight"`
	Columns    []Column         `yaml:"columns" toml:"columns"`
	View       ViewOptions      `yaml:"view,omitempty" toml:"view,omitempty"`
	Data       []map[string]any `yaml:"data,omitempty" toml:"data,omitempty"`
}

// SpecColumns maps each bound role to its resolved column.
type SpecColumns map[Role]*Column

// SpecContext is the validated input of one compile. Data rows, when
// present, are embedded as the values of the raw input source.
type SpecContext struct {
	Insight     Insight          `json:"insight"`
	Columns     SpecColumns      `json:"columns"`
	ViewOptions ViewOptions      `json:"viewOptions"`
	Data        []map[string]any `json:"data,omitempty"`
}

// NewSpecContext resolves the insight's role bindings against the declared
// columns. Roles bound to unknown column names stay unbound.
func NewSpecContext(desc Description) SpecContext {
	byName := make(map[string]*Column, len(desc.Columns))
	for i := range desc.Columns {
		byName[desc.Columns[i].Name] = &desc.Columns[i]
	}
	columns := SpecColumns{}
	for _, role := range AllRoles {
		name := desc.Insight.Columns.Role(role)
		if name == "" {
			continue
		}
		if column, ok := byName[name]; ok {
			columns[role] = column
		}
	}
	return SpecContext{
		Insight:     desc.Insight,
		Columns:     columns,
		ViewOptions: desc.View,
		Data:        desc.Data,
	}
}
