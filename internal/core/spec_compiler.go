package core

import (
	"context"
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"
	"golang.org/x/mod/semver"

	"insight-specs/internal/ports"
	"insight-specs/internal/types"
)

// SupportedAPIVersion is the major description format this compiler reads.
const SupportedAPIVersion = "v1"

var validFacetStyles = map[types.FacetStyle]struct{}{
	"":                    {},
	types.FacetStyleWrap:  {},
	types.FacetStyleCross: {},
}

var validTotalStyles = map[types.TotalStyle]struct{}{
	"":                          {},
	types.TotalStyleCountSquare: {},
	types.TotalStyleSumStrip:    {},
}

var validColumnTypes = map[types.ColumnType]struct{}{
	types.ColumnTypeString:  {},
	types.ColumnTypeNumber:  {},
	types.ColumnTypeInteger: {},
	types.ColumnTypeBoolean: {},
	types.ColumnTypeDate:    {},
}

type CompileOptions struct {
	GroupedAggregation bool
}

type SpecCompiler struct {
	catalog ports.ChartCatalogPort
	builder SpecBuilder
	facet   ports.FacetPort
}

func NewSpecCompiler(catalog ports.ChartCatalogPort, builder SpecBuilder, facet ports.FacetPort) SpecCompiler {
	return SpecCompiler{catalog: catalog, builder: builder, facet: facet}
}

// Compile resolves the insight's chart recipe and builds its document.
// Validation and stage failures are reported in the result; an unknown
// chart or a composer failure is returned as an error.
func (c SpecCompiler) Compile(ctx context.Context, specContext types.SpecContext, options CompileOptions) (types.SpecResult, error) {
	chart, err := c.catalog.Resolve(specContext.Insight.Chart)
	if err != nil {
		return types.SpecResult{}, err
	}
	capabilities := chart.Capabilities()
	if errs := Validate(capabilities, specContext.Columns); len(errs) > 0 {
		log.Ctx(ctx).Debug().Str("chart", chart.Name()).Strs("errors", errs).Msg("spec invalid")
		return types.SpecResult{Errors: errs, Capabilities: capabilities}, nil
	}

	axisScales := chart.AxisScales(specContext)
	pairs, err := chart.Layouts(specContext)
	if err != nil {
		return types.SpecResult{}, err
	}
	props := types.SpecBuilderProps{
		SpecContext:        specContext,
		Capabilities:       capabilities,
		AxisScales:         axisScales,
		Layouts:            pairs,
		GroupedAggregation: options.GroupedAggregation,
	}
	if specContext.Columns[types.RoleFacet] != nil {
		facetLayout, err := c.facet.Layout(specContext, axisScales)
		if err != nil {
			return types.SpecResult{}, err
		}
		props.FacetLayout = facetLayout
	}
	return c.builder.Build(ctx, props)
}

// ValidateDescription checks a loaded description before role binding.
func (c SpecCompiler) ValidateDescription(ctx context.Context, desc types.Description) error {
	if strings.TrimSpace(desc.APIVersion) == "" {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("api_version must be set")
	}
	if strings.TrimSpace(desc.Insight.Chart) == "" {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("insight.chart must be set")
	}
	if !semver.IsValid(desc.APIVersion) || semver.Major(desc.APIVersion) != SupportedAPIVersion {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("unsupported api_version %s (want %s.x)", desc.APIVersion, SupportedAPIVersion))
	}
	if _, err := c.catalog.Resolve(desc.Insight.Chart); err != nil {
		return err
	}
	if desc.Insight.Size.Width <= 0 || desc.Insight.Size.Height <= 0 {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("insight.size width and height must be positive")
	}
	if _, ok := validFacetStyles[desc.Insight.FacetStyle]; !ok {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("invalid facet_style %s", desc.Insight.FacetStyle))
	}
	if _, ok := validTotalStyles[desc.Insight.TotalStyle]; !ok {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("invalid total_style %s", desc.Insight.TotalStyle))
	}
	if err := validateColumns(desc.Columns); err != nil {
		return err
	}
	for _, role := range types.AllRoles {
		name := desc.Insight.Columns.Role(role)
		if name == "" || hasColumn(desc.Columns, name) {
			continue
		}
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("insight.columns.%s refers to unknown column %s", role, name))
	}
	if err := validateColorBins(desc); err != nil {
		return err
	}
	log.Ctx(ctx).Debug().Str("insight", desc.Name).Msg("description validated")
	return nil
}

func validateColumns(columns []types.Column) error {
	seen := make(map[string]struct{}, len(columns))
	for _, column := range columns {
		name := strings.TrimSpace(column.Name)
		if name == "" {
			return errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("columns.name must not be empty")
		}
		if _, ok := seen[name]; ok {
			return errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("duplicate column %s", name))
		}
		seen[name] = struct{}{}
		if _, ok := validColumnTypes[column.Type]; !ok {
			return errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("column %s has invalid type %s", name, column.Type))
		}
	}
	return nil
}

// validateColorBins accepts a bucket count only for a quantitative color
// column drawn through a color scale.
func validateColorBins(desc types.Description) error {
	bins := desc.Insight.ColorBins
	if bins == 0 {
		return nil
	}
	if bins < 0 {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("insight.color_bins must not be negative, got %d", bins))
	}
	name := desc.Insight.Columns.Role(types.RoleColor)
	for _, column := range desc.Columns {
		if column.Name == name && column.Quantitative && !desc.Insight.DirectColor {
			return nil
		}
	}
	return errbuilder.New().
		WithCode(errbuilder.CodeInvalidArgument).
		WithMsg("insight.color_bins requires a quantitative color column")
}

func hasColumn(columns []types.Column, name string) bool {
	for _, column := range columns {
		if column.Name == name {
			return true
		}
	}
	return false
}
