package core

import (
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"insight-specs/internal/charts"
	"insight-specs/internal/layouts"
	"insight-specs/internal/types"
)

type stubFacet struct {
	calls int
}

func (f *stubFacet) Layout(specContext types.SpecContext, axisScales *types.AxisScales) (*types.FacetLayout, error) {
	f.calls++
	return &types.FacetLayout{
		Layout: types.LayoutPair{
			Kind:  layouts.KindCell,
			Props: layouts.CellProps{Fields: []string{specContext.Columns[types.RoleFacet].Name}},
		},
		Style: types.FacetStyleWrap,
		Signals: []*types.Signal{
			{Name: types.SignalFacetPaddingTop, Value: types.DefaultFacetPadding},
			{Name: types.SignalFacetPaddingBottom, Value: types.DefaultFacetPadding},
			{Name: types.SignalFacetPaddingLeft, Value: types.DefaultFacetPadding},
		},
	}, nil
}

func newTestCompiler(facet *stubFacet) SpecCompiler {
	builder := NewSpecBuilder(layouts.NewRegistry(), stubColor{}, &recordingAxes{})
	return NewSpecCompiler(charts.NewCatalog(), builder, facet)
}

func baseDescription() types.Description {
	return types.Description{
		APIVersion: "v1.2.0",
		Name:       "sales",
		Insight: types.Insight{
			Chart:   charts.BarChartVertical,
			Columns: types.InsightColumns{X: "Region", Size: "Sales"},
			Size:    types.Size{Width: 400, Height: 300},
		},
		Columns: []types.Column{
			{Name: "Region", Type: types.ColumnTypeString},
			{Name: "Sales", Type: types.ColumnTypeNumber, Quantitative: true},
		},
	}
}

func TestSpecCompilerValidateDescriptionCases(t *testing.T) {
	compiler := newTestCompiler(&stubFacet{})

	tests := []struct {
		name     string
		mutate   func(*types.Description)
		wantErr  bool
		wantCode errbuilder.ErrCode
	}{
		{
			name:   "valid",
			mutate: func(*types.Description) {},
		},
		{
			name:     "unsupported major version",
			mutate:   func(d *types.Description) { d.APIVersion = "v2" },
			wantErr:  true,
			wantCode: errbuilder.CodeInvalidArgument,
		},
		{
			name:     "malformed version",
			mutate:   func(d *types.Description) { d.APIVersion = "one" },
			wantErr:  true,
			wantCode: errbuilder.CodeInvalidArgument,
		},
		{
			name:     "unknown chart",
			mutate:   func(d *types.Description) { d.Insight.Chart = "barchart" },
			wantErr:  true,
			wantCode: errbuilder.CodeNotFound,
		},
		{
			name:     "zero size",
			mutate:   func(d *types.Description) { d.Insight.Size.Height = 0 },
			wantErr:  true,
			wantCode: errbuilder.CodeInvalidArgument,
		},
		{
			name:     "bad facet style",
			mutate:   func(d *types.Description) { d.Insight.FacetStyle = "grid" },
			wantErr:  true,
			wantCode: errbuilder.CodeInvalidArgument,
		},
		{
			name:     "bad total style",
			mutate:   func(d *types.Description) { d.Insight.TotalStyle = "pie" },
			wantErr:  true,
			wantCode: errbuilder.CodeInvalidArgument,
		},
		{
			name: "duplicate column",
			mutate: func(d *types.Description) {
				d.Columns = append(d.Columns, types.Column{Name: "Region", Type: types.ColumnTypeString})
			},
			wantErr:  true,
			wantCode: errbuilder.CodeInvalidArgument,
		},
		{
			name:     "invalid column type",
			mutate:   func(d *types.Description) { d.Columns[0].Type = "blob" },
			wantErr:  true,
			wantCode: errbuilder.CodeInvalidArgument,
		},
		{
			name:     "role bound to unknown column",
			mutate:   func(d *types.Description) { d.Insight.Columns.Color = "Segment" },
			wantErr:  true,
			wantCode: errbuilder.CodeInvalidArgument,
		},
		{
			name:     "missing api version",
			mutate:   func(d *types.Description) { d.APIVersion = "" },
			wantErr:  true,
			wantCode: errbuilder.CodeInvalidArgument,
		},
		{
			name:     "missing chart",
			mutate:   func(d *types.Description) { d.Insight.Chart = "  " },
			wantErr:  true,
			wantCode: errbuilder.CodeInvalidArgument,
		},
		{
			name: "color bins on quantitative color",
			mutate: func(d *types.Description) {
				d.Insight.Columns.Color = "Sales"
				d.Insight.ColorBins = 5
			},
		},
		{
			name:     "color bins without color column",
			mutate:   func(d *types.Description) { d.Insight.ColorBins = 5 },
			wantErr:  true,
			wantCode: errbuilder.CodeInvalidArgument,
		},
		{
			name: "color bins on categorical color",
			mutate: func(d *types.Description) {
				d.Insight.Columns.Color = "Region"
				d.Insight.ColorBins = 5
			},
			wantErr:  true,
			wantCode: errbuilder.CodeInvalidArgument,
		},
		{
			name: "negative color bins",
			mutate: func(d *types.Description) {
				d.Insight.Columns.Color = "Sales"
				d.Insight.ColorBins = -1
			},
			wantErr:  true,
			wantCode: errbuilder.CodeInvalidArgument,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			desc := baseDescription()
			tt.mutate(&desc)
			err := compiler.ValidateDescription(t.Context(), desc)
			if !tt.wantErr {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.wantCode, errbuilder.CodeOf(err))
		})
	}
}

func TestSpecCompilerCompile(t *testing.T) {
	facet := &stubFacet{}
	compiler := newTestCompiler(facet)

	result, err := compiler.Compile(t.Context(), types.NewSpecContext(baseDescription()), CompileOptions{})
	require.NoError(t, err)
	require.True(t, result.OK())
	assert.Equal(t, 0, facet.calls)
	require.NoError(t, CheckDocument(t.Context(), result.VegaSpec))
}

func TestSpecCompilerUnknownChart(t *testing.T) {
	compiler := newTestCompiler(&stubFacet{})
	desc := baseDescription()
	desc.Insight.Chart = "barchartX"

	_, err := compiler.Compile(t.Context(), types.NewSpecContext(desc), CompileOptions{})
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeNotFound, errbuilder.CodeOf(err))
}

func TestSpecCompilerReportsValidationErrors(t *testing.T) {
	compiler := newTestCompiler(&stubFacet{})
	desc := baseDescription()
	desc.Insight.Chart = charts.ScatterPlotName
	desc.Insight.Columns = types.InsightColumns{X: "Region"}

	result, err := compiler.Compile(t.Context(), types.NewSpecContext(desc), CompileOptions{})
	require.NoError(t, err)
	assert.Equal(t, []string{"Field y is required.", "Field x must be quantitative."}, result.Errors)
	assert.Nil(t, result.VegaSpec)
}

func TestSpecCompilerFaceted(t *testing.T) {
	facet := &stubFacet{}
	compiler := newTestCompiler(facet)
	desc := baseDescription()
	desc.Columns = append(desc.Columns, types.Column{Name: "Year", Type: types.ColumnTypeInteger})
	desc.Insight.Columns.Facet = "Year"

	result, err := compiler.Compile(t.Context(), types.NewSpecContext(desc), CompileOptions{})
	require.NoError(t, err)
	require.True(t, result.OK())
	assert.Equal(t, 1, facet.calls)
	require.NoError(t, CheckDocument(t.Context(), result.VegaSpec))
}
