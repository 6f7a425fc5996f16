package charts

import (
	"fmt"
	"sort"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"insight-specs/internal/ports"
	"insight-specs/internal/shared"
)

type Catalog struct {
	charts map[string]ports.ChartPort
}

// NewCatalog returns the catalog of built-in chart recipes.
func NewCatalog() Catalog {
	catalog := Catalog{charts: map[string]ports.ChartPort{}}
	for _, chart := range []ports.ChartPort{
		NewBarChart(BarChartVertical),
		NewBarChart(BarChartHorizontal),
		NewScatterPlot(),
	} {
		catalog.charts[chart.Name()] = chart
	}
	return catalog
}

func (c Catalog) Resolve(name string) (ports.ChartPort, error) {
	if chart, ok := c.charts[name]; ok {
		return chart, nil
	}
	msg := fmt.Sprintf("unknown chart %q", name)
	if match, ok := shared.ClosestMatch(name, c.Names()); ok {
		msg = fmt.Sprintf("%s (did you mean %q?)", msg, match)
	}
	return nil, errbuilder.New().
		WithCode(errbuilder.CodeNotFound).
		WithMsg(msg)
}

func (c Catalog) Names() []string {
	names := make([]string, 0, len(c.charts))
	for name := range c.charts {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
