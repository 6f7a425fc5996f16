package ports

import "insight-specs/internal/types"

type ChartPort interface {
	Name() string
	Capabilities() types.SpecCapabilities
	AxisScales(specContext types.SpecContext) *types.AxisScales
	Layouts(specContext types.SpecContext) ([]types.LayoutPair, error)
}

type ChartCatalogPort interface {
	Resolve(name string) (ChartPort, error)
	Names() []string
}
