package app

import (
	"github.com/google/uuid"

	"insight-specs/internal/adapters"
	"insight-specs/internal/charts"
	"insight-specs/internal/core"
	"insight-specs/internal/layouts"
	"insight-specs/internal/ports"
)

type Service struct {
	Descriptions ports.DescriptionPort
	Output       ports.SpecOutputPort
	Cache        ports.CachePort
	Watcher      ports.WatcherPort
	Catalog      ports.ChartCatalogPort
	Compiler     core.SpecCompiler
	NewBuildID   func() string
}

func NewService() Service {
	catalog := charts.NewCatalog()
	builder := core.NewSpecBuilder(layouts.NewRegistry(), adapters.NewColorAdapter(), adapters.NewAxesAdapter())
	return Service{
		Descriptions: adapters.NewDescriptionFileAdapter(),
		Output:       adapters.NewSpecOutputFileAdapter(),
		Cache:        adapters.NewNullSpecCache(),
		Watcher:      adapters.NewDescriptionWatcher(),
		Catalog:      catalog,
		Compiler:     core.NewSpecCompiler(catalog, builder, adapters.NewFacetAdapter()),
		NewBuildID:   uuid.NewString,
	}
}

// WithCache returns a copy of the service storing compiled documents in
// cache.
func (s Service) WithCache(cache ports.CachePort) Service {
	s.Cache = cache
	return s
}
