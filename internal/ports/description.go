package ports

import "insight-specs/internal/types"

type DescriptionPort interface {
	Load(path string) (types.Description, error)
}

type SpecOutputPort interface {
	Write(path string, spec *types.VegaSpec) ([]byte, error)
	WriteRaw(path string, document []byte) error
}
