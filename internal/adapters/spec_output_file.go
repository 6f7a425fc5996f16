package adapters

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"insight-specs/internal/ports"
	"insight-specs/internal/types"
)

// SpecOutputFileAdapter writes compiled documents as indented JSON.
type SpecOutputFileAdapter struct{}

func NewSpecOutputFileAdapter() SpecOutputFileAdapter {
	return SpecOutputFileAdapter{}
}

// Write encodes spec and writes it to path, returning the encoded bytes.
func (a SpecOutputFileAdapter) Write(path string, spec *types.VegaSpec) ([]byte, error) {
	data, err := EncodeSpec(spec)
	if err != nil {
		return nil, err
	}
	if err := a.WriteRaw(path, data); err != nil {
		return nil, err
	}
	return data, nil
}

func (a SpecOutputFileAdapter) WriteRaw(path string, document []byte) error {
	if path == "" {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("output path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create output directory").
			WithCause(err)
	}
	if err := os.WriteFile(path, document, 0644); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to write spec").
			WithCause(err)
	}
	return nil
}

// EncodeSpec renders a document the way it is written to disk.
func EncodeSpec(spec *types.VegaSpec) ([]byte, error) {
	if spec == nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("spec is nil")
	}
	data, err := json.MarshalIndent(spec, "", "  ")
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to encode spec").
			WithCause(err)
	}
	return append(data, '\n'), nil
}

var _ ports.SpecOutputPort = SpecOutputFileAdapter{}
