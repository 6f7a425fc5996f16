package adapters

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/ZanzyTHEbar/errbuilder-go"
	"gopkg.in/yaml.v3"

	"insight-specs/internal/ports"
	"insight-specs/internal/types"
)

// DescriptionFileAdapter reads insight descriptions from YAML or TOML files,
// chosen by extension.
type DescriptionFileAdapter struct{}

func NewDescriptionFileAdapter() DescriptionFileAdapter {
	return DescriptionFileAdapter{}
}

func (a DescriptionFileAdapter) Load(path string) (types.Description, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.Description{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("description file not found").
			WithCause(err)
	}
	var desc types.Description
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &desc); err != nil {
			return types.Description{}, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("failed to parse description yaml").
				WithCause(err)
		}
	case ".toml":
		if _, err := toml.Decode(string(data), &desc); err != nil {
			return types.Description{}, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("failed to parse description toml").
				WithCause(err)
		}
	default:
		return types.Description{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("unsupported description format %q", ext))
	}
	return desc, nil
}

var _ ports.DescriptionPort = DescriptionFileAdapter{}
