package app

import (
	"context"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"insight-specs/internal/types"
)

// loadDescription reads and checks the description at path.
func (s Service) loadDescription(ctx context.Context, path string) (types.Description, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return types.Description{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("description path is required")
	}
	desc, err := s.Descriptions.Load(path)
	if err != nil {
		return types.Description{}, err
	}
	if err := s.Compiler.ValidateDescription(ctx, desc); err != nil {
		return types.Description{}, err
	}
	return desc, nil
}
