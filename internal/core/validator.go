package core

import (
	"fmt"

	"insight-specs/internal/types"
)

// Validate reports every unbound required role, then every numeric-only
// role bound to a non-quantitative column, each in declaration order.
func Validate(capabilities types.SpecCapabilities, columns types.SpecColumns) []string {
	var errs []string
	for _, role := range capabilities.Roles {
		if role.AllowNone {
			continue
		}
		if columns[role.Role] == nil {
			errs = append(errs, fmt.Sprintf("Field %s is required.", role.Role))
		}
	}
	for _, role := range capabilities.Roles {
		if !role.ExcludeCategoric {
			continue
		}
		if column := columns[role.Role]; column != nil && !column.Quantitative {
			errs = append(errs, fmt.Sprintf("Field %s must be quantitative.", role.Role))
		}
	}
	return errs
}
