package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"insight-specs/internal/charts"
	"insight-specs/internal/types"
)

func newChartsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "charts",
		Short: "List the available charts and the roles they accept",
		RunE: func(cmd *cobra.Command, _ []string) error {
			catalog := charts.NewCatalog()
			for _, name := range catalog.Names() {
				chart, err := catalog.Resolve(name)
				if err != nil {
					return err
				}
				fmt.Printf("%s: %s\n", name, describeRoles(chart.Capabilities()))
			}
			return nil
		},
	}
}

func describeRoles(capabilities types.SpecCapabilities) string {
	parts := make([]string, 0, len(capabilities.Roles))
	for _, role := range capabilities.Roles {
		var flags []string
		if !role.AllowNone {
			flags = append(flags, "required")
		}
		if role.ExcludeCategoric {
			flags = append(flags, "numeric")
		}
		if len(flags) == 0 {
			parts = append(parts, string(role.Role))
			continue
		}
		parts = append(parts, fmt.Sprintf("%s (%s)", role.Role, strings.Join(flags, ", ")))
	}
	return strings.Join(parts, ", ")
}
