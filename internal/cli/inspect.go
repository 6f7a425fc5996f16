package cli

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"insight-specs/internal/app"
)

type inspectOptions struct {
	GroupedAggregation bool
}

func newInspectCommand() *cobra.Command {
	opts := inspectOptions{}
	cmd := &cobra.Command{
		Use:   "inspect <description>",
		Short: "Show the data sources and resolved layout signals of a compiled spec",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInspect(cmd.Context(), cmd, args[0], opts)
		},
	}
	cmd.Flags().BoolVar(&opts.GroupedAggregation, "grouped-aggregation", false, "Add and preview grouped aggregate data sources")
	_ = viper.BindPFlag("grouped_aggregation", cmd.Flags().Lookup("grouped-aggregation"))
	return cmd
}

func runInspect(ctx context.Context, cmd *cobra.Command, path string, opts inspectOptions) error {
	service := app.NewService()
	result, err := service.Inspect(ctx, app.InspectRequest{
		DescriptionPath:    path,
		GroupedAggregation: resolveBool(cmd, opts.GroupedAggregation, "grouped_aggregation", "grouped-aggregation"),
	})
	if err != nil {
		return err
	}
	if len(result.Errors) > 0 {
		for _, msg := range result.Errors {
			fmt.Fprintf(os.Stderr, "- %s\n", msg)
		}
		return specErrors(result.Errors)
	}

	fmt.Printf("insight: %s (%s)\n", result.Name, result.Chart)
	fmt.Printf("fingerprint: %s\n", result.Fingerprint)
	fmt.Println("data:")
	for _, name := range result.Data {
		fmt.Printf("- %s\n", name)
	}
	fmt.Println("signals:")
	for _, name := range sortedKeys(result.Signals) {
		fmt.Printf("- %s = %g\n", name, result.Signals[name])
	}
	if len(result.Unresolved) > 0 {
		fmt.Println("resolved at render time:")
		for _, name := range sortedKeys(result.Unresolved) {
			fmt.Printf("- %s\n", name)
		}
	}
	for _, aggregate := range result.Aggregates {
		fmt.Printf("%s: %d rows\n", aggregate.Name, len(aggregate.Rows))
		for _, name := range sortedKeys(aggregate.Extents) {
			bounds := aggregate.Extents[name]
			fmt.Printf("- %s = [%g, %g]\n", name, bounds[0], bounds[1])
		}
	}
	return nil
}

func sortedKeys[V any](values map[string]V) []string {
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
