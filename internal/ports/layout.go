package ports

import "insight-specs/internal/types"

// Layout is one stage of a chart's layout pipeline. Build is called once,
// after construction, and returns the scope handed to the next stage.
type Layout interface {
	Build() (types.InnerScope, error)
	Grouping() []string
	AggregateSumOp() *types.FieldOp
}

// LayoutFactory constructs a stage from its chart-supplied props.
type LayoutFactory func(props any, build types.LayoutBuildProps) (Layout, error)

type LayoutRegistryPort interface {
	New(pair types.LayoutPair, build types.LayoutBuildProps) (Layout, error)
	Kinds() []string
}
