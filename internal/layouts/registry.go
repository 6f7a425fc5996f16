package layouts

import (
	"fmt"
	"sort"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"insight-specs/internal/ports"
	"insight-specs/internal/shared"
	"insight-specs/internal/types"
)

const (
	KindBand    = "band"
	KindSquare  = "square"
	KindScatter = "scatter"
	KindCell    = "cell"
)

// Registry constructs layout stages by kind.
type Registry struct {
	factories map[string]ports.LayoutFactory
}

func NewRegistry() Registry {
	registry := Registry{factories: map[string]ports.LayoutFactory{}}
	registry.Register(KindBand, NewBand)
	registry.Register(KindSquare, NewSquare)
	registry.Register(KindScatter, NewScatter)
	registry.Register(KindCell, NewCell)
	return registry
}

func (r Registry) Register(kind string, factory ports.LayoutFactory) {
	r.factories[kind] = factory
}

func (r Registry) Kinds() []string {
	kinds := make([]string, 0, len(r.factories))
	for kind := range r.factories {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)
	return kinds
}

func (r Registry) New(pair types.LayoutPair, build types.LayoutBuildProps) (ports.Layout, error) {
	factory, ok := r.factories[pair.Kind]
	if !ok {
		msg := fmt.Sprintf("unknown layout kind %q", pair.Kind)
		if match, found := shared.ClosestMatch(pair.Kind, r.Kinds()); found {
			msg = fmt.Sprintf("%s (did you mean %q?)", msg, match)
		}
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg(msg)
	}
	return factory(pair.Props, build)
}

func propsError(kind string, props any) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeInvalidArgument).
		WithMsg(fmt.Sprintf("%s layout: unexpected props %T", kind, props))
}

func filterRules(filter string, channels ...string) map[string][]types.EncodeRule {
	if filter == "" {
		return nil
	}
	rules := make(map[string][]types.EncodeRule, len(channels))
	for _, channel := range channels {
		rules[channel] = []types.EncodeRule{{Test: fmt.Sprintf("!(%s)", filter), Value: 0}}
	}
	return rules
}
