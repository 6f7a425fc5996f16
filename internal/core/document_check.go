package core

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/expr-lang/expr/ast"
	"github.com/expr-lang/expr/parser"
	"github.com/rs/zerolog/log"
	"github.com/santhosh-tekuri/jsonschema/v5"

	"insight-specs/internal/types"
)

const documentSchemaURL = "https://insight-specs/schema/document.schema.json"

//go:embed schema/document.schema.json
var documentSchema []byte

// knownIdentifiers are names every expression may use without a signal
// definition.
var knownIdentifiers = map[string]struct{}{
	"datum": {}, "item": {}, "event": {}, "parent": {},
	"width": {}, "height": {}, "padding": {}, "autosize": {}, "background": {},
	"PI": {}, "E": {}, "NaN": {}, "Infinity": {}, "null": {}, "undefined": {},
}

// CheckDocument verifies a compiled document: its structure against the
// embedded schema, that every named data source it reads exists, and that
// every identifier in a signal or transform expression names a signal.
func CheckDocument(ctx context.Context, doc *types.VegaSpec) error {
	if err := checkSchema(doc); err != nil {
		return err
	}
	var problems []string
	problems = append(problems, checkDataReferences(doc)...)
	problems = append(problems, checkSignalReferences(ctx, doc)...)
	if len(problems) > 0 {
		return errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg(fmt.Sprintf("document check failed: %s", strings.Join(problems, "; ")))
	}
	log.Ctx(ctx).Debug().Int("data", len(doc.Data)).Int("signals", len(doc.Signals)).Msg("document checked")
	return nil
}

func checkSchema(doc *types.VegaSpec) error {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource(documentSchemaURL, bytes.NewReader(documentSchema)); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("load document schema").
			WithCause(err)
	}
	schema, err := compiler.Compile(documentSchemaURL)
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("compile document schema").
			WithCause(err)
	}
	raw, err := json.Marshal(doc)
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("encode document").
			WithCause(err)
	}
	var value any
	if err := json.Unmarshal(raw, &value); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("decode document").
			WithCause(err)
	}
	if err := schema.Validate(value); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg(fmt.Sprintf("document does not match schema: %v", err)).
			WithCause(err)
	}
	return nil
}

func checkDataReferences(doc *types.VegaSpec) []string {
	var problems []string
	defined := map[string]struct{}{}
	for _, data := range doc.Data {
		problems = append(problems, checkData(data, defined)...)
		defined[data.Name] = struct{}{}
	}
	for _, scale := range doc.Scales {
		problems = append(problems, checkScale(scale, defined)...)
	}
	for _, mark := range doc.Marks {
		problems = append(problems, checkMarkData(mark, copySet(defined))...)
	}
	return problems
}

func checkMarkData(mark *types.Mark, defined map[string]struct{}) []string {
	var problems []string
	for _, data := range mark.Data {
		problems = append(problems, checkData(data, defined)...)
		defined[data.Name] = struct{}{}
	}
	for _, scale := range mark.Scales {
		problems = append(problems, checkScale(scale, defined)...)
	}
	if mark.From != nil {
		if mark.From.Data != "" {
			if _, ok := defined[mark.From.Data]; !ok {
				problems = append(problems, fmt.Sprintf("mark %s reads unknown data %s", markLabel(mark), mark.From.Data))
			}
		}
		if mark.From.Facet != nil {
			if _, ok := defined[mark.From.Facet.Data]; !ok {
				problems = append(problems, fmt.Sprintf("mark %s facets unknown data %s", markLabel(mark), mark.From.Facet.Data))
			}
			defined[mark.From.Facet.Name] = struct{}{}
		}
	}
	for _, child := range mark.Marks {
		problems = append(problems, checkMarkData(child, copySet(defined))...)
	}
	return problems
}

func checkData(data *types.Data, defined map[string]struct{}) []string {
	var problems []string
	if data.Source != "" {
		if _, ok := defined[data.Source]; !ok {
			problems = append(problems, fmt.Sprintf("data %s reads unknown source %s", data.Name, data.Source))
		}
	}
	for _, transform := range data.Transform {
		lookup, ok := transform.(*types.LookupTransform)
		if !ok {
			continue
		}
		if _, ok := defined[lookup.From]; !ok {
			problems = append(problems, fmt.Sprintf("data %s looks up unknown data %s", data.Name, lookup.From))
		}
	}
	return problems
}

func checkScale(scale *types.Scale, defined map[string]struct{}) []string {
	ref, ok := scale.Domain.(types.DataRef)
	if !ok {
		return nil
	}
	if _, ok := defined[ref.Data]; !ok {
		return []string{fmt.Sprintf("scale %s reads unknown data %s", scale.Name, ref.Data)}
	}
	return nil
}

func checkSignalReferences(ctx context.Context, doc *types.VegaSpec) []string {
	known := map[string]struct{}{}
	for name := range knownIdentifiers {
		known[name] = struct{}{}
	}
	for _, signal := range doc.Signals {
		known[signal.Name] = struct{}{}
	}
	for _, data := range allData(doc) {
		for _, transform := range data.Transform {
			if extent, ok := transform.(*types.ExtentTransform); ok {
				known[extent.Signal] = struct{}{}
			}
		}
	}
	for _, mark := range allMarks(doc.Marks) {
		for _, signal := range mark.Signals {
			known[signal.Name] = struct{}{}
		}
	}

	var problems []string
	check := func(owner, expression string) {
		identifiers, err := expressionIdentifiers(expression)
		if err != nil {
			log.Ctx(ctx).Debug().Str("owner", owner).Err(err).Msg("expression not checked")
			return
		}
		for _, name := range identifiers {
			if _, ok := known[name]; !ok {
				problems = append(problems, fmt.Sprintf("%s references unknown signal %s", owner, name))
			}
		}
	}
	for _, signal := range doc.Signals {
		if signal.Update != "" {
			check("signal "+signal.Name, signal.Update)
		}
	}
	for _, data := range allData(doc) {
		for _, transform := range data.Transform {
			switch t := transform.(type) {
			case *types.FormulaTransform:
				check("data "+data.Name, t.Expr)
			case *types.FilterTransform:
				check("data "+data.Name, t.Expr)
			}
		}
	}
	return problems
}

// expressionIdentifiers returns the sorted free identifiers of an
// expression, leaving out the names of called functions.
func expressionIdentifiers(expression string) ([]string, error) {
	tree, err := parser.Parse(expression)
	if err != nil {
		return nil, err
	}
	collector := &identifierCollector{callees: map[ast.Node]struct{}{}}
	ast.Walk(&tree.Node, collector)

	seen := map[string]struct{}{}
	var names []string
	for _, node := range collector.identifiers {
		if _, ok := collector.callees[node]; ok {
			continue
		}
		if _, ok := seen[node.Value]; ok {
			continue
		}
		seen[node.Value] = struct{}{}
		names = append(names, node.Value)
	}
	sort.Strings(names)
	return names, nil
}

type identifierCollector struct {
	identifiers []*ast.IdentifierNode
	callees     map[ast.Node]struct{}
}

func (c *identifierCollector) Visit(node *ast.Node) {
	switch n := (*node).(type) {
	case *ast.IdentifierNode:
		c.identifiers = append(c.identifiers, n)
	case *ast.CallNode:
		c.callees[n.Callee] = struct{}{}
	}
}

func allData(doc *types.VegaSpec) []*types.Data {
	data := append([]*types.Data(nil), doc.Data...)
	for _, mark := range allMarks(doc.Marks) {
		data = append(data, mark.Data...)
	}
	return data
}

func allMarks(marks []*types.Mark) []*types.Mark {
	var out []*types.Mark
	for _, mark := range marks {
		out = append(out, mark)
		out = append(out, allMarks(mark.Marks)...)
	}
	return out
}

func markLabel(mark *types.Mark) string {
	if mark.Name != "" {
		return mark.Name
	}
	return mark.Type
}

func copySet(set map[string]struct{}) map[string]struct{} {
	out := make(map[string]struct{}, len(set))
	for key := range set {
		out[key] = struct{}{}
	}
	return out
}
