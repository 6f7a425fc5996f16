package app

import "time"

// CompileRequest writes the document to <OutputDir>/<name>.json when
// OutputDir is set.
type CompileRequest struct {
	DescriptionPath    string
	OutputDir          string
	GroupedAggregation bool
	CheckDocument      bool
	CacheTTL           time.Duration
}

// CompileResult carries either Errors, when the description does not fit
// its chart, or the encoded Document.
type CompileResult struct {
	Name        string
	Chart       string
	BuildID     string
	Fingerprint string
	Errors      []string
	Document    []byte
	OutputPath  string
	Cached      bool
}

type ValidateRequest struct {
	DescriptionPath string
}

type ValidateResult struct {
	Name   string
	Chart  string
	Errors []string
}

type InspectRequest struct {
	DescriptionPath    string
	GroupedAggregation bool
}

type InspectResult struct {
	Name        string
	Chart       string
	Fingerprint string
	Errors      []string
	Data        []string
	Signals     map[string]float64
	Unresolved  map[string]string
	Aggregates  []InspectAggregate
}

// InspectAggregate summarizes one synthesized aggregate source evaluated
// over the description's inline rows.
type InspectAggregate struct {
	Name    string
	Rows    []map[string]any
	Extents map[string][2]float64
}

type WatchRequest struct {
	Compile CompileRequest
}
