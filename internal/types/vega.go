package types

import "encoding/json"

const VegaSchemaURL = "https://vega.github.io/schema/vega/v5.json"

// VegaSpec is the compiled document. Stages only ever append to it.
type VegaSpec struct {
	Schema  string    `json:"$schema"`
	Data    []*Data   `json:"data"`
	Signals []*Signal `json:"signals"`
	Scales  []*Scale  `json:"scales,omitempty"`
	Marks   []*Mark   `json:"marks"`
}

type Data struct {
	Name      string           `json:"name"`
	Source    string           `json:"source,omitempty"`
	Values    []map[string]any `json:"values,omitempty"`
	Transform []Transform      `json:"transform,omitempty"`
}

type Signal struct {
	Name   string `json:"name"`
	Value  any    `json:"value,omitempty"`
	Update string `json:"update,omitempty"`
}

// SignalRef binds a property to a signal expression.
type SignalRef struct {
	Signal string `json:"signal"`
}

// DataRef binds a scale domain to a data field.
type DataRef struct {
	Data  string `json:"data"`
	Field string `json:"field"`
	Sort  bool   `json:"sort,omitempty"`
}

// SchemeRef selects a named color scheme as a scale range. Count samples
// that many colors from the scheme.
type SchemeRef struct {
	Scheme string `json:"scheme"`
	Count  int    `json:"count,omitempty"`
}

type Scale struct {
	Name    string   `json:"name"`
	Type    string   `json:"type"`
	Domain  any      `json:"domain,omitempty"`
	Range   any      `json:"range,omitempty"`
	Padding *float64 `json:"padding,omitempty"`
	Round   bool     `json:"round,omitempty"`
	Nice    bool     `json:"nice,omitempty"`
	Zero    *bool    `json:"zero,omitempty"`
	Reverse any      `json:"reverse,omitempty"`
}

type Axis struct {
	Scale     string  `json:"scale"`
	Orient    string  `json:"orient"`
	Title     string  `json:"title,omitempty"`
	Grid      bool    `json:"grid,omitempty"`
	Labels    *bool   `json:"labels,omitempty"`
	Domain    *bool   `json:"domain,omitempty"`
	TickCount *int    `json:"tickCount,omitempty"`
	Offset    float64 `json:"offset,omitempty"`
	Zindex    int     `json:"zindex,omitempty"`
}

type Legend struct {
	Fill   string `json:"fill"`
	Title  string `json:"title,omitempty"`
	Orient string `json:"orient,omitempty"`
}

const (
	MarkTypeGroup = "group"
	MarkTypeRect  = "rect"
)

type Mark struct {
	Type    string    `json:"type"`
	Name    string    `json:"name,omitempty"`
	Style   string    `json:"style,omitempty"`
	From    *From     `json:"from,omitempty"`
	Encode  *Encode   `json:"encode,omitempty"`
	Data    []*Data   `json:"data,omitempty"`
	Signals []*Signal `json:"signals,omitempty"`
	Scales  []*Scale  `json:"scales,omitempty"`
	Axes    []*Axis   `json:"axes,omitempty"`
	Legends []*Legend `json:"legends,omitempty"`
	Marks   []*Mark   `json:"marks,omitempty"`
}

type From struct {
	Data  string `json:"data,omitempty"`
	Facet *Facet `json:"facet,omitempty"`
}

type Facet struct {
	Name    string   `json:"name"`
	Data    string   `json:"data"`
	Groupby []string `json:"groupby"`
}

type Encode struct {
	Enter  map[string]*Channel `json:"enter,omitempty"`
	Update map[string]*Channel `json:"update,omitempty"`
}

// EncodeRule is one value binding of a visual channel. Rules with a Test
// only apply when the test expression holds.
type EncodeRule struct {
	Test   string   `json:"test,omitempty"`
	Signal string   `json:"signal,omitempty"`
	Field  string   `json:"field,omitempty"`
	Scale  string   `json:"scale,omitempty"`
	Value  any      `json:"value,omitempty"`
	Band   *float64 `json:"band,omitempty"`
	Offset any      `json:"offset,omitempty"`
}

// Channel holds the value of one encoding channel: a single rule, or an
// ordered list in which the first matching rule wins.
type Channel struct {
	Rules []EncodeRule
	List  bool
}

func SingleRule(rule EncodeRule) *Channel {
	return &Channel{Rules: []EncodeRule{rule}}
}

func RuleList(rules ...EncodeRule) *Channel {
	return &Channel{Rules: rules, List: true}
}

func (c *Channel) MarshalJSON() ([]byte, error) {
	if !c.List && len(c.Rules) == 1 {
		return json.Marshal(c.Rules[0])
	}
	rules := c.Rules
	if rules == nil {
		rules = []EncodeRule{}
	}
	return json.Marshal(rules)
}

func (c *Channel) UnmarshalJSON(data []byte) error {
	var rules []EncodeRule
	if err := json.Unmarshal(data, &rules); err == nil {
		c.Rules = rules
		c.List = true
		return nil
	}
	var rule EncodeRule
	if err := json.Unmarshal(data, &rule); err != nil {
		return err
	}
	c.Rules = []EncodeRule{rule}
	c.List = false
	return nil
}
