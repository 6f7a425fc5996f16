// Package shared provides common utility functions used across multiple
// packages in the insight-specs codebase.
package shared

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/lithammer/fuzzysearch/fuzzy"
)

// ErrorMessage returns the builder message of a coded error, falling back
// to the full error text.
func ErrorMessage(err error) string {
	var builder *errbuilder.ErrBuilder
	if errors.As(err, &builder) && strings.TrimSpace(builder.Msg) != "" {
		return builder.Msg
	}
	return err.Error()
}

// ErrorTrace joins the messages of a coded error and its causes, outermost
// first. A cause that is not a coded error ends the trace with its full
// text.
func ErrorTrace(err error) string {
	var parts []string
	for err != nil {
		var builder *errbuilder.ErrBuilder
		if !errors.As(err, &builder) {
			parts = appendDistinct(parts, err.Error())
			break
		}
		if msg := strings.TrimSpace(builder.Msg); msg != "" {
			parts = appendDistinct(parts, msg)
		}
		err = builder.Cause
	}
	return strings.Join(parts, ": ")
}

func appendDistinct(parts []string, msg string) []string {
	if len(parts) > 0 && parts[len(parts)-1] == msg {
		return parts
	}
	return append(parts, msg)
}

// ClosestMatch returns the candidate that best matches target using a
// case-insensitive fuzzy rank. ok is false when nothing matches.
func ClosestMatch(target string, candidates []string) (string, bool) {
	target = strings.TrimSpace(target)
	if target == "" || len(candidates) == 0 {
		return "", false
	}
	ranks := fuzzy.RankFindFold(target, candidates)
	if len(ranks) == 0 {
		return "", false
	}
	sort.Sort(ranks)
	return ranks[0].Target, true
}

// DatumField returns the expression reading field from the current datum.
func DatumField(field string) string {
	return fmt.Sprintf("datum[%s]", strconv.Quote(field))
}

// ScopedName prefixes name with the owning stage's prefix.
func ScopedName(prefix string, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "_" + name
}

// SumExpr joins offset terms into a single additive expression.
func SumExpr(terms []string) string {
	return strings.Join(terms, " + ")
}

func Float(value float64) *float64 {
	return &value
}

func Bool(value bool) *bool {
	return &value
}
