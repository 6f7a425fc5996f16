package core

import (
	"insight-specs/internal/types"
)

// MergeEncodingRules folds each stage's conditional rules into the
// channels the mark already encodes. Rules merged later take precedence:
// every merge inserts its rules in front of the existing ones, so the
// mark's own value stays last as the fallback.
func MergeEncodingRules(mark *types.Mark, ruleMaps []map[string][]types.EncodeRule) {
	if mark == nil || mark.Encode == nil {
		return
	}
	update := mark.Encode.Update
	for _, ruleMap := range ruleMaps {
		for channel, rules := range ruleMap {
			existing, ok := update[channel]
			if !ok || existing == nil || len(rules) == 0 {
				continue
			}
			merged := make([]types.EncodeRule, 0, len(rules)+len(existing.Rules))
			merged = append(merged, rules...)
			merged = append(merged, existing.Rules...)
			update[channel] = types.RuleList(merged...)
		}
	}
}

// BindOffsets points the mark at the offset data source and replaces its
// position channels with the materialized offset fields.
func BindOffsets(mark *types.Mark, materialized types.OutFieldMap) {
	if mark == nil || len(materialized) == 0 {
		return
	}
	mark.From = &types.From{Data: types.DataOffsets}
	if mark.Encode == nil {
		mark.Encode = &types.Encode{}
	}
	if mark.Encode.Update == nil {
		mark.Encode.Update = map[string]*types.Channel{}
	}
	for axis, field := range materialized {
		mark.Encode.Update[string(axis)] = types.SingleRule(types.EncodeRule{Field: field.Field})
	}
}

// FinalizeColor sets the fill and opacity channels last, replacing
// anything stages contributed to them.
func FinalizeColor(mark *types.Mark, fill types.EncodeRule, opacity types.EncodeRule) {
	if mark == nil {
		return
	}
	if mark.Encode == nil {
		mark.Encode = &types.Encode{}
	}
	if mark.Encode.Update == nil {
		mark.Encode.Update = map[string]*types.Channel{}
	}
	mark.Encode.Update["fill"] = types.SingleRule(fill)
	mark.Encode.Update["opacity"] = types.SingleRule(opacity)
}
