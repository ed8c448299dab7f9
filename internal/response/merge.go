// Package response normalizes tool-call results. A successful call carries a
// sequence of content blocks that may encode the same payload twice, once as
// structured data and once as JSON text; Merge reconciles them into a single
// flat mapping, and Normalize additionally pins the display schema.
package response

import (
	"encoding/json"
)

// Block is one content fragment of a tool result. Type "json" carries a
// structured mapping in Data; type "text" carries a string in Text that may
// itself be JSON.
type Block struct {
	Type string         `json:"type"`
	Data map[string]any `json:"data,omitempty"`
	Text string         `json:"text,omitempty"`
}

// DisplayKeys is the fixed schema Normalize guarantees. Missing keys are set
// to nil so printers can rely on their presence.
var DisplayKeys = []string{"raw", "parsed", "commands", "saved", "dry_run", "device", "error"}

// Merge flattens the result field of a successful tools/call response.
// Structured blocks win: their mappings are merged in order, later blocks
// overwriting earlier keys. Only when no structured block contributed does
// the textual pass run, JSON-decoding each text block and merging mappings
// the same way. Merge never fails; unparsable content yields an empty map.
func Merge(result json.RawMessage) map[string]any {
	var payload struct {
		Content []Block `json:"content"`
	}
	if len(result) > 0 {
		// A malformed result is treated the same as an empty one.
		_ = json.Unmarshal(result, &payload)
	}
	return MergeBlocks(payload.Content)
}

// MergeBlocks applies the merge algorithm to already-decoded blocks.
func MergeBlocks(blocks []Block) map[string]any {
	merged := make(map[string]any)
	found := false

	for _, b := range blocks {
		if b.Type != "json" || b.Data == nil {
			continue
		}
		for k, v := range b.Data {
			merged[k] = v
		}
		found = true
	}

	if !found {
		for _, b := range blocks {
			if b.Type != "text" {
				continue
			}
			var data map[string]any
			if err := json.Unmarshal([]byte(b.Text), &data); err != nil {
				continue
			}
			for k, v := range data {
				merged[k] = v
			}
		}
	}

	return merged
}

// Normalize returns a copy of merged with every display key present,
// defaulting missing ones to nil. For get_version results it additionally
// attempts to recover a blank parsed.version from the raw output.
func Normalize(tool string, merged map[string]any) map[string]any {
	data := make(map[string]any, len(merged)+len(DisplayKeys))
	for k, v := range merged {
		data[k] = v
	}
	for _, k := range DisplayKeys {
		if _, ok := data[k]; !ok {
			data[k] = nil
		}
	}
	if tool == "get_version" {
		RecoverVersion(data)
	}
	return data
}
