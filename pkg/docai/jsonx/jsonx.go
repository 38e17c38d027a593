// Package jsonx recovers JSON objects from LLM responses that may wrap
// them in markdown code fences or surrounding prose.
package jsonx

import (
	"encoding/json"
	"fmt"
	"strings"
)

// StripFence removes one leading/trailing markdown code fence
// (```json ... ``` or ``` ... ```). Text without a fence is returned
// trimmed but otherwise untouched.
func StripFence(s string) string {
	t := strings.TrimSpace(s)
	if !strings.HasPrefix(t, "```") {
		return t
	}
	t = strings.TrimPrefix(t, "```")
	// Optional language tag right after the opening fence.
	for _, tag := range []string{"json", "JSON"} {
		if strings.HasPrefix(t, tag) {
			t = t[len(tag):]
			break
		}
	}
	if i := strings.LastIndex(t, "```"); i >= 0 {
		t = t[:i]
	}
	return strings.TrimSpace(t)
}

// ExtractObject parses the first JSON object found in s, tolerating a
// markdown fence and trailing prose after the closing brace.
func ExtractObject(s string) (map[string]any, error) {
	t := StripFence(s)
	start := strings.Index(t, "{")
	if start < 0 {
		return nil, fmt.Errorf("no JSON object found in response")
	}

	// json.Decoder stops after the first complete value, so prose
	// following the object does not break parsing.
	dec := json.NewDecoder(strings.NewReader(t[start:]))
	var obj map[string]any
	if err := dec.Decode(&obj); err != nil {
		return nil, fmt.Errorf("decode JSON object: %w", err)
	}
	return obj, nil
}

// DecodeInto extracts the first JSON object from s and re-marshals it
// into out. Used by suggestion adapters that want typed structs.
func DecodeInto(s string, out any) error {
	obj, err := ExtractObject(s)
	if err != nil {
		return err
	}
	raw, err := json.Marshal(obj)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, out)
}
