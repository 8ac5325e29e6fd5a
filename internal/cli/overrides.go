// Package cli holds helpers shared by the command-line entry points:
// override parsing, output encoding and exit-code conventions. The engine
// itself only ever sees typed values; everything stringly lives here.
package cli

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// ParseOverrides converts "field=value" arguments into a typed override
// map. Values are auto-cast: booleans and numbers become their native
// types, JSON literals (quoted strings, arrays, objects) decode as JSON,
// and anything else stays a plain string.
func ParseOverrides(args []string) (map[string]any, error) {
	if len(args) == 0 {
		return nil, nil
	}
	overrides := make(map[string]any, len(args))
	for _, arg := range args {
		key, raw, ok := strings.Cut(arg, "=")
		if !ok {
			return nil, fmt.Errorf("invalid override %q: expected field=value", arg)
		}
		key = strings.TrimSpace(key)
		if key == "" {
			return nil, fmt.Errorf("invalid override %q: empty field id", arg)
		}
		overrides[key] = AutoCast(strings.TrimSpace(raw))
	}
	return overrides, nil
}

// AutoCast guesses the natural type of a raw string value. Integers stay
// integral (ints survive large monetary amounts exactly), underscores are
// accepted as digit separators, and JSON literals pass through the JSON
// decoder. The fallback is the string itself.
func AutoCast(raw string) any {
	switch strings.ToLower(raw) {
	case "true":
		return true
	case "false":
		return false
	case "null", "none":
		return nil
	}

	numeric := strings.ReplaceAll(raw, "_", "")
	if i, err := strconv.ParseInt(numeric, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(numeric, 64); err == nil {
		return f
	}

	if looksLikeJSON(raw) {
		var v any
		if err := json.Unmarshal([]byte(raw), &v); err == nil {
			return v
		}
	}
	return raw
}

func looksLikeJSON(raw string) bool {
	if raw == "" {
		return false
	}
	switch raw[0] {
	case '"', '[', '{':
		return true
	}
	return false
}
