package services

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// extractJSON strips Markdown code fences and narrows the text to the outermost
// JSON object.
func extractJSON(text string) string {
	text = strings.TrimSpace(text)
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```JSON", "")
	text = strings.ReplaceAll(text, "```", "")

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start != -1 && end > start {
		return text[start : end+1]
	}

	return strings.TrimSpace(text)
}

// decodePayload turns a raw model response into an untyped JSON object. The
// caller validates each field on its own.
func decodePayload(raw string) (map[string]any, error) {
	cleaned := extractJSON(raw)
	if cleaned == "" {
		return nil, errors.New("empty model payload")
	}

	var data map[string]any
	if err := json.Unmarshal([]byte(cleaned), &data); err != nil {
		return nil, fmt.Errorf("parse model payload: %w", err)
	}
	if data == nil {
		return nil, errors.New("model payload is not a JSON object")
	}

	return data, nil
}

func coerceFloat(v any) float64 {
	switch val := v.(type) {
	case float64:
		return val
	case int:
		return float64(val)
	case json.Number:
		f, err := val.Float64()
		if err != nil {
			return math.NaN()
		}
		return f
	case string:
		trimmed := strings.TrimSpace(val)
		if trimmed == "" {
			return math.NaN()
		}
		f, err := strconv.ParseFloat(trimmed, 64)
		if err != nil {
			return math.NaN()
		}
		return f
	default:
		return math.NaN()
	}
}

func coerceString(v any) string {
	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val)
	case fmt.Stringer:
		return strings.TrimSpace(val.String())
	case nil:
		return ""
	case float64, bool:
		return fmt.Sprintf("%v", val)
	default:
		bytes, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(bytes)
	}
}

// coerceStringList reports ok=false when v is not a JSON array. Blank entries
// are dropped.
func coerceStringList(v any) ([]string, bool) {
	items, ok := v.([]any)
	if !ok {
		return nil, false
	}

	out := make([]string, 0, len(items))
	for _, item := range items {
		s := coerceString(item)
		if s == "" {
			continue
		}
		out = append(out, s)
	}
	return out, true
}

// intField reads a numeric field, rounds it and clamps it into [lo, hi]. A
// missing or non-numeric field yields def.
func intField(data map[string]any, key string, def, lo, hi int) int {
	raw, ok := data[key]
	if !ok {
		return def
	}
	f := coerceFloat(raw)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return def
	}
	return clampScore(int(math.Round(f)), lo, hi)
}

func stringField(data map[string]any, key, def string) string {
	if s := coerceString(data[key]); s != "" {
		return s
	}
	return def
}

func listField(data map[string]any, key string, def []string) []string {
	items, ok := coerceStringList(data[key])
	if !ok {
		out := make([]string, len(def))
		copy(out, def)
		return out
	}
	return items
}
