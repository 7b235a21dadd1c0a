package utils

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ExtractJSONObject returns the first balanced top-level {...} object in raw,
// tolerating markdown fences and prose around it. Braces inside string
// literals are ignored.
func ExtractJSONObject(raw string) (string, error) {
	text := stripCodeFence(strings.TrimSpace(raw))
	if text == "" {
		return "", &ExtractionError{Reason: "empty response"}
	}

	start := strings.IndexByte(text, '{')
	if start == -1 {
		return "", &ExtractionError{Reason: "no JSON object found in response"}
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(text); i++ {
		ch := text[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}

		switch ch {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return text[start : i+1], nil
			}
		}
	}

	return "", &ExtractionError{Reason: fmt.Sprintf("unterminated JSON object (depth %d at end of input)", depth)}
}

// DecodeJSONObject extracts and decodes the first object in raw.
func DecodeJSONObject(raw string) (map[string]any, error) {
	trimmed := strings.TrimSpace(raw)
	var doc map[string]any
	if json.Unmarshal([]byte(trimmed), &doc) == nil && doc != nil {
		return doc, nil
	}

	cleaned, err := ExtractJSONObject(raw)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(cleaned), &doc); err != nil {
		return nil, fmt.Errorf("json decode: %w", err)
	}
	return doc, nil
}

func stripCodeFence(text string) string {
	if !strings.HasPrefix(text, "```") {
		return text
	}
	text = strings.TrimPrefix(text, "```")
	if len(text) >= 4 && strings.EqualFold(text[:4], "json") {
		text = text[4:]
	}
	text = strings.TrimSpace(text)
	text = strings.TrimSuffix(text, "```")
	return strings.TrimSpace(text)
}
