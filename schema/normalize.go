package schema

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strings"
)

// Pre-compiled patterns for pulling a JSON payload out of a completion.
var (
	// jsonFencePattern matches a fenced block explicitly tagged as JSON.
	jsonFencePattern = regexp.MustCompile("(?s)```json\\s*\\n?(.*?)```")
	// anyFencePattern matches the first fenced block of any style.
	anyFencePattern = regexp.MustCompile("(?s)```[a-zA-Z]*\\s*\\n?(.*?)```")
	// trailingCommaPattern matches trailing commas before ] or }.
	trailingCommaPattern = regexp.MustCompile(`,\s*([}\]])`)
)

// ExtractPayload strips incidental formatting from a raw completion and
// returns the candidate JSON text. A fence tagged ```json wins over an
// untagged fence; text without fences passes through unchanged apart from
// comment and trailing-comma cleanup.
func ExtractPayload(raw string) string {
	payload := raw
	if m := jsonFencePattern.FindStringSubmatch(raw); len(m) > 1 {
		payload = m[1]
	} else if m := anyFencePattern.FindStringSubmatch(raw); len(m) > 1 {
		payload = m[1]
	}
	return strings.TrimSpace(cleanPayload(payload))
}

// cleanPayload removes JavaScript-style line comments and trailing commas,
// two invalid-JSON artifacts models commonly produce.
func cleanPayload(raw string) string {
	lines := strings.Split(raw, "\n")
	cleaned := make([]string, 0, len(lines))
	for _, line := range lines {
		cleaned = append(cleaned, stripLineComment(line))
	}
	result := strings.Join(cleaned, "\n")
	return trailingCommaPattern.ReplaceAllString(result, "$1")
}

// stripLineComment removes a // comment from a line, respecting string values
// so URLs like "http://example.com" survive.
func stripLineComment(line string) string {
	if !strings.Contains(line, "//") {
		return line
	}

	inString := false
	escaped := false
	for i := 0; i < len(line); i++ {
		ch := line[i]
		if escaped {
			escaped = false
			continue
		}
		if ch == '\\' && inString {
			escaped = true
			continue
		}
		if ch == '"' {
			inString = !inString
			continue
		}
		if !inString && ch == '/' && i+1 < len(line) && line[i+1] == '/' {
			return strings.TrimRight(line[:i], " \t")
		}
	}
	return line
}

// Normalize extracts, parses and validates a raw completion against a
// contract. The returned map holds exactly the contract's fields, each
// satisfying its declared kind. Parse failure is a MalformedOutputError;
// a missing or mistyped required field is a SchemaViolationError. Missing
// lenient fields get typed defaults instead of failing.
func Normalize(raw string, c Contract) (map[string]any, error) {
	payload := ExtractPayload(raw)

	var parsed any
	if err := json.Unmarshal([]byte(payload), &parsed); err != nil {
		return nil, &MalformedOutputError{err: err}
	}

	obj, ok := parsed.(map[string]any)
	if !ok {
		return nil, &SchemaViolationError{Reason: "top-level value is not a JSON object"}
	}

	return validateObject(obj, c.Fields, "")
}

// validateObject applies the field policy to one object level. path is the
// dotted prefix used in error messages for nested fields.
func validateObject(obj map[string]any, fields []Field, path string) (map[string]any, error) {
	result := make(map[string]any, len(fields))
	for _, f := range fields {
		name := f.Name
		if path != "" {
			name = path + "." + f.Name
		}

		value, present := obj[f.Name]
		if !present || value == nil {
			if f.Required {
				return nil, &SchemaViolationError{Field: name, Reason: "required field is missing"}
			}
			result[f.Name] = defaultValue(f)
			continue
		}

		coerced, err := coerceValue(value, f, name)
		if err != nil {
			return nil, err
		}
		result[f.Name] = coerced
	}
	return result, nil
}

// coerceValue checks one value against its declared kind, recursing into
// objects and list elements.
func coerceValue(value any, f Field, path string) (any, error) {
	switch f.Kind {
	case String:
		s, ok := value.(string)
		if !ok {
			return nil, &SchemaViolationError{Field: path, Reason: fmt.Sprintf("expected string, got %T", value)}
		}
		return s, nil

	case Integer:
		// encoding/json decodes every number as float64.
		n, ok := value.(float64)
		if !ok {
			return nil, &SchemaViolationError{Field: path, Reason: fmt.Sprintf("expected integer, got %T", value)}
		}
		if n != math.Trunc(n) {
			return nil, &SchemaViolationError{Field: path, Reason: fmt.Sprintf("expected integer, got non-integral number %v", n)}
		}
		return int(n), nil

	case Object:
		nested, ok := value.(map[string]any)
		if !ok {
			return nil, &SchemaViolationError{Field: path, Reason: fmt.Sprintf("expected object, got %T", value)}
		}
		if len(f.Item) == 0 {
			return nested, nil
		}
		return validateObject(nested, f.Item, path)

	case ObjectList:
		list, ok := value.([]any)
		if !ok {
			return nil, &SchemaViolationError{Field: path, Reason: fmt.Sprintf("expected list, got %T", value)}
		}
		out := make([]map[string]any, 0, len(list))
		for i, elem := range list {
			elemObj, ok := elem.(map[string]any)
			if !ok {
				return nil, &SchemaViolationError{
					Field:  fmt.Sprintf("%s[%d]", path, i),
					Reason: fmt.Sprintf("expected object element, got %T", elem),
				}
			}
			validated, err := validateObject(elemObj, f.Item, fmt.Sprintf("%s[%d]", path, i))
			if err != nil {
				return nil, err
			}
			out = append(out, validated)
		}
		return out, nil

	default:
		return nil, &SchemaViolationError{Field: path, Reason: "unknown field kind"}
	}
}

// defaultValue returns the lenient substitute for a missing field.
func defaultValue(f Field) any {
	switch f.Kind {
	case String:
		return ""
	case Integer:
		return 0
	case Object:
		nested := make(map[string]any, len(f.Item))
		for _, sub := range f.Item {
			nested[sub.Name] = defaultValue(sub)
		}
		return nested
	case ObjectList:
		return []map[string]any{}
	default:
		return nil
	}
}
