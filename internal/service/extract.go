package service

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// Extraction failure reasons
const (
	ReasonMissingContentPath = "missing_content_path"
	ReasonEmptyContent       = "empty_content"
	ReasonNoJSON             = "no_json"
	ReasonInvalidJSON        = "invalid_json"
)

// ExtractionError reports a completion whose content could not be turned into a JSON object
type ExtractionError struct {
	Reason string
	Err    error
}

func (e *ExtractionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("failed to extract JSON from response: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("failed to extract JSON from response: %s", e.Reason)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

var commentLine = regexp.MustCompile(`(?m)\n[ \t]*//.*$`)

// ExtractJSON isolates the JSON object embedded in a completion's content.
// Leading prose, trailing commentary, code fences and whole-line // comments
// are removed. The result is not parsed.
func ExtractJSON(raw *RawCompletion) (string, error) {
	if raw == nil || raw.Kind == MalformedEnvelope {
		return "", &ExtractionError{Reason: ReasonMissingContentPath}
	}
	if err := raw.Err(); err != nil {
		return "", err
	}

	cleaned := raw.Content
	if cleaned == "" {
		return "", &ExtractionError{Reason: ReasonEmptyContent}
	}

	start := strings.Index(cleaned, "{")
	end := strings.LastIndex(cleaned, "}")
	if start != -1 && end > start {
		cleaned = cleaned[start : end+1]
	}

	cleaned = strings.ReplaceAll(cleaned, "```json", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")
	cleaned = commentLine.ReplaceAllString(cleaned, "")
	cleaned = strings.TrimSpace(cleaned)

	if cleaned == "" {
		return "", &ExtractionError{Reason: ReasonNoJSON}
	}
	return cleaned, nil
}

// ParseJSONObject parses extracted text into a generic JSON object
func ParseJSONObject(s string) (map[string]interface{}, error) {
	var obj map[string]interface{}
	if err := json.Unmarshal([]byte(s), &obj); err != nil {
		return nil, &ExtractionError{Reason: ReasonInvalidJSON, Err: err}
	}
	if obj == nil {
		return nil, &ExtractionError{Reason: ReasonInvalidJSON, Err: fmt.Errorf("not a JSON object")}
	}
	return obj, nil
}
