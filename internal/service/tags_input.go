package service

import (
	"encoding/json"

	"tagboard/internal/models"
)

// ParseTagNames converts the raw multipart "tags" field into a typed list of
// tag names. Clients either repeat the field (already a list) or send a
// single JSON-encoded array string; a single value that does not parse as a
// JSON array of strings is rejected.
func ParseTagNames(values []string) ([]string, error) {
	if len(values) == 0 {
		return nil, models.NewValidationError("Tags are required")
	}
	if len(values) == 1 {
		var names []string
		if err := json.Unmarshal([]byte(values[0]), &names); err != nil {
			return nil, models.NewValidationError("Tags must be a valid JSON array")
		}
		return names, nil
	}
	return values, nil
}
