package dto

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/SscSPs/survey_workspace_app/internal/apperrors"
)

// FlexibleID is an int64 identifier that accepts both JSON numbers and numeric strings
// and always renders as a string.
type FlexibleID int64

// UnmarshalJSON implements json.Unmarshaler.
func (id *FlexibleID) UnmarshalJSON(data []byte) error {
	raw := strings.Trim(strings.TrimSpace(string(data)), `"`)
	if raw == "" || raw == "null" {
		*id = 0
		return nil
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid id %q", raw)
	}
	*id = FlexibleID(v)
	return nil
}

// MarshalJSON implements json.Marshaler.
func (id FlexibleID) MarshalJSON() ([]byte, error) {
	return []byte(`"` + strconv.FormatInt(int64(id), 10) + `"`), nil
}

// Int64 returns the plain identifier.
func (id FlexibleID) Int64() int64 {
	return int64(id)
}

// ParseID parses a path or query identifier. Non-numeric and non-positive values are validation errors.
func ParseID(raw, name string) (int64, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || v <= 0 {
		return 0, apperrors.NewValidationFailedError(fmt.Sprintf("%s must be a positive integer", name))
	}
	return v, nil
}
