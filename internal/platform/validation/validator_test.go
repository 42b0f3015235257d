package validation

import (
	"errors"
	"strings"
	"testing"

	"github.com/SscSPs/survey_workspace_app/internal/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name        string `json:"name" validate:"required,max=10"`
	Description string `json:"description" validate:"max=20"`
}

func TestStructReportsJSONFieldNames(t *testing.T) {
	err := Struct(sample{Name: "", Description: strings.Repeat("x", 21)})
	require.Error(t, err)

	assert.True(t, errors.Is(err, apperrors.ErrValidation))
	assert.Contains(t, err.Error(), "name is a required field")
	assert.Contains(t, err.Error(), "description must be a maximum of 20 characters in length")
}

func TestStructPasses(t *testing.T) {
	assert.NoError(t, Struct(sample{Name: "ok"}))
}

func TestVarEmail(t *testing.T) {
	assert.NoError(t, Var("email", "b@example.com", "required,email"))

	err := Var("email", "not-an-email", "required,email")
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperrors.ErrValidation))
}
