// file: internals/helpers/validate_test.go
package helper

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type samplePayload struct {
	Name   string  `json:"name" validate:"required,min=2,max=10"`
	Gender string  `json:"gender" validate:"omitempty,oneof=male female"`
	Email  *string `json:"email" validate:"omitempty,email"`
}

func TestValidateStructOK(t *testing.T) {
	assert.NoError(t, ValidateStruct(samplePayload{Name: "Budi"}))
}

func TestValidateStructRequired(t *testing.T) {
	err := ValidateStruct(samplePayload{})
	require.Error(t, err)
	fe, ok := err.(*fiber.Error)
	require.True(t, ok)
	assert.Equal(t, fiber.StatusBadRequest, fe.Code)
	assert.Equal(t, "field name is required", fe.Message)
}

func TestValidateStructOneofUsesJSONName(t *testing.T) {
	err := ValidateStruct(samplePayload{Name: "Budi", Gender: "other"})
	require.Error(t, err)
	fe := err.(*fiber.Error)
	assert.Equal(t, "field gender must be one of: male, female", fe.Message)
}

func TestValidateStructEmail(t *testing.T) {
	bad := "not-an-email"
	err := ValidateStruct(samplePayload{Name: "Budi", Email: &bad})
	require.Error(t, err)
	assert.Contains(t, err.(*fiber.Error).Message, "valid email")
}
