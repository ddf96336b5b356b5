package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hhgcare/hhg/internal/shared/errors"
)

type bookingInput struct {
	PartnerName string `json:"partner_name" binding:"required" validate:"required,max=128"`
	Phone       string `json:"phone" validate:"required,phone"`
	Slots       int    `json:"slots" validate:"gt=0"`
}

func TestValidateStruct(t *testing.T) {
	err := ValidateStruct(bookingInput{PartnerName: "An Bình", Phone: "+84 90-123-4567", Slots: 1})
	assert.NoError(t, err)

	err = ValidateStruct(bookingInput{Phone: "call me", Slots: 0})
	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))

	details := errors.GetAppError(err).Details
	assert.Contains(t, details, "partner_name is required")
	assert.Contains(t, details, "phone must be a valid phone number")
	assert.Contains(t, details, "slots must be greater than 0")
}

func TestValidateToken(t *testing.T) {
	assert.NoError(t, ValidateToken(strings.Repeat("aB3", 10)+"xy"))
	assert.Error(t, ValidateToken(""))
	assert.Error(t, ValidateToken("short"))
	assert.Error(t, ValidateToken("../../etc/passwd-and-more-chars"))
}
