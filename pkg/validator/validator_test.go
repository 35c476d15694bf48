package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Email        string `json:"email" validate:"required,email"`
	RelationType string `json:"relation_type" validate:"required,oneof=primary specialist"`
	Severity     int    `json:"severity" validate:"gte=1,lte=10"`
}

func TestFormatValidationErrors_UsesJSONNames(t *testing.T) {
	v := NewValidator()

	err := v.Validate(&sampleRequest{Email: "nope", RelationType: "friend", Severity: 11})
	require.Error(t, err)

	fields := v.FormatValidationErrors(err)
	assert.Equal(t, "email must be a valid email address", fields["email"])
	assert.Equal(t, "relation_type must be one of: primary specialist", fields["relation_type"])
	assert.Equal(t, "severity must be less than or equal to 10", fields["severity"])
}

func TestValidate_Passes(t *testing.T) {
	v := NewValidator()
	assert.NoError(t, v.Validate(&sampleRequest{Email: "a@b.co", RelationType: "primary", Severity: 3}))
}

type contactRequest struct {
	Phone string `json:"phone" validate:"required,phone"`
}

func TestValidate_Phone(t *testing.T) {
	v := NewValidator()

	for _, phone := range []string{"+6281234567890", "81234567", "4155550123"} {
		assert.NoError(t, v.Validate(&contactRequest{Phone: phone}), phone)
	}
	for _, phone := range []string{"0812345", "+0123", "12-34-56", "+12345678901234567", "call me"} {
		err := v.Validate(&contactRequest{Phone: phone})
		require.Error(t, err, phone)
		assert.Equal(t, "phone must be a valid phone number", v.FormatValidationErrors(err)["phone"])
	}
}
