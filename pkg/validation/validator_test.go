package validation

import (
	"testing"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type quoteRequest struct {
	Latitude    float64 `validate:"latitude"`
	Longitude   float64 `validate:"longitude"`
	ServiceType string  `validate:"required,service_type"`
	Fee         float64 `validate:"percentage"`
}

type termsRequest struct {
	Status string `validate:"required,partnership_status"`
	Type   string `validate:"omitempty,partnership_type"`
}

func TestValidateStruct_Valid(t *testing.T) {
	err := ValidateStruct(quoteRequest{
		Latitude:    -25.966375,
		Longitude:   32.580611,
		ServiceType: "hotel",
		Fee:         11,
	})
	assert.NoError(t, err)
}

func TestValidateStruct_CollectsFieldErrors(t *testing.T) {
	err := ValidateStruct(quoteRequest{
		Latitude:    91,
		Longitude:   -181,
		ServiceType: "taxi",
		Fee:         120,
	})
	require.Error(t, err)

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Len(t, ve.Errors, 4)
	assert.Equal(t, "failed latitude validation", ve.GetFieldError("Latitude"))
	assert.Equal(t, "failed service_type validation", ve.GetFieldError("ServiceType"))
	assert.Contains(t, err.Error(), "validation failed")
}

func TestEnumRules(t *testing.T) {
	tests := []struct {
		name  string
		input termsRequest
		valid bool
	}{
		{"active", termsRequest{Status: "active"}, true},
		{"suspended with type", termsRequest{Status: "suspended", Type: "referral_program"}, true},
		{"case and spaces", termsRequest{Status: " Pending "}, true},
		{"unknown status", termsRequest{Status: "archived"}, false},
		{"unknown type", termsRequest{Status: "active", Type: "franchise"}, false},
		{"missing status", termsRequest{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateStruct(tt.input)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestRegisterGinValidators(t *testing.T) {
	require.NoError(t, RegisterGinValidators())

	v, ok := binding.Validator.Engine().(*validator.Validate)
	require.True(t, ok)

	type body struct {
		ServiceType string `binding:"required,service_type"`
	}
	assert.NoError(t, v.Struct(body{ServiceType: "event"}))
	assert.Error(t, v.Struct(body{ServiceType: "boat"}))
}

func TestValidateCoordinates(t *testing.T) {
	assert.NoError(t, ValidateCoordinates(0, 0))
	assert.NoError(t, ValidateCoordinates(-90, 180))
	assert.Error(t, ValidateCoordinates(90.1, 0))
	assert.Error(t, ValidateCoordinates(0, -180.5))
}

func TestValidateDateRange(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	assert.NoError(t, ValidateDateRange(start, start))
	assert.NoError(t, ValidateDateRange(start, start.Add(time.Hour)))

	err := ValidateDateRange(start, start.Add(-time.Hour))
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.NotEmpty(t, ve.GetFieldError("date_range"))
}

func TestValidationError_AddErrorNilMap(t *testing.T) {
	ve := &ValidationError{}
	assert.False(t, ve.HasErrors())
	ve.AddError("amount", "must be positive")
	assert.True(t, ve.HasErrors())
	assert.Equal(t, "validation failed: amount: must be positive", ve.Error())
}
