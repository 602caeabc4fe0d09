package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleRequest struct {
	Email  string  `validate:"required,email"`
	Title  string  `validate:"required,min=3"`
	Status string  `validate:"omitempty,oneof=draft published archived"`
	Lat    float64 `validate:"omitempty,latitude"`
}

func TestValidateStructOK(t *testing.T) {
	err := ValidateStruct(&sampleRequest{
		Email:  "user@example.com",
		Title:  "Paris in June",
		Status: "draft",
		Lat:    48.85,
	})
	assert.NoError(t, err)
}

func TestValidateStructFailures(t *testing.T) {
	err := ValidateStruct(&sampleRequest{Email: "nope", Title: "ab", Status: "deleted"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Email must be a valid email address")
	assert.Contains(t, err.Error(), "Title must be at least 3 characters")
	assert.Contains(t, err.Error(), "Status must be one of: draft published archived")
}

func TestValidateStructLatitude(t *testing.T) {
	err := ValidateStruct(&sampleRequest{
		Email: "user@example.com",
		Title: "Somewhere",
		Lat:   95,
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "valid latitude")
}
