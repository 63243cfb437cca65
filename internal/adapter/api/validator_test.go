package api

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type loginRequest struct {
	IDToken string `json:"idToken" validate:"required"`
}

type accountRequest struct {
	Email    string `json:"email" validate:"omitempty,email"`
	Password string `json:"password" validate:"omitempty,min=6"`
}

func TestValidatorUsesJSONNames(t *testing.T) {
	err := NewValidator().Validate(&loginRequest{})

	var verrs validator.ValidationErrors
	require.True(t, errors.As(err, &verrs))
	assert.Equal(t, "idToken", verrs[0].Field())
	assert.Equal(t, "required", verrs[0].Tag())
}

func TestValidatorOptionalFields(t *testing.T) {
	v := NewValidator()

	assert.NoError(t, v.Validate(&accountRequest{}))
	assert.NoError(t, v.Validate(&accountRequest{Email: "a@b.co", Password: "secret1"}))
	assert.Error(t, v.Validate(&accountRequest{Email: "nope"}))
	assert.Error(t, v.Validate(&accountRequest{Password: "123"}))
}
