package api

import (
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFoldValidationErrors(t *testing.T) {
	type body struct {
		Username string `validate:"required"`
		Email    string `validate:"required,email"`
	}

	v := validator.New()
	err := v.Struct(body{Email: "not-an-email"})
	require.Error(t, err)

	msg := FoldValidationErrors(err)

	assert.Contains(t, msg, "{field: username, message: is required}")
	assert.Contains(t, msg, "{field: email, message: must be a valid email address}")
	// Every fragment carries the separator, including the last one.
	assert.True(t, strings.HasSuffix(msg, " | "), "message %q must end with the separator", msg)
	assert.Equal(t, 2, strings.Count(msg, " | "))
}

func TestFoldValidationErrorsPassesThroughOtherErrors(t *testing.T) {
	msg := FoldValidationErrors(assert.AnError)
	assert.Equal(t, assert.AnError.Error(), msg)
}
