package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRequestValidator_RegistersPlatformRule(t *testing.T) {
	var v *requestValidator
	require.NotPanics(t, func() { v = newRequestValidator() })

	assert.NoError(t, v.Validate(postRequest{Platform: "LinkedIn", Content: "hello"}))

	err := v.Validate(postRequest{Platform: "MySpace", Content: "hello"})
	var reqErr *RequestError
	require.ErrorAs(t, err, &reqErr)
	assert.Contains(t, reqErr.Fields, "platform")
}
