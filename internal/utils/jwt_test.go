// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Ivan Volkov

package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateJWTToken(t *testing.T) {
	token, err := GenerateJWTToken("vault-sync", 42, time.Hour, "secret")
	require.NoError(t, err)
	require.NotEmpty(t, token.SignedString)

	parsed, err := ValidateAndParseJWTToken(token.SignedString, "secret", "vault-sync")
	require.NoError(t, err)
	assert.Equal(t, int64(42), parsed.UserID)
}

func TestValidateJWTToken_WrongKey(t *testing.T) {
	token, err := GenerateJWTToken("vault-sync", 42, time.Hour, "secret")
	require.NoError(t, err)

	_, err = ValidateAndParseJWTToken(token.SignedString, "other-secret", "vault-sync")
	assert.Error(t, err)
}

func TestValidateJWTToken_WrongIssuer(t *testing.T) {
	token, err := GenerateJWTToken("vault-sync", 42, time.Hour, "secret")
	require.NoError(t, err)

	_, err = ValidateAndParseJWTToken(token.SignedString, "secret", "someone-else")
	assert.Error(t, err)
}

func TestGenerateJWTToken_InvalidParams(t *testing.T) {
	_, err := GenerateJWTToken("", 42, time.Hour, "secret")
	assert.Error(t, err)

	_, err = GenerateJWTToken("vault-sync", 42, 0, "secret")
	assert.Error(t, err)
}

func TestParseBearerToken(t *testing.T) {
	token, err := ParseBearerToken("Bearer abc.def.ghi")
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", token)

	_, err = ParseBearerToken("abc.def.ghi")
	assert.ErrorIs(t, err, ErrInvalidBearerToken)

	_, err = ParseBearerToken("Bearer ")
	assert.ErrorIs(t, err, ErrInvalidBearerToken)
}
