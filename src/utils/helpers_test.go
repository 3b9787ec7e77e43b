package utils

import (
	"os"
	"regexp"
	"testing"

	"crs/src/types"

	"github.com/golang-jwt/jwt/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestNewReferenceCode(t *testing.T) {
	code := NewReferenceCode("Jane Doe")
	assert.Regexp(t, regexp.MustCompile(`^jane-doe-[0-9a-f]{8}$`), code)

	// Accents are slugged away.
	assert.Regexp(t, regexp.MustCompile(`^jurgen-muller-[0-9a-f]{8}$`), NewReferenceCode("Jürgen Müller"))

	assert.NotEqual(t, NewReferenceCode("Jane Doe"), NewReferenceCode("Jane Doe"))
}

func TestGenerateJWT(t *testing.T) {
	os.Setenv("JWT_SECRET", "test-secret")
	defer os.Unsetenv("JWT_SECRET")

	signed, err := GenerateJWT("staff@example.com", 7, "staff")
	assert.Nil(t, err)
	assert.NotEmpty(t, signed)

	claims := &types.Claims{}
	token, err := jwt.ParseWithClaims(signed, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	assert.Nil(t, err)
	assert.True(t, token.Valid)
	assert.Equal(t, "staff@example.com", claims.Username)
	assert.Equal(t, "staff", claims.Role)
	assert.Equal(t, "7", claims.Subject)
	assert.True(t, claims.ExpiresAt.After(claims.IssuedAt.Time))
}

func TestWithSuffix(t *testing.T) {
	os.Unsetenv("API_ENV")
	assert.Equal(t, "ReceiptJobs", WithSuffix("ReceiptJobs"))

	os.Setenv("API_ENV", "production")
	assert.Equal(t, "ReceiptJobs", WithSuffix("ReceiptJobs"))

	os.Setenv("API_ENV", "staging")
	assert.Equal(t, "ReceiptJobs-staging", WithSuffix("ReceiptJobs"))
	os.Unsetenv("API_ENV")
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "EUR 10.00", FormatAmount(decimal.NewFromInt(10), "eur"))
	assert.Equal(t, "USD 1234.50", FormatAmount(decimal.RequireFromString("1234.5"), "USD"))
}
