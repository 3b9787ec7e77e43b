package utils

import (
	"crs/src/types"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/shopspring/decimal"
)

// NewReferenceCode builds the human-readable booking reference shown on
// payment pages and receipts, e.g. "jane-doe-4f21a0".
func NewReferenceCode(name string) string {
	suffix := strings.Split(uuid.NewString(), "-")[0]
	return fmt.Sprintf("%s-%s", slug.Make(name), suffix)
}

func GenerateJWT(email string, userId uint, role string) (string, error) {
	secret := os.Getenv("JWT_SECRET")
	now := time.Now()
	claims := types.Claims{
		Username: email,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   fmt.Sprint(userId),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(24 * time.Hour)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		log.Printf("Error signing token: %s\n", err.Error())
		return "", err
	}
	return signed, nil
}

func IsProd() bool {
	return os.Getenv("API_ENV") == "production"
}

// WithSuffix appends the environment name to a queue name so local,
// staging and production workers never share a queue.
func WithSuffix(name string) string {
	env := os.Getenv("API_ENV")
	if env == "" || env == "production" {
		return name
	}
	return fmt.Sprintf("%s-%s", name, env)
}

func FormatAmount(amount decimal.Decimal, currency string) string {
	return fmt.Sprintf("%s %s", strings.ToUpper(currency), amount.StringFixed(2))
}
