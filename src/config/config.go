package config

import (
	"fmt"
	"os"
	"strconv"
)

func GetDSN() string {
	DATABASE_HOST := os.Getenv("DATABASE_HOST")
	DATABASE_PORT := os.Getenv("DATABASE_PORT")
	DATABASE_SSLMODE := os.Getenv("DATABASE_SSLMODE")
	DATABASE_TIMEZONE := os.Getenv("DATABASE_TIMEZONE")
	DATABASE_USER := os.Getenv("DATABASE_USER")
	DATABASE_PASSWORD := os.Getenv("DATABASE_PASSWORD")
	DATABASE_NAME := os.Getenv("DATABASE_NAME")
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=%s", DATABASE_HOST, DATABASE_USER, DATABASE_PASSWORD, DATABASE_NAME, DATABASE_PORT, DATABASE_SSLMODE, DATABASE_TIMEZONE)
	return dsn
}

const TIME_PARSE_FORMAT = "2006-01-02 15:04:05 -07:00"

// AppSettings is the ambient configuration the payment service depends on.
// It is loaded once at startup and injected at construction so the
// reconciliation core never reads env state of its own.
type AppSettings struct {
	AppHost                string
	AssetHost              string
	DefaultCurrency        string
	PaymentLinkExpiryHours int
	DepositExpiryHours     int
	DefaultPaymentMethod   string
	MailFrom               string
	MailFromName           string
	EmailQueue             string
	ReceiptQueue           string
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

func LoadAppSettings() AppSettings {
	return AppSettings{
		AppHost:                os.Getenv("APP_HOST"),
		AssetHost:              envOr("ASSET_HOST", os.Getenv("APP_HOST")),
		DefaultCurrency:        envOr("DEFAULT_CURRENCY", "EUR"),
		PaymentLinkExpiryHours: envIntOr("PAYMENT_LINK_EXPIRY_HOURS", 24),
		DepositExpiryHours:     envIntOr("DEPOSIT_EXPIRY_HOURS", 24),
		DefaultPaymentMethod:   envOr("DEFAULT_PAYMENT_METHOD", "card"),
		MailFrom:               envOr("MAIL_FROM", "bookings@example.com"),
		MailFromName:           envOr("MAIL_FROM_NAME", "Rental Office"),
		EmailQueue:             envOr("EMAIL_QUEUE", "ReceiptEmails"),
		ReceiptQueue:           envOr("RECEIPT_QUEUE", "ReceiptJobs"),
	}
}
