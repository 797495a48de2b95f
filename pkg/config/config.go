package config

import (
	"os"
	"strconv"
	"strings"
)

type Config struct {
	ServiceName string

	ServerPort int
	LogLevel   string

	// DATABASE_URL may be a postgres:// DSN or a path to a sqlite file.
	DatabaseURL string

	SiteUser     string
	SitePassword string

	KafkaBrokers []string

	Mpesa MpesaConfig
}

type MpesaConfig struct {
	ConsumerKey    string
	ConsumerSecret string
	ShortCode      string
	Passkey        string
	BaseURL        string
	CallbackURL    string
	AccountRef     string
	TransactionDsc string
}

func Load() Config {
	return Config{
		ServiceName: EnvDefault("SERVICE_NAME", "perfume-shop"),

		ServerPort: EnvIntDefault("SERVER_PORT", 3000),
		LogLevel:   EnvDefault("LOG_LEVEL", "info"),

		DatabaseURL: EnvDefault("DATABASE_URL", "data/shop.db"),

		SiteUser:     EnvDefault("SITE_USER", "family"),
		SitePassword: EnvDefault("SITE_PASSWORD", "perfume2026"),

		KafkaBrokers: CSV(os.Getenv("KAFKA_BROKERS")),

		Mpesa: MpesaConfig{
			ConsumerKey:    os.Getenv("MPESA_CONSUMER_KEY"),
			ConsumerSecret: os.Getenv("MPESA_CONSUMER_SECRET"),
			ShortCode:      os.Getenv("MPESA_SHORTCODE"),
			Passkey:        os.Getenv("MPESA_PASSKEY"),
			BaseURL:        EnvDefault("MPESA_BASE_URL", "https://sandbox.safaricom.co.ke"),
			CallbackURL:    os.Getenv("MPESA_CALLBACK_URL"),
			AccountRef:     EnvDefault("MPESA_ACCOUNT_REF", "FirstClassPerfume"),
			TransactionDsc: EnvDefault("MPESA_TRANSACTION_DESC", "Payment for Perfume"),
		},
	}
}

func CSV(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func EnvDefault(key, def string) string {
	if os.Getenv(key) != "" {
		return os.Getenv(key)
	}
	return def
}

func EnvIntDefault(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
