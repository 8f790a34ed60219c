package bootstrap

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	ServiceID string

	HTTPPort int
	GRPCPort int

	CatalogPath       string
	CatalogStrictLoad bool
	DefaultCurrency   string

	BaseURL            string
	SuccessURL         string
	DefaultCancelURL   string
	DefaultProductName string
	DefaultImageURL    string

	ListDefaultLimit int
	ListMaxLimit     int

	CORSAllowedOrigins []string

	RedisURL            string
	StripeSecretKey     string
	StripeWebhookSecret string

	EventDedupTTL time.Duration
}

type configFile struct {
	Service struct {
		ID       string `yaml:"id"`
		HTTPPort int    `yaml:"http_port"`
		GRPCPort int    `yaml:"grpc_port"`
	} `yaml:"service"`
	Catalog struct {
		Path            string `yaml:"path"`
		StrictLoad      *bool  `yaml:"strict_load"`
		DefaultCurrency string `yaml:"default_currency"`
	} `yaml:"catalog"`
	Checkout struct {
		BaseURL            string `yaml:"base_url"`
		SuccessURL         string `yaml:"success_url"`
		CancelURL          string `yaml:"cancel_url"`
		DefaultProductName string `yaml:"default_product_name"`
		DefaultImageURL    string `yaml:"default_image_url"`
	} `yaml:"checkout"`
	Listing struct {
		DefaultLimit int `yaml:"default_limit"`
		MaxLimit     int `yaml:"max_limit"`
	} `yaml:"listing"`
	HTTP struct {
		CORSAllowedOrigins []string `yaml:"cors_allowed_origins"`
	} `yaml:"http"`
	Dependencies struct {
		RedisURL string `yaml:"redis_url"`
	} `yaml:"dependencies"`
	Webhook struct {
		DedupTTLHours int `yaml:"dedup_ttl_hours"`
	} `yaml:"webhook"`
}

// LoadConfig layers defaults, the yaml config file and environment
// variables, in that order. The Stripe secret key must come from the
// environment and its absence is fatal: the gateway must not accept
// traffic it cannot complete a checkout for.
func LoadConfig(path string) (Config, error) {
	cfg := Config{
		ServiceID:          "checkout-gateway",
		HTTPPort:           8080,
		GRPCPort:           9090,
		CatalogPath:        "catalog.csv",
		CatalogStrictLoad:  true,
		DefaultCurrency:    "EUR",
		BaseURL:            "http://localhost:8080",
		DefaultProductName: "Producto",
		ListDefaultLimit:   10,
		ListMaxLimit:       100,
		EventDedupTTL:      7 * 24 * time.Hour,
	}

	raw, err := os.ReadFile(path)
	if err == nil {
		var f configFile
		if unmarshalErr := yaml.Unmarshal(raw, &f); unmarshalErr != nil {
			return Config{}, fmt.Errorf("parse config file: %w", unmarshalErr)
		}
		if f.Service.ID != "" {
			cfg.ServiceID = f.Service.ID
		}
		if f.Service.HTTPPort > 0 {
			cfg.HTTPPort = f.Service.HTTPPort
		}
		if f.Service.GRPCPort > 0 {
			cfg.GRPCPort = f.Service.GRPCPort
		}
		if f.Catalog.Path != "" {
			cfg.CatalogPath = f.Catalog.Path
		}
		if f.Catalog.StrictLoad != nil {
			cfg.CatalogStrictLoad = *f.Catalog.StrictLoad
		}
		if f.Catalog.DefaultCurrency != "" {
			cfg.DefaultCurrency = f.Catalog.DefaultCurrency
		}
		if f.Checkout.BaseURL != "" {
			cfg.BaseURL = f.Checkout.BaseURL
		}
		cfg.SuccessURL = f.Checkout.SuccessURL
		cfg.DefaultCancelURL = f.Checkout.CancelURL
		if f.Checkout.DefaultProductName != "" {
			cfg.DefaultProductName = f.Checkout.DefaultProductName
		}
		cfg.DefaultImageURL = f.Checkout.DefaultImageURL
		if f.Listing.DefaultLimit > 0 {
			cfg.ListDefaultLimit = f.Listing.DefaultLimit
		}
		if f.Listing.MaxLimit > 0 {
			cfg.ListMaxLimit = f.Listing.MaxLimit
		}
		if len(f.HTTP.CORSAllowedOrigins) > 0 {
			cfg.CORSAllowedOrigins = trimNonEmpty(f.HTTP.CORSAllowedOrigins)
		}
		cfg.RedisURL = f.Dependencies.RedisURL
		if f.Webhook.DedupTTLHours > 0 {
			cfg.EventDedupTTL = time.Duration(f.Webhook.DedupTTLHours) * time.Hour
		}
	}

	cfg.HTTPPort = envInt("HTTP_PORT", cfg.HTTPPort)
	cfg.GRPCPort = envInt("GRPC_PORT", cfg.GRPCPort)
	cfg.CatalogPath = envOrDefault("CATALOG_PATH", cfg.CatalogPath)
	cfg.CatalogStrictLoad = envBool("CATALOG_STRICT_LOAD", cfg.CatalogStrictLoad)
	cfg.DefaultCurrency = strings.ToUpper(envOrDefault("DEFAULT_CURRENCY", cfg.DefaultCurrency))
	cfg.BaseURL = envOrDefault("BASE_URL", cfg.BaseURL)
	cfg.SuccessURL = envOrDefault("SUCCESS_URL", cfg.SuccessURL)
	cfg.DefaultCancelURL = envOrDefault("CANCEL_URL", cfg.DefaultCancelURL)
	cfg.DefaultProductName = envOrDefault("DEFAULT_PRODUCT_NAME", cfg.DefaultProductName)
	cfg.DefaultImageURL = envOrDefault("DEFAULT_IMAGE_URL", cfg.DefaultImageURL)
	cfg.CORSAllowedOrigins = envCSV("CORS_ALLOWED_ORIGINS", cfg.CORSAllowedOrigins)
	cfg.RedisURL = envOrDefault("REDIS_URL", cfg.RedisURL)
	cfg.StripeSecretKey = os.Getenv("STRIPE_SECRET_KEY")
	cfg.StripeWebhookSecret = os.Getenv("STRIPE_WEBHOOK_SECRET")
	cfg.EventDedupTTL = time.Duration(envInt("EVENT_DEDUP_TTL_HOURS", int(cfg.EventDedupTTL.Hours()))) * time.Hour

	base := strings.TrimRight(cfg.BaseURL, "/")
	if cfg.SuccessURL == "" {
		cfg.SuccessURL = base + "/gracias?session_id={CHECKOUT_SESSION_ID}"
	}
	if cfg.DefaultCancelURL == "" {
		cfg.DefaultCancelURL = base + "/"
	}

	if cfg.StripeSecretKey == "" {
		return Config{}, fmt.Errorf("STRIPE_SECRET_KEY is required")
	}
	return cfg, nil
}

func envOrDefault(name, fallback string) string {
	if value := os.Getenv(name); value != "" {
		return value
	}
	return fallback
}

func envInt(name string, fallback int) int {
	raw := os.Getenv(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}

func envBool(name string, fallback bool) bool {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return fallback
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return fallback
	}
	return v
}

func envCSV(name string, fallback []string) []string {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return fallback
	}
	return trimNonEmpty(strings.Split(raw, ","))
}

func trimNonEmpty(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		trimmed := strings.TrimSpace(v)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
