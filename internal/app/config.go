package app

import (
	"time"

	"github.com/cristalhq/aconfig"
	"github.com/cristalhq/aconfig/aconfigyaml"
	"github.com/go-faster/errors"

	"github.com/Averus89/shopapp/internal/domain/promo"
)

// Config holds the complete application configuration, loadable from
// environment variables (SHOP_ prefix), flags, or YAML config files.
type Config struct {
	Addr string `default:"0.0.0.0:8080" usage:"API server listen address"`
	// DatabaseURL selects PostgreSQL storage. When empty the server runs on
	// in-memory stores seeded with the embedded catalog (local/demo mode).
	DatabaseURL string `usage:"PostgreSQL connection URL (SHOP_DATABASE_URL); empty runs in-memory" flag:"database-url"`
	// Promotions is the promotion rule table. When empty the default rule
	// set is used: 30% off every second apple, one free orange per two paid.
	Promotions []promo.Config `usage:"Promotion rules (config file only)"`
	RateLimit  RateLimitConfig
	CORS       CORSConfig
	Graceful   GracefulConfig
}

// RateLimitConfig controls the per-client sliding window rate limiter.
type RateLimitConfig struct {
	Max    int           `default:"100" usage:"Max requests per window"`
	Window time.Duration `default:"1m"  usage:"Rate limit window duration"`
}

// CORSConfig controls Cross-Origin Resource Sharing headers.
type CORSConfig struct {
	Origins          []string `default:"*" usage:"Allowed CORS origins"`
	AllowCredentials bool     `default:"false" usage:"Allow credentials (cookies, auth headers)" flag:"cors-credentials"`
}

// GracefulConfig controls graceful shutdown timing.
type GracefulConfig struct {
	ReadinessDelay  time.Duration `default:"3s"  usage:"Delay after readiness=false before shutdown" flag:"readiness-delay"`
	ShutdownTimeout time.Duration `default:"15s" usage:"Maximum shutdown duration" flag:"shutdown-timeout"`
}

// DefaultPromotions is the rule set used when none is configured: the two
// shipped rule variants keyed to the seeded catalog.
func DefaultPromotions() []promo.Config {
	return []promo.Config{
		{Product: "apple", Type: promo.TypeAlternatingDiscount, Percent: 30, Every: 2},
		{Product: "orange", Type: promo.TypeBonusUnit, Every: 2},
	}
}

// LoadConfig loads configuration from environment variables, flags, and
// YAML config files.
func LoadConfig() (*Config, error) {
	var cfg Config
	loader := aconfig.LoaderFor(&cfg, aconfig.Config{
		EnvPrefix: "SHOP",
		Files:     []string{"config.yaml", "/etc/shopapp/config.yaml"},
		FileDecoders: map[string]aconfig.FileDecoder{
			".yaml": aconfigyaml.New(),
		},
	})
	if err := loader.Load(); err != nil {
		return nil, errors.Wrap(err, "load config")
	}

	if len(cfg.Promotions) == 0 {
		cfg.Promotions = DefaultPromotions()
	}

	return &cfg, nil
}
