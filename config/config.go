package config

import (
	"time"

	"github.com/pitabwire/frame/config"
)

// CatalogConfig holds configuration for the voice catalog service.
type CatalogConfig struct {
	config.ConfigurationDefault

	// PayloadSource is an http(s) URL or a local file path. File sources
	// can be hot-reloaded; URLs are fetched exactly once at startup.
	PayloadSource  string `envDefault:"./data/voices-site.json" env:"PAYLOAD_SOURCE"`
	PayloadOverlay string `envDefault:""                        env:"PAYLOAD_OVERLAY"`
	PayloadTimeout int    `envDefault:"30"                      env:"PAYLOAD_TIMEOUT_SEC"`
	WatchPayload   bool   `envDefault:"true"                    env:"WATCH_PAYLOAD"`

	VoicesPageSize    int `envDefault:"24" env:"VOICES_PAGE_SIZE"`
	SolutionsPageSize int `envDefault:"12" env:"SOLUTIONS_PAGE_SIZE"`
	MatchesPageSize   int `envDefault:"10" env:"MATCHES_PAGE_SIZE"`

	RateLimitRPS   float64 `envDefault:"50"  env:"RATE_LIMIT_RPS"`
	RateLimitBurst int     `envDefault:"100" env:"RATE_LIMIT_BURST"`
}

// PayloadFetchTimeout converts the configured fetch timeout to a duration.
func (c *CatalogConfig) PayloadFetchTimeout() time.Duration {
	return time.Duration(c.PayloadTimeout) * time.Second
}
