package sitedesk

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// SiteConfig holds all configuration for a sitedesk console.
type SiteConfig struct {
	Name string `env:"SITE_NAME" envDefault:"Association Console"`
	URL  string `env:"SITE_URL" envDefault:"http://localhost:3000"` // canonical URL used by the feed

	Addr         string `env:"ADDR" envDefault:":3000"`
	DatabasePath string `env:"DATABASE_PATH" envDefault:"data/sitedesk.db"`
	KeyPrefix    string `env:"KEY_PREFIX"` // e.g. "nsm_" to share keys with the legacy site

	AdminPassword string        `env:"ADMIN_PASSWORD"` // required
	SessionSecret string        `env:"SESSION_SECRET"` // required
	CookieSecure  bool          `env:"COOKIE_SECURE"`
	SessionWindow time.Duration `env:"SESSION_WINDOW" envDefault:"8h"`

	Locale         string   `env:"LOCALE" envDefault:"en-IN"`
	CurrencySymbol string   `env:"CURRENCY_SYMBOL" envDefault:"₹"`
	Timezone       string   `env:"TIMEZONE" envDefault:"Asia/Kolkata"`
	ChapterTypes   []string `env:"CHAPTER_TYPES" envSeparator:"," envDefault:"local,regional,international"`
	FirstYear      int      `env:"FIRST_YEAR" envDefault:"1993"`
}

// LoadConfig reads a SiteConfig from the environment.
func LoadConfig() (SiteConfig, error) {
	var cfg SiteConfig
	if err := env.Parse(&cfg); err != nil {
		return SiteConfig{}, fmt.Errorf("parse env: %w", err)
	}
	cfg.ChapterTypes = FilterEmpty(cfg.ChapterTypes)
	return cfg, nil
}

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = "Association Console"
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.DatabasePath == "" {
		c.DatabasePath = "data/sitedesk.db"
	}
	if c.SessionWindow == 0 {
		c.SessionWindow = 8 * time.Hour
	}
	if c.Locale == "" {
		c.Locale = "en-IN"
	}
	if c.CurrencySymbol == "" {
		c.CurrencySymbol = "₹"
	}
	if c.Timezone == "" {
		c.Timezone = "UTC"
	}
	if c.FirstYear == 0 {
		c.FirstYear = FirstYear
	}
}

func (c SiteConfig) validate() error {
	if c.AdminPassword == "" {
		return fmt.Errorf("sitedesk: AdminPassword is required")
	}
	if c.SessionSecret == "" {
		return fmt.Errorf("sitedesk: SessionSecret is required")
	}
	return nil
}

// Option configures additional App behavior.
type Option func(*App)

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback receives the App before the server starts.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithDecoder replaces the image decoder used by the photo pipelines.
func WithDecoder(fn DecodeFunc) Option {
	return func(a *App) {
		a.decode = fn
	}
}

// WithClock replaces the clock used to stamp records and to gate sessions.
func WithClock(now func() time.Time) Option {
	return func(a *App) {
		a.now = now
	}
}
