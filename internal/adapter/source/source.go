package source

import (
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"github.com/mmcdole/tablemap/internal/adapter/source/restaurants"
	"github.com/mmcdole/tablemap/internal/config"
	"github.com/mmcdole/tablemap/internal/domain"
)

// SourceConfig contains the configuration needed to create a fetcher
type SourceConfig struct {
	URL     string
	Timeout time.Duration
}

// NewClient creates the restaurant fetcher for cfg.
func NewClient(cfg *SourceConfig, logger *slog.Logger) (domain.RestaurantFetcher, error) {
	if cfg == nil {
		return nil, fmt.Errorf("source config is nil")
	}

	if cfg.URL == "" {
		return nil, fmt.Errorf("api URL is required")
	}

	u, err := url.Parse(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid api URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("unsupported api URL scheme: %q", u.Scheme)
	}

	return restaurants.NewClient(cfg.URL, cfg.Timeout, logger), nil
}

// NewClientFromConfig creates a fetcher from the application config
func NewClientFromConfig(cfg *config.Config, logger *slog.Logger) (domain.RestaurantFetcher, error) {
	return NewClient(&SourceConfig{
		URL:     cfg.API.URL,
		Timeout: cfg.API.Timeout,
	}, logger)
}
