package restaurants

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/mmcdole/tablemap/internal/domain"
)

const (
	defaultTimeout = 30 * time.Second
	userAgent      = "Tablemap/1.0"
)

// Client implements domain.RestaurantFetcher over HTTP
type Client struct {
	url        string
	httpClient *http.Client
	validate   *validator.Validate
	logger     *slog.Logger
}

// NewClient creates a new restaurant API client
func NewClient(url string, timeout time.Duration, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		url: url,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		validate: validator.New(),
		logger:   logger,
	}
}

// doRequest performs a GET and returns the body of a 2xx response
func (c *Client) doRequest(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	c.logger.Debug("restaurant request", "url", c.url)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("restaurant request failed", "error", err)
		return nil, &domain.TransportError{Err: fmt.Errorf("%w: %w", domain.ErrServerOffline, err)}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &domain.TransportError{Err: fmt.Errorf("failed to read response: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Error("restaurant request error", "status", resp.StatusCode, "bodyLen", len(body))
		return nil, &domain.TransportError{
			StatusCode: resp.StatusCode,
			Status:     http.StatusText(resp.StatusCode),
		}
	}

	return body, nil
}

// parseResponse decodes and validates the envelope
func (c *Client) parseResponse(body []byte) ([]domain.Restaurant, error) {
	var resp APIResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		c.logger.Error("JSON parse error", "error", err, "bodyLen", len(body))
		return nil, &domain.TransportError{Err: fmt.Errorf("%w: %w", domain.ErrUnexpectedResponse, err)}
	}

	if err := c.validate.Struct(resp); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			c.logger.Error("response envelope invalid", "field", verrs[0].Namespace())
		}
		return nil, &domain.TransportError{Err: domain.ErrUnexpectedResponse}
	}

	return resp.Data.Restaurant.Items, nil
}

// FetchRestaurants returns the full restaurant collection
func (c *Client) FetchRestaurants(ctx context.Context) ([]domain.Restaurant, error) {
	body, err := c.doRequest(ctx)
	if err != nil {
		return nil, err
	}

	items, err := c.parseResponse(body)
	if err != nil {
		return nil, err
	}

	c.logger.Debug("fetched restaurants", "count", len(items))
	return items, nil
}
