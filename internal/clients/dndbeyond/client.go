// Package dndbeyond fetches character documents from the D&D Beyond
// character service.
package dndbeyond

//go:generate mockgen -destination=mock/mock_client.go -package=dndbeyondmock github.com/KirkDiggler/ddb-converter/internal/clients/dndbeyond Client

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/tidwall/gjson"

	"github.com/KirkDiggler/ddb-converter/internal/errors"
)

const (
	// DefaultBaseURL is the public character service endpoint.
	DefaultBaseURL = "https://character-service.dndbeyond.com/character/v5/character/"

	maxBodyBytes = 16 << 20
)

// Client fetches raw character JSON.
type Client interface {
	// FetchCharacter returns the character document for a numeric id or
	// a dndbeyond.com character URL.
	FetchCharacter(ctx context.Context, characterID string) ([]byte, error)
}

// Config contains configuration options for the D&D Beyond client.
type Config struct {
	// BaseURL of the character service (optional, defaults to DefaultBaseURL)
	BaseURL string
	// HTTPTimeout per request (optional, defaults to 15 seconds)
	HTTPTimeout time.Duration
	// MaxAttempts including the first request (optional, defaults to 3)
	MaxAttempts uint
	// InitialInterval between retries (optional, defaults to 500ms)
	InitialInterval time.Duration
	// UserAgent sent with each request (optional)
	UserAgent string
	// HTTPClient overrides the default client (optional)
	HTTPClient *http.Client
}

// Validate validates the Config and sets defaults if not provided.
func (cfg *Config) Validate() error {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if !strings.HasPrefix(cfg.BaseURL, "http://") && !strings.HasPrefix(cfg.BaseURL, "https://") {
		return errors.InvalidArgumentf("base URL must be http or https: %s", cfg.BaseURL)
	}
	if !strings.HasSuffix(cfg.BaseURL, "/") {
		cfg.BaseURL += "/"
	}
	if cfg.HTTPTimeout == 0 {
		cfg.HTTPTimeout = 15 * time.Second
	}
	if cfg.MaxAttempts == 0 {
		cfg.MaxAttempts = 3
	}
	if cfg.InitialInterval == 0 {
		cfg.InitialInterval = 500 * time.Millisecond
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = "ddb-converter"
	}
	return nil
}

type client struct {
	http            *http.Client
	baseURL         string
	userAgent       string
	maxAttempts     uint
	initialInterval time.Duration
}

// New creates a new D&D Beyond client with the given configuration.
func New(cfg *Config) (Client, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.HTTPTimeout}
	}

	return &client{
		http:            httpClient,
		baseURL:         cfg.BaseURL,
		userAgent:       cfg.UserAgent,
		maxAttempts:     cfg.MaxAttempts,
		initialInterval: cfg.InitialInterval,
	}, nil
}

var characterURLPattern = regexp.MustCompile(`(?i)dndbeyond\.com/(?:profile/[^/]+/)?characters/(\d+)`)

// ParseCharacterID accepts a numeric id or a character sheet URL and returns
// the numeric id.
func ParseCharacterID(input string) (string, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", errors.InvalidArgument("character id is required")
	}
	if m := characterURLPattern.FindStringSubmatch(input); m != nil {
		input = m[1]
	}
	id, err := strconv.ParseInt(input, 10, 64)
	if err != nil || id <= 0 {
		return "", errors.InvalidArgumentf("invalid character id: %s", input)
	}
	return strconv.FormatInt(id, 10), nil
}

func (c *client) FetchCharacter(ctx context.Context, characterID string) ([]byte, error) {
	id, err := ParseCharacterID(characterID)
	if err != nil {
		return nil, err
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = c.initialInterval

	attempt := 0
	body, err := backoff.Retry(ctx, func() ([]byte, error) {
		attempt++
		data, err := c.fetch(ctx, id)
		if err == nil {
			return data, nil
		}
		if !errors.IsRetryable(err) {
			return nil, backoff.Permanent(err)
		}
		slog.WarnContext(ctx, "Retrying character fetch",
			"character_id", id,
			"attempt", attempt,
			"error", err)
		return nil, err
	}, backoff.WithBackOff(policy), backoff.WithMaxTries(c.maxAttempts))
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "Fetched character",
		"character_id", id,
		"attempts", attempt,
		"bytes", len(body))
	return body, nil
}

func (c *client) fetch(ctx context.Context, id string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+id, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to build character request")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, errors.FromTransportError(err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, errors.FromHTTPStatus(resp.StatusCode, id)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, errors.FromTransportError(err)
	}

	// The service answers 200 with success=false for private characters.
	if envelope := gjson.GetBytes(body, "success"); envelope.Exists() && !envelope.Bool() {
		msg := gjson.GetBytes(body, "message").String()
		if msg == "" {
			msg = fmt.Sprintf("character %s is unavailable", id)
		}
		return nil, errors.PermissionDenied(msg).WithCharacter(id)
	}

	return body, nil
}
