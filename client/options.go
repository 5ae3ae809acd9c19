package client

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"dms/config"
	"dms/internal/logs"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

// HTTPDoer sends a single HTTP request. *http.Client satisfies it.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Options is passed by value to every call. Nothing in it is mutated by Call.
type Options struct {
	BaseURL string `validate:"required,url"`

	// Auth supplies credential headers. Nil sends none.
	Auth HeaderProvider `validate:"-"`

	// Headers are added to every request before the Auth headers.
	Headers http.Header `validate:"-"`

	UserAgent string

	// HTTPClient defaults to http.DefaultClient.
	HTTPClient HTTPDoer `validate:"-"`

	// Timeout bounds a whole call, including reading the body. Zero disables it.
	Timeout time.Duration `validate:"gte=0"`

	Logger *slog.Logger `validate:"-"`
}

//nolint:gochecknoglobals
var validate = validator.New()

// Validate checks that the options can address the API.
func (o Options) Validate() error {
	if err := validate.Struct(o); err != nil {
		return errors.Wrap(err, "invalid client options")
	}

	return nil
}

// NewOptions builds Options from the API section of cfg.
func NewOptions(cfg *config.Config, logger *slog.Logger) (Options, error) {
	if logger == nil {
		logger = logs.Discard()
	}

	headers := http.Header{}
	for k, v := range cfg.API.Headers {
		headers.Set(k, v)
	}

	opts := Options{
		BaseURL:    strings.TrimSpace(cfg.API.BaseURL),
		Headers:    headers,
		UserAgent:  cfg.API.UserAgent,
		HTTPClient: http.DefaultClient,
		Timeout:    cfg.API.Timeout,
		Logger:     logger,
	}

	if cfg.API.Token != "" {
		token := NewBearerToken(cfg.API.Token)
		if exp, ok := token.ExpiresAt(); ok && time.Now().After(exp) {
			logger.Warn("API token is already expired, requests will likely be rejected",
				slog.Time("expired_at", exp),
			)
		}
		opts.Auth = token
	}

	if err := opts.Validate(); err != nil {
		return Options{}, err
	}

	return opts, nil
}

func (o Options) logger() *slog.Logger {
	if o.Logger == nil {
		return logs.Discard()
	}

	return o.Logger
}

func (o Options) httpClient() HTTPDoer {
	if o.HTTPClient == nil {
		return http.DefaultClient
	}

	return o.HTTPClient
}
