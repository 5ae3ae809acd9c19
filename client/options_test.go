package client

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"dms/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"
)

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "auth0|user",
		ExpiresAt: jwt.NewNumericDate(exp),
	})
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	return signed
}

func apiConfig(baseURL, token string) *config.Config {
	cfg := &config.Config{}
	cfg.API.BaseURL = baseURL
	cfg.API.Token = token
	cfg.API.Timeout = 10 * time.Second
	cfg.API.UserAgent = "dms-test"
	cfg.API.Headers = map[string]string{"x-tenant": "acme"}

	return cfg
}

func TestOptions_Validate(t *testing.T) {
	tests := []struct {
		name    string
		opts    Options
		wantErr bool
	}{
		{name: "valid", opts: Options{BaseURL: "https://dms.example.com/api"}},
		{name: "missing base url", opts: Options{}, wantErr: true},
		{name: "not a url", opts: Options{BaseURL: "dms"}, wantErr: true},
		{name: "negative timeout", opts: Options{BaseURL: "https://dms.example.com", Timeout: -time.Second}, wantErr: true},
		{name: "with client and auth", opts: Options{BaseURL: "http://localhost:8080", HTTPClient: &http.Client{}, Auth: StaticHeaders{}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNewOptions_FromConfig(t *testing.T) {
	opts, err := NewOptions(apiConfig(" https://dms.example.com/api ", "static-token"), nil)
	require.NoError(t, err)

	assert.Equal(t, "https://dms.example.com/api", opts.BaseURL)
	assert.Equal(t, 10*time.Second, opts.Timeout)
	assert.Equal(t, "dms-test", opts.UserAgent)
	assert.Equal(t, "acme", opts.Headers.Get("X-Tenant"))
	assert.NotNil(t, opts.Logger)
	assert.Equal(t, http.DefaultClient, opts.HTTPClient)

	headers, err := opts.Auth.Headers(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer static-token", headers.Get("Authorization"))
}

func TestNewOptions_NoTokenMeansNoAuth(t *testing.T) {
	opts, err := NewOptions(apiConfig("https://dms.example.com", ""), nil)
	require.NoError(t, err)
	assert.Nil(t, opts.Auth)
}

func TestNewOptions_InvalidBaseURL(t *testing.T) {
	_, err := NewOptions(apiConfig("", ""), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid client options")
}

func TestNewOptions_WarnsOnExpiredToken(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	_, err := NewOptions(apiConfig("https://dms.example.com", signedToken(t, time.Now().Add(-time.Hour))), logger)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "API token is already expired")
}

func TestBearerToken_ExpiresAt(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)

	got, ok := NewBearerToken(signedToken(t, exp)).ExpiresAt()
	require.True(t, ok)
	assert.True(t, exp.Equal(got))

	_, ok = NewBearerToken("opaque-api-key").ExpiresAt()
	assert.False(t, ok)
}

func TestStaticHeaders_ReturnsCopy(t *testing.T) {
	provider := StaticHeaders{"X-Api-Key": {"k1"}}

	headers, err := provider.Headers(context.Background())
	require.NoError(t, err)
	headers.Set("X-Api-Key", "changed")

	again, err := provider.Headers(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "k1", again.Get("X-Api-Key"))
}

func TestModule_ProvidesOptions(t *testing.T) {
	doer := &mockDoer{}
	var opts Options

	app := fxtest.New(t,
		fx.Supply(apiConfig("https://dms.example.com", "static-token")),
		fx.Provide(func() *slog.Logger { return slog.New(slog.DiscardHandler) }),
		fx.Provide(func() HTTPDoer { return doer }),
		Module,
		fx.Populate(&opts),
	)
	app.RequireStart().RequireStop()

	assert.Equal(t, "https://dms.example.com", opts.BaseURL)
	assert.Same(t, doer, opts.HTTPClient)
	assert.NotNil(t, opts.Auth)
}

func TestProvideOptions_NilLogger(t *testing.T) {
	var opts Options
	require.NotPanics(t, func() {
		var err error
		opts, err = ProvideOptions(OptionsParams{Config: apiConfig("https://api.example.com", "")})
		require.NoError(t, err)
	})
	assert.NotNil(t, opts.Logger)
	assert.Equal(t, "https://api.example.com", opts.BaseURL)
}
