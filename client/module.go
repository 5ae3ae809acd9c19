package client

import (
	"log/slog"

	"dms/config"

	"go.uber.org/fx"
)

// OptionsParams holds dependencies for Options, injected by Fx
type OptionsParams struct {
	fx.In

	Config *config.Config
	Logger *slog.Logger

	// HTTPClient replaces http.DefaultClient when provided.
	HTTPClient HTTPDoer `optional:"true"`
}

// ProvideOptions builds Options from the injected config.
func ProvideOptions(params OptionsParams) (Options, error) {
	opts, err := NewOptions(params.Config, params.Logger)
	if err != nil {
		return Options{}, err
	}

	if params.HTTPClient != nil {
		opts.HTTPClient = params.HTTPClient
	}

	opts.logger().Info("Device management client configured",
		slog.String("base_url", opts.BaseURL),
		slog.Bool("authenticated", opts.Auth != nil),
	)

	return opts, nil
}

// Module provides the client Options FX module
//
//nolint:gochecknoglobals
var Module = fx.Options(
	fx.Provide(ProvideOptions),
)
