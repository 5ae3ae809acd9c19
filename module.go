// Package dms wires the device management client into an Fx application.
//
//	fx.New(dms.Module, fx.Invoke(func(events endpoints.DeviceEventOperations) { ... }))
package dms

import (
	"dms/client"
	"dms/config"
	"dms/endpoints"
	"dms/internal/logs"

	"go.uber.org/fx"
)

// Module provides config, logger, client options and endpoint operations.
//
//nolint:gochecknoglobals
var Module = fx.Options(
	config.Module,
	logs.Module,
	client.Module,
	endpoints.Module,
)
