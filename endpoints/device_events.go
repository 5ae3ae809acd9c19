// Package endpoints exposes resource operations on top of client.Call.
package endpoints

import (
	"context"
	"net/http"

	"dms/api"
	"dms/client"

	"go.uber.org/fx"
)

const (
	// deviceEventsPath is the resource device events are queried from.
	deviceEventsPath = "/devices"

	// MaxPageSize is the most items the server returns for one query.
	MaxPageSize = 1000
)

// DeviceEventOperations queries device events.
type DeviceEventOperations interface {
	// Query returns at most MaxPageSize events. Callers page by advancing
	// params.Offset; Query itself makes exactly one request.
	Query(ctx context.Context, params api.DeviceEventQueryParams) ([]api.DeviceEvent, error)
}

type deviceEventOperations struct {
	opts client.Options
}

// NewDeviceEventOperations binds device event operations to opts.
func NewDeviceEventOperations(opts client.Options) DeviceEventOperations {
	return &deviceEventOperations{opts: opts}
}

func (o *deviceEventOperations) Query(ctx context.Context, params api.DeviceEventQueryParams) ([]api.DeviceEvent, error) {
	path := client.WithQuery(deviceEventsPath, deviceEventQuery(params))

	events, err := client.Call[client.NoBody, []api.DeviceEvent](ctx, http.MethodGet, path, o.opts, nil)
	if err != nil {
		return nil, err
	}

	if events == nil {
		events = []api.DeviceEvent{}
	}

	return events, nil
}

func deviceEventQuery(p api.DeviceEventQueryParams) client.Params {
	return client.Params{}.
		Add("id", client.StringPtr(p.ID)).
		Add("device_id", client.StringPtr(p.DeviceID)).
		Add("organization_id", client.StringPtr(p.OrganizationID)).
		Add("date_start", client.TimePtr(p.DateStart)).
		Add("date_end", client.TimePtr(p.DateEnd)).
		Add("offset", client.IntPtr(p.Offset))
}

// Module provides DeviceEventOperations
//
//nolint:gochecknoglobals
var Module = fx.Options(
	fx.Provide(NewDeviceEventOperations),
)
