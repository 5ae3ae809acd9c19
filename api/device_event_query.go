package api

import "time"

// DeviceEventQueryParams filters a device event query. Nil fields are not sent.
type DeviceEventQueryParams struct {
	ID             *string
	DeviceID       *string // Device for which to retrieve events
	OrganizationID *string // Organization for which to retrieve events
	DateStart      *time.Time
	DateEnd        *time.Time
	// Offset into the query results. The server returns at most 1000 items
	// per request.
	Offset *int
}
