package api

import "time"

// DeviceType is the hardware family of a device.
type DeviceType string

const DeviceTypeEloview DeviceType = "eloview"

// DeviceState is the lifecycle state of a device.
type DeviceState string

const (
	DeviceStateCreated DeviceState = "created"
	// DeviceStateInstalled devices carry a Location. The server enforces this.
	DeviceStateInstalled DeviceState = "installed"
)

// DeviceStatus is the last known liveness of a device.
type DeviceStatus struct {
	HardwareOnline bool       `json:"hardware_online"`
	SoftwareOnline bool       `json:"software_online"`
	LastSeen       *time.Time `json:"last_seen,omitempty"`
}

// DeviceRequest holds the client-writable fields of a device.
type DeviceRequest struct {
	Name           string      `json:"name"`
	SiteName       *string     `json:"site_name,omitempty"` // Building or property the device is located in
	HardwareID     string      `json:"hardware_id"`
	SourceID       string      `json:"source_id"` // Provider's ID for this device
	OrganizationID string      `json:"organization_id"`
	LicenseExpiry  *string     `json:"license_expiry,omitempty"`  // RFC 3339 date
	WarrantyExpiry *string     `json:"warranty_expiry,omitempty"` // RFC 3339 date
	Type           DeviceType  `json:"type"`
	State          DeviceState `json:"state"`
	Location       *Location   `json:"location,omitempty"`
}

// Device is a device as returned by the server.
type Device struct {
	ID     string       `json:"id"`
	Meta   Metadata     `json:"meta"`
	Status DeviceStatus `json:"status"`
	DeviceRequest
}
