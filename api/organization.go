package api

import "encoding/json"

// OrganizationRequest holds the client-writable fields of an organization.
type OrganizationRequest struct {
	Name string `json:"name"`
}

// Organization is an organization as returned by the server.
type Organization struct {
	ID   string   `json:"id"`
	Meta Metadata `json:"meta"`
	OrganizationRequest
}

// Permission is a scope granted to an API user.
type Permission string

const (
	PermissionDevicesCreate Permission = "devices:create"
	PermissionDevicesUpdate Permission = "devices:update"
	PermissionDevicesDelete Permission = "devices:delete"
)

// Profile is the user profile document. Its values are kept undecoded.
type Profile map[string]json.RawMessage
