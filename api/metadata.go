package api

import "time"

// Metadata is the bookkeeping block attached to every entity.
type Metadata struct {
	CreatedAt time.Time  `json:"created_at"`
	CreatedBy string     `json:"created_by"` // Auth0 user ID
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
	DeletedBy *string    `json:"deleted_by,omitempty"` // Auth0 user ID
}

// Deleted reports whether the entity is soft-deleted.
func (m Metadata) Deleted() bool {
	return m.DeletedAt != nil && m.DeletedBy != nil
}

// Consistent reports whether deleted_at and deleted_by are both set or both absent.
func (m Metadata) Consistent() bool {
	return (m.DeletedAt == nil) == (m.DeletedBy == nil)
}
