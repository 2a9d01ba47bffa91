package domain

import "time"

// User is a person who can be recorded as the actor of a ledger change.
type User struct {
	UserID string `json:"userID"`
	Name   string `json:"name"`
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty"`
}

// IsDeleted reports whether the user has been soft deleted.
func (u User) IsDeleted() bool {
	return u.DeletedAt != nil
}
