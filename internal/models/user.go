package models

import "time"

// User is the row shape of the users table.
type User struct {
	UserID string `db:"user_id"`
	Name   string `db:"name"`
	AuditFields
	DeletedAt *time.Time `db:"deleted_at"`
}
