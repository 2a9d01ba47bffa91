package repositories

import (
	"context"

	"github.com/SscSPs/farm_ledger/internal/core/domain"
)

// UserReader defines read operations for user data
type UserReader interface {
	// FindUserByID retrieves a specific user by their ID, including soft deleted users.
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)
}
