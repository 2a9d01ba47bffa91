package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/SscSPs/farm_ledger/internal/apperrors"
	"github.com/SscSPs/farm_ledger/internal/core/domain"
	portsrepo "github.com/SscSPs/farm_ledger/internal/core/ports/repositories"
	"github.com/SscSPs/farm_ledger/internal/core/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// --- Mock UserReader ---
type MockUserRepository struct {
	mock.Mock
}

var _ portsrepo.UserReader = (*MockUserRepository)(nil)

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func TestActorResolver(t *testing.T) {
	ctx := context.Background()
	deletedAt := time.Now()

	tests := []struct {
		name   string
		userID string
		user   *domain.User
		err    error
		want   string
	}{
		{name: "live user", userID: "u1", user: &domain.User{UserID: "u1"}, want: "u1"},
		{name: "deleted user", userID: "u2", user: &domain.User{UserID: "u2", DeletedAt: &deletedAt}, want: ""},
		{name: "unknown user", userID: "u3", err: apperrors.ErrNotFound, want: ""},
		{name: "lookup failure", userID: "u4", err: errors.New("connection refused"), want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockUserRepository)
			repo.On("FindUserByID", ctx, tt.userID).Return(tt.user, tt.err).Once()

			got := services.NewActorResolver(repo).ResolveActor(ctx, tt.userID)

			assert.Equal(t, tt.want, got)
			repo.AssertExpectations(t)
		})
	}
}

func TestActorResolver_AnonymousSkipsLookup(t *testing.T) {
	repo := new(MockUserRepository)

	got := services.NewActorResolver(repo).ResolveActor(context.Background(), "")

	assert.Empty(t, got)
	repo.AssertNotCalled(t, "FindUserByID", mock.Anything, mock.Anything)
}
