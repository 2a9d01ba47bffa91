package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/SscSPs/farm_ledger/internal/apperrors"
	portsrepo "github.com/SscSPs/farm_ledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/farm_ledger/internal/core/ports/services"
)

// actorResolver looks up the users recorded as actors of ledger changes.
type actorResolver struct {
	BaseService
	userRepo portsrepo.UserReader
}

// NewActorResolver creates a resolver backed by the users table.
func NewActorResolver(userRepo portsrepo.UserReader) portssvc.ActorResolverSvc {
	return &actorResolver{userRepo: userRepo}
}

var _ portssvc.ActorResolverSvc = (*actorResolver)(nil)

// ResolveActor returns userID when it names a live user. Unknown, deleted or
// unreadable users are recorded as anonymous.
func (s *actorResolver) ResolveActor(ctx context.Context, userID string) string {
	if userID == "" {
		return ""
	}
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			s.LogDebug(ctx, "Unknown actor, recording change as anonymous", slog.String("user_id", userID))
		} else {
			s.LogError(ctx, err, "Failed to resolve actor, recording change as anonymous", slog.String("user_id", userID))
		}
		return ""
	}
	if user.IsDeleted() {
		s.LogDebug(ctx, "Deleted actor, recording change as anonymous", slog.String("user_id", userID))
		return ""
	}
	return user.UserID
}
