package services

import "context"

// ActorResolverSvc turns a claimed user id into the actor recorded on ledger changes.
type ActorResolverSvc interface {
	// ResolveActor returns the user id when it names a live user and "" (anonymous) otherwise.
	// It never fails the calling operation.
	ResolveActor(ctx context.Context, userID string) string
}
