// Package ctxutil carries request-scoped values through context.
// It has no internal dependencies so every layer can import it.
package ctxutil

import "context"

// Actors recorded in the lifecycle log.
const (
	ActorCLI   = "cli"   // one-shot command
	ActorUser  = "user"  // interactive view keypress
	ActorTimer = "timer" // countdown expiry
)

type actorKey struct{}

// WithActorID returns a context recording who triggered an operation.
func WithActorID(ctx context.Context, actorID string) context.Context {
	return context.WithValue(ctx, actorKey{}, actorID)
}

// ActorFromContext returns the actor, or "" when none was recorded.
func ActorFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(actorKey{}).(string); ok {
		return v
	}
	return ""
}
