package context

import (
	"context"

	"bazaar/internal/domain/entity"
)

// KeyActor is the key for storing the authenticated actor in context.
const KeyActor ContextKey = "actor"

// WithActor returns a new context carrying the authenticated actor.
func WithActor(ctx context.Context, actor entity.Actor) context.Context {
	return context.WithValue(ctx, KeyActor, actor)
}

// GetActor extracts the authenticated actor from context.Context.
// The boolean reports whether an actor was present.
func GetActor(ctx context.Context) (entity.Actor, bool) {
	actor, ok := ctx.Value(KeyActor).(entity.Actor)

	return actor, ok
}
