package identity

import "context"

type ctxKey struct{}

// SystemActor is attached to mutations when the caller supplied no identity.
const SystemActor = "system"

// WithActor returns a context carrying the acting user/employee identifier.
// The identifier comes from an external identity provider; the core trusts it
// and performs no authentication of its own.
func WithActor(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, ctxKey{}, userID)
}

// ActorFromCtx extracts the acting identity, defaulting to SystemActor.
func ActorFromCtx(ctx context.Context) string {
	if actor, ok := ctx.Value(ctxKey{}).(string); ok && actor != "" {
		return actor
	}
	return SystemActor
}
