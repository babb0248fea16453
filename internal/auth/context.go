package auth

import "context"

// AnonymousClientID identifies callers when bearer auth is disabled.
const AnonymousClientID = "anonymous"

type clientIDKey struct{}

func ContextWithClientID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, clientIDKey{}, id)
}

func ClientIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(clientIDKey{}).(string)
	return id, ok && id != ""
}
