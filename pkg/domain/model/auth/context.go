package auth

import "context"

type ctxKey struct{}

// ContextWithToken returns a context carrying the authenticated session token
func ContextWithToken(ctx context.Context, token *Token) context.Context {
	return context.WithValue(ctx, ctxKey{}, token)
}

// TokenFromContext extracts the session token from the context. Returns nil
// if the request is unauthenticated.
func TokenFromContext(ctx context.Context) *Token {
	token, _ := ctx.Value(ctxKey{}).(*Token)
	return token
}
