package handlers

import (
	"context"

	"jsonblog/internal/models"
)

type contextKey struct{}

var claimsKey = contextKey{}

func WithClaims(ctx context.Context, claims models.Claims) context.Context {
	return context.WithValue(ctx, claimsKey, claims)
}

func ClaimsFromContext(ctx context.Context) (models.Claims, bool) {
	claims, ok := ctx.Value(claimsKey).(models.Claims)
	return claims, ok
}
