package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gofrs/uuid/v5"
)

// SecuritySchemeName is the OpenAPI security scheme guarded by Middleware.
const SecuritySchemeName = "bearer"

type userIDKey struct{}

type tokenVerifier interface {
	Verify(token string) (uuid.UUID, error)
}

// SecurityScheme describes bearer JWT auth for the OpenAPI document.
func SecurityScheme() *huma.SecurityScheme {
	return &huma.SecurityScheme{
		Type:         "http",
		Scheme:       "bearer",
		BearerFormat: "JWT",
	}
}

// Middleware rejects requests to operations that declare the bearer security
// scheme unless they carry a valid token. The user id is stored in the
// request context for UserIDFromContext.
func Middleware(api huma.API, verifier tokenVerifier) func(ctx huma.Context, next func(huma.Context)) {
	return func(ctx huma.Context, next func(huma.Context)) {
		if !requiresAuth(ctx.Operation()) {
			next(ctx)
			return
		}

		header := ctx.Header("Authorization")
		token, found := strings.CutPrefix(header, "Bearer ")
		if !found || strings.TrimSpace(token) == "" {
			_ = huma.WriteErr(api, ctx, http.StatusUnauthorized, "missing authorization token")
			return
		}

		userID, err := verifier.Verify(strings.TrimSpace(token))
		if err != nil {
			_ = huma.WriteErr(api, ctx, http.StatusUnauthorized, "invalid or expired token")
			return
		}

		next(huma.WithValue(ctx, userIDKey{}, userID))
	}
}

func requiresAuth(op *huma.Operation) bool {
	if op == nil {
		return false
	}
	for _, requirement := range op.Security {
		if _, ok := requirement[SecuritySchemeName]; ok {
			return true
		}
	}
	return false
}

// UserIDFromContext returns the authenticated user id set by Middleware.
func UserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	userID, ok := ctx.Value(userIDKey{}).(uuid.UUID)
	return userID, ok
}
