package auth

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/gofrs/uuid/v5"
	"github.com/stretchr/testify/assert"
)

type whoAmIOutput struct {
	Body struct {
		UserID string `json:"user_id"`
	}
}

func setupAPI(t *testing.T, issuer *TokenIssuer) humatest.TestAPI {
	t.Helper()
	_, api := humatest.New(t)
	api.UseMiddleware(Middleware(api, issuer))

	huma.Register(api, huma.Operation{
		OperationID: "who-am-i",
		Method:      http.MethodGet,
		Path:        "/me",
		Security:    []map[string][]string{{SecuritySchemeName: {}}},
	}, func(ctx context.Context, _ *struct{}) (*whoAmIOutput, error) {
		userID, ok := UserIDFromContext(ctx)
		if !ok {
			return nil, huma.Error500InternalServerError("no user in context")
		}
		out := &whoAmIOutput{}
		out.Body.UserID = userID.String()
		return out, nil
	})

	huma.Register(api, huma.Operation{
		OperationID: "public",
		Method:      http.MethodGet,
		Path:        "/public",
	}, func(ctx context.Context, _ *struct{}) (*struct{}, error) {
		return nil, nil
	})

	return api
}

func TestMiddleware_ValidToken(t *testing.T) {
	issuer := NewTokenIssuer("secret", time.Hour)
	api := setupAPI(t, issuer)
	userID := uuid.Must(uuid.NewV4())
	token, _ := issuer.Issue(userID)

	resp := api.Get("/me", "Authorization: Bearer "+token)

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), userID.String())
}

func TestMiddleware_MissingHeader(t *testing.T) {
	api := setupAPI(t, NewTokenIssuer("secret", time.Hour))

	resp := api.Get("/me")

	assert.Equal(t, http.StatusUnauthorized, resp.Code)
	assert.Contains(t, resp.Body.String(), "missing authorization token")
}

func TestMiddleware_WrongScheme(t *testing.T) {
	api := setupAPI(t, NewTokenIssuer("secret", time.Hour))

	resp := api.Get("/me", "Authorization: Basic dXNlcjpwYXNz")

	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestMiddleware_InvalidToken(t *testing.T) {
	api := setupAPI(t, NewTokenIssuer("secret", time.Hour))
	token, _ := NewTokenIssuer("other", time.Hour).Issue(uuid.Must(uuid.NewV4()))

	resp := api.Get("/me", "Authorization: Bearer "+token)

	assert.Equal(t, http.StatusUnauthorized, resp.Code)
	assert.Contains(t, resp.Body.String(), "invalid or expired token")
}

func TestMiddleware_PublicOperation(t *testing.T) {
	api := setupAPI(t, NewTokenIssuer("secret", time.Hour))

	resp := api.Get("/public")

	assert.Equal(t, http.StatusNoContent, resp.Code)
}

func TestUserIDFromContext_Absent(t *testing.T) {
	_, ok := UserIDFromContext(context.Background())
	assert.False(t, ok)
}
