package user

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/finance-tracker/internal/handlers/apierror"
)

type LoginBody struct {
	Email    string `json:"email,omitempty"`
	Password string `json:"password,omitempty"`
}

type LoginInput struct {
	Body LoginBody
}

type LoginResponseBody struct {
	AccessToken string `json:"access_token" doc:"Bearer token for authenticated endpoints"`
}

type LoginOutput struct {
	Body LoginResponseBody
}

func (h *Handlers) addLoginOperation(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "login",
		Method:      http.MethodPost,
		Path:        "/login",
		Summary:     "Log in",
		Tags:        []string{"Users"},
	}, h.handleLogin)
}

func (h *Handlers) handleLogin(ctx context.Context, input *LoginInput) (*LoginOutput, error) {
	token, err := h.AuthService.Login(ctx, input.Body.Email, input.Body.Password)
	if err != nil {
		return nil, apierror.FromService(ctx, err, "failed to log in")
	}
	return &LoginOutput{Body: LoginResponseBody{AccessToken: token}}, nil
}
