package user

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/finance-tracker/internal/handlers/apierror"
	"github.com/carson-networks/finance-tracker/internal/logging"
)

// RegisterBody is the request body for registering a user. Missing fields are
// reported by the service as 400.
type RegisterBody struct {
	Username string `json:"username,omitempty" doc:"Unique username, at most 80 characters"`
	Email    string `json:"email,omitempty" doc:"Unique email address, at most 120 characters"`
	Password string `json:"password,omitempty" doc:"Plain text password, at most 72 bytes"`
}

type RegisterInput struct {
	Body RegisterBody
}

type MessageBody struct {
	Msg string `json:"msg"`
}

type RegisterOutput struct {
	Status int `json:"status" doc:"HTTP status"`
	Body   MessageBody
}

func (h *Handlers) addRegisterOperation(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID:   "register-user",
		Method:        http.MethodPost,
		Path:          "/register",
		Summary:       "Register user",
		Description:   "Creates a user and seeds the default categories.",
		Tags:          []string{"Users"},
		DefaultStatus: http.StatusCreated,
	}, h.handleRegister)
}

func (h *Handlers) handleRegister(ctx context.Context, input *RegisterInput) (*RegisterOutput, error) {
	created, err := h.AuthService.Register(ctx, input.Body.Username, input.Body.Email, input.Body.Password)
	if err != nil {
		return nil, apierror.FromService(ctx, err, "failed to register user")
	}
	logging.GetLogData(ctx).AddData("userID", created.ID.String())

	return &RegisterOutput{
		Status: http.StatusCreated,
		Body:   MessageBody{Msg: "User created successfully"},
	}, nil
}
