package user

import (
	"context"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/finance-tracker/internal/service"
)

type authService interface {
	Register(ctx context.Context, username, email, password string) (*service.User, error)
	Login(ctx context.Context, email, password string) (string, error)
}

// Handlers exposes registration and login.
type Handlers struct {
	AuthService authService
}

func NewHandlers(svc authService) *Handlers {
	return &Handlers{AuthService: svc}
}

func (h *Handlers) Register(api huma.API) {
	h.addRegisterOperation(api)
	h.addLoginOperation(api)
}
