package api

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/protomem/hr-console/internal/model"
)

// AuthAPI covers the two public endpoints. Neither carries a bearer header.
type AuthAPI struct {
	Logger *slog.Logger
	*Client
}

func NewAuthAPI(logger *slog.Logger, client *Client) *AuthAPI {
	return &AuthAPI{
		Logger: logger.With("api", "auth"),
		Client: client,
	}
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginResponse struct {
	User  model.User `json:"user"`
	Token string     `json:"token"`
}

func (a *AuthAPI) Login(ctx context.Context, req LoginRequest) (LoginResponse, error) {
	var resp LoginResponse
	if _, err := a.doJSON(ctx, http.MethodPost, "/api/auth/login", false, req, &resp); err != nil {
		return LoginResponse{}, err
	}

	a.Logger.Debug("login succeeded", "user", resp.User.Email)

	return resp, nil
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

func (a *AuthAPI) Register(ctx context.Context, req RegisterRequest) (string, error) {
	return a.doJSON(ctx, http.MethodPost, "/api/auth/register", false, req, nil)
}
