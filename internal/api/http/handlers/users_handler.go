package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/shop-service/internal/api/dto"
	"github.com/spec-kit/shop-service/internal/auth"
	"github.com/spec-kit/shop-service/internal/domain"
)

// UserAccounts is the user service surface used by the handler.
type UserAccounts interface {
	Signup(ctx context.Context, email, username, password string) (*domain.User, error)
	Signin(ctx context.Context, email, password string) (*domain.User, string, time.Time, error)
}

// UsersHandler exposes signup and signin.
type UsersHandler struct {
	users     UserAccounts
	validator PayloadValidator
}

// NewUsersHandler constructs handler.
func NewUsersHandler(users UserAccounts, validator PayloadValidator) *UsersHandler {
	return &UsersHandler{users: users, validator: validator}
}

// Signup handles POST /users/signup.
func (h *UsersHandler) Signup(c *fiber.Ctx) error {
	var req dto.SignupRequest
	if err := decode(c, h.validator, &req); err != nil {
		return err
	}

	user, err := h.users.Signup(c.UserContext(), req.Email, req.Username, req.Password)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(dto.Data(dto.NewUserResponse(user)))
}

// Signin handles POST /users/signin.
func (h *UsersHandler) Signin(c *fiber.Ctx) error {
	var req dto.SigninRequest
	if err := decode(c, h.validator, &req); err != nil {
		return err
	}

	user, token, exp, err := h.users.Signin(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}
	return c.JSON(dto.Data(dto.NewSigninResponse(user, token, exp)))
}

// Me handles GET /users/me.
func (h *UsersHandler) Me(c *fiber.Ctx) error {
	user, ok := auth.UserFromContext(c)
	if !ok {
		return fiber.ErrUnauthorized
	}
	return c.JSON(dto.Data(dto.NewUserResponse(user)))
}
