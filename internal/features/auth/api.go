package auth

import (
	"go-wfm/internal/middleware"
	"go-wfm/pkg/utils"

	"github.com/gofiber/fiber/v2"
)

type AuthApi struct {
	controller *AuthController
	tokens     *utils.TokenIssuer
}

func NewAuthApi(controller *AuthController, tokens *utils.TokenIssuer) *AuthApi {
	return &AuthApi{
		controller: controller,
		tokens:     tokens,
	}
}

// Setup registers the auth routes. Register and login are public; /me needs a token.
func (h *AuthApi) Setup(app *fiber.App) {
	auth := app.Group("/api/auth")

	auth.Post("/register", h.controller.Register)
	auth.Post("/login", h.controller.Login)
	auth.Get("/me", middleware.AuthMiddleware(h.tokens), h.controller.Me)
}
