package handlers

import (
	"github.com/gofiber/fiber/v2"

	"achievement-review-system/middleware"
	"achievement-review-system/models"
	"achievement-review-system/services"
	"achievement-review-system/utils"
)

func SetupAuthRoutes(app *fiber.App, authService *services.AuthService, tokens *utils.TokenManager, users services.UserStore) {
	auth := app.Group("/api/auth")

	auth.Post("/register", func(c *fiber.Ctx) error {
		var req models.RegisterRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
		}
		if err := validateBody(&req); err != nil {
			return writeError(c, err)
		}

		resp, err := authService.Register(c.UserContext(), req)
		if err != nil {
			return writeError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(resp)
	})

	auth.Post("/login", func(c *fiber.Ctx) error {
		var req models.LoginRequest
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
		}
		if err := validateBody(&req); err != nil {
			return writeError(c, err)
		}

		resp, err := authService.Login(c.UserContext(), req)
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(resp)
	})

	auth.Get("/me", middleware.AuthRequired(tokens, users), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"user": middleware.CurrentUser(c)})
	})
}
