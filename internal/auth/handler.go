package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"cantina-backend/internal/config"
	"cantina-backend/internal/store"
)

type LoginRequest struct {
	Name     string `json:"name"`
	Password string `json:"password"`
}

// POST /api/auth/login
func LoginHandler(cfg *config.Config, st store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body LoginRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}

		body.Name = strings.TrimSpace(body.Name)
		if body.Name == "" || body.Password == "" {
			return fiber.NewError(fiber.StatusBadRequest, "Name and password are required")
		}

		state, err := st.Load(c.Context())
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not read user data")
		}

		user, err := Authenticate(state.Users, body.Name, body.Password)
		if err != nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid name or password")
		}

		token, err := GenerateToken(cfg.JWTSecret, user)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not create token")
		}

		return c.JSON(fiber.Map{
			"token": token,
			"user": fiber.Map{
				"id":   user.ID,
				"name": user.Name,
				"role": user.Role,
			},
		})
	}
}

// GET /api/auth/me
func MeHandler(st store.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, _ := c.Locals(CtxUserIDKey).(string)

		state, err := st.Load(c.Context())
		if err == nil {
			for _, u := range state.Users {
				if u.ID == userID {
					return c.JSON(fiber.Map{
						"user_id": u.ID,
						"name":    u.Name,
						"role":    u.Role,
					})
				}
			}
		}

		// Fallback: answer from the token claims.
		return c.JSON(fiber.Map{
			"user_id": userID,
			"name":    c.Locals(CtxUserNameKey),
			"role":    c.Locals(CtxUserRoleKey),
		})
	}
}
