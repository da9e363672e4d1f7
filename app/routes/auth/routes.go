package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/yahamanand-svg/School/app/models"
	"github.com/yahamanand-svg/School/app/store"
)

func SetupAuthRoutes(app *fiber.App, st store.Store) {
	h := &Handler{store: st}

	grp := app.Group("/auth")
	grp.Post("/login", h.LoginAPI)
	grp.Post("/logout", h.LogoutAPI)

	grp.Use(AuthMiddleware)
	grp.Get("/me", h.MeAPI)
}

// AuthMiddleware validates the JWT and stores the caller identity in
// request locals for handlers to consume.
func AuthMiddleware(c *fiber.Ctx) error {
	// Cookie first, then Authorization header.
	tokenString := c.Cookies("jwt_token")
	if tokenString == "" {
		header := c.Get("Authorization")
		if strings.HasPrefix(header, "Bearer ") {
			tokenString = strings.TrimPrefix(header, "Bearer ")
		}
	}

	if tokenString == "" {
		return c.Status(401).JSON(fiber.Map{"error": "No token found"})
	}

	claims, err := ValidateJWT(tokenString)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Invalid or expired token"})
	}

	c.Locals("identity", IdentityFromClaims(claims))
	return c.Next()
}

// RequireRoles rejects callers whose role is not in the allowed set.
// It must run after AuthMiddleware.
func RequireRoles(roles ...models.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, ok := c.Locals("identity").(models.Identity)
		if !ok {
			return c.Status(401).JSON(fiber.Map{"error": "No token found"})
		}
		for _, role := range roles {
			if identity.Role == role {
				return c.Next()
			}
		}
		return c.Status(403).JSON(fiber.Map{"error": "Insufficient permissions"})
	}
}

// Identity extracts the caller identity set by AuthMiddleware.
func Identity(c *fiber.Ctx) models.Identity {
	identity, _ := c.Locals("identity").(models.Identity)
	return identity
}
