package middleware

import (
	"strings"

	"github.com/fadilmartias/applicant-portal/internal/auth"
	"github.com/gofiber/fiber/v2"
)

const AdminLoginPath = "/admin/login"

// RequireAdmin rejects API requests without a valid admin session.
func RequireAdmin(gate *auth.Gate) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !gate.IsAuthenticated(c.Cookies(gate.CookieName())) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"success": false,
				"message": "Unauthorized",
			})
		}
		return c.Next()
	}
}

// AdminPages redirects unauthenticated visitors of /admin pages to the login
// page. The login page itself stays public.
func AdminPages(gate *auth.Gate) fiber.Handler {
	return func(c *fiber.Ctx) error {
		path := strings.TrimRight(c.Path(), "/")
		if path == AdminLoginPath {
			return c.Next()
		}
		if !gate.IsAuthenticated(c.Cookies(gate.CookieName())) {
			return c.Redirect(AdminLoginPath, fiber.StatusSeeOther)
		}
		return c.Next()
	}
}
