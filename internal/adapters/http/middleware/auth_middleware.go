package middleware

import (
	"garagehub/internal/adapters/persistence/models"
	"garagehub/internal/core/services"
	"garagehub/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// SessionCookie is the name of the session cookie
const SessionCookie = "sessionToken"

// SessionMiddleware creates session-based authentication middleware.
// The opaque token from the cookie is looked up in the session store;
// validation advances last_activity and removes expired rows.
func SessionMiddleware(sessions *services.SessionService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// 1. Get token from cookie
		token := c.Cookies(SessionCookie)
		if token == "" {
			return response.Unauthorized(c, "Authentication required")
		}

		// 2. Validate against the session store
		session, err := sessions.Validate(c.Context(), token)
		if err != nil {
			return response.InternalServerError(c, "Session validation failed")
		}
		if session == nil {
			return response.Unauthorized(c, "Invalid or expired session")
		}

		// 3. Set user info in context
		c.Locals("user", &session.User)
		c.Locals("session", session)
		c.Locals("userID", session.User.ID)
		c.Locals("role", session.User.Role)

		return c.Next()
	}
}

// RoleMiddleware creates role-based authorization middleware
func RoleMiddleware(allowedRoles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals("role").(string)
		if !ok {
			return response.Unauthorized(c, "Unauthorized")
		}

		// Check if user's role is in allowed roles
		for _, allowedRole := range allowedRoles {
			if role == allowedRole {
				return c.Next()
			}
		}

		return response.Forbidden(c, "You don't have permission to access this resource")
	}
}

// AdminOnly middleware allows only the admin role
func AdminOnly() fiber.Handler {
	return RoleMiddleware("admin")
}

// CurrentUser returns the authenticated user from the request context.
// Only valid after SessionMiddleware has run.
func CurrentUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals("user").(*models.User)
	return user
}

// CurrentSession returns the validated session from the request context
func CurrentSession(c *fiber.Ctx) *models.Session {
	session, _ := c.Locals("session").(*models.Session)
	return session
}
