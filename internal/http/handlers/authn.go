package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"motortrade/internal/auth"
	"motortrade/internal/domain"
	applog "motortrade/internal/log"
	"motortrade/internal/services"
)

const claimsLocal = "claims"

// RequireUser gates a route behind a valid bearer token and stashes
// the verified claims in the request locals.
func RequireUser(issuer *auth.Issuer) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if header == "" {
			return fail(c, fiber.StatusUnauthorized, "Authentication required. Please log in.")
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || strings.TrimSpace(parts[1]) == "" {
			return fail(c, fiber.StatusUnauthorized, "Authentication required. Please log in.")
		}

		claims, err := issuer.Verify(strings.TrimSpace(parts[1]))
		if err != nil {
			applog.Security(c, "auth.token.reject", map[string]any{"reason": err.Error()})
			return fail(c, fiber.StatusUnauthorized, "Invalid or expired token. Please log in again.")
		}

		c.Locals(claimsLocal, claims)
		c.Locals("account_id", claims.AccountID())
		return c.Next()
	}
}

// RequireAdmin layers a role check after RequireUser. Identity and
// authorization stay independent gates.
func RequireAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims := CurrentClaims(c)
		if claims == nil || claims.AccountRole() != domain.RoleAdmin {
			applog.Security(c, "access.denied.admin", nil)
			return respondErr(c, services.ErrForbidden)
		}
		return c.Next()
	}
}

// CurrentClaims returns the verified token claims set by RequireUser,
// or nil on unauthenticated routes.
func CurrentClaims(c *fiber.Ctx) *auth.Claims {
	claims, _ := c.Locals(claimsLocal).(*auth.Claims)
	return claims
}
