package middleware

import (
	"strings"

	"vetcare-api/internal/core/domain"
	"vetcare-api/internal/pkg/jwt"
	"vetcare-api/internal/pkg/metrics"
	"vetcare-api/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// TokenVerifier validates bearer tokens
type TokenVerifier interface {
	Verify(token string) (*jwt.Claims, error)
}

type claimsKey struct{}

// AuthMiddleware creates authentication middleware
func AuthMiddleware(verifier TokenVerifier) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// 1. No header
		header := c.Get(fiber.HeaderAuthorization)
		if header == "" {
			metrics.AuthEventsTotal.WithLabelValues("token", "missing").Inc()
			return response.Unauthorized(c, "No token sent")
		}

		// 2. Must be exactly "Bearer <token>"
		parts := strings.Split(header, " ")
		if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
			metrics.AuthEventsTotal.WithLabelValues("token", "malformed").Inc()
			return response.Unauthorized(c, "Malformed token format")
		}

		// 3. Verify signature and expiry
		claims, err := verifier.Verify(parts[1])
		if err != nil {
			metrics.AuthEventsTotal.WithLabelValues("token", "invalid").Inc()
			return response.Unauthorized(c, "Invalid or expired token")
		}

		// 4. Attach identity for handlers
		c.Locals(claimsKey{}, claims)

		return c.Next()
	}
}

// CurrentClaims returns the claims resolved by AuthMiddleware
func CurrentClaims(c *fiber.Ctx) (*jwt.Claims, bool) {
	claims, ok := c.Locals(claimsKey{}).(*jwt.Claims)
	return claims, ok && claims != nil
}

// CurrentIdentity returns the caller as a domain identity
func CurrentIdentity(c *fiber.Ctx) (domain.Identity, bool) {
	claims, ok := CurrentClaims(c)
	if !ok {
		return domain.Identity{}, false
	}
	return domain.Identity{
		UserID: claims.UserID,
		Email:  claims.Email,
		Role:   domain.Role(claims.Role),
	}, true
}

// RoleMiddleware creates role-based authorization middleware
func RoleMiddleware(allowedRoles ...domain.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, ok := CurrentClaims(c)
		if !ok {
			return response.Unauthorized(c, "Unauthenticated")
		}

		for _, allowed := range allowedRoles {
			if claims.Role == allowed.String() {
				return c.Next()
			}
		}

		return response.Forbidden(c, "insufficient permissions")
	}
}

// AdminOnly middleware allows only ADMIN role
func AdminOnly() fiber.Handler {
	return RoleMiddleware(domain.RoleAdmin)
}

// StaffOnly middleware allows the front desk and administrators
func StaffOnly() fiber.Handler {
	return RoleMiddleware(domain.RoleReceptionist, domain.RoleAdmin)
}

// VetOrAdmin middleware allows VETERINARIO or ADMIN roles
func VetOrAdmin() fiber.Handler {
	return RoleMiddleware(domain.RoleVeterinarian, domain.RoleAdmin)
}
