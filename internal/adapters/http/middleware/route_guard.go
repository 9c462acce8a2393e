package middleware

import (
	"strings"

	"uni-egresados/internal/config"
	"uni-egresados/internal/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

// Page paths the guard decides over
const (
	LoginPath          = "/login"
	ChangePasswordPath = "/cambiar-password"
	AdminHomePath      = "/dashboard"
	GraduateHomePath   = "/perfil"
)

// protectedPrefixes are the page routes that require a session
var protectedPrefixes = []string{"/dashboard", "/egresados", "/perfil"}

// RouteGuard intercepts every request and decides allow vs redirect
// based on session state, the forced-password-change flag and the
// requested path. API paths always pass through unchanged; their
// handlers enforce authorization themselves. The forced-change
// redirect takes priority over normal protected-route access.
func RouteGuard(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		path := c.Path()

		// API routes self-guard
		if strings.HasPrefix(path, "/api") {
			return c.Next()
		}

		claims := sessionClaims(c, cfg)
		isLoggedIn := claims != nil

		isProtected := isProtectedPath(path)
		isChangePassword := path == ChangePasswordPath

		// Not authenticated on a protected page
		if !isLoggedIn && isProtected {
			return c.Redirect(LoginPath, fiber.StatusFound)
		}

		// Authenticated on the login page: send home by role
		if isLoggedIn && path == LoginPath {
			if claims.MustChangePassword {
				return c.Redirect(ChangePasswordPath, fiber.StatusFound)
			}
			return c.Redirect(roleHome(claims.Role), fiber.StatusFound)
		}

		// Forced password change pending
		if isLoggedIn && claims.MustChangePassword {
			if isChangePassword {
				return c.Next()
			}
			if isProtected || path == "/" {
				return c.Redirect(ChangePasswordPath, fiber.StatusFound)
			}
		}

		// Already rotated, nothing to change here
		if isLoggedIn && isChangePassword && !claims.MustChangePassword {
			return c.Redirect(roleHome(claims.Role), fiber.StatusFound)
		}

		return c.Next()
	}
}

// sessionClaims parses the access token if one is present. Invalid or
// expired tokens count as no session.
func sessionClaims(c *fiber.Ctx, cfg *config.Config) *jwt.Claims {
	accessToken := extractAccessToken(c)
	if accessToken == "" {
		return nil
	}

	claims, err := jwt.ValidateAccessToken(accessToken, cfg.JWT.Secret)
	if err != nil {
		return nil
	}
	return claims
}

// isProtectedPath reports whether the path is a protected page route
func isProtectedPath(path string) bool {
	for _, prefix := range protectedPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// roleHome returns the landing page for a role
func roleHome(role string) string {
	if role == "ADMIN" {
		return AdminHomePath
	}
	return GraduateHomePath
}
