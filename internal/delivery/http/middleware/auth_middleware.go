package middleware

import (
	"errors"
	"strings"

	"craftlink/internal/domain/identity"
	"craftlink/internal/pkg/jwt"

	"github.com/gofiber/fiber/v3"
)

const CtxIdentityKey = "identity"

type AuthMiddleware struct {
	jwt jwt.Service
}

func NewAuthMiddleware(jwtSvc jwt.Service) *AuthMiddleware {
	return &AuthMiddleware{jwt: jwtSvc}
}

// Middleware resolves the bearer token into an identity value and stores it
// in the request locals. Handlers read it back with IdentityFromCtx.
func (m *AuthMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		token, ok := bearerTokenFromHeader(c.Get("Authorization"))
		if !ok {
			return NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
		}

		claims, err := m.jwt.Validate(token)
		if err != nil {
			if errors.Is(err, jwt.ErrTokenExpired) {
				return NewAppError(fiber.StatusUnauthorized, "Token expired", nil, err)
			}
			return NewAppError(fiber.StatusUnauthorized, "Invalid token", nil, err)
		}

		c.Locals(CtxIdentityKey, identity.Identity{
			UserID:   claims.UserID,
			Role:     claims.Role,
			Username: claims.Username,
		})

		return c.Next()
	}
}

// RequireAdmin gates a route group to admin callers. Must run after
// Middleware.
func (m *AuthMiddleware) RequireAdmin() fiber.Handler {
	return func(c fiber.Ctx) error {
		ident, ok := IdentityFromCtx(c)
		if !ok {
			return NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
		}
		if !ident.IsAdmin() {
			return NewAppError(fiber.StatusForbidden, "Admin only access", nil, nil)
		}
		return c.Next()
	}
}

func IdentityFromCtx(c fiber.Ctx) (identity.Identity, bool) {
	ident, ok := c.Locals(CtxIdentityKey).(identity.Identity)
	return ident, ok
}

func bearerTokenFromHeader(authHeader string) (string, bool) {
	authHeader = strings.TrimSpace(authHeader)
	if authHeader == "" {
		return "", false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 {
		return "", false
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}

	token := strings.TrimSpace(parts[1])
	if token == "" {
		return "", false
	}

	return token, true
}
