package jwt

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/lar-university/advisor/pkg/account"
)

// Locals keys set by the auth middleware.
const (
	LocalsUserID  = "userId"
	LocalsRole    = "role"
	LocalsAccount = "account"
)

// NewAuthMiddleware returns a Fiber middleware that validates Bearer JWT
// (HS256), resolves the subject against the account store and rejects tokens
// for unknown or deactivated accounts. On success sets the account id, role
// and safe view into c.Locals.
func NewAuthMiddleware(secret, expectedIssuer string, accounts account.Repository) fiber.Handler {
	secretBytes := []byte(secret)
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"message": "missing Authorization header"})
		}
		// Support both "Bearer <token>" and "<token>" (no prefix).
		var tokenStr string
		if strings.Contains(authHeader, " ") {
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
				tokenStr = strings.TrimSpace(parts[1])
			} else {
				tokenStr = strings.TrimSpace(authHeader)
			}
		} else {
			tokenStr = strings.TrimSpace(authHeader)
		}
		if tokenStr == "" {
			return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"message": "empty token"})
		}
		token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fiber.ErrUnauthorized
			}
			return secretBytes, nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}))
		if err != nil || !token.Valid {
			return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"message": "invalid or expired token"})
		}
		claims, ok := token.Claims.(*Claims)
		if !ok {
			return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"message": "invalid token claims"})
		}
		if expectedIssuer != "" && claims.RegisteredClaims.Issuer != expectedIssuer {
			return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"message": "invalid token issuer"})
		}

		userID, err := uuid.Parse(claims.RegisteredClaims.Subject)
		if err != nil {
			return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"message": "invalid token subject"})
		}
		a, err := accounts.GetByID(c.Context(), userID)
		if err != nil || !a.IsActive {
			return c.Status(http.StatusUnauthorized).JSON(fiber.Map{"message": "account not found or deactivated"})
		}

		c.Locals(LocalsUserID, a.ID)
		c.Locals(LocalsRole, string(a.Role))
		c.Locals(LocalsAccount, account.SafeView(a))
		return c.Next()
	}
}

// RequireRole gates a route group to one role.
func RequireRole(role account.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if got, _ := c.Locals(LocalsRole).(string); got != string(role) {
			return c.Status(http.StatusForbidden).JSON(fiber.Map{"message": "insufficient permissions"})
		}
		return c.Next()
	}
}
