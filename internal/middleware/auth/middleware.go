package auth

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/sharmaketan/shopkart/internal/policy"
)

// Identity is what a verified bearer token yields.
type Identity struct {
	ID       uint
	Name     string
	Role     string
	Email    string
	Username string
}

const identityKey = "identity"

// RequireLogin verifies the Authorization bearer token and stores the
// caller's identity in the request context.
func RequireLogin(secret []byte) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if header == "" || !strings.HasPrefix(header, "Bearer ") {
				return echo.NewHTTPError(http.StatusUnauthorized, "no token provided")
			}
			raw := strings.TrimPrefix(header, "Bearer ")

			token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
				}
				return secret, nil
			})
			if err != nil || !token.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token claims")
			}

			sub, ok := claims["sub"].(float64)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid subject claim")
			}
			role, _ := claims["role"].(string)
			name, _ := claims["name"].(string)
			email, _ := claims["email"].(string)
			username, _ := claims["username"].(string)

			ident := Identity{
				ID:       uint(sub),
				Name:     name,
				Role:     role,
				Email:    email,
				Username: username,
			}
			c.Set(identityKey, ident)
			c.Set("userID", ident.ID)
			c.Set("role", ident.Role)

			return next(c)
		}
	}
}

// RequirePolicy gates a route group on a role-level policy action. It must
// run after RequireLogin.
func RequirePolicy(action policy.Action) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ident, ok := FromContext(c)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "no token provided")
			}
			if err := policy.Authorize(ident.Actor(), action, policy.Resource{}); err != nil {
				return echo.NewHTTPError(http.StatusForbidden, "access denied")
			}
			return next(c)
		}
	}
}

func FromContext(c echo.Context) (Identity, bool) {
	ident, ok := c.Get(identityKey).(Identity)
	return ident, ok
}

func (i Identity) Actor() policy.Actor {
	return policy.Actor{ID: i.ID, Role: i.Role}
}
