package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"user-admin/internal/model"
	"user-admin/internal/service"

	"github.com/labstack/echo/v4"
)

const ContextUserKey = "user"

// BearerToken 取出 Authorization 標頭中的 Bearer 令牌
func BearerToken(c echo.Context) (string, error) {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing token")
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header format")
	}
	return parts[1], nil
}

func extractClaims(c echo.Context, tokens *service.TokenService) (*service.CustomClaims, error) {
	tokenString, err := BearerToken(c)
	if err != nil {
		return nil, err
	}
	claims, err := tokens.Verify(tokenString, service.TokenTypeAccess)
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, fmt.Sprintf("invalid token: %v", err))
	}
	return claims, nil
}

// Claims 取得 RequireAuth 放入的令牌內容
func Claims(c echo.Context) *service.CustomClaims {
	claims, _ := c.Get(ContextUserKey).(*service.CustomClaims)
	return claims
}

// RequireAuth 驗證存取令牌
func RequireAuth(tokens *service.TokenService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, err := extractClaims(c, tokens)
			if err != nil {
				return err
			}
			c.Set(ContextUserKey, claims)
			return next(c)
		}
	}
}

// RequireAuthority 需在 RequireAuth 之後，缺少權限回 403
func RequireAuthority(a model.Authority) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims := Claims(c)
			if claims == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing token")
			}
			if !claims.HasAuthority(a) {
				return echo.NewHTTPError(http.StatusForbidden, fmt.Sprintf("%s authority required", a))
			}
			return next(c)
		}
	}
}
