// middleware/jwt_middleware.go
package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt"
	"github.com/labstack/echo/v4"

	"github.com/eventnow/eventnow_backend/models"
	"github.com/eventnow/eventnow_backend/repositories"
)

// SessionTTL bounds how long an admin token stays valid. Directory
// revocation takes effect sooner since membership is re-checked on every
// request.
const SessionTTL = 24 * time.Hour

// JwtCustomClaims for admin session tokens.
type JwtCustomClaims struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	jwt.StandardClaims
}

// Valid implements the Claims interface.
func (c JwtCustomClaims) Valid() error {
	now := time.Now().Unix()
	if c.ExpiresAt > 0 && now > c.ExpiresAt {
		return errors.New("token is expired")
	}
	if c.NotBefore > 0 && now < c.NotBefore {
		return errors.New("token used before valid")
	}
	return nil
}

// TokenRevoker checks whether a session token has been invalidated by a
// logout or a forced sign-out.
type TokenRevoker interface {
	IsRevoked(ctx context.Context, token string) (bool, error)
}

// GenerateJWT signs a session token for an authenticated admin.
func GenerateJWT(secret []byte, userID, email string) (string, error) {
	claims := &JwtCustomClaims{
		UserID: userID,
		Email:  email,
		StandardClaims: jwt.StandardClaims{
			ExpiresAt: time.Now().Add(SessionTTL).Unix(),
			IssuedAt:  time.Now().Unix(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// ParseToken validates the signature and expiry of a session token and
// returns its claims.
func ParseToken(secret []byte, tokenString string) (*JwtCustomClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &JwtCustomClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("token is not valid")
	}

	claims, ok := token.Claims.(*JwtCustomClaims)
	if !ok {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}

// ExtractBearerToken pulls the raw token out of an Authorization header.
func ExtractBearerToken(authHeader string) string {
	if len(authHeader) < 7 || !strings.EqualFold(authHeader[:7], "Bearer ") {
		return ""
	}
	return strings.TrimSpace(authHeader[7:])
}

// AdminAuth guards the console routes. Beyond signature and expiry it
// checks the revocation list and re-queries the admin directory, so a
// session issued before a directory removal stops working on the next
// request.
func AdminAuth(secret []byte, revoker TokenRevoker, directory repositories.AdminDirectory) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tokenString := ExtractBearerToken(c.Request().Header.Get("Authorization"))
			if tokenString == "" {
				return c.JSON(http.StatusUnauthorized, models.Response{
					Status:  http.StatusUnauthorized,
					Message: "Missing or invalid authorization header",
				})
			}

			if revoker != nil {
				revoked, err := revoker.IsRevoked(c.Request().Context(), tokenString)
				if err == nil && revoked {
					return c.JSON(http.StatusUnauthorized, models.Response{
						Status:  http.StatusUnauthorized,
						Message: "Token has been invalidated",
					})
				}
			}

			claims, err := ParseToken(secret, tokenString)
			if err != nil {
				return c.JSON(http.StatusUnauthorized, models.Response{
					Status:  http.StatusUnauthorized,
					Message: "Invalid or expired token",
				})
			}

			isAdmin, err := directory.IsAdmin(c.Request().Context(), claims.UserID)
			if err != nil {
				return c.JSON(http.StatusServiceUnavailable, models.Response{
					Status:  http.StatusServiceUnavailable,
					Message: "Unable to verify administrator access",
				})
			}
			if !isAdmin {
				return c.JSON(http.StatusForbidden, models.Response{
					Status:  http.StatusForbidden,
					Message: "Access denied. This account is not an administrator.",
				})
			}

			c.Set("userId", claims.UserID)
			c.Set("email", claims.Email)
			c.Set("token", tokenString)

			return next(c)
		}
	}
}
