package middleware

import (
	"context"
	"net/http"

	"firebase.google.com/go/v4/auth"
	"github.com/labstack/echo/v4"

	"github.com/anonto42/nano-social/backend/internal/models"
	"github.com/anonto42/nano-social/backend/pkg/logger"
)

// TokenVerifier verifies Firebase ID tokens. *auth.Client implements it.
type TokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
}

// UserResolver maps a verified Firebase token to the local user.
type UserResolver func(ctx context.Context, token *auth.Token) (*models.User, error)

// FirebaseAuthMiddleware verifies Firebase ID tokens and stores the claims of
// the matching local user, so handlers see the same context as with JWTs.
func FirebaseAuthMiddleware(verifier TokenVerifier, resolve UserResolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			idToken, err := bearerToken(c)
			if err != nil {
				return err
			}

			ctx := c.Request().Context()
			token, err := verifier.VerifyIDToken(ctx, idToken)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid or expired ID token")
			}

			user, err := resolve(ctx, token)
			if err != nil {
				logger.Error("Failed to resolve firebase user", "firebase_uid", token.UID, "error", err)
				return echo.NewHTTPError(http.StatusUnauthorized, "Authenticated user not found")
			}

			c.Set("firebaseUID", token.UID)
			c.Set(UserContextKey, &models.JwtCustomClaims{
				UserID:   user.ID,
				Username: user.Username,
				Role:     user.Role,
			})
			return next(c)
		}
	}
}
