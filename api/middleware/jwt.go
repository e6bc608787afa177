package middleware

import (
	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/thesrcielos/TournamentHub/internal/address"
	"github.com/thesrcielos/TournamentHub/internal/apperrors"
	"github.com/thesrcielos/TournamentHub/internal/user"
)

const contextKey = "user"

// SetupJWTMiddleware rejects requests without a valid bearer token with an
// authentication error rather than echo-jwt's own responses.

func SetupJWTMiddleware(secret []byte) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(user.JwtCustomClaims)
		},
		SigningKey: secret,
		ContextKey: contextKey,
		ErrorHandler: func(c echo.Context, err error) error {
			return apperrors.Authentication("missing or invalid token", err)
		},
	})
}

func ClaimsFromContext(c echo.Context) (*user.JwtCustomClaims, error) {
	token, ok := c.Get(contextKey).(*jwt.Token)
	if !ok {
		return nil, apperrors.Authentication("missing token", nil)
	}
	claims, ok := token.Claims.(*user.JwtCustomClaims)
	if !ok {
		return nil, apperrors.Authentication("invalid token claims", nil)
	}
	return claims, nil
}

// CallerFromContext resolves the hub identity of an authenticated request.
func CallerFromContext(c echo.Context) (address.Address, error) {
	claims, err := ClaimsFromContext(c)
	if err != nil {
		return address.Zero, err
	}
	caller, err := claims.Caller()
	if err != nil {
		return address.Zero, apperrors.Authentication("invalid token address", err)
	}
	return caller, nil
}
