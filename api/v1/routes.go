package v1

import (
	"github.com/labstack/echo/v4"
	api_middleware "github.com/thesrcielos/TournamentHub/api/middleware"
)

// Setup installs validation, error rendering and every /api/v1 route.
func Setup(e *echo.Echo, jwtSecret []byte) {
	e.Validator = NewRequestValidator()
	e.HTTPErrorHandler = HTTPErrorHandler

	auth := api_middleware.SetupJWTMiddleware(jwtSecret)
	api := e.Group("/api/v1")
	RegisterUserRoutes(api.Group("/users"), auth)
	RegisterGameRoutes(api.Group("/games"), auth)
	RegisterTournamentRoutes(api.Group("/tournaments"), auth)
	RegisterLedgerRoutes(api.Group("/ledger"), auth)
}
