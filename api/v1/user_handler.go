package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"
	api_middleware "github.com/thesrcielos/TournamentHub/api/middleware"
	"github.com/thesrcielos/TournamentHub/internal/apperrors"
	"github.com/thesrcielos/TournamentHub/internal/user"
)

var Accounts *user.AccountService

func RegisterUserRoutes(g *echo.Group, auth echo.MiddlewareFunc) {
	g.POST("/signup", SignupHandler)
	g.POST("/login", LoginHandler)
	g.GET("/me", GetAccountHandler, auth)
	g.GET("/:address/stats", GetUserStatsHandler)
	g.GET("/:address/tournaments/:kind", GetUserTournamentsHandler)
	g.GET("/:address/balance", GetBalanceHandler)
}

func SignupHandler(c echo.Context) error {
	var r user.SignupRequest
	if err := bindAndValidate(c, &r); err != nil {
		return err
	}
	token, err := Accounts.Signup(r)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, echo.Map{"token": token})
}

func LoginHandler(c echo.Context) error {
	var r user.LoginRequest
	if err := bindAndValidate(c, &r); err != nil {
		return err
	}
	token, err := Accounts.Login(r)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"token": token})
}

func GetAccountHandler(c echo.Context) error {
	claims, err := api_middleware.ClaimsFromContext(c)
	if err != nil {
		return err
	}
	account, err := Accounts.GetAccount(claims.Id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"account": account})
}

func GetUserStatsHandler(c echo.Context) error {
	a, err := paramAddress(c, "address")
	if err != nil {
		return err
	}
	stats, err := TournamentHub.UserStats(c.Request().Context(), a)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newStatsView(stats))
}

func GetUserTournamentsHandler(c echo.Context) error {
	a, err := paramAddress(c, "address")
	if err != nil {
		return err
	}
	kind := user.SetKind(c.Param("kind"))
	switch kind {
	case user.SetCreated, user.SetJoined, user.SetWon:
	default:
		return apperrors.Validation("kind must be one of created, joined, won")
	}
	ids, err := TournamentHub.UserTournaments(c.Request().Context(), a, kind)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"ids": ids})
}

func GetBalanceHandler(c echo.Context) error {
	a, err := paramAddress(c, "address")
	if err != nil {
		return err
	}
	bal, err := TournamentHub.Balance(c.Request().Context(), a)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"balance": NewAmount(bal)})
}
