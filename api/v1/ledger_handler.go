package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

type DepositRequest struct {
	Account string `json:"account" validate:"required,hexadecimal"`
	Amount  string `json:"amount" validate:"required"`
}

func RegisterLedgerRoutes(g *echo.Group, auth echo.MiddlewareFunc) {
	g.GET("/totals", GetTotalsHandler)
	g.POST("/deposit", DepositHandler, auth)
}

// DepositHandler mints tokens into an account. The hub rejects non-owners.
func DepositHandler(c echo.Context) error {
	var r DepositRequest
	if err := bindAndValidate(c, &r); err != nil {
		return err
	}
	caller, err := call(c)
	if err != nil {
		return err
	}
	account, err := parseAddress(r.Account, "account")
	if err != nil {
		return err
	}
	amount, err := parseAmount(r.Amount, "amount")
	if err != nil {
		return err
	}
	bal, err := TournamentHub.Deposit(c.Request().Context(), caller, account, amount)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"account": account, "balance": NewAmount(bal)})
}

// GetTotalsHandler reports accumulated house fees and prize statistics.
func GetTotalsHandler(c echo.Context) error {
	snap, err := TournamentHub.Totals(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newTotalsView(snap))
}
