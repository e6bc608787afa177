package v1

import (
	"errors"
	"math/big"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	api_middleware "github.com/thesrcielos/TournamentHub/api/middleware"
	"github.com/thesrcielos/TournamentHub/internal/address"
	"github.com/thesrcielos/TournamentHub/internal/apperrors"
	"github.com/thesrcielos/TournamentHub/internal/hub"
)

const INVALID_REQUEST = "invalid request"

var (
	TournamentHub *hub.Hub
	TokenDecimals int32 = 18
)

// RequestValidator plugs go-playground/validator into echo's c.Validate.
type RequestValidator struct {
	validator *validator.Validate
}

func NewRequestValidator() *RequestValidator {
	return &RequestValidator{validator: validator.New()}
}

func (v *RequestValidator) Validate(i interface{}) error {
	if err := v.validator.Struct(i); err != nil {
		return apperrors.ValidationWrap("validation failed", err)
	}
	return nil
}

func bindAndValidate(c echo.Context, req interface{}) error {
	if err := c.Bind(req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, INVALID_REQUEST)
	}
	return c.Validate(req)
}

// HTTPErrorHandler renders AppErrors with their own status code and kind.
func HTTPErrorHandler(err error, c echo.Context) {
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		c.Echo().DefaultHTTPErrorHandler(err, c)
		return
	}
	if c.Response().Committed {
		return
	}
	if appErr.Code >= http.StatusInternalServerError {
		c.Logger().Error(err)
	}
	body := echo.Map{"message": appErr.Message, "kind": appErr.Kind}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		body["details"] = verrs.Error()
	}
	if err := c.JSON(appErr.Code, body); err != nil {
		c.Logger().Error(err)
	}
}

func call(c echo.Context) (hub.Call, error) {
	caller, err := api_middleware.CallerFromContext(c)
	if err != nil {
		return hub.Call{}, err
	}
	return hub.Call{Caller: caller}, nil
}

func paramID(c echo.Context, name string) (uint64, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		return 0, apperrors.Validation("invalid " + name)
	}
	return id, nil
}

func paramAddress(c echo.Context, name string) (address.Address, error) {
	a, err := address.Parse(c.Param(name))
	if err != nil {
		return address.Zero, apperrors.ValidationWrap("invalid "+name, err)
	}
	return a, nil
}

func parseAddress(s, field string) (address.Address, error) {
	a, err := address.Parse(s)
	if err != nil {
		return address.Zero, apperrors.ValidationWrap("invalid "+field, err)
	}
	return a, nil
}

// parseAmount reads a base 10 integer in the token's smallest unit.
func parseAmount(s, field string) (*big.Int, error) {
	n, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, apperrors.Validation("invalid " + field)
	}
	return n, nil
}

// Amount is how token quantities leave the API: the exact integer plus a
// scaled rendering for display.
type Amount struct {
	Raw     string `json:"raw"`
	Display string `json:"display"`
}

func NewAmount(n *big.Int) Amount {
	if n == nil {
		n = new(big.Int)
	}
	return Amount{
		Raw:     n.String(),
		Display: decimal.NewFromBigInt(n, -TokenDecimals).String(),
	}
}
