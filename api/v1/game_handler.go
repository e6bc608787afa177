package v1

import (
	"encoding/hex"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/thesrcielos/TournamentHub/internal/apperrors"
	"github.com/thesrcielos/TournamentHub/internal/game"
	"github.com/thesrcielos/TournamentHub/internal/signature"
)

type RegisterGameRequest struct {
	SignerScheme   string   `json:"signerScheme" validate:"required,oneof=ed25519 secp256k1"`
	SignerKey      string   `json:"signerKey" validate:"required,hexadecimal"`
	PodiumSize     uint32   `json:"podiumSize" validate:"required,min=1"`
	PayoutSchedule []uint32 `json:"payoutSchedule" validate:"required,min=1,dive,max=10000"`
	AllowLateJoin  bool     `json:"allowLateJoin"`
}

type HouseFeeRequest struct {
	HouseFeeBP uint32 `json:"houseFeeBp" validate:"max=10000"`
}

type GameView struct {
	Index          uint64   `json:"index"`
	SignerScheme   string   `json:"signerScheme"`
	SignerKey      string   `json:"signerKey"`
	PodiumSize     uint32   `json:"podiumSize"`
	PayoutSchedule []uint32 `json:"payoutSchedule"`
	HouseFeeBP     uint32   `json:"houseFeeBp"`
	AllowLateJoin  bool     `json:"allowLateJoin"`
}

func newGameView(cfg *game.GameConfig) GameView {
	return GameView{
		Index:          cfg.Index,
		SignerScheme:   string(cfg.SignerKey.Scheme),
		SignerKey:      hex.EncodeToString(cfg.SignerKey.Key),
		PodiumSize:     cfg.PodiumSize,
		PayoutSchedule: cfg.PayoutSchedule,
		HouseFeeBP:     cfg.HouseFeeBP,
		AllowLateJoin:  cfg.AllowLateJoin,
	}
}

func RegisterGameRoutes(g *echo.Group, auth echo.MiddlewareFunc) {
	g.GET("/count", GetGameCountHandler)
	g.GET("/house-fee", GetHouseFeeHandler)
	g.GET("/:index", GetGameHandler)
	g.POST("", RegisterGameHandler, auth)
	g.PUT("/house-fee", SetHouseFeeHandler, auth)
	g.PUT("/:index/house-fee", SetGameHouseFeeHandler, auth)
}

func RegisterGameHandler(c echo.Context) error {
	var r RegisterGameRequest
	if err := bindAndValidate(c, &r); err != nil {
		return err
	}
	caller, err := call(c)
	if err != nil {
		return err
	}
	key, err := hex.DecodeString(r.SignerKey)
	if err != nil {
		return apperrors.ValidationWrap("invalid signerKey", err)
	}

	cfg, err := TournamentHub.RegisterGame(c.Request().Context(), caller, game.RegisterRequest{
		SignerKey:      signature.PublicKey{Scheme: signature.Scheme(r.SignerScheme), Key: key},
		PodiumSize:     r.PodiumSize,
		PayoutSchedule: r.PayoutSchedule,
		AllowLateJoin:  r.AllowLateJoin,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, echo.Map{"game": newGameView(cfg)})
}

func SetHouseFeeHandler(c echo.Context) error {
	var r HouseFeeRequest
	if err := bindAndValidate(c, &r); err != nil {
		return err
	}
	caller, err := call(c)
	if err != nil {
		return err
	}
	if err := TournamentHub.SetHouseFee(c.Request().Context(), caller, r.HouseFeeBP); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"houseFeeBp": r.HouseFeeBP})
}

func SetGameHouseFeeHandler(c echo.Context) error {
	index, err := paramID(c, "index")
	if err != nil {
		return err
	}
	var r HouseFeeRequest
	if err := bindAndValidate(c, &r); err != nil {
		return err
	}
	caller, err := call(c)
	if err != nil {
		return err
	}
	cfg, err := TournamentHub.SetGameHouseFee(c.Request().Context(), caller, index, r.HouseFeeBP)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"game": newGameView(cfg)})
}

func GetGameHandler(c echo.Context) error {
	index, err := paramID(c, "index")
	if err != nil {
		return err
	}
	cfg, err := TournamentHub.Game(c.Request().Context(), index)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"game": newGameView(cfg)})
}

func GetGameCountHandler(c echo.Context) error {
	n, err := TournamentHub.GameCount(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"count": n})
}

func GetHouseFeeHandler(c echo.Context) error {
	fee, err := TournamentHub.HouseFee(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"houseFeeBp": fee})
}
