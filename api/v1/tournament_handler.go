package v1

import (
	"encoding/hex"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/thesrcielos/TournamentHub/internal/address"
	"github.com/thesrcielos/TournamentHub/internal/apperrors"
	"github.com/thesrcielos/TournamentHub/internal/tournament"
)

type CreateTournamentRequest struct {
	GameIndex  uint64 `json:"gameIndex" validate:"required"`
	MaxPlayers uint32 `json:"maxPlayers" validate:"required"`
	MinPlayers uint32 `json:"minPlayers" validate:"required"`
	EntryFee   string `json:"entryFee" validate:"required"`
	Name       string `json:"name" validate:"required"`
	Funding    string `json:"funding" validate:"required"`
}

type JoinTournamentRequest struct {
	Funding string `json:"funding" validate:"required"`
}

type SubmitResultsRequest struct {
	Podium    []string `json:"podium" validate:"required,min=1,dive,hexadecimal"`
	Signature string   `json:"signature" validate:"required,hexadecimal"`
}

type PlaceBetRequest struct {
	Player string `json:"player" validate:"required,hexadecimal"`
	Amount string `json:"amount" validate:"required"`
}

func RegisterTournamentRoutes(g *echo.Group, auth echo.MiddlewareFunc) {
	g.GET("", GetTournamentsHandler)
	g.GET("/count", GetTournamentCountHandler)
	g.GET("/active", GetActiveTournamentsHandler)
	g.GET("/histogram", GetStatusHistogramHandler)
	g.GET("/:id", GetTournamentHandler)
	g.GET("/:id/prize-pool", GetPrizePoolHandler)
	g.GET("/:id/spectator-pool", GetSpectatorPoolHandler)
	g.GET("/:id/bets/:player", GetSpectatorBetsHandler)

	g.POST("", CreateTournamentHandler, auth)
	g.POST("/:id/join", JoinTournamentHandler, auth)
	g.POST("/:id/start", StartGameHandler, auth)
	g.POST("/:id/results", SubmitResultsHandler, auth)
	g.POST("/:id/bets", PlaceBetHandler, auth)
	g.POST("/:id/claim", ClaimWinningsHandler, auth)
}

func CreateTournamentHandler(c echo.Context) error {
	var r CreateTournamentRequest
	if err := bindAndValidate(c, &r); err != nil {
		return err
	}
	caller, err := call(c)
	if err != nil {
		return err
	}
	fee, err := parseAmount(r.EntryFee, "entryFee")
	if err != nil {
		return err
	}
	funding, err := parseAmount(r.Funding, "funding")
	if err != nil {
		return err
	}

	t, err := TournamentHub.CreateTournament(c.Request().Context(), caller, tournament.CreateRequest{
		GameIndex:  r.GameIndex,
		MaxPlayers: r.MaxPlayers,
		MinPlayers: r.MinPlayers,
		EntryFee:   fee,
		Name:       r.Name,
		Funding:    funding,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, echo.Map{"tournament": newTournamentView(t)})
}

func JoinTournamentHandler(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var r JoinTournamentRequest
	if err := bindAndValidate(c, &r); err != nil {
		return err
	}
	caller, err := call(c)
	if err != nil {
		return err
	}
	funding, err := parseAmount(r.Funding, "funding")
	if err != nil {
		return err
	}
	t, err := TournamentHub.JoinTournament(c.Request().Context(), caller, id, funding)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusAccepted, echo.Map{"tournament": newTournamentView(t)})
}

func StartGameHandler(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	caller, err := call(c)
	if err != nil {
		return err
	}
	t, err := TournamentHub.StartGame(c.Request().Context(), caller, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusAccepted, echo.Map{"tournament": newTournamentView(t)})
}

func SubmitResultsHandler(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var r SubmitResultsRequest
	if err := bindAndValidate(c, &r); err != nil {
		return err
	}
	caller, err := call(c)
	if err != nil {
		return err
	}
	podium := make([]address.Address, 0, len(r.Podium))
	for _, raw := range r.Podium {
		a, err := parseAddress(raw, "podium")
		if err != nil {
			return err
		}
		podium = append(podium, a)
	}
	sig, err := hex.DecodeString(r.Signature)
	if err != nil {
		return apperrors.ValidationWrap("invalid signature encoding", err)
	}

	res, err := TournamentHub.SubmitResults(c.Request().Context(), caller, id, podium, sig)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{
		"tournament":   newTournamentView(res.Tournament),
		"distribution": newDistributionView(res.Distribution),
	})
}

func PlaceBetHandler(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	var r PlaceBetRequest
	if err := bindAndValidate(c, &r); err != nil {
		return err
	}
	caller, err := call(c)
	if err != nil {
		return err
	}
	player, err := parseAddress(r.Player, "player")
	if err != nil {
		return err
	}
	amount, err := parseAmount(r.Amount, "amount")
	if err != nil {
		return err
	}
	bet, err := TournamentHub.PlaceBet(c.Request().Context(), caller, id, player, amount)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, echo.Map{"bet": BetView{Bettor: bet.Bettor, Amount: NewAmount(bet.Amount)}})
}

func ClaimWinningsHandler(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	caller, err := call(c)
	if err != nil {
		return err
	}
	claim, err := TournamentHub.ClaimWinnings(c.Request().Context(), caller, id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"claim": newClaimView(claim)})
}

func GetTournamentHandler(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	t, err := TournamentHub.Tournament(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"tournament": newTournamentView(t)})
}

func GetTournamentsHandler(c echo.Context) error {
	list, err := TournamentHub.Tournaments(c.Request().Context())
	if err != nil {
		return err
	}
	views := make([]TournamentView, 0, len(list))
	for _, t := range list {
		views = append(views, newTournamentView(t))
	}
	return c.JSON(http.StatusOK, echo.Map{"tournaments": views})
}

func GetTournamentCountHandler(c echo.Context) error {
	n, err := TournamentHub.TournamentCount(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"count": n})
}

func GetActiveTournamentsHandler(c echo.Context) error {
	ids, err := TournamentHub.ActiveTournamentIDs(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"ids": ids})
}

func GetStatusHistogramHandler(c echo.Context) error {
	hist, err := TournamentHub.StatusHistogram(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, hist)
}

func GetPrizePoolHandler(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	pool, err := TournamentHub.PrizePool(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"prizePool": NewAmount(pool)})
}

func GetSpectatorPoolHandler(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	pool, err := TournamentHub.SpectatorPool(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"spectatorPool": NewAmount(pool)})
}

func GetSpectatorBetsHandler(c echo.Context) error {
	id, err := paramID(c, "id")
	if err != nil {
		return err
	}
	player, err := paramAddress(c, "player")
	if err != nil {
		return err
	}
	bets, err := TournamentHub.SpectatorBets(c.Request().Context(), id, player)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"bets": newBetViews(bets)})
}
