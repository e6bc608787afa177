package v1

import (
	"github.com/thesrcielos/TournamentHub/internal/address"
	"github.com/thesrcielos/TournamentHub/internal/betting"
	"github.com/thesrcielos/TournamentHub/internal/tournament"
	"github.com/thesrcielos/TournamentHub/internal/user"
)

type TournamentView struct {
	ID           uint64            `json:"id"`
	GameID       uint64            `json:"gameId"`
	Status       string            `json:"status"`
	Participants []address.Address `json:"participants"`
	FinalPodium  []address.Address `json:"finalPodium"`
	Creator      address.Address   `json:"creator"`
	MaxPlayers   uint32            `json:"maxPlayers"`
	MinPlayers   uint32            `json:"minPlayers"`
	EntryFee     Amount            `json:"entryFee"`
	PrizePool    Amount            `json:"prizePool"`
	Name         string            `json:"name"`
	CreatedAt    uint64            `json:"createdAt"`
}

func newTournamentView(t *tournament.Tournament) TournamentView {
	return TournamentView{
		ID:           t.ID,
		GameID:       t.GameID,
		Status:       t.Status.String(),
		Participants: t.Participants,
		FinalPodium:  t.FinalPodium,
		Creator:      t.Creator,
		MaxPlayers:   t.MaxPlayers,
		MinPlayers:   t.MinPlayers,
		EntryFee:     NewAmount(t.EntryFee),
		PrizePool:    NewAmount(t.PrizePool()),
		Name:         t.Name,
		CreatedAt:    t.CreatedAt,
	}
}

type PrizeView struct {
	Position int             `json:"position"`
	Winner   address.Address `json:"winner"`
	Amount   Amount          `json:"amount"`
}

type DistributionView struct {
	PrizePool Amount      `json:"prizePool"`
	HouseFee  Amount      `json:"houseFee"`
	Prizes    []PrizeView `json:"prizes"`
}

func newDistributionView(d *tournament.Distribution) DistributionView {
	v := DistributionView{
		PrizePool: NewAmount(d.TotalPool),
		HouseFee:  NewAmount(d.HouseFee),
		Prizes:    make([]PrizeView, 0, len(d.Prizes)),
	}
	for _, p := range d.Prizes {
		v.Prizes = append(v.Prizes, PrizeView{Position: p.Position, Winner: p.Winner, Amount: NewAmount(p.Amount)})
	}
	return v
}

type BetView struct {
	Bettor address.Address `json:"bettor"`
	Amount Amount          `json:"amount"`
}

func newBetViews(bets []betting.Bet) []BetView {
	out := make([]BetView, 0, len(bets))
	for _, b := range bets {
		out = append(out, BetView{Bettor: b.Bettor, Amount: NewAmount(b.Amount)})
	}
	return out
}

type ClaimView struct {
	Pool     Amount `json:"pool"`
	HouseFee Amount `json:"houseFee"`
	Total    Amount `json:"total"`
}

func newClaimView(c *betting.Claim) ClaimView {
	return ClaimView{
		Pool:     NewAmount(c.Pool),
		HouseFee: NewAmount(c.HouseFee),
		Total:    NewAmount(c.Total),
	}
}

type StatsView struct {
	GamesPlayed        uint32 `json:"gamesPlayed"`
	Wins               uint32 `json:"wins"`
	Losses             uint32 `json:"losses"`
	WinRate            uint32 `json:"winRate"`
	TokensWon          Amount `json:"tokensWon"`
	TokensSpent        Amount `json:"tokensSpent"`
	TournamentsCreated uint32 `json:"tournamentsCreated"`
	TournamentsWon     uint32 `json:"tournamentsWon"`
	CurrentStreak      uint32 `json:"currentStreak"`
	BestStreak         uint32 `json:"bestStreak"`
	LastActivity       uint64 `json:"lastActivity"`
	MemberSince        uint64 `json:"memberSince"`
	Rating             uint32 `json:"rating"`
}

func newStatsView(s *user.Stats) StatsView {
	return StatsView{
		GamesPlayed:        s.GamesPlayed,
		Wins:               s.Wins,
		Losses:             s.Losses,
		WinRate:            s.WinRate,
		TokensWon:          NewAmount(s.TokensWon),
		TokensSpent:        NewAmount(s.TokensSpent),
		TournamentsCreated: s.TournamentsCreated,
		TournamentsWon:     s.TournamentsWon,
		CurrentStreak:      s.CurrentStreak,
		BestStreak:         s.BestStreak,
		LastActivity:       s.LastActivity,
		MemberSince:        s.MemberSince,
		Rating:             s.Rating,
	}
}

type TotalsView struct {
	TournamentsCreated    uint64 `json:"tournamentsCreated"`
	TournamentsCompleted  uint64 `json:"tournamentsCompleted"`
	AccumulatedHouseFees  Amount `json:"accumulatedHouseFees"`
	MaxPrizeWon           Amount `json:"maxPrizeWon"`
	TotalPrizeDistributed Amount `json:"totalPrizeDistributed"`
}

func newTotalsView(s *tournament.Snapshot) TotalsView {
	return TotalsView{
		TournamentsCreated:    s.TournamentsCreated,
		TournamentsCompleted:  s.TournamentsCompleted,
		AccumulatedHouseFees:  NewAmount(s.AccumulatedHouseFees),
		MaxPrizeWon:           NewAmount(s.MaxPrizeWon),
		TotalPrizeDistributed: NewAmount(s.TotalPrizeDistributed),
	}
}
