package user

import (
	"math/big"
)

const DefaultRating uint32 = 1500

// Account is the login record that binds credentials to a hub identity.
type Account struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Username string `gorm:"uniqueIndex;not null" json:"username"`
	Password string `json:"password,omitempty"`
	Address  string `gorm:"uniqueIndex;size:64;not null" json:"address"`
}

// Stats are the aggregate results of one identity. Amounts are in the
// smallest token unit; WinRate is in basis points.
type Stats struct {
	GamesPlayed        uint32   `json:"gamesPlayed"`
	Wins               uint32   `json:"wins"`
	Losses             uint32   `json:"losses"`
	WinRate            uint32   `json:"winRate"`
	TokensWon          *big.Int `json:"tokensWon"`
	TokensSpent        *big.Int `json:"tokensSpent"`
	TournamentsCreated uint32   `json:"tournamentsCreated"`
	TournamentsWon     uint32   `json:"tournamentsWon"`
	CurrentStreak      uint32   `json:"currentStreak"`
	BestStreak         uint32   `json:"bestStreak"`
	LastActivity       uint64   `json:"lastActivity"`
	MemberSince        uint64   `json:"memberSince"`
	Rating             uint32   `json:"rating"`
}

func NewStats(now uint64) *Stats {
	return &Stats{
		TokensWon:   new(big.Int),
		TokensSpent: new(big.Int),
		MemberSince: now,
		Rating:      DefaultRating,
	}
}

func (s *Stats) normalize() {
	if s.TokensWon == nil {
		s.TokensWon = new(big.Int)
	}
	if s.TokensSpent == nil {
		s.TokensSpent = new(big.Int)
	}
}

func (s *Stats) recomputeWinRate() {
	if s.GamesPlayed > 0 {
		s.WinRate = uint32(uint64(s.Wins) * 10_000 / uint64(s.GamesPlayed))
	}
}

type SignupRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Password string `json:"password" validate:"required,min=6"`
	Address  string `json:"address" validate:"required,hexadecimal"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}
