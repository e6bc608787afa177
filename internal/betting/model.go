package betting

import (
	"math/big"

	"github.com/thesrcielos/TournamentHub/internal/address"
)

type Bet struct {
	Bettor address.Address `json:"bettor"`
	Amount *big.Int        `json:"amount"`
}

type BetPlaced struct {
	Bettor address.Address `json:"bettor"`
	Player address.Address `json:"player"`
	Amount *big.Int        `json:"amount"`
	Pool   *big.Int        `json:"pool"`
}

type WinningsClaimed struct {
	Bettor address.Address `json:"bettor"`
	Amount *big.Int        `json:"amount"`
}

// PositionShare is what one podium position contributed to a claim.
type PositionShare struct {
	Position     int             `json:"position"`
	Winner       address.Address `json:"winner"`
	PositionPool *big.Int        `json:"positionPool"`
	CallerWager  *big.Int        `json:"callerWager"`
	TotalWagered *big.Int        `json:"totalWagered"`
	Share        *big.Int        `json:"share"`
}

type Claim struct {
	Pool      *big.Int        `json:"pool"`
	HouseFee  *big.Int        `json:"houseFee"`
	Remaining *big.Int        `json:"remaining"`
	Shares    []PositionShare `json:"shares"`
	Total     *big.Int        `json:"total"`
}
