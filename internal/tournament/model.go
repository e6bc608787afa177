package tournament

import (
	"math/big"

	"github.com/thesrcielos/TournamentHub/internal/address"
)

type Status int

const (
	Joining Status = iota
	ReadyToStart
	Active
	ProcessingResults
	Completed
)

func (s Status) String() string {
	switch s {
	case Joining:
		return "Joining"
	case ReadyToStart:
		return "ReadyToStart"
	case Active:
		return "Active"
	case ProcessingResults:
		return "ProcessingResults"
	case Completed:
		return "Completed"
	default:
		return "Unknown"
	}
}

const (
	MinPlayers    = 2
	MaxPlayers    = 8
	MaxNameLength = 100
)

type Tournament struct {
	ID           uint64            `json:"id"`
	GameID       uint64            `json:"gameId"`
	Status       Status            `json:"status"`
	Participants []address.Address `json:"participants"`
	FinalPodium  []address.Address `json:"finalPodium"`
	Creator      address.Address   `json:"creator"`
	MaxPlayers   uint32            `json:"maxPlayers"`
	MinPlayers   uint32            `json:"minPlayers"`
	EntryFee     *big.Int          `json:"entryFee"`
	Name         string            `json:"name"`
	CreatedAt    uint64            `json:"createdAt"`
}

func (t *Tournament) HasParticipant(a address.Address) bool {
	return address.Contains(t.Participants, a)
}

func (t *Tournament) Full() bool {
	return len(t.Participants) >= int(t.MaxPlayers)
}

// PrizePool is the entry fee times the current roster.
func (t *Tournament) PrizePool() *big.Int {
	return new(big.Int).Mul(t.EntryFee, big.NewInt(int64(len(t.Participants))))
}

type CreateRequest struct {
	GameIndex  uint64
	MaxPlayers uint32
	MinPlayers uint32
	EntryFee   *big.Int
	Name       string
	Funding    *big.Int
}

// StatusHistogram counts tournaments per status. Tournaments caught in
// ProcessingResults are not counted in any bucket.
type StatusHistogram struct {
	Joining      uint64 `json:"joining"`
	ReadyToStart uint64 `json:"readyToStart"`
	Active       uint64 `json:"active"`
	Completed    uint64 `json:"completed"`
	TotalCreated uint64 `json:"totalCreated"`
}

type JoinedPayload struct {
	Player       address.Address `json:"player"`
	Participants int             `json:"participants"`
}

type CreatedPayload struct {
	GameID  uint64          `json:"gameId"`
	Creator address.Address `json:"creator"`
	Name    string          `json:"name"`
}

type ResultsPayload struct {
	Submitter address.Address   `json:"submitter"`
	Podium    []address.Address `json:"podium"`
}
