package game

import (
	"github.com/thesrcielos/TournamentHub/internal/signature"
)

const (
	BasisPoints  = 10_000
	MaxHouseFee  = BasisPoints
	firstIndex   = 1
	InvalidIndex = 0
)

// GameConfig is the registered configuration of one game. Everything but the
// house fee is fixed at registration.
type GameConfig struct {
	Index          uint64              `json:"index"`
	SignerKey      signature.PublicKey `json:"signerKey"`
	PodiumSize     uint32              `json:"podiumSize"`
	PayoutSchedule []uint32            `json:"payoutSchedule"`
	HouseFeeBP     uint32              `json:"houseFeeBp"`
	AllowLateJoin  bool                `json:"allowLateJoin"`
}

type RegisterRequest struct {
	SignerKey      signature.PublicKey
	PodiumSize     uint32
	PayoutSchedule []uint32
	AllowLateJoin  bool
}

type HouseFeeChange struct {
	GameIndex  uint64 `json:"gameIndex,omitempty"`
	HouseFeeBP uint32 `json:"houseFeeBp"`
}
