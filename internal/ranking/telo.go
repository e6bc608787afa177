package ranking

import (
	"context"

	"github.com/thesrcielos/TournamentHub/internal/address"
	"github.com/thesrcielos/TournamentHub/internal/user"
)

const (
	MinChange    uint32 = 2
	MaxChange    uint32 = 20
	RatingFloor  uint32 = 100
	minimumGain         = MinChange
	fullWeight          = 100
	defaultRatio        = 25
)

var positionWeights = []uint32{100, 75, 50}

// CalculateChange is the stepped TELO exchange for one winner/loser pairing.
// Beating a much weaker opponent is worth little; an upset is worth a lot.
func CalculateChange(winnerRating, loserRating uint32) uint32 {
	diff := int64(winnerRating) - int64(loserRating)
	switch {
	case diff >= 400:
		return 2
	case diff >= 200:
		return 5
	case diff >= 100:
		return 8
	case diff >= 50:
		return 11
	case diff >= -50:
		return 13
	case diff >= -100:
		return 15
	case diff >= -200:
		return 17
	case diff >= -400:
		return 19
	default:
		return 20
	}
}

func positionWeight(p int) uint32 {
	if p < len(positionWeights) {
		return positionWeights[p]
	}
	return defaultRatio
}

// StatsStore is the subset of the stats ledger the engine needs.
type StatsStore interface {
	Find(ctx context.Context, a address.Address) (*user.Stats, error)
	UpdateExisting(ctx context.Context, a address.Address, fn func(*user.Stats)) (bool, error)
}

type Engine struct {
	stats StatsStore
}

func NewEngine(stats StatsStore) *Engine {
	return &Engine{stats: stats}
}

func (e *Engine) rating(ctx context.Context, a address.Address) (uint32, error) {
	s, err := e.stats.Find(ctx, a)
	if err != nil {
		return 0, err
	}
	if s == nil {
		return user.DefaultRating, nil
	}
	return s.Rating, nil
}

func (e *Engine) average(ctx context.Context, addrs []address.Address) (uint32, error) {
	if len(addrs) == 0 {
		return user.DefaultRating, nil
	}
	var total uint64
	for _, a := range addrs {
		r, err := e.rating(ctx, a)
		if err != nil {
			return 0, err
		}
		total += uint64(r)
	}
	return uint32(total / uint64(len(addrs))), nil
}

// Update moves rating points from the non-podium participants to the podium.
// Identities without a stats record are read at the default rating and are
// never written.
func (e *Engine) Update(ctx context.Context, participants, winners []address.Address) error {
	if len(winners) == 0 {
		return nil
	}

	isWinner := make(map[address.Address]struct{}, len(winners))
	for _, w := range winners {
		isWinner[w] = struct{}{}
	}
	losers := make([]address.Address, 0, len(participants))
	for _, p := range participants {
		if _, ok := isWinner[p]; !ok {
			losers = append(losers, p)
		}
	}
	if len(losers) == 0 {
		return nil
	}

	avgLoser, err := e.average(ctx, losers)
	if err != nil {
		return err
	}

	for pos, w := range winners {
		current, err := e.rating(ctx, w)
		if err != nil {
			return err
		}
		gain := CalculateChange(current, avgLoser) * positionWeight(pos) / fullWeight
		if gain < minimumGain {
			gain = minimumGain
		}
		if _, err := e.stats.UpdateExisting(ctx, w, func(s *user.Stats) { s.Rating += gain }); err != nil {
			return err
		}
	}

	avgWinner, err := e.average(ctx, winners)
	if err != nil {
		return err
	}

	for _, l := range losers {
		current, err := e.rating(ctx, l)
		if err != nil {
			return err
		}
		loss := CalculateChange(avgWinner, current)
		if _, err := e.stats.UpdateExisting(ctx, l, func(s *user.Stats) { s.Rating = applyLoss(s.Rating, loss) }); err != nil {
			return err
		}
	}
	return nil
}

func applyLoss(rating, loss uint32) uint32 {
	if rating > loss+RatingFloor {
		return rating - loss
	}
	return RatingFloor
}
