package tournament

import (
	"context"
	"math/big"

	"github.com/thesrcielos/TournamentHub/internal/apperrors"
	"github.com/thesrcielos/TournamentHub/internal/store"
)

const (
	createdKey     = "stats:tournaments_created"
	completedKey   = "stats:tournaments_completed"
	houseFeesKey   = "stats:house_fees"
	maxPrizeKey    = "stats:max_prize"
	totalPrizesKey = "stats:total_prize_distributed"
)

// Totals are the hub-wide counters.
type Totals struct {
	kv store.KV
}

func NewTotals(kv store.KV) *Totals {
	return &Totals{kv: kv}
}

type Snapshot struct {
	TournamentsCreated    uint64   `json:"tournamentsCreated"`
	TournamentsCompleted  uint64   `json:"tournamentsCompleted"`
	AccumulatedHouseFees  *big.Int `json:"accumulatedHouseFees"`
	MaxPrizeWon           *big.Int `json:"maxPrizeWon"`
	TotalPrizeDistributed *big.Int `json:"totalPrizeDistributed"`
}

func (t *Totals) incr(ctx context.Context, key string) error {
	if _, err := store.Incr(ctx, t.kv, key); err != nil {
		return apperrors.Internal("Error updating counters", err)
	}
	return nil
}

func (t *Totals) TournamentCreated(ctx context.Context) error {
	return t.incr(ctx, createdKey)
}

func (t *Totals) TournamentCompleted(ctx context.Context) error {
	return t.incr(ctx, completedKey)
}

func (t *Totals) add(ctx context.Context, key string, amount *big.Int) error {
	cur, err := store.GetBigInt(ctx, t.kv, key)
	if err != nil {
		return apperrors.Internal("Error reading counters", err)
	}
	if err := store.SetBigInt(ctx, t.kv, key, cur.Add(cur, amount)); err != nil {
		return apperrors.Internal("Error updating counters", err)
	}
	return nil
}

func (t *Totals) AddHouseFee(ctx context.Context, amount *big.Int) error {
	if amount.Sign() <= 0 {
		return nil
	}
	return t.add(ctx, houseFeesKey, amount)
}

// RecordPrize adds a paid prize to the distributed total and raises the
// max prize if needed.
func (t *Totals) RecordPrize(ctx context.Context, amount *big.Int) error {
	if err := t.add(ctx, totalPrizesKey, amount); err != nil {
		return err
	}
	best, err := store.GetBigInt(ctx, t.kv, maxPrizeKey)
	if err != nil {
		return apperrors.Internal("Error reading counters", err)
	}
	if amount.Cmp(best) > 0 {
		if err := store.SetBigInt(ctx, t.kv, maxPrizeKey, amount); err != nil {
			return apperrors.Internal("Error updating counters", err)
		}
	}
	return nil
}

func (t *Totals) Snapshot(ctx context.Context) (*Snapshot, error) {
	var (
		s   Snapshot
		err error
	)
	if s.TournamentsCreated, err = store.GetUint64(ctx, t.kv, createdKey); err != nil {
		return nil, apperrors.Internal("Error reading counters", err)
	}
	if s.TournamentsCompleted, err = store.GetUint64(ctx, t.kv, completedKey); err != nil {
		return nil, apperrors.Internal("Error reading counters", err)
	}
	if s.AccumulatedHouseFees, err = store.GetBigInt(ctx, t.kv, houseFeesKey); err != nil {
		return nil, apperrors.Internal("Error reading counters", err)
	}
	if s.MaxPrizeWon, err = store.GetBigInt(ctx, t.kv, maxPrizeKey); err != nil {
		return nil, apperrors.Internal("Error reading counters", err)
	}
	if s.TotalPrizeDistributed, err = store.GetBigInt(ctx, t.kv, totalPrizesKey); err != nil {
		return nil, apperrors.Internal("Error reading counters", err)
	}
	return &s, nil
}
