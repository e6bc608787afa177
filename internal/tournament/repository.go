package tournament

import (
	"context"
	"fmt"
	"math/big"

	"github.com/thesrcielos/TournamentHub/internal/apperrors"
	"github.com/thesrcielos/TournamentHub/internal/store"
)

const countKey = "tournaments:count"

type Repository interface {
	Count(ctx context.Context) (uint64, error)
	Get(ctx context.Context, id uint64) (*Tournament, error)
	Append(ctx context.Context, t *Tournament) (uint64, error)
	Save(ctx context.Context, t *Tournament) error
}

type KVRepository struct {
	kv store.KV
}

func NewRepository(kv store.KV) *KVRepository {
	return &KVRepository{kv: kv}
}

func tournamentKey(id uint64) string {
	return fmt.Sprintf("tournament:%d", id)
}

func (r *KVRepository) Count(ctx context.Context) (uint64, error) {
	n, err := store.GetUint64(ctx, r.kv, countKey)
	if err != nil {
		return 0, apperrors.Internal("Error reading tournament count", err)
	}
	return n, nil
}

// Get returns nil without error when there is no tournament with that id.
func (r *KVRepository) Get(ctx context.Context, id uint64) (*Tournament, error) {
	var t Tournament
	found, err := store.GetJSON(ctx, r.kv, tournamentKey(id), &t)
	if err != nil {
		return nil, apperrors.Internal("Error getting tournament", err)
	}
	if !found {
		return nil, nil
	}
	if t.EntryFee == nil {
		t.EntryFee = new(big.Int)
	}
	return &t, nil
}

func (r *KVRepository) Append(ctx context.Context, t *Tournament) (uint64, error) {
	id, err := store.Incr(ctx, r.kv, countKey)
	if err != nil {
		return 0, apperrors.Internal("Error allocating tournament id", err)
	}
	t.ID = id
	if err := r.Save(ctx, t); err != nil {
		return 0, err
	}
	return id, nil
}

func (r *KVRepository) Save(ctx context.Context, t *Tournament) error {
	if err := store.SetJSON(ctx, r.kv, tournamentKey(t.ID), t); err != nil {
		return apperrors.Internal("Error saving tournament", err)
	}
	return nil
}
