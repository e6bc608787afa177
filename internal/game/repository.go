package game

import (
	"context"
	"fmt"

	"github.com/thesrcielos/TournamentHub/internal/apperrors"
	"github.com/thesrcielos/TournamentHub/internal/store"
)

const (
	countKey    = "games:count"
	houseFeeKey = "games:house_fee"
)

type Repository interface {
	Count(ctx context.Context) (uint64, error)
	Get(ctx context.Context, index uint64) (*GameConfig, error)
	Append(ctx context.Context, cfg *GameConfig) (uint64, error)
	Save(ctx context.Context, cfg *GameConfig) error
	DefaultHouseFee(ctx context.Context) (uint32, error)
	SetDefaultHouseFee(ctx context.Context, fee uint32) error
}

type KVRepository struct {
	kv store.KV
}

func NewRepository(kv store.KV) *KVRepository {
	return &KVRepository{kv: kv}
}

func gameKey(index uint64) string {
	return fmt.Sprintf("game:%d", index)
}

func (r *KVRepository) Count(ctx context.Context) (uint64, error) {
	n, err := store.GetUint64(ctx, r.kv, countKey)
	if err != nil {
		return 0, apperrors.Internal("Error reading game count", err)
	}
	return n, nil
}

// Get returns nil without error when no game has that index.
func (r *KVRepository) Get(ctx context.Context, index uint64) (*GameConfig, error) {
	var cfg GameConfig
	found, err := store.GetJSON(ctx, r.kv, gameKey(index), &cfg)
	if err != nil {
		return nil, apperrors.Internal("Error getting game", err)
	}
	if !found {
		return nil, nil
	}
	return &cfg, nil
}

// Append stores cfg under the next sequential index, starting at 1.
func (r *KVRepository) Append(ctx context.Context, cfg *GameConfig) (uint64, error) {
	index, err := store.Incr(ctx, r.kv, countKey)
	if err != nil {
		return InvalidIndex, apperrors.Internal("Error allocating game index", err)
	}
	cfg.Index = index
	if err := r.Save(ctx, cfg); err != nil {
		return InvalidIndex, err
	}
	return index, nil
}

func (r *KVRepository) Save(ctx context.Context, cfg *GameConfig) error {
	if err := store.SetJSON(ctx, r.kv, gameKey(cfg.Index), cfg); err != nil {
		return apperrors.Internal("Error saving game", err)
	}
	return nil
}

func (r *KVRepository) DefaultHouseFee(ctx context.Context) (uint32, error) {
	fee, err := store.GetUint64(ctx, r.kv, houseFeeKey)
	if err != nil {
		return 0, apperrors.Internal("Error reading house fee", err)
	}
	return uint32(fee), nil
}

func (r *KVRepository) SetDefaultHouseFee(ctx context.Context, fee uint32) error {
	if err := store.SetUint64(ctx, r.kv, houseFeeKey, uint64(fee)); err != nil {
		return apperrors.Internal("Error saving house fee", err)
	}
	return nil
}
