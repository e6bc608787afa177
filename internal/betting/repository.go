package betting

import (
	"context"
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math/big"

	"github.com/thesrcielos/TournamentHub/internal/address"
	"github.com/thesrcielos/TournamentHub/internal/apperrors"
	"github.com/thesrcielos/TournamentHub/internal/store"
)

type Repository interface {
	AppendBet(ctx context.Context, tournamentID uint64, player address.Address, bet Bet) error
	Bets(ctx context.Context, tournamentID uint64, player address.Address) ([]Bet, error)
	PoolTotal(ctx context.Context, tournamentID uint64) (*big.Int, error)
	SetPoolTotal(ctx context.Context, tournamentID uint64, total *big.Int) error
	Claimed(ctx context.Context, tournamentID uint64, caller address.Address) (bool, error)
	MarkClaimed(ctx context.Context, tournamentID uint64, caller address.Address) error
}

type KVRepository struct {
	kv store.KV
}

func NewRepository(kv store.KV) *KVRepository {
	return &KVRepository{kv: kv}
}

func betsKey(tournamentID uint64, player address.Address) string {
	return fmt.Sprintf("bets:%d:%s", tournamentID, player)
}

func poolKey(tournamentID uint64) string {
	return fmt.Sprintf("bets:%d:pool", tournamentID)
}

// ClaimKey is be64(tournament id) || "_" || caller bytes.
func ClaimKey(tournamentID uint64, caller address.Address) []byte {
	key := make([]byte, 8, 8+1+address.Length)
	binary.BigEndian.PutUint64(key, tournamentID)
	key = append(key, '_')
	return append(key, caller.Bytes()...)
}

func claimStoreKey(tournamentID uint64, caller address.Address) string {
	return "claims:" + hex.EncodeToString(ClaimKey(tournamentID, caller))
}

func (r *KVRepository) AppendBet(ctx context.Context, tournamentID uint64, player address.Address, bet Bet) error {
	if err := store.AppendJSON(ctx, r.kv, betsKey(tournamentID, player), bet); err != nil {
		return apperrors.Internal("Error saving bet", err)
	}
	return nil
}

func (r *KVRepository) Bets(ctx context.Context, tournamentID uint64, player address.Address) ([]Bet, error) {
	items, err := r.kv.Range(ctx, betsKey(tournamentID, player))
	if err != nil {
		return nil, apperrors.Internal("Error getting bets", err)
	}
	bets := make([]Bet, 0, len(items))
	for _, item := range items {
		var b Bet
		if err := json.Unmarshal(item, &b); err != nil {
			return nil, apperrors.Internal("Error decoding bet", err)
		}
		if b.Amount == nil {
			b.Amount = new(big.Int)
		}
		bets = append(bets, b)
	}
	return bets, nil
}

func (r *KVRepository) PoolTotal(ctx context.Context, tournamentID uint64) (*big.Int, error) {
	total, err := store.GetBigInt(ctx, r.kv, poolKey(tournamentID))
	if err != nil {
		return nil, apperrors.Internal("Error reading spectator pool", err)
	}
	return total, nil
}

func (r *KVRepository) SetPoolTotal(ctx context.Context, tournamentID uint64, total *big.Int) error {
	if err := store.SetBigInt(ctx, r.kv, poolKey(tournamentID), total); err != nil {
		return apperrors.Internal("Error saving spectator pool", err)
	}
	return nil
}

func (r *KVRepository) Claimed(ctx context.Context, tournamentID uint64, caller address.Address) (bool, error) {
	ok, err := r.kv.Exists(ctx, claimStoreKey(tournamentID, caller))
	if err != nil {
		return false, apperrors.Internal("Error reading claim", err)
	}
	return ok, nil
}

func (r *KVRepository) MarkClaimed(ctx context.Context, tournamentID uint64, caller address.Address) error {
	if err := r.kv.Set(ctx, claimStoreKey(tournamentID, caller), []byte("1")); err != nil {
		return apperrors.Internal("Error saving claim", err)
	}
	return nil
}
