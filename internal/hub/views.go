package hub

import (
	"context"
	"math/big"

	"github.com/thesrcielos/TournamentHub/internal/address"
	"github.com/thesrcielos/TournamentHub/internal/betting"
	"github.com/thesrcielos/TournamentHub/internal/game"
	"github.com/thesrcielos/TournamentHub/internal/tournament"
	"github.com/thesrcielos/TournamentHub/internal/user"
)

func (h *Hub) Game(ctx context.Context, index uint64) (*game.GameConfig, error) {
	var cfg *game.GameConfig
	err := h.view(func(s *session) error {
		var err error
		cfg, err = s.games.Get(ctx, index)
		return err
	})
	return cfg, err
}

func (h *Hub) GameCount(ctx context.Context) (uint64, error) {
	var n uint64
	err := h.view(func(s *session) error {
		var err error
		n, err = s.games.Count(ctx)
		return err
	})
	return n, err
}

// HouseFee is the default fee copied into newly registered games.
func (h *Hub) HouseFee(ctx context.Context) (uint32, error) {
	var fee uint32
	err := h.view(func(s *session) error {
		var err error
		fee, err = s.games.HouseFee(ctx)
		return err
	})
	return fee, err
}

func (h *Hub) Tournament(ctx context.Context, id uint64) (*tournament.Tournament, error) {
	var t *tournament.Tournament
	err := h.view(func(s *session) error {
		var err error
		t, err = s.deps.Get(ctx, id)
		return err
	})
	return t, err
}

func (h *Hub) Tournaments(ctx context.Context) ([]*tournament.Tournament, error) {
	var list []*tournament.Tournament
	err := h.view(func(s *session) error {
		var err error
		list, err = s.views.List(ctx)
		return err
	})
	return list, err
}

func (h *Hub) TournamentCount(ctx context.Context) (uint64, error) {
	var n uint64
	err := h.view(func(s *session) error {
		var err error
		n, err = s.views.Count(ctx)
		return err
	})
	return n, err
}

func (h *Hub) ActiveTournamentIDs(ctx context.Context) ([]uint64, error) {
	var ids []uint64
	err := h.view(func(s *session) error {
		var err error
		ids, err = s.views.ActiveIDs(ctx)
		return err
	})
	return ids, err
}

func (h *Hub) PrizePool(ctx context.Context, id uint64) (*big.Int, error) {
	var pool *big.Int
	err := h.view(func(s *session) error {
		var err error
		pool, err = s.views.PrizePool(ctx, id)
		return err
	})
	return pool, err
}

func (h *Hub) StatusHistogram(ctx context.Context) (*tournament.StatusHistogram, error) {
	var hist *tournament.StatusHistogram
	err := h.view(func(s *session) error {
		var err error
		hist, err = s.views.Histogram(ctx)
		return err
	})
	return hist, err
}

func (h *Hub) SpectatorBets(ctx context.Context, id uint64, player address.Address) ([]betting.Bet, error) {
	var bets []betting.Bet
	err := h.view(func(s *session) error {
		var err error
		bets, err = s.book.Bets(ctx, id, player)
		return err
	})
	return bets, err
}

func (h *Hub) SpectatorPool(ctx context.Context, id uint64) (*big.Int, error) {
	var pool *big.Int
	err := h.view(func(s *session) error {
		var err error
		pool, err = s.book.PoolTotal(ctx, id)
		return err
	})
	return pool, err
}

// UserStats returns defaults for identities that never played.
func (h *Hub) UserStats(ctx context.Context, a address.Address) (*user.Stats, error) {
	var stats *user.Stats
	err := h.view(func(s *session) error {
		var err error
		stats, err = s.stats.Get(ctx, a)
		return err
	})
	return stats, err
}

func (h *Hub) UserTournaments(ctx context.Context, a address.Address, kind user.SetKind) ([]uint64, error) {
	var ids []uint64
	err := h.view(func(s *session) error {
		var err error
		ids, err = s.stats.Set(ctx, a, kind)
		return err
	})
	return ids, err
}

func (h *Hub) Balance(ctx context.Context, a address.Address) (*big.Int, error) {
	var bal *big.Int
	err := h.view(func(s *session) error {
		var err error
		bal, err = s.ledger.Balance(ctx, a)
		return err
	})
	return bal, err
}

func (h *Hub) Totals(ctx context.Context) (*tournament.Snapshot, error) {
	var snap *tournament.Snapshot
	err := h.view(func(s *session) error {
		var err error
		snap, err = s.deps.Totals.Snapshot(ctx)
		return err
	})
	return snap, err
}
