package tournament

import (
	"context"
	"math/big"

	"github.com/thesrcielos/TournamentHub/internal/address"
	"github.com/thesrcielos/TournamentHub/internal/apperrors"
	"github.com/thesrcielos/TournamentHub/internal/events"
	"github.com/thesrcielos/TournamentHub/internal/game"
	"github.com/thesrcielos/TournamentHub/internal/user"
)

// Payments moves tokens. A failed transfer must abort the calling operation.
type Payments interface {
	Transfer(ctx context.Context, from, to address.Address, amount *big.Int) error
}

type GameLookup interface {
	Get(ctx context.Context, index uint64) (*game.GameConfig, error)
}

type RatingUpdater interface {
	Update(ctx context.Context, participants, winners []address.Address) error
}

// Deps are the collaborators shared by the lifecycle, the results authority
// and the prize distributor. They all write through the same store view.
type Deps struct {
	Repo     Repository
	Games    GameLookup
	Stats    *user.StatsLedger
	Payments Payments
	Escrow   address.Address
	Totals   *Totals
	Events   *events.Buffer
}

func (d *Deps) load(ctx context.Context, id uint64) (*Tournament, error) {
	if id == 0 {
		return nil, apperrors.NotFound("Tournament does not exist")
	}
	t, err := d.Repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, apperrors.NotFound("Tournament does not exist")
	}
	return t, nil
}

func (d *Deps) Get(ctx context.Context, id uint64) (*Tournament, error) {
	return d.load(ctx, id)
}
