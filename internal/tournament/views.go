package tournament

import (
	"context"
	"math/big"
)

// Views are the read side over the tournament registry.
type Views struct {
	*Deps
}

func NewViews(d *Deps) *Views {
	return &Views{Deps: d}
}

func (v *Views) Count(ctx context.Context) (uint64, error) {
	return v.Repo.Count(ctx)
}

func (v *Views) PrizePool(ctx context.Context, id uint64) (*big.Int, error) {
	t, err := v.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return t.PrizePool(), nil
}

func (v *Views) each(ctx context.Context, fn func(*Tournament)) error {
	n, err := v.Repo.Count(ctx)
	if err != nil {
		return err
	}
	for id := uint64(1); id <= n; id++ {
		t, err := v.Repo.Get(ctx, id)
		if err != nil {
			return err
		}
		if t != nil {
			fn(t)
		}
	}
	return nil
}

// ActiveIDs lists every tournament that has not completed yet.
func (v *Views) ActiveIDs(ctx context.Context) ([]uint64, error) {
	ids := []uint64{}
	err := v.each(ctx, func(t *Tournament) {
		if t.Status != Completed {
			ids = append(ids, t.ID)
		}
	})
	return ids, err
}

func (v *Views) List(ctx context.Context) ([]*Tournament, error) {
	out := []*Tournament{}
	err := v.each(ctx, func(t *Tournament) { out = append(out, t) })
	return out, err
}

func (v *Views) Histogram(ctx context.Context) (*StatusHistogram, error) {
	var h StatusHistogram
	err := v.each(ctx, func(t *Tournament) {
		switch t.Status {
		case Joining:
			h.Joining++
		case ReadyToStart:
			h.ReadyToStart++
		case Active:
			h.Active++
		case Completed:
			h.Completed++
		}
	})
	if err != nil {
		return nil, err
	}
	snap, err := v.Totals.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	h.TotalCreated = snap.TournamentsCreated
	return &h, nil
}
