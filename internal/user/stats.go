package user

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/thesrcielos/TournamentHub/internal/address"
	"github.com/thesrcielos/TournamentHub/internal/apperrors"
	"github.com/thesrcielos/TournamentHub/internal/clock"
	"github.com/thesrcielos/TournamentHub/internal/store"
)

// SetKind names one of the per-identity tournament id sets.
type SetKind string

const (
	SetCreated SetKind = "created"
	SetJoined  SetKind = "joined"
	SetWon     SetKind = "won"
)

// StatsLedger keeps per-identity stats and tournament sets in the hub store.
type StatsLedger struct {
	kv    store.KV
	clock clock.Clock
}

func NewStatsLedger(kv store.KV, c clock.Clock) *StatsLedger {
	return &StatsLedger{kv: kv, clock: c}
}

func statsKey(a address.Address) string {
	return "user:" + a.String() + ":stats"
}

func setKey(a address.Address, kind SetKind) string {
	return "user:" + a.String() + ":" + string(kind)
}

// Find returns the stored record, or nil when the identity has none.
func (l *StatsLedger) Find(ctx context.Context, a address.Address) (*Stats, error) {
	var s Stats
	found, err := store.GetJSON(ctx, l.kv, statsKey(a), &s)
	if err != nil {
		return nil, apperrors.Internal("Error getting user stats", err)
	}
	if !found {
		return nil, nil
	}
	s.normalize()
	return &s, nil
}

// Get returns the stored record or fresh defaults. Nothing is written.
func (l *StatsLedger) Get(ctx context.Context, a address.Address) (*Stats, error) {
	s, err := l.Find(ctx, a)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return NewStats(l.clock.Now()), nil
	}
	return s, nil
}

func (l *StatsLedger) save(ctx context.Context, a address.Address, s *Stats) error {
	if err := store.SetJSON(ctx, l.kv, statsKey(a), s); err != nil {
		return apperrors.Internal("Error saving user stats", err)
	}
	return nil
}

// Update applies fn to the identity's record, creating it first if needed,
// and recomputes the win rate.
func (l *StatsLedger) Update(ctx context.Context, a address.Address, fn func(*Stats)) error {
	s, err := l.Get(ctx, a)
	if err != nil {
		return err
	}
	if s.MemberSince == 0 {
		s.MemberSince = l.clock.Now()
	}
	fn(s)
	s.recomputeWinRate()
	return l.save(ctx, a, s)
}

// UpdateExisting applies fn only when a record already exists and reports
// whether it did.
func (l *StatsLedger) UpdateExisting(ctx context.Context, a address.Address, fn func(*Stats)) (bool, error) {
	s, err := l.Find(ctx, a)
	if err != nil || s == nil {
		return false, err
	}
	fn(s)
	return true, l.save(ctx, a, s)
}

// Touch creates the record if missing and stamps last activity.
func (l *StatsLedger) Touch(ctx context.Context, a address.Address) error {
	now := l.clock.Now()
	return l.Update(ctx, a, func(s *Stats) { s.LastActivity = now })
}

func (l *StatsLedger) Now() uint64 {
	return l.clock.Now()
}

// AddToSet inserts a tournament id into one of the identity's sets.
func (l *StatsLedger) AddToSet(ctx context.Context, a address.Address, kind SetKind, tournamentID uint64) error {
	ids, err := l.Set(ctx, a, kind)
	if err != nil {
		return err
	}
	for _, id := range ids {
		if id == tournamentID {
			return nil
		}
	}
	if err := store.AppendJSON(ctx, l.kv, setKey(a, kind), tournamentID); err != nil {
		return apperrors.Internal("Error saving user tournaments", err)
	}
	return nil
}

func (l *StatsLedger) Set(ctx context.Context, a address.Address, kind SetKind) ([]uint64, error) {
	items, err := l.kv.Range(ctx, setKey(a, kind))
	if err != nil {
		return nil, apperrors.Internal("Error getting user tournaments", err)
	}
	ids := make([]uint64, 0, len(items))
	for _, item := range items {
		var id uint64
		if err := json.Unmarshal(item, &id); err != nil {
			return nil, apperrors.Internal("Error decoding user tournaments", fmt.Errorf("%s: %w", setKey(a, kind), err))
		}
		ids = append(ids, id)
	}
	return ids, nil
}
