package tournament

import (
	"context"
	"math/big"
	"unicode/utf8"

	"github.com/thesrcielos/TournamentHub/internal/address"
	"github.com/thesrcielos/TournamentHub/internal/apperrors"
	"github.com/thesrcielos/TournamentHub/internal/events"
	"github.com/thesrcielos/TournamentHub/internal/user"
)

const ErrIncorrectPayment = "Incorrect payment: must send exactly the tournament entry fee"

type Lifecycle struct {
	*Deps
}

func NewLifecycle(d *Deps) *Lifecycle {
	return &Lifecycle{Deps: d}
}

func validateCreate(req CreateRequest) error {
	if req.MaxPlayers < MinPlayers || req.MaxPlayers > MaxPlayers {
		return apperrors.Validation("Max players must be between 2 and 8")
	}
	if req.MinPlayers < MinPlayers || req.MinPlayers > req.MaxPlayers {
		return apperrors.Validation("Min players must be between 2 and max players")
	}
	if n := utf8.RuneCountInString(req.Name); n < 1 || n > MaxNameLength {
		return apperrors.Validation("Name must be between 1 and 100 characters")
	}
	if req.EntryFee == nil || req.EntryFee.Sign() < 0 {
		return apperrors.Validation("Entry fee must not be negative")
	}
	if req.Funding == nil || req.Funding.Cmp(req.EntryFee) != 0 {
		return apperrors.Validation(ErrIncorrectPayment)
	}
	return nil
}

// Create opens a tournament with the caller enrolled as its first participant.
func (l *Lifecycle) Create(ctx context.Context, caller address.Address, req CreateRequest) (*Tournament, error) {
	if _, err := l.Games.Get(ctx, req.GameIndex); err != nil {
		return nil, err
	}
	if err := validateCreate(req); err != nil {
		return nil, err
	}

	if err := l.Payments.Transfer(ctx, caller, l.Escrow, req.Funding); err != nil {
		return nil, err
	}

	now := l.Stats.Now()
	t := &Tournament{
		GameID:       req.GameIndex,
		Status:       Joining,
		Participants: []address.Address{caller},
		FinalPodium:  []address.Address{},
		Creator:      caller,
		MaxPlayers:   req.MaxPlayers,
		MinPlayers:   req.MinPlayers,
		EntryFee:     new(big.Int).Set(req.EntryFee),
		Name:         req.Name,
		CreatedAt:    now,
	}
	id, err := l.Repo.Append(ctx, t)
	if err != nil {
		return nil, err
	}
	if err := l.Totals.TournamentCreated(ctx); err != nil {
		return nil, err
	}

	if err := l.Stats.Update(ctx, caller, func(s *user.Stats) {
		s.TournamentsCreated++
		s.LastActivity = now
	}); err != nil {
		return nil, err
	}
	if err := l.Stats.AddToSet(ctx, caller, user.SetCreated, id); err != nil {
		return nil, err
	}
	if err := l.Stats.AddToSet(ctx, caller, user.SetJoined, id); err != nil {
		return nil, err
	}

	l.Events.Emit(events.New(events.TournamentCreated, id, CreatedPayload{
		GameID:  t.GameID,
		Creator: caller,
		Name:    t.Name,
	}, caller))
	return t, nil
}

// Join enrols the caller. Reaching the minimum roster moves the tournament
// to ReadyToStart.
func (l *Lifecycle) Join(ctx context.Context, caller address.Address, id uint64, funding *big.Int) (*Tournament, error) {
	t, err := l.load(ctx, id)
	if err != nil {
		return nil, err
	}

	if t.Status != Joining && t.Status != ReadyToStart {
		return nil, apperrors.State("Cannot join tournament in current status")
	}
	if t.HasParticipant(caller) {
		return nil, apperrors.State("Player already joined")
	}
	if t.Full() {
		return nil, apperrors.State("Tournament is full")
	}
	if funding == nil || funding.Cmp(t.EntryFee) != 0 {
		return nil, apperrors.Validation(ErrIncorrectPayment)
	}

	if err := l.Payments.Transfer(ctx, caller, l.Escrow, funding); err != nil {
		return nil, err
	}

	t.Participants = append(t.Participants, caller)
	becameReady := false
	if t.Status == Joining && len(t.Participants) >= int(t.MinPlayers) {
		t.Status = ReadyToStart
		becameReady = true
	}
	if err := l.Repo.Save(ctx, t); err != nil {
		return nil, err
	}

	if err := l.Stats.Touch(ctx, caller); err != nil {
		return nil, err
	}
	if err := l.Stats.AddToSet(ctx, caller, user.SetJoined, id); err != nil {
		return nil, err
	}

	l.Events.Emit(events.New(events.PlayerJoined, id, JoinedPayload{
		Player:       caller,
		Participants: len(t.Participants),
	}, t.Participants...))
	if becameReady {
		l.Events.Emit(events.New(events.TournamentReadyToStart, id, nil, t.Participants...))
	}
	return t, nil
}

// Start moves a ready tournament to Active and counts a game for every
// participant.
func (l *Lifecycle) Start(ctx context.Context, caller address.Address, id uint64) (*Tournament, error) {
	t, err := l.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if t.Status != ReadyToStart {
		return nil, apperrors.State("Tournament is not ready to start")
	}
	if len(t.Participants) < int(t.MinPlayers) {
		return nil, apperrors.State("Not enough players to start")
	}

	t.Status = Active
	if err := l.Repo.Save(ctx, t); err != nil {
		return nil, err
	}

	now := l.Stats.Now()
	for _, p := range t.Participants {
		if err := l.Stats.Update(ctx, p, func(s *user.Stats) {
			s.GamesPlayed++
			s.LastActivity = now
		}); err != nil {
			return nil, err
		}
	}

	l.Events.Emit(events.New(events.GameStarted, id, map[string]any{"startedBy": caller}, t.Participants...))
	return t, nil
}
