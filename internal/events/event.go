package events

import (
	"time"

	"github.com/google/uuid"
	"github.com/thesrcielos/TournamentHub/internal/address"
)

type Type string

const (
	GameRegistered           Type = "gameRegistered"
	HouseFeeChanged          Type = "houseFeeChanged"
	TournamentCreated        Type = "tournamentCreated"
	PlayerJoined             Type = "playerJoined"
	TournamentReadyToStart   Type = "tournamentReadyToStart"
	GameStarted              Type = "gameStarted"
	ResultsSubmitted         Type = "resultsSubmitted"
	PrizesDistributed        Type = "prizesDistributed"
	SpectatorBetPlaced       Type = "spectatorBetPlaced"
	SpectatorWinningsClaimed Type = "spectatorWinningsClaimed"
	FundsDeposited           Type = "fundsDeposited"
)

// Event is what gets relayed to connected clients once an operation commits.
// Users lists the identities that must receive it regardless of subscriptions.
type Event struct {
	ID           uuid.UUID `json:"id"`
	Type         Type      `json:"type"`
	TournamentID uint64    `json:"tournamentId,omitempty"`
	Payload      any       `json:"payload,omitempty"`
	Users        []string  `json:"users,omitempty"`
	At           time.Time `json:"at"`
}

func New(t Type, tournamentID uint64, payload any, users ...address.Address) Event {
	return Event{
		ID:           uuid.New(),
		Type:         t,
		TournamentID: tournamentID,
		Payload:      payload,
		Users:        address.Strings(users),
		At:           time.Now().UTC(),
	}
}

// Buffer collects the events of one operation. They are only published
// after the operation's writes have committed.
type Buffer struct {
	events []Event
}

func (b *Buffer) Emit(e Event) {
	if b == nil {
		return
	}
	b.events = append(b.events, e)
}

func (b *Buffer) Events() []Event {
	if b == nil {
		return nil
	}
	return b.events
}

// Drain returns the collected events and empties the buffer.
func (b *Buffer) Drain() []Event {
	if b == nil {
		return nil
	}
	out := b.events
	b.events = nil
	return out
}
