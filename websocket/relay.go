package websocket

import (
	"github.com/thesrcielos/TournamentHub/internal/events"
	"github.com/thesrcielos/TournamentHub/websocket/message"
	"github.com/thesrcielos/TournamentHub/websocket/state"
	"github.com/thesrcielos/TournamentHub/websocket/transport"
)

// Recipients are the event's listed users plus whoever subscribed to its
// tournament, each once.
func Recipients(e events.Event) []string {
	seen := make(map[string]struct{}, len(e.Users))
	out := make([]string, 0, len(e.Users))
	add := func(id string) {
		if _, ok := seen[id]; ok {
			return
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	for _, u := range e.Users {
		add(u)
	}
	if e.TournamentID != 0 {
		for _, id := range state.SubscribersOf(e.TournamentID) {
			add(id)
		}
	}
	return out
}

// RelayEvent is the events.Handler that pushes committed events to clients.
func RelayEvent(e events.Event) {
	transport.BroadcastToPlayers(Recipients(e), transport.OutgoingMessage{
		Type:    message.TypeEvent,
		Payload: e,
	})
}
