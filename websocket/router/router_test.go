package router

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/thesrcielos/TournamentHub/websocket/message"
	"github.com/thesrcielos/TournamentHub/websocket/state"
)

func msg(t string, id uint64) message.Message {
	payload, _ := json.Marshal(message.SubscriptionPayload{TournamentID: id})
	return message.Message{Type: t, Payload: payload}
}

func TestRouteMessage_Subscriptions(t *testing.T) {
	state.Reset()
	state.RegisterClient("p1", nil)

	RouteMessage("p1", msg(message.TypeSubscribe, 4))
	assert.Equal(t, []string{"p1"}, state.SubscribersOf(4))

	RouteMessage("p1", msg(message.TypeUnsubscribe, 4))
	assert.Empty(t, state.SubscribersOf(4))
}

func TestRouteMessage_IgnoresUnknownAndInvalid(t *testing.T) {
	state.Reset()
	state.RegisterClient("p1", nil)

	RouteMessage("p1", msg("MOVE", 4))
	RouteMessage("p1", message.Message{Type: message.TypeSubscribe, Payload: json.RawMessage(`"nope"`)})
	RouteMessage("p1", msg(message.TypeSubscribe, 0))
	assert.Empty(t, state.SubscribersOf(4))
	assert.Empty(t, state.SubscribersOf(0))
}
