package actions

import (
	"encoding/json"

	"github.com/labstack/gommon/log"
	"github.com/thesrcielos/TournamentHub/websocket/message"
	"github.com/thesrcielos/TournamentHub/websocket/state"
	"github.com/thesrcielos/TournamentHub/websocket/transport"
)

var logger = log.New("websocket")

func decodeSubscription(playerId string, msg message.Message) (*message.SubscriptionPayload, bool) {
	var payload message.SubscriptionPayload
	if err := json.Unmarshal(msg.Payload, &payload); err != nil || payload.TournamentID == 0 {
		logger.Warnf("Invalid %s payload from %s", msg.Type, playerId)
		transport.SendToPlayer(playerId, transport.OutgoingMessage{
			Type:    message.TypeError,
			Payload: message.ErrorPayload{Message: "invalid subscription payload"},
		})
		return nil, false
	}
	return &payload, true
}

// HandleSubscribe starts relaying a tournament's events to the player.
func HandleSubscribe(playerId string, msg message.Message) {
	payload, ok := decodeSubscription(playerId, msg)
	if !ok {
		return
	}
	if state.Subscribe(playerId, payload.TournamentID) {
		transport.SendToPlayer(playerId, transport.OutgoingMessage{Type: message.TypeSubscribed, Payload: payload})
	}
}

func HandleUnsubscribe(playerId string, msg message.Message) {
	payload, ok := decodeSubscription(playerId, msg)
	if !ok {
		return
	}
	if state.Unsubscribe(playerId, payload.TournamentID) {
		transport.SendToPlayer(playerId, transport.OutgoingMessage{Type: message.TypeUnsubscribed, Payload: payload})
	}
}
