package router

import (
	"github.com/labstack/gommon/log"
	"github.com/thesrcielos/TournamentHub/websocket/actions"
	"github.com/thesrcielos/TournamentHub/websocket/message"
)

var logger = log.New("websocket")

var handlers = map[string]func(playerId string, payload message.Message){
	message.TypeSubscribe:   actions.HandleSubscribe,
	message.TypeUnsubscribe: actions.HandleUnsubscribe,
}

func RouteMessage(playerId string, msg message.Message) {
	if handler, ok := handlers[msg.Type]; ok {
		handler(playerId, msg)
	} else {
		logger.Warnf("Unknown message type: %s", msg.Type)
	}
}
