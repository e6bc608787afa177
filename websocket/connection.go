package websocket

import (
	"encoding/json"

	"github.com/gorilla/websocket"
	"github.com/thesrcielos/TournamentHub/websocket/message"
	"github.com/thesrcielos/TournamentHub/websocket/router"
	"github.com/thesrcielos/TournamentHub/websocket/state"
)

func listenPlayerMessages(clientID string, conn *websocket.Conn) {
	defer func() {
		logger.Infof("Client disconnected: %s", clientID)
		state.UnregisterClient(clientID, conn)
		conn.Close()
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Warnf("Error reading message from %s: %v", clientID, err)
			}
			break
		}

		var msg message.Message
		if err := json.Unmarshal(data, &msg); err != nil {
			logger.Warnf("Error decoding message: %v", err)
			continue
		}

		router.RouteMessage(clientID, msg)
	}
}
