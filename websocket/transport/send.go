package transport

import (
	"time"

	"github.com/labstack/gommon/log"
	"github.com/thesrcielos/TournamentHub/websocket/state"
)

// writeWait bounds how long a slow client can hold up a send.
const writeWait = 10 * time.Second

var logger = log.New("websocket")

type OutgoingMessage struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

func SendToPlayer(playerID string, msg OutgoingMessage) {
	client := state.GetClient(playerID)
	if client == nil || client.Conn == nil {
		return
	}

	client.ConnMu.Lock()
	defer client.ConnMu.Unlock()

	if err := client.Conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		logger.Errorf("Error setting write deadline for %s: %v", playerID, err)
		return
	}
	if err := client.Conn.WriteJSON(msg); err != nil {
		logger.Errorf("Error sending msg to %s: %v", playerID, err)
	}
}

func BroadcastToPlayers(players []string, msg OutgoingMessage) {
	for _, player := range players {
		SendToPlayer(player, msg)
	}
}
