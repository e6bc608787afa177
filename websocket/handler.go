package websocket

import (
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"github.com/thesrcielos/TournamentHub/internal/user"
	"github.com/thesrcielos/TournamentHub/websocket/state"
)

var (
	upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     func(r *http.Request) bool { return true },
	}
	logger = log.New("websocket")
)

var Tokens *user.JWTIssuer

// WebSocketHandler upgrades an authenticated client. The token travels in the
// query string because browsers cannot set headers on the handshake.
func WebSocketHandler(c echo.Context) error {
	clientID, err := ValidateJWT(c.QueryParam("token"))
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	}

	ws, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		logger.Errorf("WebSocket upgrade failed: %v", err)
		return err
	}

	logger.Infof("Client connected: %s", clientID)
	state.RegisterClient(clientID, ws)
	go listenPlayerMessages(clientID, ws)

	return nil
}

// ValidateJWT returns the hub identity carried by the token.
func ValidateJWT(tokenString string) (string, error) {
	claims, err := Tokens.Parse(tokenString)
	if err != nil {
		return "", err
	}
	caller, err := claims.Caller()
	if err != nil {
		return "", err
	}
	return caller.String(), nil
}
