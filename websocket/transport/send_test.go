package transport

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/thesrcielos/TournamentHub/websocket/state"
)

type recordingConn struct {
	deadline time.Time
	written  []interface{}
	fail     bool
}

func (r *recordingConn) WriteJSON(v interface{}) error {
	if r.fail {
		return errors.New("broken pipe")
	}
	r.written = append(r.written, v)
	return nil
}

func (r *recordingConn) SetWriteDeadline(t time.Time) error {
	r.deadline = t
	return nil
}

func (r *recordingConn) Close() error {
	return nil
}

func TestSendToPlayerSetsWriteDeadline(t *testing.T) {
	state.Reset()
	conn := &recordingConn{}
	state.RegisterClient("p1", conn)

	msg := OutgoingMessage{Type: "PLAYER_JOINED", Payload: 3}
	start := time.Now()
	SendToPlayer("p1", msg)

	assert.Equal(t, []interface{}{msg}, conn.written)
	assert.WithinDuration(t, start.Add(writeWait), conn.deadline, time.Second)
}

func TestBroadcastSkipsBrokenAndUnknownClients(t *testing.T) {
	state.Reset()
	broken := &recordingConn{fail: true}
	healthy := &recordingConn{}
	state.RegisterClient("broken", broken)
	state.RegisterClient("healthy", healthy)

	BroadcastToPlayers([]string{"broken", "ghost", "healthy"}, OutgoingMessage{Type: "GAME_STARTED"})

	assert.Empty(t, broken.written)
	assert.Len(t, healthy.written, 1)
}
