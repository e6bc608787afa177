package websocket

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thesrcielos/TournamentHub/internal/address"
	"github.com/thesrcielos/TournamentHub/internal/events"
	"github.com/thesrcielos/TournamentHub/internal/user"
	"github.com/thesrcielos/TournamentHub/websocket/state"
)

func TestRecipients_UsersAndSubscribers(t *testing.T) {
	state.Reset()
	state.RegisterClient("aa", nil)
	state.RegisterClient("bb", nil)
	state.RegisterClient("cc", nil)
	state.Subscribe("bb", 7)
	state.Subscribe("aa", 7)
	state.Subscribe("cc", 8)

	e := events.Event{Type: events.PlayerJoined, TournamentID: 7, Users: []string{"aa", "dd"}}
	got := Recipients(e)
	assert.ElementsMatch(t, []string{"aa", "bb", "dd"}, got)
	assert.Len(t, got, 3)
}

func TestRecipients_GlobalEventOnlyGoesToUsers(t *testing.T) {
	state.Reset()
	state.RegisterClient("aa", nil)
	state.Subscribe("aa", 1)

	assert.Empty(t, Recipients(events.Event{Type: events.GameRegistered}))
}

func TestValidateJWT(t *testing.T) {
	Tokens = user.NewJWTIssuer("secret")
	caller := address.Address{0x42}
	token, err := Tokens.Generate(3, caller.String())
	require.NoError(t, err)

	id, err := ValidateJWT(token)
	require.NoError(t, err)
	assert.Equal(t, caller.String(), id)

	_, err = ValidateJWT("")
	assert.Error(t, err)

	other, err := user.NewJWTIssuer("other").Generate(3, caller.String())
	require.NoError(t, err)
	_, err = ValidateJWT(other)
	assert.Error(t, err)
}
