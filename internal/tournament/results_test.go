package tournament

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/thesrcielos/TournamentHub/internal/address"
	"github.com/thesrcielos/TournamentHub/internal/apperrors"
	"github.com/thesrcielos/TournamentHub/internal/ranking"
	"github.com/thesrcielos/TournamentHub/internal/signature"
	"github.com/thesrcielos/TournamentHub/internal/user"
)

func TestSubmit_ScenarioA_NoHouseFee(t *testing.T) {
	f := newFixture(t)
	cfg := f.registerGame([]uint32{5000, 3000, 2000}, 0)
	tour := f.activeTournament(cfg.Index, 100, player1, player2, player3, player4)
	podium := []address.Address{player3, player1, player4}

	res, err := f.authority.Submit(f.ctx, player2, tour.ID, podium, f.sign(tour.ID, podium))
	require.NoError(t, err)

	assert.Equal(t, Completed, res.Tournament.Status)
	assert.Equal(t, podium, res.Tournament.FinalPodium)
	assert.Equal(t, "400", res.Distribution.TotalPool.String())
	assert.Equal(t, "0", res.Distribution.HouseFee.String())
	require.Len(t, res.Distribution.Prizes, 3)
	assert.Equal(t, "200", res.Distribution.Prizes[0].Amount.String())
	assert.Equal(t, "120", res.Distribution.Prizes[1].Amount.String())
	assert.Equal(t, "80", res.Distribution.Prizes[2].Amount.String())

	assert.Equal(t, int64(1_100), f.balance(player3))
	assert.Equal(t, int64(1_020), f.balance(player1))
	assert.Equal(t, int64(980), f.balance(player4))
	assert.Equal(t, int64(900), f.balance(player2))
	assert.Equal(t, int64(0), f.balance(escrow))

	stored, err := f.deps.Get(f.ctx, tour.ID)
	require.NoError(t, err)
	assert.Equal(t, Completed, stored.Status)

	snap, err := f.deps.Totals.Snapshot(f.ctx)
	require.NoError(t, err)
	assert.Equal(t, uint64(1), snap.TournamentsCompleted)
	assert.Equal(t, "200", snap.MaxPrizeWon.String())
	assert.Equal(t, "400", snap.TotalPrizeDistributed.String())
}

func TestSubmit_ScenarioB_HouseFee(t *testing.T) {
	f := newFixture(t)
	cfg := f.registerGame([]uint32{5000, 3000, 2000}, 1000)
	tour := f.activeTournament(cfg.Index, 100, player1, player2, player3, player4)
	podium := []address.Address{player1, player2, player3}

	res, err := f.authority.Submit(f.ctx, player1, tour.ID, podium, f.sign(tour.ID, podium))
	require.NoError(t, err)

	assert.Equal(t, "40", res.Distribution.HouseFee.String())
	assert.Equal(t, "360", res.Distribution.Remaining.String())
	assert.Equal(t, "180", res.Distribution.Prizes[0].Amount.String())
	assert.Equal(t, "108", res.Distribution.Prizes[1].Amount.String())
	assert.Equal(t, "72", res.Distribution.Prizes[2].Amount.String())
	assert.Equal(t, int64(40), f.balance(escrow))

	snap, err := f.deps.Totals.Snapshot(f.ctx)
	require.NoError(t, err)
	assert.Equal(t, "40", snap.AccumulatedHouseFees.String())
}

func TestSubmit_RecordsWinsAndLosses(t *testing.T) {
	f := newFixture(t)
	cfg := f.registerGame([]uint32{7000, 3000}, 0)
	tour := f.activeTournament(cfg.Index, 100, player1, player2, player3)
	podium := []address.Address{player2, player3}

	_, err := f.authority.Submit(f.ctx, player1, tour.ID, podium, f.sign(tour.ID, podium))
	require.NoError(t, err)

	winner := f.userStats(player2)
	assert.Equal(t, uint32(1), winner.Wins)
	assert.Equal(t, uint32(1), winner.TournamentsWon)
	assert.Equal(t, uint32(1), winner.CurrentStreak)
	assert.Equal(t, uint32(1), winner.BestStreak)
	assert.Equal(t, "210", winner.TokensWon.String())
	assert.Equal(t, uint32(10000), winner.WinRate)
	assert.Greater(t, winner.Rating, user.DefaultRating)

	loser := f.userStats(player1)
	assert.Equal(t, uint32(1), loser.Losses)
	assert.Equal(t, "100", loser.TokensSpent.String())
	assert.Zero(t, loser.CurrentStreak)
	assert.Zero(t, loser.WinRate)
	assert.Less(t, loser.Rating, user.DefaultRating)

	won, err := f.stats.Set(f.ctx, player3, user.SetWon)
	require.NoError(t, err)
	assert.Equal(t, []uint64{tour.ID}, won)
}

func TestSubmit_ReplayFails(t *testing.T) {
	f := newFixture(t)
	cfg := f.registerGame([]uint32{10000}, 0)
	tour := f.activeTournament(cfg.Index, 100, player1, player2)
	podium := []address.Address{player1}
	sig := f.sign(tour.ID, podium)

	_, err := f.authority.Submit(f.ctx, player1, tour.ID, podium, sig)
	require.NoError(t, err)
	balance := f.balance(player1)

	_, err = f.authority.Submit(f.ctx, player1, tour.ID, podium, sig)
	assert.True(t, apperrors.Is(err, apperrors.KindState))
	assert.Equal(t, balance, f.balance(player1))
}

func TestSubmit_RequiresActive(t *testing.T) {
	f := newFixture(t)
	cfg := f.registerGame([]uint32{10000}, 0)
	tour := f.create(player1, cfg.Index, 4, 2, 100)
	f.join(tour.ID, 100, player2)
	podium := []address.Address{player1}

	_, err := f.authority.Submit(f.ctx, player1, tour.ID, podium, f.sign(tour.ID, podium))
	assert.True(t, apperrors.Is(err, apperrors.KindState))
}

func TestSubmit_BadSignatureIsFatal(t *testing.T) {
	f := newFixture(t)
	cfg := f.registerGame([]uint32{10000}, 0)
	tour := f.activeTournament(cfg.Index, 100, player1, player2)
	podium := []address.Address{player1}

	// signed for another tournament id
	_, err := f.authority.Submit(f.ctx, player1, tour.ID, podium, f.sign(tour.ID+1, podium))
	assert.True(t, apperrors.Is(err, apperrors.KindAuthentication))

	// signed for another podium
	_, err = f.authority.Submit(f.ctx, player1, tour.ID, podium, f.sign(tour.ID, []address.Address{player2}))
	assert.True(t, apperrors.Is(err, apperrors.KindAuthentication))

	stored, err := f.deps.Get(f.ctx, tour.ID)
	require.NoError(t, err)
	assert.Equal(t, Active, stored.Status)
	assert.Empty(t, stored.FinalPodium)
	assert.Equal(t, int64(200), f.balance(escrow))
}

func TestSubmit_PodiumValidation(t *testing.T) {
	f := newFixture(t)
	cfg := f.registerGame([]uint32{6000, 4000}, 0)
	tour := f.activeTournament(cfg.Index, 100, player1, player2, player3)

	cases := map[string][]address.Address{
		"Winner podium size mismatch":      {player1},
		"Winner not found in participants": {player1, player5},
		"Duplicate winner in podium":       {player1, player1},
	}
	for msg, podium := range cases {
		_, err := f.authority.Submit(f.ctx, player1, tour.ID, podium, f.sign(tour.ID, podium))
		require.Error(t, err)
		assert.Equal(t, msg, err.Error())
		assert.True(t, apperrors.Is(err, apperrors.KindValidation))
	}

	stored, err := f.deps.Get(f.ctx, tour.ID)
	require.NoError(t, err)
	assert.Equal(t, Active, stored.Status)
}

func TestSubmit_VerifierReceivesResultMessage(t *testing.T) {
	f := newFixture(t)
	cfg := f.registerGame([]uint32{10000}, 0)
	tour := f.activeTournament(cfg.Index, 100, player1, player2)
	podium := []address.Address{player2}
	sig := []byte("opaque")

	verifier := &signature.VerifierMock{}
	verifier.On("Verify", cfg.SignerKey, signature.ResultMessage(tour.ID, podium), sig).Return(errors.New("nope"))
	authority := NewResultsAuthority(f.deps, verifier, ranking.NewEngine(f.stats))

	_, err := authority.Submit(f.ctx, player1, tour.ID, podium, sig)
	assert.True(t, apperrors.Is(err, apperrors.KindAuthentication))
	verifier.AssertExpectations(t)
	verifier.AssertNumberOfCalls(t, "Verify", 1)
	verifier.AssertCalled(t, "Verify", mock.Anything, mock.Anything, sig)
}
