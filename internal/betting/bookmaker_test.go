package betting

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thesrcielos/TournamentHub/internal/address"
	"github.com/thesrcielos/TournamentHub/internal/apperrors"
	"github.com/thesrcielos/TournamentHub/internal/clock"
	"github.com/thesrcielos/TournamentHub/internal/events"
	"github.com/thesrcielos/TournamentHub/internal/game"
	"github.com/thesrcielos/TournamentHub/internal/ledger"
	"github.com/thesrcielos/TournamentHub/internal/ranking"
	"github.com/thesrcielos/TournamentHub/internal/signature"
	"github.com/thesrcielos/TournamentHub/internal/store"
	"github.com/thesrcielos/TournamentHub/internal/tournament"
	"github.com/thesrcielos/TournamentHub/internal/user"
)

var (
	owner    = address.Address{0xf0}
	escrow   = address.Address{0xe0}
	alice    = address.Address{0x01}
	bob      = address.Address{0x02}
	carol    = address.Address{0x03}
	watcher1 = address.Address{0xa1}
	watcher2 = address.Address{0xa2}
	watcher3 = address.Address{0xa3}
)

type fixture struct {
	t         *testing.T
	ctx       context.Context
	ledger    *ledger.Ledger
	deps      *tournament.Deps
	lifecycle *tournament.Lifecycle
	authority *tournament.ResultsAuthority
	book      *Bookmaker
	buf       *events.Buffer
	priv      ed25519.PrivateKey
	gameIndex uint64
}

func newFixture(t *testing.T, schedule []uint32, houseFee uint32) *fixture {
	ctx := context.Background()
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)

	kv := store.NewOverlay(store.NewMemoryBackend())
	buf := &events.Buffer{}
	stats := user.NewStatsLedger(kv, clock.NewManual(1))
	l := ledger.New(kv)
	games := game.NewRegistry(game.NewRepository(kv), owner, buf)
	require.NoError(t, games.SetHouseFee(ctx, owner, houseFee))
	cfg, err := games.Register(ctx, owner, game.RegisterRequest{
		SignerKey:      signature.PublicKey{Scheme: signature.SchemeEd25519, Key: pub},
		PodiumSize:     uint32(len(schedule)),
		PayoutSchedule: schedule,
	})
	require.NoError(t, err)

	deps := &tournament.Deps{
		Repo:     tournament.NewRepository(kv),
		Games:    games,
		Stats:    stats,
		Payments: l,
		Escrow:   escrow,
		Totals:   tournament.NewTotals(kv),
		Events:   buf,
	}
	for _, a := range []address.Address{alice, bob, carol, watcher1, watcher2, watcher3} {
		require.NoError(t, l.Credit(ctx, a, big.NewInt(1_000)))
	}
	return &fixture{
		t:         t,
		ctx:       ctx,
		ledger:    l,
		deps:      deps,
		lifecycle: tournament.NewLifecycle(deps),
		authority: tournament.NewResultsAuthority(deps, signature.NewMultiVerifier(), ranking.NewEngine(stats)),
		book:      NewBookmaker(NewRepository(kv), deps, games, l, escrow, buf),
		buf:       buf,
		priv:      priv,
		gameIndex: cfg.Index,
	}
}

// startTournament runs alice, bob and carol into an Active tournament with a 100 fee.
func (f *fixture) startTournament() uint64 {
	tour, err := f.lifecycle.Create(f.ctx, alice, tournament.CreateRequest{
		GameIndex: f.gameIndex, MaxPlayers: 4, MinPlayers: 3,
		EntryFee: big.NewInt(100), Funding: big.NewInt(100), Name: "cup",
	})
	require.NoError(f.t, err)
	for _, p := range []address.Address{bob, carol} {
		_, err := f.lifecycle.Join(f.ctx, p, tour.ID, big.NewInt(100))
		require.NoError(f.t, err)
	}
	_, err = f.lifecycle.Start(f.ctx, alice, tour.ID)
	require.NoError(f.t, err)
	return tour.ID
}

func (f *fixture) finish(id uint64, podium ...address.Address) {
	sig := ed25519.Sign(f.priv, signature.ResultMessage(id, podium))
	_, err := f.authority.Submit(f.ctx, alice, id, podium, sig)
	require.NoError(f.t, err)
}

func (f *fixture) bet(bettor address.Address, id uint64, player address.Address, amount int64) {
	_, err := f.book.PlaceBet(f.ctx, bettor, id, player, big.NewInt(amount))
	require.NoError(f.t, err)
}

func (f *fixture) balance(a address.Address) int64 {
	b, err := f.ledger.Balance(f.ctx, a)
	require.NoError(f.t, err)
	return b.Int64()
}

func TestClaimKey_Layout(t *testing.T) {
	key := ClaimKey(1, alice)
	require.Len(t, key, 8+1+address.Length)
	assert.Equal(t, []byte{0, 0, 0, 0, 0, 0, 0, 1, '_'}, key[:9])
	assert.Equal(t, alice.Bytes(), key[9:])
}

func TestPlaceBet_AccumulatesPool(t *testing.T) {
	f := newFixture(t, []uint32{10000}, 0)
	id := f.startTournament()

	f.bet(watcher1, id, alice, 30)
	f.bet(watcher2, id, alice, 20)
	f.bet(watcher1, id, bob, 5)

	pool, err := f.book.PoolTotal(f.ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "55", pool.String())

	bets, err := f.book.Bets(f.ctx, id, alice)
	require.NoError(t, err)
	require.Len(t, bets, 2)
	assert.Equal(t, watcher1, bets[0].Bettor)
	assert.Equal(t, "20", bets[1].Amount.String())
	assert.Equal(t, int64(965), f.balance(watcher1))
}

func TestPlaceBet_OpenBeforeStart(t *testing.T) {
	f := newFixture(t, []uint32{10000}, 0)
	tour, err := f.lifecycle.Create(f.ctx, alice, tournament.CreateRequest{
		GameIndex: f.gameIndex, MaxPlayers: 4, MinPlayers: 2,
		EntryFee: big.NewInt(1), Funding: big.NewInt(1), Name: "open",
	})
	require.NoError(t, err)
	f.bet(watcher1, tour.ID, alice, 10)
}

func TestPlaceBet_Rejections(t *testing.T) {
	f := newFixture(t, []uint32{10000}, 0)
	id := f.startTournament()

	_, err := f.book.PlaceBet(f.ctx, watcher1, id, alice, big.NewInt(0))
	assert.EqualError(t, err, "Bet amount must be greater than 0")

	_, err = f.book.PlaceBet(f.ctx, watcher1, 77, alice, big.NewInt(1))
	assert.True(t, apperrors.Is(err, apperrors.KindNotFound))

	_, err = f.book.PlaceBet(f.ctx, watcher1, id, watcher2, big.NewInt(1))
	assert.EqualError(t, err, "Player not found in tournament")

	_, err = f.book.PlaceBet(f.ctx, watcher1, id, alice, big.NewInt(5_000))
	assert.True(t, apperrors.Is(err, apperrors.KindState))

	f.finish(id, alice)
	_, err = f.book.PlaceBet(f.ctx, watcher1, id, alice, big.NewInt(1))
	assert.EqualError(t, err, "Betting period has ended")

	pool, err := f.book.PoolTotal(f.ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "0", pool.String())
}

func TestClaim_ScenarioE_SoleBackerTakesPositionPool(t *testing.T) {
	f := newFixture(t, []uint32{5000, 5000}, 0)
	id := f.startTournament()

	f.bet(watcher1, id, alice, 50)
	f.bet(watcher1, id, alice, 50)
	f.finish(id, alice, bob)

	claim, err := f.book.Claim(f.ctx, watcher1, id)
	require.NoError(t, err)
	assert.Equal(t, "100", claim.Pool.String())
	require.Len(t, claim.Shares, 1)
	assert.Equal(t, "50", claim.Shares[0].PositionPool.String())
	assert.Equal(t, "50", claim.Total.String())
	assert.Equal(t, int64(950), f.balance(watcher1))
}

func TestClaim_ProportionalAcrossBackers(t *testing.T) {
	f := newFixture(t, []uint32{6000, 4000}, 1000)
	id := f.startTournament()

	f.bet(watcher1, id, alice, 30)
	f.bet(watcher2, id, alice, 70)
	f.bet(watcher3, id, bob, 100)
	f.bet(watcher1, id, carol, 100)
	f.finish(id, alice, bob)

	// pool 300, fee 30, remaining 270; position 0 pool 162, position 1 pool 108
	c1, err := f.book.Claim(f.ctx, watcher1, id)
	require.NoError(t, err)
	assert.Equal(t, "48", c1.Total.String())

	c2, err := f.book.Claim(f.ctx, watcher2, id)
	require.NoError(t, err)
	assert.Equal(t, "113", c2.Total.String())

	c3, err := f.book.Claim(f.ctx, watcher3, id)
	require.NoError(t, err)
	assert.Equal(t, "108", c3.Total.String())

	paid := c1.Total.Int64() + c2.Total.Int64()
	assert.LessOrEqual(t, paid, c1.Shares[0].PositionPool.Int64())
}

func TestClaim_AtMostOnce(t *testing.T) {
	f := newFixture(t, []uint32{10000}, 0)
	id := f.startTournament()
	f.bet(watcher1, id, alice, 10)
	f.finish(id, alice)

	_, err := f.book.Claim(f.ctx, watcher1, id)
	require.NoError(t, err)
	balance := f.balance(watcher1)

	_, err = f.book.Claim(f.ctx, watcher1, id)
	assert.EqualError(t, err, "Already claimed winnings")
	assert.Equal(t, balance, f.balance(watcher1))
}

func TestClaim_Rejections(t *testing.T) {
	f := newFixture(t, []uint32{10000}, 0)
	id := f.startTournament()

	_, err := f.book.Claim(f.ctx, watcher1, id)
	assert.EqualError(t, err, "Tournament not completed yet")

	f.bet(watcher1, id, bob, 10)
	f.finish(id, alice)

	_, err = f.book.Claim(f.ctx, watcher1, id)
	assert.EqualError(t, err, "No winnings to claim")

	_, err = f.book.Claim(f.ctx, watcher2, id)
	assert.EqualError(t, err, "No winnings to claim")
}

func TestClaim_NoPool(t *testing.T) {
	f := newFixture(t, []uint32{10000}, 0)
	id := f.startTournament()
	f.finish(id, alice)

	_, err := f.book.Claim(f.ctx, watcher1, id)
	assert.EqualError(t, err, "No spectator pool")
}

func TestComputeClaim_SharesNeverExceedPositionPool(t *testing.T) {
	cfg := &game.GameConfig{PodiumSize: 1, PayoutSchedule: []uint32{10000}, HouseFeeBP: 333}
	bettors := []address.Address{watcher1, watcher2, watcher3, {0xa4}, {0xa5}}

	for seed := int64(1); seed <= 40; seed++ {
		var bets []Bet
		pool := new(big.Int)
		for i, b := range bettors {
			amount := big.NewInt((seed*int64(i+3))%97 + 1)
			bets = append(bets, Bet{Bettor: b, Amount: amount})
			pool.Add(pool, amount)
		}
		byWinner := map[address.Address][]Bet{alice: bets}

		sum := new(big.Int)
		var positionPool *big.Int
		for _, b := range bettors {
			c := ComputeClaim(pool, cfg, []address.Address{alice}, byWinner, b)
			require.Len(t, c.Shares, 1)
			positionPool = c.Shares[0].PositionPool
			sum.Add(sum, c.Total)
		}
		assert.LessOrEqual(t, sum.Cmp(positionPool), 0, "seed %d", seed)
	}
}
