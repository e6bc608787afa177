package tournament

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/thesrcielos/TournamentHub/internal/address"
	"github.com/thesrcielos/TournamentHub/internal/clock"
	"github.com/thesrcielos/TournamentHub/internal/events"
	"github.com/thesrcielos/TournamentHub/internal/game"
	"github.com/thesrcielos/TournamentHub/internal/ledger"
	"github.com/thesrcielos/TournamentHub/internal/ranking"
	"github.com/thesrcielos/TournamentHub/internal/signature"
	"github.com/thesrcielos/TournamentHub/internal/store"
	"github.com/thesrcielos/TournamentHub/internal/user"
)

var (
	owner   = address.Address{0xf0}
	escrow  = address.Address{0xe0}
	player1 = address.Address{0x01}
	player2 = address.Address{0x02}
	player3 = address.Address{0x03}
	player4 = address.Address{0x04}
	player5 = address.Address{0x05}
)

type fixture struct {
	t         *testing.T
	ctx       context.Context
	kv        *store.Overlay
	ledger    *ledger.Ledger
	games     *game.Registry
	stats     *user.StatsLedger
	deps      *Deps
	lifecycle *Lifecycle
	authority *ResultsAuthority
	views     *Views
	buf       *events.Buffer
	priv      ed25519.PrivateKey
	signer    signature.PublicKey
}

func newFixture(t *testing.T) *fixture {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	require.NoError(t, err)

	kv := store.NewOverlay(store.NewMemoryBackend())
	buf := &events.Buffer{}
	stats := user.NewStatsLedger(kv, clock.NewManual(1_700_000_000))
	l := ledger.New(kv)
	games := game.NewRegistry(game.NewRepository(kv), owner, buf)
	deps := &Deps{
		Repo:     NewRepository(kv),
		Games:    games,
		Stats:    stats,
		Payments: l,
		Escrow:   escrow,
		Totals:   NewTotals(kv),
		Events:   buf,
	}
	f := &fixture{
		t:         t,
		ctx:       context.Background(),
		kv:        kv,
		ledger:    l,
		games:     games,
		stats:     stats,
		deps:      deps,
		lifecycle: NewLifecycle(deps),
		authority: NewResultsAuthority(deps, signature.NewMultiVerifier(), ranking.NewEngine(stats)),
		views:     NewViews(deps),
		buf:       buf,
		priv:      priv,
		signer:    signature.PublicKey{Scheme: signature.SchemeEd25519, Key: pub},
	}
	for _, p := range []address.Address{player1, player2, player3, player4, player5} {
		require.NoError(t, l.Credit(f.ctx, p, big.NewInt(1_000)))
	}
	return f
}

func (f *fixture) registerGame(schedule []uint32, houseFee uint32) *game.GameConfig {
	require.NoError(f.t, f.games.SetHouseFee(f.ctx, owner, houseFee))
	cfg, err := f.games.Register(f.ctx, owner, game.RegisterRequest{
		SignerKey:      f.signer,
		PodiumSize:     uint32(len(schedule)),
		PayoutSchedule: schedule,
	})
	require.NoError(f.t, err)
	return cfg
}

func (f *fixture) create(creator address.Address, gameIndex uint64, max, min uint32, fee int64) *Tournament {
	t, err := f.lifecycle.Create(f.ctx, creator, CreateRequest{
		GameIndex:  gameIndex,
		MaxPlayers: max,
		MinPlayers: min,
		EntryFee:   big.NewInt(fee),
		Name:       "Friday cup",
		Funding:    big.NewInt(fee),
	})
	require.NoError(f.t, err)
	return t
}

func (f *fixture) join(id uint64, fee int64, players ...address.Address) {
	for _, p := range players {
		_, err := f.lifecycle.Join(f.ctx, p, id, big.NewInt(fee))
		require.NoError(f.t, err)
	}
}

// activeTournament creates, fills and starts a tournament with the given roster.
func (f *fixture) activeTournament(gameIndex uint64, fee int64, roster ...address.Address) *Tournament {
	t := f.create(roster[0], gameIndex, 8, uint32(len(roster)), fee)
	f.join(t.ID, fee, roster[1:]...)
	started, err := f.lifecycle.Start(f.ctx, roster[0], t.ID)
	require.NoError(f.t, err)
	return started
}

func (f *fixture) sign(id uint64, podium []address.Address) []byte {
	return ed25519.Sign(f.priv, signature.ResultMessage(id, podium))
}

func (f *fixture) balance(a address.Address) int64 {
	b, err := f.ledger.Balance(f.ctx, a)
	require.NoError(f.t, err)
	return b.Int64()
}

func (f *fixture) userStats(a address.Address) *user.Stats {
	s, err := f.stats.Find(f.ctx, a)
	require.NoError(f.t, err)
	require.NotNil(f.t, s)
	return s
}
