package hub

import (
	"context"
	"errors"
	"math/big"
	"sync"

	"github.com/labstack/gommon/log"
	"github.com/thesrcielos/TournamentHub/internal/address"
	"github.com/thesrcielos/TournamentHub/internal/apperrors"
	"github.com/thesrcielos/TournamentHub/internal/betting"
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

var logger = log.New("hub")

const ErrConcurrentUpdate = "Concurrent update, please retry"

// Call carries who is invoking an operation.
type Call struct {
	Caller address.Address
}

type Options struct {
	Backend   store.Backend
	Publisher events.Publisher
	Owner     address.Address
	Escrow    address.Address
	Verifier  signature.Verifier
	Clock     clock.Clock
}

// Hub runs one operation at a time per process. Each operation sees its own
// overlay of the backend and is committed as a whole or not at all. Instances
// sharing a backend are kept apart by the read checks the backend does on
// commit.
type Hub struct {
	mu        sync.Mutex
	backend   store.Backend
	publisher events.Publisher
	owner     address.Address
	escrow    address.Address
	verifier  signature.Verifier
	clock     clock.Clock
}

func New(opts Options) *Hub {
	h := &Hub{
		backend:   opts.Backend,
		publisher: opts.Publisher,
		owner:     opts.Owner,
		escrow:    opts.Escrow,
		verifier:  opts.Verifier,
		clock:     opts.Clock,
	}
	if h.verifier == nil {
		h.verifier = signature.NewMultiVerifier()
	}
	if h.clock == nil {
		h.clock = clock.System{}
	}
	if h.publisher == nil {
		h.publisher = events.NewLocalPublisher()
	}
	return h
}

func (h *Hub) Owner() address.Address {
	return h.owner
}

func (h *Hub) Escrow() address.Address {
	return h.escrow
}

// session wires every component over a single overlay.
type session struct {
	kv        *store.Overlay
	buf       *events.Buffer
	ledger    *ledger.Ledger
	games     *game.Registry
	stats     *user.StatsLedger
	deps      *tournament.Deps
	lifecycle *tournament.Lifecycle
	authority *tournament.ResultsAuthority
	views     *tournament.Views
	book      *betting.Bookmaker
}

func (h *Hub) newSession() *session {
	kv := store.NewOverlay(h.backend)
	buf := &events.Buffer{}
	l := ledger.New(kv)
	games := game.NewRegistry(game.NewRepository(kv), h.owner, buf)
	stats := user.NewStatsLedger(kv, h.clock)
	deps := &tournament.Deps{
		Repo:     tournament.NewRepository(kv),
		Games:    games,
		Stats:    stats,
		Payments: l,
		Escrow:   h.escrow,
		Totals:   tournament.NewTotals(kv),
		Events:   buf,
	}
	return &session{
		kv:        kv,
		buf:       buf,
		ledger:    l,
		games:     games,
		stats:     stats,
		deps:      deps,
		lifecycle: tournament.NewLifecycle(deps),
		authority: tournament.NewResultsAuthority(deps, h.verifier, ranking.NewEngine(stats)),
		views:     tournament.NewViews(deps),
		book:      betting.NewBookmaker(betting.NewRepository(kv), deps, games, l, h.escrow, buf),
	}
}

// commitAttempts bounds how often an operation is replayed after losing a
// race with another instance writing to the same backend.
const commitAttempts = 5

// run executes fn against a fresh session. The overlay is committed only when
// fn succeeds and events go out only after the commit, outside the lock.
func (h *Hub) run(ctx context.Context, op string, call Call, fn func(s *session) error) error {
	evs, err := h.execute(ctx, op, call, fn)
	if err != nil {
		return err
	}
	if len(evs) > 0 {
		h.publisher.Publish(ctx, evs...)
	}
	return nil
}

// execute replays fn from scratch whenever the backend reports that something
// it read was changed by a concurrent writer.
func (h *Hub) execute(ctx context.Context, op string, call Call, fn func(s *session) error) ([]events.Event, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for attempt := 1; ; attempt++ {
		s := h.newSession()
		if err := fn(s); err != nil {
			logger.Warnf("%s by %s rejected: %v", op, call.Caller, err)
			return nil, err
		}
		writes := s.kv.Pending()
		err := s.kv.Commit(ctx)
		if errors.Is(err, store.ErrConflict) {
			if attempt < commitAttempts {
				logger.Warnf("%s by %s raced a concurrent update, attempt %d", op, call.Caller, attempt)
				continue
			}
			logger.Errorf("%s by %s kept conflicting after %d attempts", op, call.Caller, attempt)
			return nil, apperrors.State(ErrConcurrentUpdate)
		}
		if err != nil {
			logger.Errorf("%s by %s failed to commit: %v", op, call.Caller, err)
			return nil, apperrors.Internal("Error saving operation", err)
		}

		evs := s.buf.Drain()
		logger.Infoj(log.JSON{
			"op":       op,
			"caller":   call.Caller.String(),
			"writes":   writes,
			"events":   len(evs),
			"attempts": attempt,
		})
		return evs, nil
	}
}

// view runs a read-only fn. Nothing it writes is kept.
func (h *Hub) view(fn func(s *session) error) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return fn(h.newSession())
}

func (h *Hub) requireOwner(call Call) error {
	if call.Caller != h.owner {
		return apperrors.Authorization(game.ErrOwnerOnly)
	}
	return nil
}

func (h *Hub) RegisterGame(ctx context.Context, call Call, req game.RegisterRequest) (*game.GameConfig, error) {
	var cfg *game.GameConfig
	err := h.run(ctx, "registerGame", call, func(s *session) error {
		var err error
		cfg, err = s.games.Register(ctx, call.Caller, req)
		return err
	})
	return cfg, err
}

func (h *Hub) SetHouseFee(ctx context.Context, call Call, fee uint32) error {
	return h.run(ctx, "setHouseFee", call, func(s *session) error {
		return s.games.SetHouseFee(ctx, call.Caller, fee)
	})
}

func (h *Hub) SetGameHouseFee(ctx context.Context, call Call, index uint64, fee uint32) (*game.GameConfig, error) {
	var cfg *game.GameConfig
	err := h.run(ctx, "setGameHouseFee", call, func(s *session) error {
		var err error
		cfg, err = s.games.SetGameHouseFee(ctx, call.Caller, index, fee)
		return err
	})
	return cfg, err
}

func (h *Hub) CreateTournament(ctx context.Context, call Call, req tournament.CreateRequest) (*tournament.Tournament, error) {
	var t *tournament.Tournament
	err := h.run(ctx, "createTournament", call, func(s *session) error {
		var err error
		t, err = s.lifecycle.Create(ctx, call.Caller, req)
		return err
	})
	return t, err
}

func (h *Hub) JoinTournament(ctx context.Context, call Call, id uint64, funding *big.Int) (*tournament.Tournament, error) {
	var t *tournament.Tournament
	err := h.run(ctx, "joinTournament", call, func(s *session) error {
		var err error
		t, err = s.lifecycle.Join(ctx, call.Caller, id, funding)
		return err
	})
	return t, err
}

func (h *Hub) StartGame(ctx context.Context, call Call, id uint64) (*tournament.Tournament, error) {
	var t *tournament.Tournament
	err := h.run(ctx, "startGame", call, func(s *session) error {
		var err error
		t, err = s.lifecycle.Start(ctx, call.Caller, id)
		return err
	})
	return t, err
}

func (h *Hub) SubmitResults(ctx context.Context, call Call, id uint64, podium []address.Address, sig []byte) (*tournament.SubmitResult, error) {
	var res *tournament.SubmitResult
	err := h.run(ctx, "submitResults", call, func(s *session) error {
		var err error
		res, err = s.authority.Submit(ctx, call.Caller, id, podium, sig)
		return err
	})
	return res, err
}

func (h *Hub) PlaceBet(ctx context.Context, call Call, id uint64, player address.Address, wager *big.Int) (*betting.Bet, error) {
	var bet *betting.Bet
	err := h.run(ctx, "placeSpectatorBet", call, func(s *session) error {
		var err error
		bet, err = s.book.PlaceBet(ctx, call.Caller, id, player, wager)
		return err
	})
	return bet, err
}

func (h *Hub) ClaimWinnings(ctx context.Context, call Call, id uint64) (*betting.Claim, error) {
	var claim *betting.Claim
	err := h.run(ctx, "claimSpectatorWinnings", call, func(s *session) error {
		var err error
		claim, err = s.book.Claim(ctx, call.Caller, id)
		return err
	})
	return claim, err
}

type Deposited struct {
	Account address.Address `json:"account"`
	Amount  *big.Int        `json:"amount"`
	Balance *big.Int        `json:"balance"`
}

// Deposit credits an account with fresh tokens. Owner only.
func (h *Hub) Deposit(ctx context.Context, call Call, to address.Address, amount *big.Int) (*big.Int, error) {
	if err := h.requireOwner(call); err != nil {
		return nil, err
	}
	var balance *big.Int
	err := h.run(ctx, "deposit", call, func(s *session) error {
		if err := s.ledger.Credit(ctx, to, amount); err != nil {
			return err
		}
		var err error
		if balance, err = s.ledger.Balance(ctx, to); err != nil {
			return err
		}
		s.buf.Emit(events.New(events.FundsDeposited, 0, Deposited{Account: to, Amount: amount, Balance: balance}, to))
		return nil
	})
	return balance, err
}
