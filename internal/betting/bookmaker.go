package betting

import (
	"context"
	"math/big"

	"github.com/thesrcielos/TournamentHub/internal/address"
	"github.com/thesrcielos/TournamentHub/internal/apperrors"
	"github.com/thesrcielos/TournamentHub/internal/events"
	"github.com/thesrcielos/TournamentHub/internal/game"
	"github.com/thesrcielos/TournamentHub/internal/tournament"
)

type TournamentLookup interface {
	Get(ctx context.Context, id uint64) (*tournament.Tournament, error)
}

// Bookmaker runs the spectator pool of every tournament. It is independent
// of the prize pool and only pays out once results are in.
type Bookmaker struct {
	repo        Repository
	tournaments TournamentLookup
	games       tournament.GameLookup
	pay         tournament.Payments
	escrow      address.Address
	events      *events.Buffer
}

func NewBookmaker(repo Repository, tournaments TournamentLookup, games tournament.GameLookup, pay tournament.Payments, escrow address.Address, buf *events.Buffer) *Bookmaker {
	return &Bookmaker{
		repo:        repo,
		tournaments: tournaments,
		games:       games,
		pay:         pay,
		escrow:      escrow,
		events:      buf,
	}
}

// PlaceBet backs a participant. Bets close once results have been submitted.
func (b *Bookmaker) PlaceBet(ctx context.Context, caller address.Address, tournamentID uint64, player address.Address, wager *big.Int) (*Bet, error) {
	if wager == nil || wager.Sign() <= 0 {
		return nil, apperrors.Validation("Bet amount must be greater than 0")
	}
	t, err := b.tournaments.Get(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	if t.Status >= tournament.ProcessingResults {
		return nil, apperrors.State("Betting period has ended")
	}
	if !t.HasParticipant(player) {
		return nil, apperrors.Validation("Player not found in tournament")
	}

	if err := b.pay.Transfer(ctx, caller, b.escrow, wager); err != nil {
		return nil, err
	}

	bet := Bet{Bettor: caller, Amount: new(big.Int).Set(wager)}
	if err := b.repo.AppendBet(ctx, tournamentID, player, bet); err != nil {
		return nil, err
	}
	pool, err := b.repo.PoolTotal(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	pool.Add(pool, wager)
	if err := b.repo.SetPoolTotal(ctx, tournamentID, pool); err != nil {
		return nil, err
	}

	b.events.Emit(events.New(events.SpectatorBetPlaced, tournamentID, BetPlaced{
		Bettor: caller,
		Player: player,
		Amount: bet.Amount,
		Pool:   pool,
	}, caller))
	return &bet, nil
}

// ComputeClaim works out what bettor is owed from a completed tournament's
// spectator pool. bets maps each podium winner to the wagers placed on them.
func ComputeClaim(pool *big.Int, cfg *game.GameConfig, podium []address.Address, bets map[address.Address][]Bet, bettor address.Address) *Claim {
	fee := tournament.Share(pool, cfg.HouseFeeBP)
	remaining := new(big.Int).Sub(pool, fee)
	c := &Claim{Pool: pool, HouseFee: fee, Remaining: remaining, Total: new(big.Int)}

	for pos, winner := range podium {
		if pos >= len(cfg.PayoutSchedule) {
			break
		}
		total, mine := new(big.Int), new(big.Int)
		for _, bet := range bets[winner] {
			total.Add(total, bet.Amount)
			if bet.Bettor == bettor {
				mine.Add(mine, bet.Amount)
			}
		}
		if mine.Sign() <= 0 || total.Sign() <= 0 {
			continue
		}
		positionPool := tournament.Share(remaining, cfg.PayoutSchedule[pos])
		share := new(big.Int).Mul(positionPool, mine)
		share.Quo(share, total)

		c.Shares = append(c.Shares, PositionShare{
			Position:     pos,
			Winner:       winner,
			PositionPool: positionPool,
			CallerWager:  mine,
			TotalWagered: total,
			Share:        share,
		})
		c.Total.Add(c.Total, share)
	}
	return c
}

// Claim pays the caller's winnings once. The claim marker is what stops a
// second payout.
func (b *Bookmaker) Claim(ctx context.Context, caller address.Address, tournamentID uint64) (*Claim, error) {
	t, err := b.tournaments.Get(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	cfg, err := b.games.Get(ctx, t.GameID)
	if err != nil {
		return nil, err
	}
	if t.Status != tournament.Completed {
		return nil, apperrors.State("Tournament not completed yet")
	}

	claimed, err := b.repo.Claimed(ctx, tournamentID, caller)
	if err != nil {
		return nil, err
	}
	if claimed {
		return nil, apperrors.State("Already claimed winnings")
	}

	pool, err := b.repo.PoolTotal(ctx, tournamentID)
	if err != nil {
		return nil, err
	}
	if pool.Sign() <= 0 {
		return nil, apperrors.State("No spectator pool")
	}

	bets := make(map[address.Address][]Bet, len(t.FinalPodium))
	for _, winner := range t.FinalPodium {
		list, err := b.repo.Bets(ctx, tournamentID, winner)
		if err != nil {
			return nil, err
		}
		bets[winner] = list
	}

	claim := ComputeClaim(pool, cfg, t.FinalPodium, bets, caller)
	if claim.Total.Sign() <= 0 {
		return nil, apperrors.State("No winnings to claim")
	}

	if err := b.pay.Transfer(ctx, b.escrow, caller, claim.Total); err != nil {
		return nil, err
	}
	if err := b.repo.MarkClaimed(ctx, tournamentID, caller); err != nil {
		return nil, err
	}

	b.events.Emit(events.New(events.SpectatorWinningsClaimed, tournamentID, WinningsClaimed{
		Bettor: caller,
		Amount: claim.Total,
	}, caller))
	return claim, nil
}

func (b *Bookmaker) Bets(ctx context.Context, tournamentID uint64, player address.Address) ([]Bet, error) {
	if _, err := b.tournaments.Get(ctx, tournamentID); err != nil {
		return nil, err
	}
	return b.repo.Bets(ctx, tournamentID, player)
}

func (b *Bookmaker) PoolTotal(ctx context.Context, tournamentID uint64) (*big.Int, error) {
	if _, err := b.tournaments.Get(ctx, tournamentID); err != nil {
		return nil, err
	}
	return b.repo.PoolTotal(ctx, tournamentID)
}
