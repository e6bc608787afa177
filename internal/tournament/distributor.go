package tournament

import (
	"context"
	"math/big"

	"github.com/thesrcielos/TournamentHub/internal/address"
	"github.com/thesrcielos/TournamentHub/internal/events"
	"github.com/thesrcielos/TournamentHub/internal/game"
	"github.com/thesrcielos/TournamentHub/internal/user"
)

var basisPoints = big.NewInt(game.BasisPoints)

// Share returns floor(amount * bp / 10000).
func Share(amount *big.Int, bp uint32) *big.Int {
	out := new(big.Int).Mul(amount, big.NewInt(int64(bp)))
	return out.Quo(out, basisPoints)
}

type Prize struct {
	Position int             `json:"position"`
	Winner   address.Address `json:"winner"`
	Amount   *big.Int        `json:"amount"`
}

// Distribution is the split of a tournament pool. Rounding residue of the
// prize shares stays in escrow.
type Distribution struct {
	TotalPool *big.Int `json:"totalPool"`
	HouseFee  *big.Int `json:"houseFee"`
	Remaining *big.Int `json:"remaining"`
	Prizes    []Prize  `json:"prizes"`
}

func (d *Distribution) Paid() *big.Int {
	total := new(big.Int)
	for _, p := range d.Prizes {
		total.Add(total, p.Amount)
	}
	return total
}

// ComputeDistribution splits entryFee * participants among the podium,
// net of the house fee.
func ComputeDistribution(entryFee *big.Int, participants int, podium []address.Address, cfg *game.GameConfig) *Distribution {
	total := new(big.Int).Mul(entryFee, big.NewInt(int64(participants)))
	fee := Share(total, cfg.HouseFeeBP)
	remaining := new(big.Int).Sub(total, fee)

	d := &Distribution{TotalPool: total, HouseFee: fee, Remaining: remaining}
	for i, winner := range podium {
		if i >= len(cfg.PayoutSchedule) {
			break
		}
		d.Prizes = append(d.Prizes, Prize{
			Position: i,
			Winner:   winner,
			Amount:   Share(remaining, cfg.PayoutSchedule[i]),
		})
	}
	return d
}

type Distributor struct {
	*Deps
}

func NewDistributor(d *Deps) *Distributor {
	return &Distributor{Deps: d}
}

// Distribute pays the podium out of escrow and records wins and losses.
func (d *Distributor) Distribute(ctx context.Context, t *Tournament, cfg *game.GameConfig) (*Distribution, error) {
	dist := ComputeDistribution(t.EntryFee, len(t.Participants), t.FinalPodium, cfg)

	if err := d.Totals.AddHouseFee(ctx, dist.HouseFee); err != nil {
		return nil, err
	}

	now := d.Stats.Now()
	winners := make(map[address.Address]struct{}, len(t.FinalPodium))
	for _, prize := range dist.Prizes {
		winners[prize.Winner] = struct{}{}
		if prize.Amount.Sign() <= 0 {
			continue
		}
		if err := d.Payments.Transfer(ctx, d.Escrow, prize.Winner, prize.Amount); err != nil {
			return nil, err
		}
		if err := d.Totals.RecordPrize(ctx, prize.Amount); err != nil {
			return nil, err
		}
		if err := d.Stats.AddToSet(ctx, prize.Winner, user.SetWon, t.ID); err != nil {
			return nil, err
		}
		amount := prize.Amount
		if err := d.Stats.Update(ctx, prize.Winner, func(s *user.Stats) {
			s.TournamentsWon++
			s.Wins++
			s.TokensWon.Add(s.TokensWon, amount)
			s.CurrentStreak++
			if s.CurrentStreak > s.BestStreak {
				s.BestStreak = s.CurrentStreak
			}
			s.LastActivity = now
		}); err != nil {
			return nil, err
		}
	}

	for _, p := range t.Participants {
		if _, ok := winners[p]; ok {
			continue
		}
		if err := d.Stats.Update(ctx, p, func(s *user.Stats) {
			s.Losses++
			s.TokensSpent.Add(s.TokensSpent, t.EntryFee)
			s.CurrentStreak = 0
			s.LastActivity = now
		}); err != nil {
			return nil, err
		}
	}

	d.Events.Emit(events.New(events.PrizesDistributed, t.ID, dist, t.Participants...))
	return dist, nil
}
