package tournament

import (
	"context"

	"github.com/labstack/gommon/log"
	"github.com/thesrcielos/TournamentHub/internal/address"
	"github.com/thesrcielos/TournamentHub/internal/apperrors"
	"github.com/thesrcielos/TournamentHub/internal/events"
	"github.com/thesrcielos/TournamentHub/internal/signature"
)

var logger = log.New("tournament")

// ResultsAuthority accepts signed podiums for active tournaments.
type ResultsAuthority struct {
	*Deps
	verifier    signature.Verifier
	distributor *Distributor
	ranking     RatingUpdater
}

func NewResultsAuthority(d *Deps, verifier signature.Verifier, ranking RatingUpdater) *ResultsAuthority {
	return &ResultsAuthority{
		Deps:        d,
		verifier:    verifier,
		distributor: NewDistributor(d),
		ranking:     ranking,
	}
}

type SubmitResult struct {
	Tournament   *Tournament   `json:"tournament"`
	Distribution *Distribution `json:"distribution"`
}

// Submit verifies the game server's signature over the podium, pays the
// prizes and completes the tournament. Only an Active tournament accepts
// results, which is what makes a replayed submission fail.
func (a *ResultsAuthority) Submit(ctx context.Context, caller address.Address, id uint64, podium []address.Address, sig []byte) (*SubmitResult, error) {
	t, err := a.load(ctx, id)
	if err != nil {
		return nil, err
	}
	cfg, err := a.Games.Get(ctx, t.GameID)
	if err != nil {
		return nil, err
	}
	if t.Status != Active {
		return nil, apperrors.State("Tournament is not active")
	}

	msg := signature.ResultMessage(id, podium)
	if err := a.verifier.Verify(cfg.SignerKey, msg, sig); err != nil {
		logger.Warnf("rejected results for tournament %d: %v", id, err)
		return nil, apperrors.Authentication("Invalid result signature", err)
	}

	if len(podium) != int(cfg.PodiumSize) {
		return nil, apperrors.Validation("Winner podium size mismatch")
	}
	seen := make(map[address.Address]struct{}, len(podium))
	for _, w := range podium {
		if _, dup := seen[w]; dup {
			return nil, apperrors.Validation("Duplicate winner in podium")
		}
		seen[w] = struct{}{}
		if !t.HasParticipant(w) {
			return nil, apperrors.Validation("Winner not found in participants")
		}
	}

	t.Status = ProcessingResults
	t.FinalPodium = append([]address.Address(nil), podium...)
	a.Events.Emit(events.New(events.ResultsSubmitted, id, ResultsPayload{Submitter: caller, Podium: t.FinalPodium}, t.Participants...))

	dist, err := a.distributor.Distribute(ctx, t, cfg)
	if err != nil {
		return nil, err
	}
	if err := a.ranking.Update(ctx, t.Participants, t.FinalPodium); err != nil {
		return nil, err
	}

	t.Status = Completed
	if err := a.Repo.Save(ctx, t); err != nil {
		return nil, err
	}
	if err := a.Totals.TournamentCompleted(ctx); err != nil {
		return nil, err
	}
	return &SubmitResult{Tournament: t, Distribution: dist}, nil
}
