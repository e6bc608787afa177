package game

import (
	"context"

	"github.com/thesrcielos/TournamentHub/internal/address"
	"github.com/thesrcielos/TournamentHub/internal/apperrors"
	"github.com/thesrcielos/TournamentHub/internal/events"
	"github.com/thesrcielos/TournamentHub/internal/signature"
)

const ErrOwnerOnly = "Endpoint can only be called by owner"

type Registry struct {
	repo   Repository
	owner  address.Address
	events *events.Buffer
}

func NewRegistry(repo Repository, owner address.Address, buf *events.Buffer) *Registry {
	return &Registry{repo: repo, owner: owner, events: buf}
}

func (r *Registry) requireOwner(caller address.Address) error {
	if caller != r.owner {
		return apperrors.Authorization(ErrOwnerOnly)
	}
	return nil
}

// Register appends a game configuration and returns it with its index.
// The current default house fee is copied into the new game.
func (r *Registry) Register(ctx context.Context, caller address.Address, req RegisterRequest) (*GameConfig, error) {
	if err := r.requireOwner(caller); err != nil {
		return nil, err
	}
	if err := ValidateSchedule(req.PodiumSize, req.PayoutSchedule); err != nil {
		return nil, err
	}
	if err := signature.ValidateKey(req.SignerKey); err != nil {
		return nil, apperrors.ValidationWrap("Invalid signer key", err)
	}

	fee, err := r.repo.DefaultHouseFee(ctx)
	if err != nil {
		return nil, err
	}

	cfg := &GameConfig{
		SignerKey:      req.SignerKey,
		PodiumSize:     req.PodiumSize,
		PayoutSchedule: append([]uint32(nil), req.PayoutSchedule...),
		HouseFeeBP:     fee,
		AllowLateJoin:  req.AllowLateJoin,
	}
	if _, err := r.repo.Append(ctx, cfg); err != nil {
		return nil, err
	}

	r.events.Emit(events.New(events.GameRegistered, 0, cfg))
	return cfg, nil
}

func ValidateSchedule(podiumSize uint32, schedule []uint32) error {
	if podiumSize == 0 {
		return apperrors.Validation("Podium size must be greater than 0")
	}
	if len(schedule) != int(podiumSize) {
		return apperrors.Validation("Prize distribution must match podium size")
	}
	var total uint64
	for _, share := range schedule {
		total += uint64(share)
	}
	if total != BasisPoints {
		return apperrors.Validation("Prize distribution percentages must sum to 10,000 (100.00%)")
	}
	return nil
}

func validateHouseFee(fee uint32) error {
	if fee > MaxHouseFee {
		return apperrors.Validation("House fee cannot exceed 10,000 (100.00%)")
	}
	return nil
}

// SetHouseFee changes the default applied to games registered from now on.
func (r *Registry) SetHouseFee(ctx context.Context, caller address.Address, fee uint32) error {
	if err := r.requireOwner(caller); err != nil {
		return err
	}
	if err := validateHouseFee(fee); err != nil {
		return err
	}
	if err := r.repo.SetDefaultHouseFee(ctx, fee); err != nil {
		return err
	}
	r.events.Emit(events.New(events.HouseFeeChanged, 0, HouseFeeChange{HouseFeeBP: fee}))
	return nil
}

// SetGameHouseFee changes the house fee of an already registered game.
func (r *Registry) SetGameHouseFee(ctx context.Context, caller address.Address, index uint64, fee uint32) (*GameConfig, error) {
	if err := r.requireOwner(caller); err != nil {
		return nil, err
	}
	if err := validateHouseFee(fee); err != nil {
		return nil, err
	}
	cfg, err := r.Get(ctx, index)
	if err != nil {
		return nil, err
	}
	cfg.HouseFeeBP = fee
	if err := r.repo.Save(ctx, cfg); err != nil {
		return nil, err
	}
	r.events.Emit(events.New(events.HouseFeeChanged, 0, HouseFeeChange{GameIndex: index, HouseFeeBP: fee}))
	return cfg, nil
}

func (r *Registry) Get(ctx context.Context, index uint64) (*GameConfig, error) {
	if index < firstIndex {
		return nil, apperrors.NotFound("Game not registered")
	}
	cfg, err := r.repo.Get(ctx, index)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		return nil, apperrors.NotFound("Game not registered")
	}
	return cfg, nil
}

func (r *Registry) Count(ctx context.Context) (uint64, error) {
	return r.repo.Count(ctx)
}

func (r *Registry) HouseFee(ctx context.Context) (uint32, error) {
	return r.repo.DefaultHouseFee(ctx)
}
