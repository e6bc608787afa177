package game

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type RepositoryMock struct {
	mock.Mock
}

func (m *RepositoryMock) Count(ctx context.Context) (uint64, error) {
	args := m.Called(ctx)
	return args.Get(0).(uint64), args.Error(1)
}

func (m *RepositoryMock) Get(ctx context.Context, index uint64) (*GameConfig, error) {
	args := m.Called(ctx, index)
	cfg, _ := args.Get(0).(*GameConfig)
	return cfg, args.Error(1)
}

func (m *RepositoryMock) Append(ctx context.Context, cfg *GameConfig) (uint64, error) {
	args := m.Called(ctx, cfg)
	return args.Get(0).(uint64), args.Error(1)
}

func (m *RepositoryMock) Save(ctx context.Context, cfg *GameConfig) error {
	args := m.Called(ctx, cfg)
	return args.Error(0)
}

func (m *RepositoryMock) DefaultHouseFee(ctx context.Context) (uint32, error) {
	args := m.Called(ctx)
	return args.Get(0).(uint32), args.Error(1)
}

func (m *RepositoryMock) SetDefaultHouseFee(ctx context.Context, fee uint32) error {
	args := m.Called(ctx, fee)
	return args.Error(0)
}
