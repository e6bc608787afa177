package user

import (
	"github.com/stretchr/testify/mock"
)

type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) CreateAccount(username, password, address string) (*Account, error) {
	args := m.Called(username, password, address)
	a, _ := args.Get(0).(*Account)
	return a, args.Error(1)
}

func (m *MockAccountRepository) ValidateAccount(username, password string) (*Account, error) {
	args := m.Called(username, password)
	a, _ := args.Get(0).(*Account)
	return a, args.Error(1)
}

func (m *MockAccountRepository) GetAccount(id uint) (*Account, error) {
	args := m.Called(id)
	a, _ := args.Get(0).(*Account)
	return a, args.Error(1)
}

type MockTokenIssuer struct {
	mock.Mock
}

func (m *MockTokenIssuer) Generate(id uint, addr string) (string, error) {
	args := m.Called(id, addr)
	return args.String(0), args.Error(1)
}
