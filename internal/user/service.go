package user

import (
	"github.com/thesrcielos/TournamentHub/internal/address"
	"github.com/thesrcielos/TournamentHub/internal/apperrors"
)

type AccountService struct {
	repo   AccountRepository
	tokens TokenIssuer
}

func NewAccountService(repo AccountRepository, tokens TokenIssuer) *AccountService {
	return &AccountService{repo: repo, tokens: tokens}
}

func (s *AccountService) Signup(req SignupRequest) (string, error) {
	addr, err := address.Parse(req.Address)
	if err != nil {
		return "", apperrors.ValidationWrap("invalid address", err)
	}
	account, err := s.repo.CreateAccount(req.Username, req.Password, addr.String())
	if err != nil {
		return "", err
	}

	token, errJWT := s.tokens.Generate(account.ID, account.Address)
	if errJWT != nil {
		return "", apperrors.Internal("error creating jwt token", errJWT)
	}
	return token, nil
}

func (s *AccountService) Login(req LoginRequest) (string, error) {
	account, err := s.repo.ValidateAccount(req.Username, req.Password)
	if err != nil {
		return "", apperrors.Authentication("invalid credentials", err)
	}
	token, errJWT := s.tokens.Generate(account.ID, account.Address)
	if errJWT != nil {
		return "", apperrors.Internal("error creating jwt token", errJWT)
	}
	return token, nil
}

func (s *AccountService) GetAccount(id uint) (*Account, error) {
	account, err := s.repo.GetAccount(id)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, apperrors.NotFound("user not found")
	}
	account.Password = ""
	return account, nil
}
