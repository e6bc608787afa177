package user

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thesrcielos/TournamentHub/internal/apperrors"
)

var testAddress = strings.Repeat("ab", 32)

func TestAccountService_Signup(t *testing.T) {
	mockRepo := &MockAccountRepository{}
	tokens := &MockTokenIssuer{}
	service := NewAccountService(mockRepo, tokens)

	account := &Account{ID: 1, Username: "test", Address: testAddress}
	mockRepo.On("CreateAccount", "test", "pass123", testAddress).Return(account, nil)
	tokens.On("Generate", uint(1), testAddress).Return("token123", nil)

	token, err := service.Signup(SignupRequest{Username: "test", Password: "pass123", Address: "0x" + testAddress})
	assert.NoError(t, err)
	assert.Equal(t, "token123", token)
	mockRepo.AssertExpectations(t)
	tokens.AssertExpectations(t)
}

func TestAccountService_Signup_InvalidAddress(t *testing.T) {
	service := NewAccountService(&MockAccountRepository{}, &MockTokenIssuer{})

	_, err := service.Signup(SignupRequest{Username: "test", Password: "pass123", Address: "abcd"})
	assert.True(t, apperrors.Is(err, apperrors.KindValidation))
	assert.NotNil(t, errors.Unwrap(err))
}

func TestAccountService_Signup_TokenFailure(t *testing.T) {
	mockRepo := &MockAccountRepository{}
	tokens := &MockTokenIssuer{}
	service := NewAccountService(mockRepo, tokens)
	mockRepo.On("CreateAccount", "test", "pass123", testAddress).Return(&Account{ID: 3, Username: "test", Address: testAddress}, nil)
	tokens.On("Generate", uint(3), testAddress).Return("", errors.New("signing failed"))

	_, err := service.Signup(SignupRequest{Username: "test", Password: "pass123", Address: testAddress})
	assert.True(t, apperrors.Is(err, apperrors.KindInternal))
	assert.EqualError(t, err, "error creating jwt token: signing failed")
}

func TestAccountService_Signup_Error(t *testing.T) {
	mockRepo := &MockAccountRepository{}
	service := NewAccountService(mockRepo, &MockTokenIssuer{})
	mockRepo.On("CreateAccount", "err", "fail", testAddress).Return(nil, apperrors.State("user already exists"))

	_, err := service.Signup(SignupRequest{Username: "err", Password: "fail", Address: testAddress})
	assert.True(t, apperrors.Is(err, apperrors.KindState))
	mockRepo.AssertExpectations(t)
}

func TestAccountService_Login(t *testing.T) {
	mockRepo := &MockAccountRepository{}
	tokens := &MockTokenIssuer{}
	service := NewAccountService(mockRepo, tokens)

	account := &Account{ID: 2, Username: "foo", Address: testAddress}
	mockRepo.On("ValidateAccount", "foo", "bar").Return(account, nil)
	tokens.On("Generate", uint(2), testAddress).Return("tok456", nil)

	token, err := service.Login(LoginRequest{Username: "foo", Password: "bar"})
	assert.NoError(t, err)
	assert.Equal(t, "tok456", token)
	mockRepo.AssertExpectations(t)
}

func TestAccountService_Login_InvalidCredentials(t *testing.T) {
	mockRepo := &MockAccountRepository{}
	service := NewAccountService(mockRepo, &MockTokenIssuer{})
	mockRepo.On("ValidateAccount", "foo", "wrong").Return(nil, errors.New("mismatch"))

	_, err := service.Login(LoginRequest{Username: "foo", Password: "wrong"})
	assert.True(t, apperrors.Is(err, apperrors.KindAuthentication))
}

func TestAccountService_GetAccount(t *testing.T) {
	mockRepo := &MockAccountRepository{}
	service := NewAccountService(mockRepo, &MockTokenIssuer{})
	mockRepo.On("GetAccount", uint(3)).Return(&Account{ID: 3, Username: "alice", Password: "hash"}, nil)
	mockRepo.On("GetAccount", uint(4)).Return(nil, nil)

	account, err := service.GetAccount(3)
	require.NoError(t, err)
	assert.Equal(t, "alice", account.Username)
	assert.Empty(t, account.Password)

	_, err = service.GetAccount(4)
	assert.True(t, apperrors.Is(err, apperrors.KindNotFound))
}

func TestJWTIssuer_RoundTrip(t *testing.T) {
	issuer := NewJWTIssuer("secret")
	token, err := issuer.Generate(7, testAddress)
	require.NoError(t, err)

	claims, err := issuer.Parse(token)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.Id)
	caller, err := claims.Caller()
	require.NoError(t, err)
	assert.Equal(t, testAddress, caller.String())

	_, err = NewJWTIssuer("other").Parse(token)
	assert.Error(t, err)
	_, err = issuer.Parse("")
	assert.Error(t, err)
}
