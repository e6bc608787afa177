package user

import (
	"errors"

	"github.com/thesrcielos/TournamentHub/internal/apperrors"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const bcryptCost = 14

type AccountRepository interface {
	CreateAccount(username, password, address string) (*Account, error)
	ValidateAccount(username, password string) (*Account, error)
	GetAccount(id uint) (*Account, error)
}

type GormAccountRepository struct {
	db *gorm.DB
}

func NewAccountRepository(db *gorm.DB) *GormAccountRepository {
	return &GormAccountRepository{db: db}
}

func (r *GormAccountRepository) CreateAccount(username, password, address string) (*Account, error) {
	var exists Account
	result := r.db.Where("username = ? OR address = ?", username, address).First(&exists)
	if result.Error == nil {
		return nil, apperrors.State("user already exists")
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, apperrors.Internal("error looking up user", result.Error)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, apperrors.Internal("error hashing password", err)
	}
	account := Account{
		Username: username,
		Password: string(hashed),
		Address:  address,
	}

	if err := r.db.Create(&account).Error; err != nil {
		return nil, apperrors.Internal("error creating user", err)
	}
	return &account, nil
}

func (r *GormAccountRepository) ValidateAccount(username, password string) (*Account, error) {
	var a Account
	if err := r.db.Where("username = ?", username).First(&a).Error; err != nil {
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(a.Password), []byte(password)); err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *GormAccountRepository) GetAccount(id uint) (*Account, error) {
	var a Account
	err := r.db.Where("id = ?", id).First(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, apperrors.Internal("error getting user", err)
	}
	return &a, nil
}
