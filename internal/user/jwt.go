package user

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/thesrcielos/TournamentHub/internal/address"
)

const tokenTTL = 72 * time.Hour

// JwtCustomClaims carries the account id and the hub identity of the caller.
type JwtCustomClaims struct {
	Id      uint   `json:"id"`
	Address string `json:"address"`
	jwt.RegisteredClaims
}

func (c *JwtCustomClaims) Caller() (address.Address, error) {
	return address.Parse(c.Address)
}

type TokenIssuer interface {
	Generate(id uint, addr string) (string, error)
}

type JWTIssuer struct {
	secret []byte
}

func NewJWTIssuer(secret string) *JWTIssuer {
	return &JWTIssuer{secret: []byte(secret)}
}

func (j *JWTIssuer) Generate(id uint, addr string) (string, error) {
	claims := JwtCustomClaims{
		Id:      id,
		Address: addr,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(j.secret)
}

func (j *JWTIssuer) Secret() []byte {
	return j.secret
}

// Parse validates a raw token string, as sent on the websocket query.
func (j *JWTIssuer) Parse(tokenString string) (*JwtCustomClaims, error) {
	if tokenString == "" {
		return nil, errors.New("empty token")
	}
	claims := &JwtCustomClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return j.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("invalid token: %w", err)
	}
	return claims, nil
}
