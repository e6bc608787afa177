package signature

import (
	"crypto/ed25519"
	"crypto/sha256"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"github.com/thesrcielos/TournamentHub/internal/address"
)

type Scheme string

const (
	SchemeEd25519   Scheme = "ed25519"
	SchemeSecp256k1 Scheme = "secp256k1"
)

var (
	ErrInvalidSignature = errors.New("invalid signature")
	ErrUnknownScheme    = errors.New("unknown signature scheme")
)

// PublicKey is a signer key handle as registered with a game.
type PublicKey struct {
	Scheme Scheme `json:"scheme"`
	Key    []byte `json:"key"`
}

type Verifier interface {
	Verify(key PublicKey, message, sig []byte) error
}

// ResultMessage is the exact byte string a game server signs for a podium:
// the tournament id as 8 big-endian bytes followed by the raw bytes of every
// podium address in order.
func ResultMessage(tournamentID uint64, podium []address.Address) []byte {
	msg := make([]byte, 8, 8+len(podium)*address.Length)
	binary.BigEndian.PutUint64(msg, tournamentID)
	for _, a := range podium {
		msg = append(msg, a.Bytes()...)
	}
	return msg
}

func ValidScheme(s Scheme) bool {
	return s == SchemeEd25519 || s == SchemeSecp256k1
}

// ValidateKey checks that key bytes are well formed for their scheme.
func ValidateKey(key PublicKey) error {
	if !ValidScheme(key.Scheme) {
		return fmt.Errorf("%w %q", ErrUnknownScheme, key.Scheme)
	}
	switch key.Scheme {
	case SchemeEd25519:
		if len(key.Key) != ed25519.PublicKeySize {
			return fmt.Errorf("ed25519 key must be %d bytes", ed25519.PublicKeySize)
		}
	case SchemeSecp256k1:
		if _, err := btcec.ParsePubKey(key.Key); err != nil {
			return fmt.Errorf("secp256k1 key: %w", err)
		}
	}
	return nil
}

type Ed25519Verifier struct{}

func (Ed25519Verifier) Verify(key PublicKey, message, sig []byte) error {
	if len(key.Key) != ed25519.PublicKeySize {
		return fmt.Errorf("%w: bad ed25519 key length %d", ErrInvalidSignature, len(key.Key))
	}
	if !ed25519.Verify(ed25519.PublicKey(key.Key), message, sig) {
		return ErrInvalidSignature
	}
	return nil
}

// Secp256k1Verifier checks ECDSA signatures over sha256(message). Signatures
// are either 64 raw bytes (r || s) or DER encoded.
type Secp256k1Verifier struct{}

func (Secp256k1Verifier) Verify(key PublicKey, message, sig []byte) error {
	pub, err := btcec.ParsePubKey(key.Key)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}

	parsed, err := parseSecp256k1(sig)
	if err != nil {
		return err
	}

	hash := sha256.Sum256(message)
	if !parsed.Verify(hash[:], pub) {
		return ErrInvalidSignature
	}
	return nil
}

func parseSecp256k1(sig []byte) (*ecdsa.Signature, error) {
	if len(sig) != 64 {
		parsed, err := ecdsa.ParseDERSignature(sig)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidSignature, err)
		}
		return parsed, nil
	}

	var r, s btcec.ModNScalar
	if overflow := r.SetByteSlice(sig[:32]); overflow || r.IsZero() {
		return nil, fmt.Errorf("%w: r out of range", ErrInvalidSignature)
	}
	if overflow := s.SetByteSlice(sig[32:]); overflow || s.IsZero() {
		return nil, fmt.Errorf("%w: s out of range", ErrInvalidSignature)
	}
	return ecdsa.NewSignature(&r, &s), nil
}

// MultiVerifier dispatches to the verifier registered for the key's scheme.
type MultiVerifier map[Scheme]Verifier

func NewMultiVerifier() MultiVerifier {
	return MultiVerifier{
		SchemeEd25519:   Ed25519Verifier{},
		SchemeSecp256k1: Secp256k1Verifier{},
	}
}

func (m MultiVerifier) Verify(key PublicKey, message, sig []byte) error {
	v, ok := m[key.Scheme]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownScheme, key.Scheme)
	}
	return v.Verify(key, message, sig)
}
