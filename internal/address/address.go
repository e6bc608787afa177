package address

import (
	"encoding/hex"
	"fmt"
	"strings"
)

const Length = 32

// Address is the opaque identity of a caller, a winner or a bettor.
// Its raw bytes are what result signatures cover.
type Address [Length]byte

var Zero Address

func Parse(s string) (Address, error) {
	var a Address
	s = strings.TrimPrefix(strings.TrimSpace(s), "0x")
	raw, err := hex.DecodeString(s)
	if err != nil {
		return a, fmt.Errorf("invalid address %q: %w", s, err)
	}
	if len(raw) != Length {
		return a, fmt.Errorf("invalid address length %d, expected %d", len(raw), Length)
	}
	copy(a[:], raw)
	return a, nil
}

func MustParse(s string) Address {
	a, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return a
}

func (a Address) Bytes() []byte {
	return a[:]
}

func (a Address) IsZero() bool {
	return a == Zero
}

func (a Address) String() string {
	return hex.EncodeToString(a[:])
}

func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

func (a *Address) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// Strings renders a list of addresses, used for event recipients.
func Strings(addrs []Address) []string {
	out := make([]string, 0, len(addrs))
	for _, a := range addrs {
		out = append(out, a.String())
	}
	return out
}

func Contains(addrs []Address, target Address) bool {
	for _, a := range addrs {
		if a == target {
			return true
		}
	}
	return false
}
