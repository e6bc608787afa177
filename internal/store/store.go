package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"strconv"
)

var (
	ErrNotFound = errors.New("store: key not found")
	// ErrConflict means a key read by the operation changed before it committed.
	ErrConflict = errors.New("store: concurrent update")
)

type Reader interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Exists(ctx context.Context, key string) (bool, error)
	Range(ctx context.Context, key string) ([][]byte, error)
}

// KV is the key-value surface every hub component writes through.
type KV interface {
	Reader
	Set(ctx context.Context, key string, value []byte) error
	Append(ctx context.Context, key string, value []byte) error
}

type OpKind int

const (
	OpSet OpKind = iota
	OpAppend
)

type Mutation struct {
	Op    OpKind
	Key   string
	Value []byte
}

type ReadKind int

const (
	ReadValue ReadKind = iota
	ReadExists
	ReadList
)

// Read is what an operation observed in the backend for one key. A value read
// keeps the bytes seen, a list read keeps its length since lists only grow.
type Read struct {
	Kind  ReadKind
	Key   string
	Value []byte
	Found bool
	Len   int
}

// Backend is durable storage. Apply must be all-or-nothing and must fail with
// ErrConflict, writing nothing, when any of reads no longer holds.
type Backend interface {
	Reader
	Apply(ctx context.Context, reads []Read, mutations []Mutation) error
}

// GetJSON decodes the value under key into v. It returns false without error
// when the key does not exist.
func GetJSON(ctx context.Context, kv Reader, key string, v any) (bool, error) {
	data, err := kv.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("decoding %s: %w", key, err)
	}
	return true, nil
}

func SetJSON(ctx context.Context, kv KV, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", key, err)
	}
	return kv.Set(ctx, key, data)
}

func AppendJSON(ctx context.Context, kv KV, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", key, err)
	}
	return kv.Append(ctx, key, data)
}

// GetUint64 reads a decimal counter. A missing key reads as zero.
func GetUint64(ctx context.Context, kv Reader, key string) (uint64, error) {
	data, err := kv.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	n, err := strconv.ParseUint(string(data), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("decoding %s: %w", key, err)
	}
	return n, nil
}

func SetUint64(ctx context.Context, kv KV, key string, n uint64) error {
	return kv.Set(ctx, key, []byte(strconv.FormatUint(n, 10)))
}

// Incr bumps a counter by one and returns the new value.
func Incr(ctx context.Context, kv KV, key string) (uint64, error) {
	n, err := GetUint64(ctx, kv, key)
	if err != nil {
		return 0, err
	}
	n++
	return n, SetUint64(ctx, kv, key, n)
}

// GetBigInt reads a decimal amount. A missing key reads as zero.
func GetBigInt(ctx context.Context, kv Reader, key string) (*big.Int, error) {
	data, err := kv.Get(ctx, key)
	if errors.Is(err, ErrNotFound) {
		return new(big.Int), nil
	}
	if err != nil {
		return nil, err
	}
	n, ok := new(big.Int).SetString(string(data), 10)
	if !ok {
		return nil, fmt.Errorf("decoding %s: bad amount %q", key, data)
	}
	return n, nil
}

func SetBigInt(ctx context.Context, kv KV, key string, n *big.Int) error {
	return kv.Set(ctx, key, []byte(n.String()))
}
