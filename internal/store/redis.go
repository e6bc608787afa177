package store

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisBackend stores values as plain strings and lists as redis lists,
// all under a common key prefix.
type RedisBackend struct {
	client *redis.Client
	prefix string
}

func NewRedisBackend(client *redis.Client, prefix string) *RedisBackend {
	return &RedisBackend{client: client, prefix: prefix}
}

func (r *RedisBackend) key(k string) string {
	return r.prefix + k
}

func (r *RedisBackend) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := r.client.Get(ctx, r.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	} else if err != nil {
		return nil, fmt.Errorf("redis get %s: %w", key, err)
	}
	return val, nil
}

func (r *RedisBackend) Exists(ctx context.Context, key string) (bool, error) {
	n, err := r.client.Exists(ctx, r.key(key)).Result()
	if err != nil {
		return false, fmt.Errorf("redis exists %s: %w", key, err)
	}
	return n > 0, nil
}

func (r *RedisBackend) Range(ctx context.Context, key string) ([][]byte, error) {
	vals, err := r.client.LRange(ctx, r.key(key), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("redis lrange %s: %w", key, err)
	}
	items := make([][]byte, 0, len(vals))
	for _, v := range vals {
		items = append(items, []byte(v))
	}
	return items, nil
}

func (r *RedisBackend) holds(ctx context.Context, tx *redis.Tx, rd Read) (bool, error) {
	key := r.key(rd.Key)
	switch rd.Kind {
	case ReadValue:
		val, err := tx.Get(ctx, key).Bytes()
		if errors.Is(err, redis.Nil) {
			return !rd.Found, nil
		} else if err != nil {
			return false, err
		}
		return rd.Found && bytes.Equal(val, rd.Value), nil
	case ReadExists:
		n, err := tx.Exists(ctx, key).Result()
		if err != nil {
			return false, err
		}
		return (n > 0) == rd.Found, nil
	case ReadList:
		n, err := tx.LLen(ctx, key).Result()
		if err != nil {
			return false, err
		}
		return n == int64(rd.Len), nil
	}
	return false, nil
}

// Apply WATCHes every key the operation read, checks they still hold what was
// observed and writes every mutation inside one MULTI/EXEC block. A change
// between the check and EXEC aborts the transaction.
func (r *RedisBackend) Apply(ctx context.Context, reads []Read, mutations []Mutation) error {
	keys := make([]string, 0, len(reads))
	for _, rd := range reads {
		keys = append(keys, r.key(rd.Key))
	}

	err := r.client.Watch(ctx, func(tx *redis.Tx) error {
		for _, rd := range reads {
			ok, err := r.holds(ctx, tx, rd)
			if err != nil {
				return err
			}
			if !ok {
				return ErrConflict
			}
		}
		_, err := tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			for _, m := range mutations {
				switch m.Op {
				case OpSet:
					pipe.Set(ctx, r.key(m.Key), m.Value, 0)
				case OpAppend:
					pipe.RPush(ctx, r.key(m.Key), m.Value)
				}
			}
			return nil
		})
		return err
	}, keys...)

	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrConflict), errors.Is(err, redis.TxFailedErr):
		return ErrConflict
	default:
		return fmt.Errorf("redis commit: %w", err)
	}
}

func (r *RedisBackend) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
