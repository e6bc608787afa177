package events

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/labstack/gommon/log"
	"github.com/redis/go-redis/v9"
)

const DefaultChannel = "hub:events"

var logger = log.New("events")

type Handler func(Event)

type Publisher interface {
	Publish(ctx context.Context, evs ...Event)
}

type Subscriber interface {
	Subscribe(ctx context.Context, handler Handler) error
}

// RedisPublisher fans events out through a redis channel so every server
// instance relays them to its own websocket clients.
type RedisPublisher struct {
	client  *redis.Client
	channel string
}

func NewRedisPublisher(client *redis.Client, channel string) *RedisPublisher {
	if channel == "" {
		channel = DefaultChannel
	}
	return &RedisPublisher{client: client, channel: channel}
}

func (r *RedisPublisher) Publish(ctx context.Context, evs ...Event) {
	for _, e := range evs {
		data, err := json.Marshal(e)
		if err != nil {
			logger.Errorf("Error encoding event %s: %v", e.Type, err)
			continue
		}
		if err := r.client.Publish(ctx, r.channel, data).Err(); err != nil {
			logger.Errorf("Error publishing event %s: %v", e.Type, err)
		}
	}
}

func (r *RedisPublisher) Subscribe(ctx context.Context, handler Handler) error {
	sub := r.client.Subscribe(ctx, r.channel)
	if _, err := sub.Receive(ctx); err != nil {
		return fmt.Errorf("error subscribing %w", err)
	}

	ch := sub.Channel()
	logger.Infof("Subscribed to %s channel", r.channel)
	go func() {
		defer sub.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				Dispatch(msg.Payload, handler)
			}
		}
	}()
	return nil
}

// Dispatch decodes a relayed event and hands it to handler.
func Dispatch(encoded string, handler Handler) {
	var e Event
	if err := json.Unmarshal([]byte(encoded), &e); err != nil {
		logger.Errorf("Error decoding event: %v", err)
		return
	}
	handler(e)
}

// LocalPublisher delivers events in process. It backs the memory store driver
// where there is no redis to relay through.
type LocalPublisher struct {
	mu       sync.RWMutex
	handlers []Handler
}

func NewLocalPublisher() *LocalPublisher {
	return &LocalPublisher{}
}

func (l *LocalPublisher) Publish(_ context.Context, evs ...Event) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	for _, e := range evs {
		for _, h := range l.handlers {
			h(e)
		}
	}
}

func (l *LocalPublisher) Subscribe(_ context.Context, handler Handler) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.handlers = append(l.handlers, handler)
	return nil
}
