package broker

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"scribe/config"
	"scribe/model"
)

// Publisher is the part of the Redis client the relay needs.
type Publisher interface {
	Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd
}

// RedisRelay forwards every update to a Redis pub/sub channel as JSON.
type RedisRelay struct {
	server  *Server
	client  Publisher
	channel string
}

// NewRedisClient creates a client for the configured Redis server.
func NewRedisClient(cfg config.RedisConfig) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

func NewRedisRelay(server *Server, client Publisher, channel string) *RedisRelay {
	return &RedisRelay{server: server, client: client, channel: channel}
}

type relayMessage struct {
	Kind      string       `json:"kind"`
	Block     uint64       `json:"block"`
	Model     string       `json:"model"`
	Version   int          `json:"version,omitempty"`
	ClassHash *model.Felt  `json:"class_hash,omitempty"`
	EntityID  string       `json:"entity_id,omitempty"`
	Keys      []model.Felt `json:"keys,omitempty"`
	EventID   string       `json:"event_id"`
	Value     any          `json:"value,omitempty"`
	UpdatedAt *time.Time   `json:"updated_at,omitempty"`
}

func newRelayMessage(u Update) relayMessage {
	msg := relayMessage{Kind: u.Kind.String(), Block: u.Block}
	switch u.Kind {
	case EntityUpdated:
		msg.Model = u.Record.Model
		msg.EntityID = u.Entity.ID
		msg.Keys = u.Record.Keys
		msg.EventID = u.Record.EventID
		msg.Value = u.Record.Value.Value()
		msg.UpdatedAt = &u.Record.UpdatedAt
	case ModelRegistered:
		msg.Model = u.Model.Name
		msg.Version = u.Model.Version
		msg.ClassHash = &u.Model.ClassHash
		msg.EventID = u.Model.EventID
	}
	return msg
}

// Run relays until ctx is done or the broker stops. Publish failures are
// logged and the update dropped.
func (r *RedisRelay) Run(ctx context.Context) error {
	sub, err := r.server.Subscribe(ctx, Filter{})
	if err != nil {
		return err
	}
	defer sub.Cancel()
	slog.Info("relaying updates to redis", "channel", r.channel)

	for {
		select {
		case <-ctx.Done():
			return nil
		case u, ok := <-sub.Out():
			if !ok {
				if err := sub.Err(); !errors.Is(err, ErrServerStopped) {
					return err
				}
				return nil
			}
			payload, err := json.Marshal(newRelayMessage(u))
			if err != nil {
				slog.Error("encode update", "kind", u.Kind, "block", u.Block, "error", err)
				continue
			}
			if err := r.client.Publish(ctx, r.channel, payload).Err(); err != nil {
				slog.Error("redis publish failed", "channel", r.channel, "block", u.Block, "error", err)
			}
		}
	}
}
