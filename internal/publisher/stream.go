// Package publisher fans committed match events out to Redis streams.
package publisher

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/maxviazov/hockey-match-engine/internal/config"
	"github.com/maxviazov/hockey-match-engine/internal/model"
	"github.com/redis/go-redis/v9"
)

// StreamPublisher appends one stream entry per committed step.
type StreamPublisher struct {
	client redis.Cmdable
	prefix string
	maxLen int64
}

// NewStreamPublisher writes to streams named "<prefix>.<match id>",
// trimmed approximately to maxLen entries (0 keeps everything).
func NewStreamPublisher(client redis.Cmdable, prefix string, maxLen int64) *StreamPublisher {
	return &StreamPublisher{
		client: client,
		prefix: strings.TrimSuffix(prefix, "."),
		maxLen: maxLen,
	}
}

// StreamKey is the stream a match's events land on.
func (p *StreamPublisher) StreamKey(matchID string) string {
	return fmt.Sprintf("%s.%s", p.prefix, matchID)
}

// PublishEvent adds the event payload plus its turn and tags.
func (p *StreamPublisher) PublishEvent(ctx context.Context, e model.MatchEvent) error {
	args := &redis.XAddArgs{
		Stream: p.StreamKey(e.MatchID),
		Values: map[string]interface{}{
			"data":    string(e.Payload),
			"turn":    e.Turn,
			"actions": strings.Join(e.Actions, ","),
		},
	}
	if p.maxLen > 0 {
		args.MaxLen = p.maxLen
		args.Approx = true
	}
	if err := p.client.XAdd(ctx, args).Err(); err != nil {
		return fmt.Errorf("xadd %s turn %d: %w", args.Stream, e.Turn, err)
	}
	return nil
}

// Noop is used when the feed is disabled.
type Noop struct{}

func (Noop) PublishEvent(context.Context, model.MatchEvent) error { return nil }

// Connect opens a client and pings it once so a bad address fails at
// startup rather than on the first step.
func Connect(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", cfg.Addr, err)
	}
	return client, nil
}
