package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	redislib "github.com/redis/go-redis/v9"

	"github.com/eduhub/backend/domain"
	"github.com/eduhub/backend/repository"
)

// keepTurns bounds the stored list; the advisor reads a smaller window.
const keepTurns = 50

type chatHistoryRepository struct {
	client *redislib.Client
	prefix string
	ttl    time.Duration
}

// NewChatHistoryRepository creates a Redis-backed chat turn cache.
func NewChatHistoryRepository(client *redislib.Client, ttl time.Duration) repository.ChatHistoryRepository {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &chatHistoryRepository{
		client: client,
		prefix: "chat:",
		ttl:    ttl,
	}
}

func (r *chatHistoryRepository) Recent(ctx context.Context, userID string, n int) ([]domain.ChatTurn, error) {
	if n <= 0 {
		n = domain.ChatHistoryWindow
	}
	values, err := r.client.LRange(ctx, r.key(userID), int64(-n), -1).Result()
	if err != nil {
		if err == redislib.Nil {
			return nil, nil
		}
		return nil, err
	}

	turns := make([]domain.ChatTurn, 0, len(values))
	for _, v := range values {
		var turn domain.ChatTurn
		if err := json.Unmarshal([]byte(v), &turn); err != nil {
			continue
		}
		turns = append(turns, turn)
	}
	return turns, nil
}

func (r *chatHistoryRepository) Append(ctx context.Context, userID string, turns ...domain.ChatTurn) error {
	if len(turns) == 0 {
		return nil
	}

	payloads := make([]interface{}, 0, len(turns))
	for _, turn := range turns {
		if turn.CreatedAt.IsZero() {
			turn.CreatedAt = time.Now()
		}
		b, err := json.Marshal(turn)
		if err != nil {
			return err
		}
		payloads = append(payloads, b)
	}

	key := r.key(userID)
	pipe := r.client.TxPipeline()
	pipe.RPush(ctx, key, payloads...)
	pipe.LTrim(ctx, key, -keepTurns, -1)
	pipe.Expire(ctx, key, r.ttl)
	_, err := pipe.Exec(ctx)
	return err
}

func (r *chatHistoryRepository) Clear(ctx context.Context, userID string) error {
	return r.client.Del(ctx, r.key(userID)).Err()
}

func (r *chatHistoryRepository) key(userID string) string {
	return fmt.Sprintf("%s%s", r.prefix, userID)
}
