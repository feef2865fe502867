package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"investorhub/internal/usecase/auth"

	"github.com/redis/go-redis/v9"
)

func OpenRedis(addr string, db int) (*redis.Client, error) {
	r := redis.NewClient(&redis.Options{Addr: addr, DB: db})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := r.Ping(ctx).Err(); err != nil {
		return nil, err
	}
	return r, nil
}

// RedisSessionStore keeps login sessions under session:<token> with the
// TTL as the session lifetime.
type RedisSessionStore struct{ rdb *redis.Client }

func NewRedisSessionStore(rdb *redis.Client) *RedisSessionStore {
	return &RedisSessionStore{rdb: rdb}
}

func sessionKey(tok string) string { return "session:" + tok }

func (s *RedisSessionStore) Put(ctx context.Context, tok string, sess auth.Session, ttl time.Duration) error {
	b, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, sessionKey(tok), b, ttl).Err()
}

func (s *RedisSessionStore) Get(ctx context.Context, tok string) (*auth.Session, error) {
	b, err := s.rdb.Get(ctx, sessionKey(tok)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, auth.ErrSessionNotFound
		}
		return nil, err
	}
	var sess auth.Session
	if err := json.Unmarshal(b, &sess); err != nil {
		return nil, fmt.Errorf("corrupt session payload: %w", err)
	}
	return &sess, nil
}

func (s *RedisSessionStore) Delete(ctx context.Context, tok string) error {
	return s.rdb.Del(ctx, sessionKey(tok)).Err()
}
