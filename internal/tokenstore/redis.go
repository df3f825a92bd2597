package tokenstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tecsup/autobody-backend/internal/faults"
	"github.com/tecsup/autobody-backend/internal/logger"
)

// TokenStore keeps the session state of logged-in users: refresh tokens map
// to a user id with a TTL, access tokens map back to their refresh token so
// logout can revoke the pair.
type TokenStore interface {
	Save(ctx context.Context, userID, accessToken, refreshToken string, ttl time.Duration) error
	UserIDForRefresh(ctx context.Context, refreshToken string) (string, error)
	RefreshForAccess(ctx context.Context, accessToken string) (string, error)
	Revoke(ctx context.Context, accessToken, refreshToken string) error
}

type redisTokenStore struct {
	client *redis.Client
	log    *logger.Logger
}

func NewRedisTokenStore(log *logger.Logger, addr, password string, db int) (TokenStore, error) {
	storeLog := log.With("service", "TokenStore")
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("Failed to connect to redis at %s: %w", addr, err)
	}
	storeLog.Info("Connected to redis", "addr", addr)
	return &redisTokenStore{client: client, log: storeLog}, nil
}

func refreshKey(token string) string { return "session:refresh:" + token }
func accessKey(token string) string { return "session:access:" + token }

func (s *redisTokenStore) Save(ctx context.Context, userID, accessToken, refreshToken string, ttl time.Duration) error {
	pipe := s.client.TxPipeline()
	pipe.Set(ctx, refreshKey(refreshToken), userID, ttl)
	pipe.Set(ctx, accessKey(accessToken), refreshToken, ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return faults.WriteError("save session tokens", err)
	}
	return nil
}

func (s *redisTokenStore) UserIDForRefresh(ctx context.Context, refreshToken string) (string, error) {
	val, err := s.client.Get(ctx, refreshKey(refreshToken)).Result()
	if errors.Is(err, redis.Nil) {
		return "", faults.AuthError("refresh token unknown or expired", nil)
	}
	if err != nil {
		return "", faults.WriteError("read refresh token", err)
	}
	return val, nil
}

func (s *redisTokenStore) RefreshForAccess(ctx context.Context, accessToken string) (string, error) {
	val, err := s.client.Get(ctx, accessKey(accessToken)).Result()
	if errors.Is(err, redis.Nil) {
		return "", faults.AuthError("access token unknown or expired", nil)
	}
	if err != nil {
		return "", faults.WriteError("read access token", err)
	}
	return val, nil
}

func (s *redisTokenStore) Revoke(ctx context.Context, accessToken, refreshToken string) error {
	keys := make([]string, 0, 2)
	if accessToken != "" {
		keys = append(keys, accessKey(accessToken))
	}
	if refreshToken != "" {
		keys = append(keys, refreshKey(refreshToken))
	}
	if len(keys) == 0 {
		return nil
	}
	if err := s.client.Del(ctx, keys...).Err(); err != nil {
		return faults.WriteError("revoke session tokens", err)
	}
	return nil
}
