package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Формат ключа сессии в Redis
const keySession = "session:%s"

const tokenBytes = 32

// Store хранилище сессий пользователей в Redis
// Значение ключа - ID пользователя, время жизни задается TTL
type Store struct {
	rdb redis.Cmdable
	ttl time.Duration
}

// NewStore создает хранилище сессий
func NewStore(rdb redis.Cmdable, ttl time.Duration) *Store {
	return &Store{rdb: rdb, ttl: ttl}
}

// Create открывает сессию пользователя и возвращает её токен
func (s *Store) Create(ctx context.Context, userID string) (string, time.Time, error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", time.Time{}, fmt.Errorf("%w: Create - generate token: %v", ErrStore, err)
	}
	token := hex.EncodeToString(buf)

	if err := s.rdb.Set(ctx, key(token), userID, s.ttl).Err(); err != nil {
		return "", time.Time{}, fmt.Errorf("%w: Create - set: %v", ErrStore, err)
	}

	return token, time.Now().Add(s.ttl), nil
}

// Resolve возвращает ID пользователя по токену
func (s *Store) Resolve(ctx context.Context, token string) (string, error) {
	userID, err := s.rdb.Get(ctx, key(token)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrSessionNotFound
	}
	if err != nil {
		return "", fmt.Errorf("%w: Resolve - get: %v", ErrStore, err)
	}
	return userID, nil
}

// Delete закрывает сессию. Повторное закрытие не является ошибкой
func (s *Store) Delete(ctx context.Context, token string) error {
	if err := s.rdb.Del(ctx, key(token)).Err(); err != nil {
		return fmt.Errorf("%w: Delete - del: %v", ErrStore, err)
	}
	return nil
}

func key(token string) string {
	return fmt.Sprintf(keySession, token)
}
