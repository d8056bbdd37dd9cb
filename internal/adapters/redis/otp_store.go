package redisad

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"villamarket/internal/adapters/observability"
)

// OTPStore keeps one-time codes in Redis under otp:<phone> with a TTL.
type OTPStore struct{ c *redis.Client }

func New(addr, pass string, db int) *OTPStore {
	return &OTPStore{c: redis.NewClient(&redis.Options{Addr: addr, Password: pass, DB: db})}
}

func NewWithClient(c *redis.Client) *OTPStore { return &OTPStore{c: c} }

func key(phone string) string { return "otp:" + phone }

func (s *OTPStore) Set(ctx context.Context, phone, code string, ttl time.Duration) error {
	observability.ObserveOTP("set")
	return s.c.Set(ctx, key(phone), code, ttl).Err()
}

func (s *OTPStore) Get(ctx context.Context, phone string) (string, bool, error) {
	v, err := s.c.Get(ctx, key(phone)).Result()
	if err == redis.Nil {
		observability.ObserveOTP("miss")
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	observability.ObserveOTP("hit")
	return v, true, nil
}

func (s *OTPStore) Del(ctx context.Context, phone string) error {
	observability.ObserveOTP("del")
	return s.c.Del(ctx, key(phone)).Err()
}
