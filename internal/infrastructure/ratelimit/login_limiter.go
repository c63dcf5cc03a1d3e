package ratelimit

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/sustaincity/city-backend/internal/core/domain"
)

const (
	defaultMaxFailures = 5
	defaultCooldown    = 15 * time.Minute
)

// LoginLimiter throttles repeated failed logins per username using a Redis
// counter with a rolling expiry. Redis being unavailable never blocks a
// login: the limiter degrades to a warn log and lets the attempt through.
type LoginLimiter struct {
	client      *redis.Client
	maxFailures int
	cooldown    time.Duration
	log         zerolog.Logger
}

func NewLoginLimiter(client *redis.Client, maxFailures int, cooldown time.Duration, log zerolog.Logger) *LoginLimiter {
	if maxFailures <= 0 {
		maxFailures = defaultMaxFailures
	}
	if cooldown <= 0 {
		cooldown = defaultCooldown
	}
	return &LoginLimiter{client: client, maxFailures: maxFailures, cooldown: cooldown, log: log}
}

// Allow returns domain.ErrTooManyAttempts once the account has accumulated
// maxFailures failed attempts within the cooldown window.
func (l *LoginLimiter) Allow(ctx context.Context, username string) error {
	count, err := l.client.Get(ctx, l.key(username)).Int64()
	if err != nil {
		if err == redis.Nil {
			return nil
		}
		l.log.Warn().Err(err).Str("username", username).Msg("login throttle check failed, allowing attempt")
		return nil
	}
	if count >= int64(l.maxFailures) {
		return domain.ErrTooManyAttempts
	}
	return nil
}

// RecordFailure counts one failed attempt against the account. The window
// starts at the first failure and resets after the cooldown.
func (l *LoginLimiter) RecordFailure(ctx context.Context, username string) {
	key := l.key(username)
	count, err := l.client.Incr(ctx, key).Result()
	if err != nil {
		l.log.Warn().Err(err).Str("username", username).Msg("failed to record login failure")
		return
	}
	if count == 1 {
		if err := l.client.Expire(ctx, key, l.cooldown).Err(); err != nil {
			l.log.Warn().Err(err).Str("username", username).Msg("failed to set throttle expiry")
		}
	}
}

func (l *LoginLimiter) key(username string) string {
	return "login_fail:" + username
}
