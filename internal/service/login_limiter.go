package service

import (
	"context"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const loginAttemptKeyPrefix = "login_attempts:"

// LoginLimiter throttles repeated failed logins per email using a Redis
// counter with a TTL. It degrades open: when Redis is unreachable logins
// proceed, so the credential core keeps working without it. It never stores
// issued tokens.
type LoginLimiter struct {
	client      *redis.Client
	maxFailures int
	window      time.Duration
}

// NewLoginLimiter builds a limiter. A nil client disables throttling.
func NewLoginLimiter(client *redis.Client, maxFailures int, window time.Duration) *LoginLimiter {
	if maxFailures <= 0 {
		maxFailures = 10
	}
	if window <= 0 {
		window = 15 * time.Minute
	}
	return &LoginLimiter{client: client, maxFailures: maxFailures, window: window}
}

// Allow reports whether a login attempt for the email may proceed.
func (l *LoginLimiter) Allow(ctx context.Context, email string) bool {
	if l == nil || l.client == nil {
		return true
	}
	count, err := l.client.Get(ctx, l.key(email)).Int()
	if err != nil {
		return true
	}
	return count < l.maxFailures
}

// RecordFailure bumps the failure counter, starting the window on the first
// failure.
func (l *LoginLimiter) RecordFailure(ctx context.Context, email string) {
	if l == nil || l.client == nil {
		return
	}
	key := l.key(email)
	count, err := l.client.Incr(ctx, key).Result()
	if err != nil {
		return
	}
	if count == 1 {
		l.client.Expire(ctx, key, l.window)
	}
}

// Reset clears the counter after a successful login.
func (l *LoginLimiter) Reset(ctx context.Context, email string) {
	if l == nil || l.client == nil {
		return
	}
	l.client.Del(ctx, l.key(email))
}

func (l *LoginLimiter) key(email string) string {
	return loginAttemptKeyPrefix + strings.ToLower(email)
}
