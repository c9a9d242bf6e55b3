package internal

import (
	"context"
	"testing"
	"time"
)

func TestNewRateLimiter_DisabledWithoutRedis(t *testing.T) {
	cfg := &Config{RateLimitEnabled: true, RedisHost: ""}
	rl := NewRateLimiter(cfg, createTestLogger())

	if rl.enabled {
		t.Error("expected limiter disabled without a redis host")
	}

	allowed, err := rl.Allow(context.Background(), "match-history")
	if err != nil {
		t.Errorf("expected no error, got %v", err)
	}
	if !allowed {
		t.Error("expected disabled limiter to allow everything")
	}
}

func TestNewRateLimiter_DisabledByConfig(t *testing.T) {
	cfg := &Config{RateLimitEnabled: false, RedisHost: "localhost"}
	rl := NewRateLimiter(cfg, createTestLogger())

	if rl.enabled {
		t.Error("expected limiter disabled by config")
	}
}

func TestRateLimiter_WindowKey(t *testing.T) {
	rl := &RateLimiter{prefix: "lol:ratelimit", enabled: true}

	key := rl.windowKey("match-history", RateLimit{requests: 10, window: time.Second})
	if key != "lol:ratelimit:match-history:1" {
		t.Errorf("unexpected window key: %s", key)
	}

	key = rl.windowKey("match-history", RateLimit{requests: 50, window: 2 * time.Minute})
	if key != "lol:ratelimit:match-history:120" {
		t.Errorf("unexpected window key: %s", key)
	}
}

func TestInboundRateLimits(t *testing.T) {
	if len(inboundRateLimits) != 2 {
		t.Fatalf("expected 2 windows, got %d", len(inboundRateLimits))
	}

	// The second window must always be the wider one so the per-second limit
	// trips first under bursts.
	if inboundRateLimits[0].window >= inboundRateLimits[1].window {
		t.Error("expected windows ordered narrow to wide")
	}
}
