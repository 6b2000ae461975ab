package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(endpoints []EndpointConfig) *Config {
	return &Config{
		Enabled:         true,
		DefaultLimit:    100,
		DefaultWindow:   time.Minute,
		Whitelist:       map[string]bool{},
		Blacklist:       map[string]bool{},
		EndpointConfigs: endpoints,
	}
}

func TestLimiter_BurstThenDeny(t *testing.T) {
	limiter := NewLimiter(testConfig([]EndpointConfig{
		{Path: "/interview", Method: "POST", Limit: 10, Window: time.Hour, Burst: 2},
	}))
	defer limiter.Stop()

	allowed, _ := limiter.Allow("1.2.3.4", "/interview", "POST")
	assert.True(t, allowed)
	allowed, _ = limiter.Allow("1.2.3.4", "/interview", "POST")
	assert.True(t, allowed)

	allowed, info := limiter.Allow("1.2.3.4", "/interview", "POST")
	require.False(t, allowed)
	assert.Equal(t, 10, info.Limit)
	assert.GreaterOrEqual(t, info.RetryAfter, time.Duration(0))
}

func TestLimiter_ClientsIsolated(t *testing.T) {
	limiter := NewLimiter(testConfig([]EndpointConfig{
		{Path: "/interview", Method: "POST", Limit: 10, Window: time.Hour, Burst: 1},
	}))
	defer limiter.Stop()

	allowed, _ := limiter.Allow("1.2.3.4", "/interview", "POST")
	assert.True(t, allowed)
	allowed, _ = limiter.Allow("1.2.3.4", "/interview", "POST")
	assert.False(t, allowed)

	// a different client has its own bucket
	allowed, _ = limiter.Allow("5.6.7.8", "/interview", "POST")
	assert.True(t, allowed)
}

func TestLimiter_WhitelistAndBlacklist(t *testing.T) {
	cfg := testConfig(nil)
	cfg.Whitelist["10.0.0.1"] = true
	cfg.Blacklist["10.0.0.2"] = true
	limiter := NewLimiter(cfg)
	defer limiter.Stop()

	for i := 0; i < 500; i++ {
		allowed, _ := limiter.Allow("10.0.0.1", "/interview/all", "GET")
		require.True(t, allowed)
	}

	allowed, _ := limiter.Allow("10.0.0.2", "/interview/all", "GET")
	assert.False(t, allowed)
}

func TestLimiter_DisabledAllowsEverything(t *testing.T) {
	limiter := NewLimiter(&Config{Enabled: false})
	defer limiter.Stop()

	for i := 0; i < 100; i++ {
		allowed, _ := limiter.Allow("1.2.3.4", "/interview", "POST")
		require.True(t, allowed)
	}
}

func TestMatchEndpoint(t *testing.T) {
	configs := DefaultEndpointConfigs()

	// health is unlimited
	ec := MatchEndpoint("/health", "GET", configs)
	require.NotNil(t, ec)
	assert.Equal(t, 0, ec.Limit)

	// exact match on creation
	ec = MatchEndpoint("/interview", "POST", configs)
	require.NotNil(t, ec)
	assert.Equal(t, 20, ec.Limit)

	// prefix match covers start/submit under /interview/{id}/
	ec = MatchEndpoint("/interview/abc/start", "POST", configs)
	require.NotNil(t, ec)
	assert.Equal(t, 30, ec.Limit)

	// reads fall through to the default
	assert.Nil(t, MatchEndpoint("/interview/all", "GET", configs))
}

func TestTokenBucket_Refill(t *testing.T) {
	tb := newTokenBucket(1, 100) // refills fast enough to observe
	require.True(t, tb.allow())
	require.False(t, tb.allow())

	time.Sleep(25 * time.Millisecond)
	assert.True(t, tb.allow(), "bucket should refill over time")
}
