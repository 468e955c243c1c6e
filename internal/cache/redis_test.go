package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

// stubClient implements redisClient for testing.
type stubClient struct {
	pingErr error
	closed  bool
}

func (s *stubClient) Ping(ctx context.Context) *redis.StatusCmd {
	return redis.NewStatusResult("PONG", s.pingErr)
}

func (s *stubClient) Get(ctx context.Context, key string) *redis.StringCmd {
	return redis.NewStringResult("", nil)
}

func (s *stubClient) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) *redis.StatusCmd {
	return redis.NewStatusResult("OK", nil)
}

func (s *stubClient) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	return redis.NewIntResult(0, nil)
}

func (s *stubClient) Close() error { s.closed = true; return nil }

func restoreClient() {
	redisNewClient = func(o *redis.Options) redisClient { return redis.NewClient(o) }
}

func TestNewRedisClient(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		t.Cleanup(restoreClient)
		var opts *redis.Options
		stub := &stubClient{}
		redisNewClient = func(o *redis.Options) redisClient {
			opts = o
			return stub
		}

		c, err := NewRedisClient("127.0.0.1:6379", "secret", 1)
		require.NoError(t, err)
		require.Equal(t, stub, c)
		require.Equal(t, "127.0.0.1:6379", opts.Addr)
		require.Equal(t, "secret", opts.Password)
		require.Equal(t, 1, opts.DB)
	})

	t.Run("ping fail", func(t *testing.T) {
		t.Cleanup(restoreClient)
		stub := &stubClient{pingErr: errors.New("fail")}
		redisNewClient = func(o *redis.Options) redisClient { return stub }

		c, err := NewRedisClient("addr", "", 0)
		require.Error(t, err)
		require.Nil(t, c)
		require.True(t, stub.closed)
	})
}

func TestNewRedisClientMiniredis(t *testing.T) {
	mr := miniredis.RunT(t)
	c, err := NewRedisClient(mr.Addr(), "", 0)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })

	ctx := context.Background()
	require.NoError(t, c.Set(ctx, "refresh_token:1", "tok", time.Minute).Err())
	require.Equal(t, "tok", c.Get(ctx, "refresh_token:1").Val())
	require.True(t, mr.Exists("refresh_token:1"))

	mr.FastForward(2 * time.Minute)
	require.ErrorIs(t, c.Get(ctx, "refresh_token:1").Err(), redis.Nil)

	require.NoError(t, c.Set(ctx, "k", "v", 0).Err())
	require.EqualValues(t, 1, c.Del(ctx, "k").Val())
	require.ErrorIs(t, c.Get(ctx, "k").Err(), redis.Nil)
}
