package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type view struct {
	Total int `json:"total"`
}

func newTestCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return New(client, time.Minute), mr
}

func countingLoader(calls *int, total int) func(context.Context) (any, error) {
	return func(context.Context) (any, error) {
		*calls++
		return view{Total: total}, nil
	}
}

func TestFetchJSONCachesUntilInvalidated(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()
	calls := 0

	var got view
	hit, err := c.FetchJSON(ctx, "u1", "settlement", &got, countingLoader(&calls, 10))
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, 10, got.Total)
	assert.True(t, mr.Exists(Key("u1", "settlement", 0)))
	assert.Equal(t, time.Minute, mr.TTL(Key("u1", "settlement", 0)))

	hit, err = c.FetchJSON(ctx, "u1", "settlement", &got, countingLoader(&calls, 20))
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, 10, got.Total)
	assert.Equal(t, 1, calls)

	require.NoError(t, c.Invalidate(ctx, "u1"))
	ver, err := c.Version(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), ver)

	hit, err = c.FetchJSON(ctx, "u1", "settlement", &got, countingLoader(&calls, 20))
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, 20, got.Total)
	assert.Equal(t, 2, calls)
}

func TestInvalidateIsPerOwner(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()
	calls := 0

	var got view
	_, err := c.FetchJSON(ctx, "u2", "balances", &got, countingLoader(&calls, 1))
	require.NoError(t, err)

	require.NoError(t, c.Invalidate(ctx, "u1"))

	hit, err := c.FetchJSON(ctx, "u2", "balances", &got, countingLoader(&calls, 2))
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, 1, got.Total)
}

func TestFetchJSONDegradesWhenRedisIsDown(t *testing.T) {
	c, mr := newTestCache(t)
	mr.Close()
	calls := 0

	var got view
	hit, err := c.FetchJSON(context.Background(), "u1", "settlement", &got, countingLoader(&calls, 5))
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, 5, got.Total)
	assert.Equal(t, 1, calls)
}

func TestFetchJSONLoaderError(t *testing.T) {
	c, _ := newTestCache(t)
	boom := errors.New("boom")

	var got view
	_, err := c.FetchJSON(context.Background(), "u1", "settlement", &got, func(context.Context) (any, error) {
		return nil, boom
	})
	assert.ErrorIs(t, err, boom)

	_, err = c.FetchJSON(context.Background(), "u1", "settlement", &got, nil)
	assert.Error(t, err)
}

func TestNilCache(t *testing.T) {
	var c *Cache
	calls := 0

	var got view
	hit, err := c.FetchJSON(context.Background(), "u1", "settlement", &got, countingLoader(&calls, 3))
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Equal(t, 3, got.Total)
	assert.NoError(t, c.Invalidate(context.Background(), "u1"))
}
