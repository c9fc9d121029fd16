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

type item struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// 指向一个没有 redis 的端口：读写都失败，应当退化为直接回源
func unreachable(t *testing.T) *Cache {
	t.Helper()
	c := NewWithClient(redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 50 * time.Millisecond,
		MaxRetries:  -1,
	}))
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestGetOrLoadJSON_FallsBackToLoaderWhenRedisDown(t *testing.T) {
	c := unreachable(t)
	calls := 0
	got, err := GetOrLoadJSON(c, context.Background(), "item:1", time.Minute, func(ctx context.Context) (*item, error) {
		calls++
		return &item{ID: 1, Name: "pen"}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, &item{ID: 1, Name: "pen"}, got)
	assert.Equal(t, 1, calls)
}

func TestGetOrLoadJSON_PropagatesLoaderError(t *testing.T) {
	c := unreachable(t)
	sentinel := errors.New("missing")
	_, err := GetOrLoadJSON(c, context.Background(), "item:2", time.Minute, func(ctx context.Context) (*item, error) {
		return nil, sentinel
	})
	assert.ErrorIs(t, err, sentinel)
}

func TestGetOrLoadJSON_AbsentIsNotAnError(t *testing.T) {
	c := unreachable(t)
	got, err := GetOrLoadJSON(c, context.Background(), "item:3", time.Minute, func(ctx context.Context) (*item, error) {
		return nil, nil
	})
	require.NoError(t, err)
	assert.Nil(t, got)
}

func reachable(t *testing.T) (*Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	c := NewWithClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { _ = c.Close() })
	return c, mr
}

func TestGetOrLoadJSON_HitSkipsLoader(t *testing.T) {
	c, mr := reachable(t)
	ctx := context.Background()
	calls := 0
	load := func(ctx context.Context) (*item, error) {
		calls++
		return &item{ID: 7, Name: "lamp"}, nil
	}

	first, err := GetOrLoadJSON(c, ctx, "item:7", time.Minute, load)
	require.NoError(t, err)
	second, err := GetOrLoadJSON(c, ctx, "item:7", time.Minute, load)
	require.NoError(t, err)

	assert.Equal(t, 1, calls)
	assert.Equal(t, first, second)
	assert.True(t, mr.Exists("storefront:item:7"))
	assert.Equal(t, time.Minute, mr.TTL("storefront:item:7"))

	raw, err := mr.Get("storefront:item:7")
	require.NoError(t, err)
	assert.JSONEq(t, `{"id":7,"name":"lamp"}`, raw)
}

func TestGetOrLoadJSON_ReadsValueWrittenByAnotherProcess(t *testing.T) {
	c, mr := reachable(t)
	require.NoError(t, mr.Set("storefront:item:8", `{"id":8,"name":"desk"}`))

	got, err := GetOrLoadJSON(c, context.Background(), "item:8", time.Minute, func(ctx context.Context) (*item, error) {
		t.Fatal("loader must not run on a hit")
		return nil, nil
	})
	require.NoError(t, err)
	assert.Equal(t, &item{ID: 8, Name: "desk"}, got)
}

func TestGetOrLoadJSON_AbsentAndErrorsAreNotCached(t *testing.T) {
	c, mr := reachable(t)
	ctx := context.Background()

	got, err := GetOrLoadJSON(c, ctx, "item:9", time.Minute, func(ctx context.Context) (*item, error) {
		return nil, nil
	})
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.False(t, mr.Exists("storefront:item:9"))

	_, err = GetOrLoadJSON(c, ctx, "item:10", time.Minute, func(ctx context.Context) (*item, error) {
		return nil, errors.New("db down")
	})
	assert.Error(t, err)
	assert.False(t, mr.Exists("storefront:item:10"))
}

func TestGetOrLoadJSON_CorruptEntryFallsBackToLoader(t *testing.T) {
	c, mr := reachable(t)
	require.NoError(t, mr.Set("storefront:item:11", `{not json`))

	got, err := GetOrLoadJSON(c, context.Background(), "item:11", time.Minute, func(ctx context.Context) (*item, error) {
		return &item{ID: 11, Name: "fresh"}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, &item{ID: 11, Name: "fresh"}, got)
}
