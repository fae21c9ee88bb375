package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Name  string  `json:"name"`
	Score float64 `json:"score"`
}

func newTestCache(t *testing.T) (Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewRedisCache(client), mr
}

func TestRedisCache_SetGetRoundTrip(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	want := payload{Name: "acme", Score: 4.2}
	require.NoError(t, c.Set(ctx, "company:detail:abc", want, time.Minute))

	var got payload
	hit, err := c.Get(ctx, "company:detail:abc", &got)
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, want, got)
}

func TestRedisCache_MissOnUnknownKey(t *testing.T) {
	c, _ := newTestCache(t)

	var got payload
	hit, err := c.Get(context.Background(), "company:detail:missing", &got)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestRedisCache_TTLExpiry(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "admin:dashboard", payload{Name: "dash"}, 10*time.Minute))
	mr.FastForward(11 * time.Minute)

	var got payload
	hit, err := c.Get(ctx, "admin:dashboard", &got)
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestRedisCache_Delete(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k1", payload{}, time.Minute))
	require.NoError(t, c.Set(ctx, "k2", payload{}, time.Minute))
	require.NoError(t, c.Delete(ctx, "k1", "k2"))

	var got payload
	hit, _ := c.Get(ctx, "k1", &got)
	assert.False(t, hit)
	hit, _ = c.Get(ctx, "k2", &got)
	assert.False(t, hit)
}

func TestRedisCache_DeletePrefix(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, CompanyReviewsKey("c1", 0, 10, false), payload{}, time.Minute))
	require.NoError(t, c.Set(ctx, CompanyReviewsKey("c1", 10, 10, true), payload{}, time.Minute))
	require.NoError(t, c.Set(ctx, CompanyReviewsKey("c2", 0, 10, false), payload{}, time.Minute))

	require.NoError(t, c.DeletePrefix(ctx, CompanyReviewsKeyPrefix("c1")))

	var got payload
	hit, _ := c.Get(ctx, CompanyReviewsKey("c1", 0, 10, false), &got)
	assert.False(t, hit)
	hit, _ = c.Get(ctx, CompanyReviewsKey("c1", 10, 10, true), &got)
	assert.False(t, hit)

	// Other companies keep their entries.
	hit, _ = c.Get(ctx, CompanyReviewsKey("c2", 0, 10, false), &got)
	assert.True(t, hit)
}

func TestRedisCache_DeletePrefixIdempotent(t *testing.T) {
	c, _ := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.DeletePrefix(ctx, "company:reviews:none:"))
	require.NoError(t, c.DeletePrefix(ctx, "company:reviews:none:"))
}

func TestRedisCache_CorruptEntryBehavesAsMiss(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, mr.Set("company:detail:bad", "{not json"))

	var got payload
	hit, err := c.Get(ctx, "company:detail:bad", &got)
	require.NoError(t, err)
	assert.False(t, hit)
	// Entry is evicted so the next read repopulates from the DB.
	assert.False(t, mr.Exists("company:detail:bad"))
}

func TestRedisCache_NilClientDegradesGracefully(t *testing.T) {
	c := NewRedisCache(nil)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", payload{}, time.Minute))

	var got payload
	hit, err := c.Get(ctx, "k", &got)
	require.NoError(t, err)
	assert.False(t, hit)

	require.NoError(t, c.Delete(ctx, "k"))
	require.NoError(t, c.DeletePrefix(ctx, "k"))
	assert.Error(t, c.Ping(ctx))
}
