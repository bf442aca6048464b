package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setup(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	SetClient(goredis.NewClient(&goredis.Options{Addr: mr.Addr()}))
	return mr
}

func TestIncrBy(t *testing.T) {
	setup(t)
	ctx := context.Background()

	v, err := IncrBy(ctx, "counter", 5)
	require.NoError(t, err)
	assert.Equal(t, int64(5), v)

	v, err = IncrBy(ctx, "counter", 3)
	require.NoError(t, err)
	assert.Equal(t, int64(8), v)
}

func TestGetInt64_MissingKeyIsZero(t *testing.T) {
	setup(t)
	ctx := context.Background()

	v, err := GetInt64(ctx, "absent")
	require.NoError(t, err)
	assert.Equal(t, int64(0), v)

	_, err = IncrBy(ctx, "present", 42)
	require.NoError(t, err)
	v, err = GetInt64(ctx, "present")
	require.NoError(t, err)
	assert.Equal(t, int64(42), v)
}

func TestExpire(t *testing.T) {
	mr := setup(t)
	ctx := context.Background()

	_, err := IncrBy(ctx, "ttl-key", 1)
	require.NoError(t, err)
	require.NoError(t, Expire(ctx, "ttl-key", time.Minute))

	mr.FastForward(2 * time.Minute)
	v, err := GetInt64(ctx, "ttl-key")
	require.NoError(t, err)
	assert.Equal(t, int64(0), v)
}
