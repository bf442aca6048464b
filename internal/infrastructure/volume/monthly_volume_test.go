package volume

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"lusdt-bridge.backend/pkg/redis"
)

func setupRedis(t *testing.T) {
	t.Helper()
	mr := miniredis.RunT(t)
	redis.SetClient(goredis.NewClient(&goredis.Options{Addr: mr.Addr()}))
}

func TestMonthlyVolume_AddAndCurrent(t *testing.T) {
	setupRedis(t)
	v := NewMonthlyVolume()
	ctx := context.Background()

	cur, err := v.Current(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(0), cur)

	require.NoError(t, v.Add(ctx, 5_000_000))
	require.NoError(t, v.Add(ctx, 2_500_000))

	cur, err = v.Current(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(7_500_000), cur)
}

func TestMonthlyVolume_ConcurrentAddsAreNotLost(t *testing.T) {
	setupRedis(t)
	v := NewMonthlyVolume()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			require.NoError(t, v.Add(ctx, 1_000_000))
		}()
	}
	wg.Wait()

	cur, err := v.Current(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(20_000_000), cur)
}

func TestMonthlyVolume_ResetsAcrossMonths(t *testing.T) {
	setupRedis(t)
	ctx := context.Background()

	now := time.Date(2026, time.January, 31, 23, 0, 0, 0, time.UTC)
	v := NewMonthlyVolumeAt(func() time.Time { return now })

	require.NoError(t, v.Add(ctx, 9_000_000))

	cur, err := v.Current(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(9_000_000), cur)

	// Crossing into February starts a fresh counter.
	now = time.Date(2026, time.February, 1, 0, 5, 0, 0, time.UTC)

	cur, err = v.Current(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(0), cur)
}
