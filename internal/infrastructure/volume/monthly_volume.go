package volume

import (
	"context"
	"fmt"
	"time"

	"lusdt-bridge.backend/pkg/redis"
)

const keyPrefix = "bridge:volume:monthly"

// retention keeps a finished month readable for reporting before Redis
// reclaims the key.
const retention = 62 * 24 * time.Hour

// MonthlyVolume accumulates settled USD volume (minor units) on a
// calendar-month Redis counter. INCRBY serializes concurrent increments, and
// rolling to a fresh key each month resets the accumulator without any
// scheduled job.
type MonthlyVolume struct {
	now func() time.Time
}

// NewMonthlyVolume creates a monthly volume accumulator
func NewMonthlyVolume() *MonthlyVolume {
	return &MonthlyVolume{now: time.Now}
}

// NewMonthlyVolumeAt creates an accumulator with an injected clock (used for testing)
func NewMonthlyVolumeAt(now func() time.Time) *MonthlyVolume {
	return &MonthlyVolume{now: now}
}

func (v *MonthlyVolume) key() string {
	t := v.now().UTC()
	return fmt.Sprintf("%s:%04d-%02d", keyPrefix, t.Year(), int(t.Month()))
}

// Add credits settled volume to the current calendar month.
func (v *MonthlyVolume) Add(ctx context.Context, amountUSD int64) error {
	key := v.key()
	if _, err := redis.IncrBy(ctx, key, amountUSD); err != nil {
		return err
	}
	return redis.Expire(ctx, key, retention)
}

// Current returns the volume accumulated so far this calendar month.
func (v *MonthlyVolume) Current(ctx context.Context) (int64, error) {
	return redis.GetInt64(ctx, v.key())
}
