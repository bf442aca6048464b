package repositories

import "context"

// VolumeAccumulator tracks trailing monthly settled volume in USD minor
// units. Add must be a serialized write (two transactions completing
// concurrently are both credited); the accumulator resets to zero at each
// monthly boundary.
type VolumeAccumulator interface {
	Add(ctx context.Context, amountUSD int64) error
	Current(ctx context.Context) (int64, error)
}
