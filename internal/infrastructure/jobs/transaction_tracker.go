package jobs

import (
	"context"
	"math/big"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"lusdt-bridge.backend/internal/domain/entities"
	"lusdt-bridge.backend/internal/domain/repositories"
	"lusdt-bridge.backend/internal/infrastructure/blockchain"
	"lusdt-bridge.backend/pkg/logger"
	"lusdt-bridge.backend/pkg/metrics"
)

// StatusRefresher is the slice of the bridge usecase the tracker drives.
type StatusRefresher interface {
	RefreshStatus(ctx context.Context, id uuid.UUID) (*entities.BridgeTransaction, error)
	MarkObservationTimeout(ctx context.Context, id uuid.UUID) error
}

// StatusCallback receives each newly observed status. The multisig status is
// nil unless the transaction is processing and the fetch succeeded.
type StatusCallback func(tx *entities.BridgeTransaction, multisig *entities.MultisigStatus)

type trackerLoop struct {
	cancel context.CancelFunc

	mu           sync.Mutex
	callback     StatusCallback
	lastRank     int
	lastStatus   entities.BridgeTransactionStatus
	lastMultisig *entities.MultisigStatus
}

// TransactionTracker runs one poll loop per tracked transaction. Observed
// statuses delivered to a callback never go backwards in lifecycle order, and
// a loop stops itself once it sees a terminal status or its observation
// window expires.
type TransactionTracker struct {
	refresher         StatusRefresher
	txRepo            repositories.BridgeTransactionRepository
	multisig          blockchain.MultisigStatusSource
	pollInterval      time.Duration
	observationWindow time.Duration

	mu    sync.Mutex
	loops map[uuid.UUID]*trackerLoop
}

// NewTransactionTracker creates a new transaction tracker
func NewTransactionTracker(
	refresher StatusRefresher,
	txRepo repositories.BridgeTransactionRepository,
	multisig blockchain.MultisigStatusSource,
	pollInterval, observationWindow time.Duration,
) *TransactionTracker {
	return &TransactionTracker{
		refresher:         refresher,
		txRepo:            txRepo,
		multisig:          multisig,
		pollInterval:      pollInterval,
		observationWindow: observationWindow,
		loops:             make(map[uuid.UUID]*trackerLoop),
	}
}

// StartTracking begins polling a transaction. Calling it again for an id
// already being tracked replaces the callback without starting a second loop.
func (t *TransactionTracker) StartTracking(ctx context.Context, id uuid.UUID, cb StatusCallback) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if loop, ok := t.loops[id]; ok {
		loop.mu.Lock()
		loop.callback = cb
		loop.mu.Unlock()
		return
	}

	loopCtx, cancel := context.WithCancel(ctx)
	loop := &trackerLoop{cancel: cancel, callback: cb, lastRank: -1}
	t.loops[id] = loop
	metrics.ActiveTrackers.Inc()

	go t.run(loopCtx, id, loop)
}

// StopTracking cancels a transaction's poll loop. Safe to call for an id that
// is not being tracked, and safe concurrently with an in-flight poll: the
// loop checks cancellation before delivering and before rescheduling.
func (t *TransactionTracker) StopTracking(id uuid.UUID) {
	t.mu.Lock()
	loop, ok := t.loops[id]
	t.mu.Unlock()
	if ok {
		loop.cancel()
	}
}

// StopAll cancels every running loop. Used on shutdown.
func (t *TransactionTracker) StopAll() {
	t.mu.Lock()
	loops := make([]*trackerLoop, 0, len(t.loops))
	for _, loop := range t.loops {
		loops = append(loops, loop)
	}
	t.mu.Unlock()
	for _, loop := range loops {
		loop.cancel()
	}
}

// Tracking reports whether a poll loop is running for id.
func (t *TransactionTracker) Tracking(id uuid.UUID) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, ok := t.loops[id]
	return ok
}

func (t *TransactionTracker) run(ctx context.Context, id uuid.UUID, loop *trackerLoop) {
	defer func() {
		loop.cancel()
		t.mu.Lock()
		if t.loops[id] == loop {
			delete(t.loops, id)
		}
		t.mu.Unlock()
		metrics.ActiveTrackers.Dec()
	}()

	ticker := time.NewTicker(t.pollInterval)
	defer ticker.Stop()
	deadline := time.NewTimer(t.observationWindow)
	defer deadline.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-deadline.C:
			// Observation stopped; the chain outcome stays unknown.
			if err := t.refresher.MarkObservationTimeout(ctx, id); err != nil {
				logger.Error(ctx, "observation timeout handling failed",
					zap.String("id", id.String()), zap.Error(err))
			}
			t.poll(ctx, id, loop)
			return
		case <-ticker.C:
			if t.poll(ctx, id, loop) {
				return
			}
		}
	}
}

// poll runs one observation cycle. Returns true when the loop should stop.
func (t *TransactionTracker) poll(ctx context.Context, id uuid.UUID, loop *trackerLoop) bool {
	tx, err := t.refresher.RefreshStatus(ctx, id)
	if err != nil {
		if ctx.Err() != nil {
			return true
		}
		logger.Warn(ctx, "status poll failed",
			zap.String("id", id.String()), zap.Error(err))
		return false
	}

	var ms *entities.MultisigStatus
	if tx.Status == entities.BridgeStatusProcessing && t.multisig != nil {
		ms, err = t.multisig.GetMultisigStatus(ctx, id)
		if err != nil {
			// Best-effort; retried next cycle.
			logger.Debug(ctx, "multisig status unavailable",
				zap.String("id", id.String()), zap.Error(err))
			ms = nil
		}
	}

	t.deliver(ctx, loop, tx, ms)
	return tx.Status.Terminal()
}

// deliver hands the observation to the callback unless the loop was
// cancelled, the observation is behind the last delivered status, or nothing
// changed since the last delivery (same status, no new approvals).
func (t *TransactionTracker) deliver(ctx context.Context, loop *trackerLoop, tx *entities.BridgeTransaction, ms *entities.MultisigStatus) {
	loop.mu.Lock()
	defer loop.mu.Unlock()

	if ctx.Err() != nil {
		return
	}
	rank := tx.Status.Rank()
	if rank < loop.lastRank {
		return
	}
	if tx.Status == loop.lastStatus && !multisigChanged(loop.lastMultisig, ms) {
		return
	}
	loop.lastRank = rank
	loop.lastStatus = tx.Status
	loop.lastMultisig = ms
	if loop.callback != nil {
		loop.callback(tx, ms)
	}
}

// multisigChanged reports whether cur carries approval progress not yet
// delivered. A nil cur (fetch skipped or failed) is never new information.
func multisigChanged(prev, cur *entities.MultisigStatus) bool {
	if cur == nil {
		return false
	}
	return prev == nil || *prev != *cur
}

const statsPageSize = 500

// GetTransactionStats aggregates the retained history, optionally scoped to
// one source address. An empty history yields zero values, not NaN.
func (t *TransactionTracker) GetTransactionStats(ctx context.Context, userAddress string) (*entities.TransactionStats, error) {
	stats := &entities.TransactionStats{
		ByStatus: make(map[entities.BridgeTransactionStatus]int),
		ByType:   make(map[entities.BridgeTransactionType]int),
	}

	volume := new(big.Int)
	var completed, failed, terminal int
	var processingTotal time.Duration

	for offset := 0; ; offset += statsPageSize {
		page, total, err := t.txRepo.List(ctx, userAddress, statsPageSize, offset)
		if err != nil {
			return nil, err
		}
		stats.TotalTransactions = total

		for _, tx := range page {
			stats.ByStatus[tx.Status]++
			stats.ByType[tx.Type]++
			if tx.Status.Terminal() {
				terminal++
				processingTotal += tx.UpdatedAt.Sub(tx.CreatedAt)
			}
			switch tx.Status {
			case entities.BridgeStatusCompleted:
				completed++
				if amount, ok := new(big.Int).SetString(tx.Amount, 10); ok {
					volume.Add(volume, amount)
				}
			case entities.BridgeStatusFailed:
				failed++
			}
		}

		if offset+len(page) >= total || len(page) == 0 {
			break
		}
	}

	stats.TotalVolume = volume.String()
	// Success rate covers settlement outcomes only; cancellations count
	// toward neither side.
	if completed+failed > 0 {
		stats.SuccessRate = float64(completed) / float64(completed+failed)
	}
	if terminal > 0 {
		stats.AverageProcessingTime = processingTotal / time.Duration(terminal)
	}
	return stats, nil
}
