package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"healthtech-api/internal/domain/repository"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var ErrSlotFull = errors.New("appointment slot is fully booked")

// reserveScript takes one place from the quota and hands out the next queue
// number in a single step. Returns -1 when the slot is full.
var reserveScript = redis.NewScript(`
	local remaining = redis.call('DECR', KEYS[1])
	if remaining < 0 then
		redis.call('INCR', KEYS[1])
		return -1
	end
	return redis.call('INCR', KEYS[2])
`)

const (
	RedisSlotQuotaKeyPrefix = "slot:quota:"
	RedisSlotQueueKeyPrefix = "slot:queue:"

	slotSyncBatchSize    = 500
	mutexCleanupInterval = 10 * time.Minute
	mutexStaleThreshold  = 10 * time.Minute
)

// SlotQuota keeps the remaining places of each appointment slot in Redis.
type SlotQuota interface {
	// Reserve returns the queue number of the reserved place or ErrSlotFull.
	Reserve(ctx context.Context, slotID int) (int, error)
	// Restore gives a place back. Queue numbers are never reused.
	Restore(ctx context.Context, slotID int) error
	// SyncSlot rebuilds the counters of one slot from the database.
	SyncSlot(ctx context.Context, slotID int) error
	SyncOnStartup(ctx context.Context) error
	Stop()
}

type redisSlotQuota struct {
	db       *gorm.DB
	client   *redis.Client
	log      *logrus.Logger
	slotRepo repository.AppointmentSlotRepository
	now      func() time.Time

	slotMu sync.Map // map[int]*mutexWithTimestamp

	stopChan chan struct{}
	wg       sync.WaitGroup
	stopped  atomic.Bool
}

type mutexWithTimestamp struct {
	mu       sync.Mutex
	lastUsed atomic.Int64
}

// NewRedisSlotQuota starts a background goroutine pruning idle slot mutexes.
// Call Stop during shutdown.
func NewRedisSlotQuota(db *gorm.DB, client *redis.Client, log *logrus.Logger, slotRepo repository.AppointmentSlotRepository) SlotQuota {
	s := &redisSlotQuota{
		db:       db,
		client:   client,
		log:      log,
		slotRepo: slotRepo,
		now:      time.Now,
		stopChan: make(chan struct{}),
	}

	s.wg.Add(1)
	go s.cleanupMutexMapLoop()

	return s
}

func (s *redisSlotQuota) Stop() {
	if s.stopped.CompareAndSwap(false, true) {
		close(s.stopChan)
		s.wg.Wait()
		s.log.Info("Slot quota service stopped")
	}
}

func slotKeys(slotID int) (string, string) {
	return fmt.Sprintf("%s%d", RedisSlotQuotaKeyPrefix, slotID), fmt.Sprintf("%s%d", RedisSlotQueueKeyPrefix, slotID)
}

// SyncOnStartup reloads every upcoming slot in batches, one pipeline per batch.
func (s *redisSlotQuota) SyncOnStartup(ctx context.Context) error {
	s.log.Info("Starting slot quota sync from database...")
	started := s.now()

	if err := s.client.Ping(ctx).Err(); err != nil {
		s.log.Warnf("Redis is not available, skipping sync: %+v", err)
		return fmt.Errorf("redis ping failed: %w", err)
	}

	today := started.UTC().Truncate(24 * time.Hour)
	offset, total := 0, 0

	for {
		usages, err := s.slotRepo.UpcomingUsage(ctx, s.db, today, slotSyncBatchSize, offset)
		if err != nil {
			s.log.Errorf("Failed to query slots at offset %d: %+v", offset, err)
			return fmt.Errorf("query slots at offset %d: %w", offset, err)
		}
		if len(usages) == 0 {
			break
		}

		pipe := s.client.TxPipeline()
		for _, u := range usages {
			quotaKey, queueKey := slotKeys(u.SlotID)
			ttl := s.ttlFor(u.SlotDate)
			pipe.Set(ctx, quotaKey, remaining(u), ttl)
			pipe.Set(ctx, queueKey, u.MaxQueueNumber, ttl)
		}
		if _, err := pipe.Exec(ctx); err != nil {
			s.log.Errorf("Failed to execute pipeline at offset %d: %+v", offset, err)
			return fmt.Errorf("pipeline exec at offset %d: %w", offset, err)
		}

		total += len(usages)
		if len(usages) < slotSyncBatchSize {
			break
		}
		offset += slotSyncBatchSize

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
	}

	s.log.Infof("Slot quota sync completed: %d slots in %v", total, time.Since(started))
	return nil
}

func (s *redisSlotQuota) SyncSlot(ctx context.Context, slotID int) error {
	mt := s.slotMutex(slotID)
	mt.mu.Lock()
	defer mt.mu.Unlock()

	usage, err := s.slotRepo.Usage(ctx, s.db, slotID)
	if err != nil {
		s.log.Warnf("Failed to query usage for slot %d: %+v", slotID, err)
		return fmt.Errorf("query usage for slot %d: %w", slotID, err)
	}
	if usage == nil {
		return nil
	}

	quotaKey, queueKey := slotKeys(slotID)
	ttl := s.ttlFor(usage.SlotDate)

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, quotaKey, remaining(*usage), ttl)
	pipe.Set(ctx, queueKey, usage.MaxQueueNumber, ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		s.log.Warnf("Failed to sync Redis for slot %d: %+v", slotID, err)
		return fmt.Errorf("redis sync for slot %d: %w", slotID, err)
	}

	s.log.Debugf("Synced slot %d: quota=%d, queue=%d", slotID, remaining(*usage), usage.MaxQueueNumber)
	return nil
}

// Reserve runs without the slot mutex; the script is atomic in Redis.
func (s *redisSlotQuota) Reserve(ctx context.Context, slotID int) (int, error) {
	quotaKey, queueKey := slotKeys(slotID)

	queue, err := reserveScript.Run(ctx, s.client, []string{quotaKey, queueKey}).Int()
	if err != nil {
		s.log.Warnf("Failed to reserve place in slot %d: %+v", slotID, err)
		return 0, fmt.Errorf("reserve slot %d: %w", slotID, err)
	}
	if queue == -1 {
		return 0, ErrSlotFull
	}

	s.log.Debugf("Reserved place in slot %d: queue_number=%d", slotID, queue)
	return queue, nil
}

func (s *redisSlotQuota) Restore(ctx context.Context, slotID int) error {
	mt := s.slotMutex(slotID)
	mt.mu.Lock()
	defer mt.mu.Unlock()

	quotaKey, _ := slotKeys(slotID)
	if err := s.client.Incr(ctx, quotaKey).Err(); err != nil {
		s.log.Warnf("Failed to restore quota for slot %d: %+v", slotID, err)
		return fmt.Errorf("restore quota for slot %d: %w", slotID, err)
	}
	return nil
}

func remaining(u repository.SlotUsage) int {
	if left := u.TotalQuota - u.BookedCount; left > 0 {
		return left
	}
	return 0
}

func (s *redisSlotQuota) slotMutex(slotID int) *mutexWithTimestamp {
	v, _ := s.slotMu.LoadOrStore(slotID, &mutexWithTimestamp{})
	mt := v.(*mutexWithTimestamp)
	mt.lastUsed.Store(s.now().Unix())
	return mt
}

func (s *redisSlotQuota) cleanupMutexMapLoop() {
	defer s.wg.Done()

	ticker := time.NewTicker(mutexCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			return
		case <-ticker.C:
			s.cleanupStaleMutexes()
		}
	}
}

// cleanupStaleMutexes checks lastUsed under the lock so a concurrent user
// cannot refresh it between the check and the delete.
func (s *redisSlotQuota) cleanupStaleMutexes() {
	cutoff := s.now().Add(-mutexStaleThreshold).Unix()
	var cleaned int

	s.slotMu.Range(func(key, value any) bool {
		mt, ok := value.(*mutexWithTimestamp)
		if !ok {
			return true
		}
		if mt.mu.TryLock() {
			if mt.lastUsed.Load() < cutoff {
				s.slotMu.Delete(key)
				cleaned++
			}
			mt.mu.Unlock()
		}
		return true
	})

	if cleaned > 0 {
		s.log.Debugf("Cleaned up %d stale slot mutexes", cleaned)
	}
}

// ttlFor keeps counters until a day after the slot date.
func (s *redisSlotQuota) ttlFor(slotDate time.Time) time.Duration {
	ttl := slotDate.AddDate(0, 0, 1).Sub(s.now())
	if ttl <= 0 {
		return time.Minute
	}
	return ttl
}
