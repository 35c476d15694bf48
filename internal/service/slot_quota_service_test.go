package service

import (
	"io"
	"testing"
	"time"

	"healthtech-api/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestRemaining_NeverNegative(t *testing.T) {
	assert.Equal(t, 3, remaining(repository.SlotUsage{TotalQuota: 5, BookedCount: 2}))
	assert.Equal(t, 0, remaining(repository.SlotUsage{TotalQuota: 2, BookedCount: 4}))
}

func TestSlotQuota_TTL(t *testing.T) {
	now := time.Date(2026, 5, 10, 12, 0, 0, 0, time.UTC)
	q := &redisSlotQuota{now: func() time.Time { return now }}

	assert.Equal(t, 36*time.Hour, q.ttlFor(time.Date(2026, 5, 11, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, time.Minute, q.ttlFor(time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)))
}

func TestSlotQuota_CleanupStaleMutexes(t *testing.T) {
	log := logrus.New()
	log.SetOutput(io.Discard)
	now := time.Now()
	q := &redisSlotQuota{log: log, now: func() time.Time { return now }}

	fresh := q.slotMutex(1)
	stale := q.slotMutex(2)
	stale.lastUsed.Store(now.Add(-time.Hour).Unix())

	busy := q.slotMutex(3)
	busy.lastUsed.Store(now.Add(-time.Hour).Unix())
	busy.mu.Lock()

	q.cleanupStaleMutexes()
	busy.mu.Unlock()

	_, ok := q.slotMu.Load(1)
	assert.True(t, ok)
	_, ok = q.slotMu.Load(2)
	assert.False(t, ok)
	_, ok = q.slotMu.Load(3)
	assert.True(t, ok, "locked mutex must survive cleanup")
	assert.NotNil(t, fresh)
}

func TestSlotKeys(t *testing.T) {
	quota, queue := slotKeys(42)
	assert.Equal(t, "slot:quota:42", quota)
	assert.Equal(t, "slot:queue:42", queue)
}
