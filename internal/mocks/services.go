package mocks

import (
	"context"
	"sync"

	"healthtech-api/internal/domain/entity"
	"healthtech-api/internal/service"
	"healthtech-api/pkg/jwt"

	"github.com/google/uuid"
)

type Notifier struct {
	mu      sync.Mutex
	Notices []service.Notice
	Stored  map[uuid.UUID][]entity.Notification
	Err     error
}

func (n *Notifier) Send(_ context.Context, notice service.Notice) error {
	if n.Err != nil {
		return n.Err
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	n.Notices = append(n.Notices, notice)
	return nil
}

func (n *Notifier) SendMany(ctx context.Context, notices []service.Notice) error {
	for _, notice := range notices {
		if err := n.Send(ctx, notice); err != nil {
			return err
		}
	}
	return nil
}

func (n *Notifier) ListForUser(_ context.Context, userID uuid.UUID, unreadOnly bool, limit, offset int) ([]entity.Notification, int64, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	var out []entity.Notification
	for _, doc := range n.Stored[userID] {
		if unreadOnly && doc.Read {
			continue
		}
		out = append(out, doc)
	}
	return page(out, limit, offset), int64(len(out)), nil
}

func (n *Notifier) MarkRead(_ context.Context, userID uuid.UUID, id string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	for i, doc := range n.Stored[userID] {
		if doc.ID.Hex() == id {
			n.Stored[userID][i].Read = true
			return nil
		}
	}
	return service.ErrNotificationNotFound
}

// Types lists the sent notification types in order.
func (n *Notifier) Types() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := make([]string, 0, len(n.Notices))
	for _, notice := range n.Notices {
		out = append(out, notice.Type)
	}
	return out
}

type AlertPublisher struct {
	mu        sync.Mutex
	Published []entity.HealthMetric
	Err       error
}

func (p *AlertPublisher) PublishAbnormal(_ context.Context, metric *entity.HealthMetric) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Published = append(p.Published, *metric)
	return p.Err
}

// TokenStore keeps token ids per "type:user" key.
type TokenStore struct {
	mu     sync.Mutex
	Tokens map[string]map[string]bool
	Err    error
}

func NewTokenStore() *TokenStore {
	return &TokenStore{Tokens: map[string]map[string]bool{}}
}

func tokenBucket(userID uuid.UUID, tokenType jwt.TokenType) string {
	return string(tokenType) + ":" + userID.String()
}

func (s *TokenStore) Store(_ context.Context, userID uuid.UUID, tokenType jwt.TokenType, token *jwt.IssuedToken) error {
	if s.Err != nil {
		return s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	key := tokenBucket(userID, tokenType)
	if s.Tokens[key] == nil {
		s.Tokens[key] = map[string]bool{}
	}
	s.Tokens[key][token.TokenID] = true
	return nil
}

func (s *TokenStore) Exists(_ context.Context, userID uuid.UUID, tokenType jwt.TokenType, tokenID string) (bool, error) {
	if s.Err != nil {
		return false, s.Err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Tokens[tokenBucket(userID, tokenType)][tokenID], nil
}

func (s *TokenStore) Revoke(_ context.Context, userID uuid.UUID, tokenType jwt.TokenType, tokenID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.Tokens[tokenBucket(userID, tokenType)], tokenID)
	return nil
}

func (s *TokenStore) RevokeAll(_ context.Context, userID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.Tokens, tokenBucket(userID, jwt.AccessToken))
	delete(s.Tokens, tokenBucket(userID, jwt.RefreshToken))
	return nil
}

// SlotQuota counts places in memory.
type SlotQuota struct {
	mu        sync.Mutex
	Remaining map[int]int
	Queue     map[int]int
	Synced    []int
}

func NewSlotQuota() *SlotQuota {
	return &SlotQuota{Remaining: map[int]int{}, Queue: map[int]int{}}
}

func (q *SlotQuota) Reserve(_ context.Context, slotID int) (int, error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.Remaining[slotID] <= 0 {
		return 0, service.ErrSlotFull
	}
	q.Remaining[slotID]--
	q.Queue[slotID]++
	return q.Queue[slotID], nil
}

func (q *SlotQuota) Restore(_ context.Context, slotID int) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.Remaining[slotID]++
	return nil
}

func (q *SlotQuota) SyncSlot(_ context.Context, slotID int) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.Synced = append(q.Synced, slotID)
	return nil
}

func (q *SlotQuota) SyncOnStartup(context.Context) error { return nil }

func (q *SlotQuota) Stop() {}
