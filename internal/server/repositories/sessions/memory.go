package sessions

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/boilerparts/internal/common"
	"github.com/dmitrijs2005/boilerparts/internal/server/models"
	"github.com/google/uuid"
)

// MemoryRepository is an in-process session store used in tests and
// single-node setups without a sessions table.
type MemoryRepository struct {
	mu       sync.RWMutex
	sessions map[string]*models.Session
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{sessions: make(map[string]*models.Session)}
}

func (r *MemoryRepository) Create(ctx context.Context, userID int64, validity time.Duration) (*models.Session, error) {
	session := &models.Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		ExpiresAt: time.Now().Add(validity),
		CreatedAt: time.Now(),
	}

	r.mu.Lock()
	r.sessions[session.ID] = session
	r.mu.Unlock()

	return session, nil
}

func (r *MemoryRepository) Get(ctx context.Context, id string) (*models.Session, error) {
	r.mu.RLock()
	session, ok := r.sessions[id]
	r.mu.RUnlock()

	if !ok {
		return nil, common.ErrorNotFound
	}
	copied := *session
	return &copied, nil
}

func (r *MemoryRepository) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	delete(r.sessions, id)
	r.mu.Unlock()
	return nil
}

func (r *MemoryRepository) DeleteExpired(ctx context.Context) error {
	now := time.Now()
	r.mu.Lock()
	for id, session := range r.sessions {
		if session.ExpiresAt.Before(now) {
			delete(r.sessions, id)
		}
	}
	r.mu.Unlock()
	return nil
}

var _ Repository = (*MemoryRepository)(nil)
