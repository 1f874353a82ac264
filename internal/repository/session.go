package repository

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/minwoo-jeong/asreco/internal/model"
)

// SessionRepo stores analysis sessions. The interface exists so the service
// layer can be tested without caring where sessions live; the only shipped
// implementation is in-memory, since sessions are deliberately not persisted.
type SessionRepo interface {
	Save(ctx context.Context, session *model.AnalysisSession) error
	Get(ctx context.Context, id string) (*model.AnalysisSession, error)
}

type memorySessionRepo struct {
	mu       sync.RWMutex
	sessions map[string]*model.AnalysisSession
}

// NewMemorySessionRepo builds the in-memory store.
func NewMemorySessionRepo() SessionRepo {
	return &memorySessionRepo{sessions: make(map[string]*model.AnalysisSession)}
}

func (r *memorySessionRepo) Save(_ context.Context, session *model.AnalysisSession) error {
	if session.ID == "" {
		session.ID = uuid.New().String()
	}
	if session.CreatedAt.IsZero() {
		session.CreatedAt = time.Now()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sessions[session.ID] = session
	return nil
}

func (r *memorySessionRepo) Get(_ context.Context, id string) (*model.AnalysisSession, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	session, ok := r.sessions[id]
	if !ok {
		return nil, fmt.Errorf("session %s not found", id)
	}
	return session, nil
}
