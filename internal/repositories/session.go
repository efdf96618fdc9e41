package repositories

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"alfredoptarigan/jd-resume-matcher/internal/models"
	"alfredoptarigan/jd-resume-matcher/internal/services"
)

var ErrSessionNotFound = errors.New("session not found")

// SessionRepository keeps live upload sessions in memory. Nothing outlives
// the process.
type SessionRepository interface {
	Create(session services.UploadController) error
	FindByID(id uuid.UUID) (services.UploadController, error)
	Delete(id uuid.UUID) error
	SweepExpired(ttl time.Duration) int
	Count() int
}

type sessionRepository struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID]services.UploadController
	now      func() time.Time
}

func NewSessionRepository() SessionRepository {
	return &sessionRepository{
		sessions: make(map[uuid.UUID]services.UploadController),
		now:      time.Now,
	}
}

// Create implements SessionRepository.
func (r *sessionRepository) Create(session services.UploadController) error {
	if session == nil {
		return errors.New("failed to create session: nil session")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.sessions[session.ID()]; exists {
		return errors.New("failed to create session: duplicate id")
	}
	r.sessions[session.ID()] = session
	return nil
}

// FindByID implements SessionRepository.
func (r *sessionRepository) FindByID(id uuid.UUID) (services.UploadController, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	session, ok := r.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

// Delete implements SessionRepository.
func (r *sessionRepository) Delete(id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[id]; !ok {
		return ErrSessionNotFound
	}
	delete(r.sessions, id)
	return nil
}

// SweepExpired implements SessionRepository. Sessions with a submission in
// flight are kept regardless of age.
func (r *sessionRepository) SweepExpired(ttl time.Duration) int {
	cutoff := r.now().Add(-ttl)

	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for id, session := range r.sessions {
		if session.Status() == models.StatusSubmitting {
			continue
		}
		if session.LastActivity().Before(cutoff) {
			delete(r.sessions, id)
			removed++
		}
	}
	return removed
}

// Count implements SessionRepository.
func (r *sessionRepository) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
