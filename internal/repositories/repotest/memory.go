// Package repotest provides in-memory repositories for tests.
package repotest

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"alfredoptarigan/resume-matcher/internal/models"
	"alfredoptarigan/resume-matcher/internal/repositories"
)

// Store backs the in-memory repositories. The zero value is not usable; call
// NewStore.
type Store struct {
	mu         sync.Mutex
	sessions   map[uuid.UUID]models.Session
	documents  []models.Document
	candidates []models.Candidate
}

func NewStore() *Store {
	return &Store{sessions: make(map[uuid.UUID]models.Session)}
}

func (s *Store) Sessions() repositories.SessionRepository { return &sessionRepo{s} }
func (s *Store) Documents() repositories.DocumentRepository { return &documentRepo{s} }
func (s *Store) Candidates() repositories.CandidateRepository { return &candidateRepo{s} }

// Session returns a copy of the stored session.
func (s *Store) Session(id uuid.UUID) (models.Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, ok := s.sessions[id]
	return session, ok
}

func notFound(id uuid.UUID) error {
	return fmt.Errorf("session %s: %w", id, repositories.ErrNotFound)
}

type sessionRepo struct{ s *Store }

func (r *sessionRepo) Create(session *models.Session) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if session.ID == uuid.Nil {
		session.ID = uuid.New()
	}
	if session.Status == "" {
		session.Status = models.StatusPending
	}
	if session.CreatedAt.IsZero() {
		session.CreatedAt = time.Now()
	}
	r.s.sessions[session.ID] = *session
	return nil
}

func (r *sessionRepo) FindByID(id uuid.UUID) (*models.Session, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	session, ok := r.s.sessions[id]
	if !ok {
		return nil, notFound(id)
	}
	return &session, nil
}

func (r *sessionRepo) modify(id uuid.UUID, fn func(*models.Session)) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	session, ok := r.s.sessions[id]
	if !ok {
		return notFound(id)
	}
	fn(&session)
	session.UpdatedAt = time.Now()
	r.s.sessions[id] = session
	return nil
}

func (r *sessionRepo) UpdateStatus(id uuid.UUID, status models.SessionStatus) error {
	return r.modify(id, func(s *models.Session) { s.Status = status })
}

func (r *sessionRepo) SetJobText(id uuid.UUID, jobText string) error {
	return r.modify(id, func(s *models.Session) { s.JobText = jobText })
}

func (r *sessionRepo) UpdateError(id uuid.UUID, errorMsg string) error {
	return r.modify(id, func(s *models.Session) {
		s.Status = models.StatusFailed
		s.ErrorMessage = &errorMsg
	})
}

func (r *sessionRepo) SaveResults(id uuid.UUID, profile models.JobProfile, results []models.CandidateResult) error {
	if err := r.modify(id, func(s *models.Session) {
		s.JobProfile = &profile
		s.Status = models.StatusCompleted
		s.ErrorMessage = nil
	}); err != nil {
		return err
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	kept := r.s.candidates[:0]
	for _, c := range r.s.candidates {
		if c.SessionID != id {
			kept = append(kept, c)
		}
	}
	r.s.candidates = kept
	for i, result := range results {
		r.s.candidates = append(r.s.candidates, models.Candidate{
			ID:              uuid.New(),
			SessionID:       id,
			Rank:            i + 1,
			CandidateResult: result,
			CreatedAt:       time.Now(),
		})
	}
	return nil
}

func (r *sessionRepo) FindPendingJobs(limit int) ([]models.Session, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var pending []models.Session
	for _, session := range r.s.sessions {
		if session.Status == models.StatusQueued {
			pending = append(pending, session)
		}
	}
	sort.Slice(pending, func(i, j int) bool {
		return pending[i].CreatedAt.Before(pending[j].CreatedAt)
	})
	if len(pending) > limit {
		pending = pending[:limit]
	}
	return pending, nil
}

func (r *sessionRepo) Delete(id uuid.UUID) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.sessions[id]; !ok {
		return notFound(id)
	}
	delete(r.s.sessions, id)

	docs := r.s.documents[:0]
	for _, d := range r.s.documents {
		if d.SessionID != id {
			docs = append(docs, d)
		}
	}
	r.s.documents = docs

	candidates := r.s.candidates[:0]
	for _, c := range r.s.candidates {
		if c.SessionID != id {
			candidates = append(candidates, c)
		}
	}
	r.s.candidates = candidates
	return nil
}

type documentRepo struct{ s *Store }

func (r *documentRepo) Create(document *models.Document) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if document.ID == uuid.Nil {
		document.ID = uuid.New()
	}
	r.s.documents = append(r.s.documents, *document)
	return nil
}

func (r *documentRepo) FindBySession(sessionID uuid.UUID) ([]models.Document, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var docs []models.Document
	for _, d := range r.s.documents {
		if d.SessionID == sessionID {
			docs = append(docs, d)
		}
	}
	sort.SliceStable(docs, func(i, j int) bool { return docs[i].Position < docs[j].Position })
	return docs, nil
}

func (r *documentRepo) CountBySession(sessionID uuid.UUID) (int64, error) {
	docs, err := r.FindBySession(sessionID)
	return int64(len(docs)), err
}

type candidateRepo struct{ s *Store }

func (r *candidateRepo) FindBySession(sessionID uuid.UUID) ([]models.Candidate, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var candidates []models.Candidate
	for _, c := range r.s.candidates {
		if c.SessionID == sessionID {
			candidates = append(candidates, c)
		}
	}
	sort.SliceStable(candidates, func(i, j int) bool { return candidates[i].Rank < candidates[j].Rank })
	return candidates, nil
}

func (r *candidateRepo) FindByRank(sessionID uuid.UUID, rank int) (*models.Candidate, error) {
	candidates, err := r.FindBySession(sessionID)
	if err != nil {
		return nil, err
	}
	for _, c := range candidates {
		if c.Rank == rank {
			return &c, nil
		}
	}
	return nil, fmt.Errorf("candidate %d in session %s: %w", rank, sessionID, repositories.ErrNotFound)
}
