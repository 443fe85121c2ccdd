// Package memory provides in-memory implementations of the repository
// interfaces. They keep the same semantics as the Mongo-backed ones
// (blind increments, not-found sentinels, newest-first listing) and are
// used by unit tests in place of a live database.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"joelearn/media-api/internal/domain"
	"joelearn/media-api/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// VideoRepo is an in-memory repository.VideoRepository.
type VideoRepo struct {
	mu    sync.RWMutex
	store map[primitive.ObjectID]*domain.Video
	seq   map[primitive.ObjectID]int64
	next  int64
}

func NewVideoRepo() *VideoRepo {
	return &VideoRepo{
		store: make(map[primitive.ObjectID]*domain.Video),
		seq:   make(map[primitive.ObjectID]int64),
	}
}

func (m *VideoRepo) Create(_ context.Context, video *domain.Video) (primitive.ObjectID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	video.ID = primitive.NewObjectID()
	video.Views = 0
	video.Completions = 0
	video.CreatedAt = time.Now().UTC()

	cp := *video
	m.store[video.ID] = &cp
	m.next++
	m.seq[video.ID] = m.next
	return video.ID, nil
}

func (m *VideoRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Video, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if v, ok := m.store[id]; ok {
		cp := *v
		return &cp, nil
	}
	return nil, repository.ErrNotFound
}

func (m *VideoRepo) List(_ context.Context) ([]domain.Video, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]domain.Video, 0, len(m.store))
	for _, v := range m.store {
		out = append(out, *v)
	}
	// Newest first; the insertion sequence breaks ties between records
	// created within the same clock tick.
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return m.seq[out[i].ID] > m.seq[out[j].ID]
	})
	return out, nil
}

func (m *VideoRepo) IncrementField(_ context.Context, id primitive.ObjectID, field string, delta int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.store[id]
	if !ok {
		return repository.ErrNotFound
	}
	switch field {
	case repository.VideoFieldViews:
		v.Views += delta
	case repository.VideoFieldCompletions:
		v.Completions += delta
	default:
		return repository.ErrUpdateFailed
	}
	return nil
}

func (m *VideoRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.store[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.store, id)
	delete(m.seq, id)
	return nil
}

// AssessmentRepo is an in-memory repository.AssessmentRepository.
type AssessmentRepo struct {
	mu    sync.RWMutex
	store map[primitive.ObjectID]*domain.Assessment
	seq   map[primitive.ObjectID]int64
	next  int64
}

func NewAssessmentRepo() *AssessmentRepo {
	return &AssessmentRepo{
		store: make(map[primitive.ObjectID]*domain.Assessment),
		seq:   make(map[primitive.ObjectID]int64),
	}
}

func (m *AssessmentRepo) Create(_ context.Context, assessment *domain.Assessment) (primitive.ObjectID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	assessment.ID = primitive.NewObjectID()
	assessment.CreatedAt = time.Now().UTC()

	cp := *assessment
	m.store[assessment.ID] = &cp
	m.next++
	m.seq[assessment.ID] = m.next
	return assessment.ID, nil
}

func (m *AssessmentRepo) GetByID(_ context.Context, id primitive.ObjectID) (*domain.Assessment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if a, ok := m.store[id]; ok {
		cp := *a
		return &cp, nil
	}
	return nil, repository.ErrNotFound
}

func (m *AssessmentRepo) List(_ context.Context) ([]domain.Assessment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]domain.Assessment, 0, len(m.store))
	for _, a := range m.store {
		out = append(out, *a)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return m.seq[out[i].ID] > m.seq[out[j].ID]
	})
	return out, nil
}

func (m *AssessmentRepo) UpdateTitle(_ context.Context, id primitive.ObjectID, title string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.store[id]
	if !ok {
		return repository.ErrNotFound
	}
	a.Title = title
	return nil
}

func (m *AssessmentRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.store[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.store, id)
	delete(m.seq, id)
	return nil
}
