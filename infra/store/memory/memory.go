// Package memory implements store.Store in process memory. Data is lost on
// restart; it backs tests and the "memory" store driver.
package memory

import (
	"context"
	"encoding/json"
	"sort"
	"sync"

	"github.com/kilianp07/studyplan/core/model"
	"github.com/kilianp07/studyplan/core/store"
)

// Store is a mutex guarded in-memory store. Values are copied on the way in
// and out so callers never share state with it.
type Store struct {
	mu       sync.RWMutex
	subjects map[string]map[string]model.Subject
	plans    map[string][]byte
	progress map[string]model.Progress
	tasks    map[string]map[string]model.Task
}

var _ store.Store = (*Store)(nil)

// New returns an empty Store.
func New() *Store {
	return &Store{
		subjects: make(map[string]map[string]model.Subject),
		plans:    make(map[string][]byte),
		progress: make(map[string]model.Progress),
		tasks:    make(map[string]map[string]model.Task),
	}
}

func (s *Store) ListSubjects(_ context.Context, userID string) ([]model.Subject, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Subject, 0, len(s.subjects[userID]))
	for _, v := range s.subjects[userID] {
		out = append(out, v.Clone())
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (s *Store) GetSubject(_ context.Context, userID, id string) (model.Subject, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.subjects[userID][id]
	if !ok {
		return model.Subject{}, store.ErrNotFound
	}
	return v.Clone(), nil
}

func (s *Store) SaveSubject(_ context.Context, userID string, subj model.Subject) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.subjects[userID]
	if !ok {
		m = make(map[string]model.Subject)
		s.subjects[userID] = m
	}
	m[subj.ID] = subj.Clone()
	return nil
}

func (s *Store) DeleteSubject(_ context.Context, userID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.subjects[userID][id]; !ok {
		return store.ErrNotFound
	}
	delete(s.subjects[userID], id)
	return nil
}

// LoadPlan decodes a fresh copy of the stored plan.
func (s *Store) LoadPlan(_ context.Context, userID string) (*model.Plan, error) {
	s.mu.RLock()
	b, ok := s.plans[userID]
	s.mu.RUnlock()
	if !ok {
		return nil, store.ErrNotFound
	}
	var p model.Plan
	if err := json.Unmarshal(b, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *Store) SavePlan(_ context.Context, userID string, p model.Plan) error {
	b, err := json.Marshal(p)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.plans[userID] = b
	s.mu.Unlock()
	return nil
}

func (s *Store) ListPlanUsers(context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	users := make([]string, 0, len(s.plans))
	for u := range s.plans {
		users = append(users, u)
	}
	sort.Strings(users)
	return users, nil
}

func (s *Store) LoadProgress(_ context.Context, userID string) (model.Progress, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(model.Progress, len(s.progress[userID]))
	for k, v := range s.progress[userID] {
		out[k] = v
	}
	return out, nil
}

func (s *Store) SetProgress(_ context.Context, userID, sessionID string, e model.ProgressEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.progress[userID]
	if !ok {
		p = make(model.Progress)
		s.progress[userID] = p
	}
	p[sessionID] = e
	return nil
}

func (s *Store) ListTasks(_ context.Context, userID string) ([]model.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Task, 0, len(s.tasks[userID]))
	for _, v := range s.tasks[userID] {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].DueDate.Equal(out[j].DueDate) {
			return out[i].DueDate.Before(out[j].DueDate)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (s *Store) GetTask(_ context.Context, userID, id string) (model.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.tasks[userID][id]
	if !ok {
		return model.Task{}, store.ErrNotFound
	}
	return v, nil
}

func (s *Store) SaveTask(_ context.Context, userID string, t model.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.tasks[userID]
	if !ok {
		m = make(map[string]model.Task)
		s.tasks[userID] = m
	}
	m[t.ID] = t
	return nil
}

func (s *Store) DeleteTask(_ context.Context, userID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tasks[userID][id]; !ok {
		return store.ErrNotFound
	}
	delete(s.tasks[userID], id)
	return nil
}

func (s *Store) Close() error { return nil }
