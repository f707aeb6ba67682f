package handler

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/BuzzLyutic/task-management-api/internal/model"
	"github.com/BuzzLyutic/task-management-api/internal/repo"
)

// memStore - потокобезопасная реализация обоих репозиториев в памяти для тестов HTTP-слоя
type memStore struct {
	mu    sync.Mutex
	users map[string]model.User
	tasks []model.Task
	fail  error
	boom  string // непустой - List паникует
}

func newMemStore() *memStore {
	return &memStore{users: make(map[string]model.User)}
}

type memUsers struct{ *memStore }
type memTasks struct{ *memStore }

func (s memUsers) Create(_ context.Context, u model.User) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[u.Username]; ok {
		return model.User{}, repo.ErrorConflict
	}
	u.ID = uuid.New()
	s.users[u.Username] = u
	return u, nil
}

func (s memUsers) GetByUsername(_ context.Context, username string) (model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[username]
	if !ok {
		return model.User{}, repo.ErrorNotFound
	}
	return u, nil
}

func (s memTasks) Create(_ context.Context, t model.Task) (model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t.ID = uuid.New()
	s.tasks = append(s.tasks, t)
	return t, nil
}

func (s memTasks) Get(_ context.Context, id, userID uuid.UUID) (model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.tasks {
		if t.ID == id && t.UserID == userID {
			return t, nil
		}
	}
	return model.Task{}, repo.ErrorNotFound
}

func (s memTasks) List(_ context.Context, f model.TaskFilter, userID uuid.UUID) ([]model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.boom != "" {
		panic(s.boom)
	}
	if s.fail != nil {
		return nil, s.fail
	}
	out := make([]model.Task, 0)
	for _, t := range s.tasks {
		if t.UserID != userID {
			continue
		}
		if f.Status != nil && t.Status != *f.Status {
			continue
		}
		if f.Search != nil {
			q := strings.ToLower(*f.Search)
			if !strings.Contains(strings.ToLower(t.Title), q) && !strings.Contains(strings.ToLower(t.Description), q) {
				continue
			}
		}
		out = append(out, t)
	}
	return out, nil
}

func (s memTasks) UpdateStatus(_ context.Context, t model.Task) (model.Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.tasks {
		if s.tasks[i].ID == t.ID && s.tasks[i].UserID == t.UserID {
			s.tasks[i].Status = t.Status
			return s.tasks[i], nil
		}
	}
	return model.Task{}, repo.ErrorNotFound
}

func (s memTasks) Delete(_ context.Context, id, userID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, t := range s.tasks {
		if t.ID == id && t.UserID == userID {
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
			return nil
		}
	}
	return repo.ErrorNotFound
}
