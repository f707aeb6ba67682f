package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/BuzzLyutic/task-management-api/internal/model"
	"github.com/BuzzLyutic/task-management-api/internal/repo"
)

type TaskService struct {
	repo   repo.TaskRepository
	logger *zap.Logger
}

func NewTaskService(repo repo.TaskRepository, logger *zap.Logger) *TaskService {
	return &TaskService{repo: repo, logger: logger}
}

func (s *TaskService) List(ctx context.Context, filter model.TaskFilter, user model.User) ([]model.Task, error) {
	if filter.Status != nil && !filter.Status.Valid() {
		return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, *filter.Status)
	}

	tasks, err := s.repo.List(ctx, filter, user.ID)
	if err != nil {
		// Детали уходят только в лог, клиенту - ErrInternal
		s.logger.Error("failed to get tasks",
			zap.String("username", user.Username),
			zap.Any("filter", filter),
			zap.Error(err),
		)
		return nil, ErrInternal
	}
	return tasks, nil
}

// Get возвращает ErrNotFound и для чужой задачи, чтобы не раскрывать ее существование.
func (s *TaskService) Get(ctx context.Context, id uuid.UUID, user model.User) (model.Task, error) {
	task, err := s.repo.Get(ctx, id, user.ID)
	if err != nil {
		return task, s.mapError(err, "get task", id, user)
	}
	return task, nil
}

func (s *TaskService) Create(ctx context.Context, in model.CreateTaskInput, user model.User) (model.Task, error) {
	task, err := s.repo.Create(ctx, model.Task{
		Title:       in.Title,
		Description: in.Description,
		Status:      model.StatusOpen,
		UserID:      user.ID,
	})
	if err != nil {
		s.logger.Error("failed to create task", zap.String("username", user.Username), zap.Error(err))
		return task, ErrInternal
	}
	return task, nil
}

func (s *TaskService) UpdateStatus(ctx context.Context, id uuid.UUID, status model.TaskStatus, user model.User) (model.Task, error) {
	if !status.Valid() {
		return model.Task{}, fmt.Errorf("%w: unknown status %q", ErrValidation, status)
	}

	task, err := s.Get(ctx, id, user)
	if err != nil {
		return task, err
	}

	task.Status = status
	updated, err := s.repo.UpdateStatus(ctx, task)
	if err != nil {
		return task, s.mapError(err, "update task status", id, user)
	}
	return updated, nil
}

func (s *TaskService) Delete(ctx context.Context, id uuid.UUID, user model.User) error {
	if err := s.repo.Delete(ctx, id, user.ID); err != nil {
		return s.mapError(err, "delete task", id, user)
	}
	return nil
}

func (s *TaskService) mapError(err error, op string, id uuid.UUID, user model.User) error {
	if errors.Is(err, repo.ErrorNotFound) {
		return fmt.Errorf("%w: task with ID %q not found", ErrNotFound, id)
	}
	s.logger.Error("failed to "+op,
		zap.String("task_id", id.String()),
		zap.String("username", user.Username),
		zap.Error(err),
	)
	return ErrInternal
}
