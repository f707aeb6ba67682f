package repo

import (
	"context"

	"github.com/google/uuid"

	"github.com/BuzzLyutic/task-management-api/internal/model"
)

// UserRepository определяет интерфейс хранилища учетных данных
type UserRepository interface {
	Create(ctx context.Context, u model.User) (model.User, error)
	GetByUsername(ctx context.Context, username string) (model.User, error)
}

// TaskRepository определяет интерфейс для работы с задачами.
// Все операции ограничены владельцем userID.
type TaskRepository interface {
	Create(ctx context.Context, t model.Task) (model.Task, error)
	Get(ctx context.Context, id, userID uuid.UUID) (model.Task, error)
	List(ctx context.Context, filter model.TaskFilter, userID uuid.UUID) ([]model.Task, error)
	UpdateStatus(ctx context.Context, t model.Task) (model.Task, error)
	Delete(ctx context.Context, id, userID uuid.UUID) error
}
