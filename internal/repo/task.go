package repo

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/BuzzLyutic/task-management-api/internal/model"
)

type TaskRepo struct { // Репозиторий для работы непосредственно с БД
	pool *pgxpool.Pool
}

func NewTaskRepo(pool *pgxpool.Pool) *TaskRepo {
	return &TaskRepo{
		pool: pool,
	}
}

func (r *TaskRepo) Create(ctx context.Context, t model.Task) (model.Task, error) {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO tasks (title, description, status, user_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, title, description, status, user_id
	`, t.Title, t.Description, t.Status, t.UserID).Scan(
		&t.ID, &t.Title, &t.Description, &t.Status, &t.UserID,
	)
	return t, mapError(err)
}

func (r *TaskRepo) Get(ctx context.Context, id, userID uuid.UUID) (model.Task, error) {
	var t model.Task
	err := r.pool.QueryRow(ctx, `
		SELECT id, title, description, status, user_id
		FROM tasks
		WHERE id = $1 AND user_id = $2
	`, id, userID).Scan(
		&t.ID, &t.Title, &t.Description, &t.Status, &t.UserID,
	)
	return t, mapError(err)
}

func (r *TaskRepo) List(ctx context.Context, filter model.TaskFilter, userID uuid.UUID) ([]model.Task, error) {
	var status, search *string
	if filter.Status != nil {
		s := string(*filter.Status)
		status = &s
	}
	if filter.Search != nil && *filter.Search != "" {
		s := "%" + escapeLike(*filter.Search) + "%"
		search = &s
	}

	rows, err := r.pool.Query(ctx, `
		SELECT id, title, description, status, user_id
		FROM tasks
		WHERE user_id = $1
		  AND ($2::text IS NULL OR status = $2)
		  AND ($3::text IS NULL OR title ILIKE $3 OR description ILIKE $3)
		ORDER BY created_at, id
	`, userID, status, search)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := make([]model.Task, 0)
	for rows.Next() {
		var t model.Task
		if err := rows.Scan(&t.ID, &t.Title, &t.Description, &t.Status, &t.UserID); err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (r *TaskRepo) UpdateStatus(ctx context.Context, t model.Task) (model.Task, error) {
	err := r.pool.QueryRow(ctx, `
		UPDATE tasks
		SET status = $3
		WHERE id = $1 AND user_id = $2
		RETURNING id, title, description, status, user_id
	`, t.ID, t.UserID, t.Status).Scan(
		&t.ID, &t.Title, &t.Description, &t.Status, &t.UserID,
	)
	return t, mapError(err)
}

// Delete удаляет задачу одним запросом по id и владельцу
func (r *TaskRepo) Delete(ctx context.Context, id, userID uuid.UUID) error {
	cmd, err := r.pool.Exec(ctx, "DELETE FROM tasks WHERE id = $1 AND user_id = $2", id, userID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrorNotFound
	}
	return nil
}

// escapeLike экранирует спецсимволы LIKE, чтобы поиск был буквальной подстрокой
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
