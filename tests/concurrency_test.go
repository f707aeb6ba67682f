package tests

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/BuzzLyutic/task-management-api/internal/model"
	"github.com/BuzzLyutic/task-management-api/internal/repo"
	"github.com/BuzzLyutic/task-management-api/internal/service"
)

func TestConcurrent_SignupSameUsername(t *testing.T) {
	pool, cleanup := SetupTestDB(t)
	defer cleanup()
	TruncateTables(t, pool)

	auth := service.NewAuthService(repo.NewUserRepo(pool), service.AuthConfig{
		Secret: []byte("s"), TokenTTL: time.Hour, BcryptCost: bcrypt.MinCost,
	}, zap.NewNop())

	const goroutines = 10
	var wg sync.WaitGroup
	errs := make([]error, goroutines)

	// Одинаковый username из нескольких горутин: уникальность держит БД
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			errs[idx] = auth.Signup(context.Background(), model.Credentials{Username: "racer1", Password: "hunter22"})
		}(i)
	}
	wg.Wait()

	success, conflict := 0, 0
	for i, err := range errs {
		switch {
		case err == nil:
			success++
		case errors.Is(err, service.ErrConflict):
			conflict++
		default:
			t.Errorf("unexpected error at %d: %v", i, err)
		}
	}
	assert.Equal(t, 1, success, "exactly one signup should succeed")
	assert.Equal(t, goroutines-1, conflict)
}

func TestConcurrent_DeleteOnce(t *testing.T) {
	pool, cleanup := SetupTestDB(t)
	defer cleanup()
	TruncateTables(t, pool)

	ctx := context.Background()
	owner, err := repo.NewUserRepo(pool).Create(ctx, model.User{Username: "owner1", PasswordHash: "x"})
	require.NoError(t, err)
	tasks := service.NewTaskService(repo.NewTaskRepo(pool), zap.NewNop())

	task, err := tasks.Create(ctx, model.CreateTaskInput{Title: "once", Description: "only"}, owner)
	require.NoError(t, err)

	const goroutines = 10
	var wg sync.WaitGroup
	errs := make([]error, goroutines)
	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			errs[idx] = tasks.Delete(ctx, task.ID, owner)
		}(i)
	}
	wg.Wait()

	deleted := 0
	for _, err := range errs {
		if err == nil {
			deleted++
		} else {
			assert.ErrorIs(t, err, service.ErrNotFound)
		}
	}
	assert.Equal(t, 1, deleted, "exactly one delete should report success")
}

func TestConcurrent_CreateAndList(t *testing.T) {
	pool, cleanup := SetupTestDB(t)
	defer cleanup()
	TruncateTables(t, pool)

	ctx := context.Background()
	owner, err := repo.NewUserRepo(pool).Create(ctx, model.User{Username: "owner1", PasswordHash: "x"})
	require.NoError(t, err)
	tasks := service.NewTaskService(repo.NewTaskRepo(pool), zap.NewNop())

	var wg sync.WaitGroup
	const creators = 5

	for i := 0; i < creators; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			for j := 0; j < 5; j++ {
				_, err := tasks.Create(ctx, model.CreateTaskInput{
					Title:       fmt.Sprintf("Task %d-%d", idx, j),
					Description: "concurrent",
				}, owner)
				assert.NoError(t, err)
			}
		}(i)
	}

	for i := 0; i < creators; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 10; j++ {
				_, err := tasks.List(ctx, model.TaskFilter{}, owner)
				assert.NoError(t, err)
			}
		}()
	}
	wg.Wait()

	all, err := tasks.List(ctx, model.TaskFilter{}, owner)
	require.NoError(t, err)
	assert.Len(t, all, creators*5)
}
