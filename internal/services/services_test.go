package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"pgregory.net/rapid"

	apperrors "task-tracker.com/task-tracker/internal/errors"
	model "task-tracker.com/task-tracker/internal/models"
	repository "task-tracker.com/task-tracker/internal/repositories"
)

func setupTestDB(t *testing.T) *gorm.DB {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}

	err = db.AutoMigrate(&model.Task{})
	if err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}

	sqlDB, _ := db.DB()
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	return db
}

func newTestService(t *testing.T) *TaskService {
	return NewTaskService(repository.NewTaskRepository(setupTestDB(t)))
}

type fataler interface {
	Helper()
	Fatalf(format string, args ...any)
}

func mustCount(t fataler, s *TaskService) int64 {
	t.Helper()
	n, err := s.CountTasks(context.Background())
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	return n
}

func TestTaskService_CreateAndGet(t *testing.T) {
	service := newTestService(t)
	ctx := context.Background()

	task, err := service.CreateTask(ctx, "new task", "new task description", nil)
	if err != nil {
		t.Fatalf("failed to create task: %v", err)
	}

	if task.ID == 0 {
		t.Error("expected task ID to be set")
	}

	fetchedTask, err := service.GetTask(ctx, task.ID)
	if err != nil {
		t.Fatalf("failed to get task: %v", err)
	}

	if fetchedTask.Name != "new task" || fetchedTask.Description != "new task description" {
		t.Errorf("unexpected task fields: %+v", fetchedTask)
	}
	if fetchedTask.IsCompleted() {
		t.Error("expected task to be incomplete")
	}
}

func TestTaskService_MarkCompleteAndReopen(t *testing.T) {
	service := newTestService(t)
	ctx := context.Background()

	task, _ := service.CreateTask(ctx, "sample task", "example", nil)

	now := time.Now().UTC().Truncate(time.Second)
	if _, err := service.UpdateTask(ctx, task, task.Name, task.Description, &now); err != nil {
		t.Fatalf("failed to complete task: %v", err)
	}

	completed, _ := service.GetTask(ctx, task.ID)
	if !completed.IsCompleted() {
		t.Fatal("expected task to be completed")
	}
	if !completed.CompletedAt.Equal(now) {
		t.Errorf("completed_at = %v, want %v", completed.CompletedAt, now)
	}

	if _, err := service.UpdateTask(ctx, task, task.Name, task.Description, nil); err != nil {
		t.Fatalf("failed to reopen task: %v", err)
	}

	reopened, _ := service.GetTask(ctx, task.ID)
	if reopened.IsCompleted() {
		t.Error("expected completed_at to be cleared")
	}
}

func TestTaskService_MissingTask(t *testing.T) {
	service := newTestService(t)
	ctx := context.Background()

	if _, err := service.GetTask(ctx, 1); !errors.Is(err, apperrors.ErrTaskNotFound) {
		t.Errorf("get: expected ErrTaskNotFound, got %v", err)
	}
	if _, err := service.UpdateTask(ctx, &model.Task{ID: 1}, "x", "y", nil); !errors.Is(err, apperrors.ErrTaskNotFound) {
		t.Errorf("update: expected ErrTaskNotFound, got %v", err)
	}
	if err := service.DeleteTask(ctx, 1); !errors.Is(err, apperrors.ErrTaskNotFound) {
		t.Errorf("delete: expected ErrTaskNotFound, got %v", err)
	}
	if n := mustCount(t, service); n != 0 {
		t.Errorf("expected empty store, got %d tasks", n)
	}
}

func TestTaskService_ConcurrentSubmissions(t *testing.T) {
	service := newTestService(t)

	const concurrentCount = 50
	var wg sync.WaitGroup
	wg.Add(concurrentCount)

	errs := make(chan error, concurrentCount)

	for i := 0; i < concurrentCount; i++ {
		go func(idx int) {
			defer wg.Done()
			_, err := service.CreateTask(context.Background(), fmt.Sprintf("task %d", idx), "Desc", nil)
			if err != nil {
				errs <- err
			}
		}(i)
	}

	wg.Wait()
	close(errs)

	for err := range errs {
		t.Errorf("concurrent creation failed: %v", err)
	}

	tasks, _ := service.ListTasks(context.Background())
	if len(tasks) != concurrentCount {
		t.Errorf("expected %d tasks, got %d", concurrentCount, len(tasks))
	}
}

var textGen = rapid.StringMatching(`[A-Za-z0-9 .,'!?-]{0,40}`)

func drawCompletedAt(rt *rapid.T, label string) *time.Time {
	if !rapid.Bool().Draw(rt, label+"_set") {
		return nil
	}
	sec := rapid.Int64Range(0, 4102444800).Draw(rt, label+"_unix")
	ts := time.Unix(sec, 0).UTC()
	return &ts
}

func sameCompletion(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(*b)
}

func TestProperty_CreateStoresSubmittedFields(t *testing.T) {
	service := newTestService(t)
	ctx := context.Background()

	rapid.Check(t, func(rt *rapid.T) {
		name := textGen.Draw(rt, "name")
		description := textGen.Draw(rt, "description")
		completedAt := drawCompletedAt(rt, "completed_at")

		before := mustCount(rt, service)

		task, err := service.CreateTask(ctx, name, description, completedAt)
		if err != nil {
			rt.Fatalf("create failed: %v", err)
		}

		if after := mustCount(rt, service); after != before+1 {
			rt.Fatalf("count = %d, want %d", after, before+1)
		}

		stored, err := service.GetTask(ctx, task.ID)
		if err != nil {
			rt.Fatalf("get failed: %v", err)
		}
		if stored.Name != name || stored.Description != description {
			rt.Fatalf("stored (%q, %q), want (%q, %q)", stored.Name, stored.Description, name, description)
		}
		if !sameCompletion(stored.CompletedAt, completedAt) {
			rt.Fatalf("completed_at = %v, want %v", stored.CompletedAt, completedAt)
		}
	})
}

func TestProperty_UpdateReplacesFieldsWithoutChangingCount(t *testing.T) {
	service := newTestService(t)
	ctx := context.Background()

	rapid.Check(t, func(rt *rapid.T) {
		task, err := service.CreateTask(ctx, "sample task", "example", drawCompletedAt(rt, "initial"))
		if err != nil {
			rt.Fatalf("create failed: %v", err)
		}

		name := textGen.Draw(rt, "name")
		description := textGen.Draw(rt, "description")
		completedAt := drawCompletedAt(rt, "completed_at")

		before := mustCount(rt, service)

		if _, err := service.UpdateTask(ctx, task, name, description, completedAt); err != nil {
			rt.Fatalf("update failed: %v", err)
		}

		if after := mustCount(rt, service); after != before {
			rt.Fatalf("count changed from %d to %d", before, after)
		}

		stored, _ := service.GetTask(ctx, task.ID)
		if stored.Name != name || stored.Description != description {
			rt.Fatalf("stored (%q, %q), want (%q, %q)", stored.Name, stored.Description, name, description)
		}
		if !sameCompletion(stored.CompletedAt, completedAt) {
			rt.Fatalf("completed_at = %v, want %v", stored.CompletedAt, completedAt)
		}
	})
}

func TestProperty_DeleteRemovesExactlyOne(t *testing.T) {
	service := newTestService(t)
	ctx := context.Background()

	rapid.Check(t, func(rt *rapid.T) {
		n := rapid.IntRange(1, 5).Draw(rt, "tasks")
		ids := make([]uint, 0, n)
		for i := 0; i < n; i++ {
			task, err := service.CreateTask(ctx, "t", "d", nil)
			if err != nil {
				rt.Fatalf("create failed: %v", err)
			}
			ids = append(ids, task.ID)
		}

		victim := rapid.SampledFrom(ids).Draw(rt, "victim")
		before := mustCount(rt, service)

		if err := service.DeleteTask(ctx, victim); err != nil {
			rt.Fatalf("delete failed: %v", err)
		}
		if after := mustCount(rt, service); after != before-1 {
			rt.Fatalf("count = %d, want %d", after, before-1)
		}
		if _, err := service.GetTask(ctx, victim); !errors.Is(err, apperrors.ErrTaskNotFound) {
			rt.Fatalf("deleted task %d still resolves: %v", victim, err)
		}
		if err := service.DeleteTask(ctx, victim); !errors.Is(err, apperrors.ErrTaskNotFound) {
			rt.Fatalf("second delete of %d: %v", victim, err)
		}
	})
}
