package services

import (
	"context"
	"time"

	model "task-tracker.com/task-tracker/internal/models"
)

// TaskStore is the persistence the service consumes. Lookups, updates and
// deletes on an absent id return errors.ErrTaskNotFound.
type TaskStore interface {
	Create(ctx context.Context, task *model.Task) error
	FindByID(ctx context.Context, id uint) (*model.Task, error)
	List(ctx context.Context) ([]model.Task, error)
	Update(ctx context.Context, task *model.Task) error
	Delete(ctx context.Context, id uint) error
	Count(ctx context.Context) (int64, error)
}

type TaskService struct {
	repo TaskStore
}

func NewTaskService(repo TaskStore) *TaskService {
	return &TaskService{repo: repo}
}

func (s *TaskService) CreateTask(ctx context.Context, name, description string, completedAt *time.Time) (*model.Task, error) {
	task := &model.Task{
		Name:        name,
		Description: description,
		CompletedAt: completedAt,
	}

	if err := s.repo.Create(ctx, task); err != nil {
		return nil, err
	}

	return task, nil
}

func (s *TaskService) GetTask(ctx context.Context, id uint) (*model.Task, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *TaskService) ListTasks(ctx context.Context) ([]model.Task, error) {
	return s.repo.List(ctx)
}

func (s *TaskService) CountTasks(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}

// UpdateTask replaces all editable fields of a task the caller already
// loaded. Completing a task is an update with a non-nil completedAt; passing
// nil marks it incomplete again. A task deleted in the meantime yields
// errors.ErrTaskNotFound.
func (s *TaskService) UpdateTask(
	ctx context.Context,
	task *model.Task,
	name,
	description string,
	completedAt *time.Time,
) (*model.Task, error) {
	task.Name = name
	task.Description = description
	task.CompletedAt = completedAt

	if err := s.repo.Update(ctx, task); err != nil {
		return nil, err
	}

	return task, nil
}

func (s *TaskService) DeleteTask(ctx context.Context, id uint) error {
	return s.repo.Delete(ctx, id)
}
