package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/taskhub/backend/internal/db"
	"github.com/taskhub/backend/internal/model"
)

type TaskStore interface {
	ListTasks(ctx context.Context, userID string) ([]model.Task, error)
	GetTask(ctx context.Context, userID, taskID string) (*model.Task, error)
	CreateTask(ctx context.Context, task model.Task) (*model.Task, error)
	UpdateTask(ctx context.Context, task model.Task) (*model.Task, error)
	DeleteTask(ctx context.Context, userID, taskID string) error
}

// TaskService scopes every operation to the owner passed in as userID.
// That value always comes from a verified token subject; the service
// never reads an owner out of request data.
type TaskService struct {
	store TaskStore
}

func NewTaskService(store TaskStore) *TaskService {
	return &TaskService{store: store}
}

func (s *TaskService) List(ctx context.Context, userID string) ([]model.Task, error) {
	return s.store.ListTasks(ctx, userID)
}

func (s *TaskService) Get(ctx context.Context, userID, taskID string) (*model.Task, error) {
	task, err := s.store.GetTask(ctx, userID, taskID)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return task, nil
}

func (s *TaskService) Create(ctx context.Context, userID string, req model.CreateTaskRequest) (*model.Task, error) {
	task := model.Task{
		ID:          uuid.NewString(),
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		DueDate:     req.DueDate,
		IsCompleted: req.IsCompleted,
	}
	return s.store.CreateTask(ctx, task)
}

// Update applies a partial update: only the fields present in req are
// changed, and an explicit null clears a nullable field. An update
// carrying no fields is a client error, not a no-op.
func (s *TaskService) Update(ctx context.Context, userID, taskID string, req model.UpdateTaskRequest) (*model.Task, error) {
	if req.Empty() {
		return nil, ErrInvalidInput
	}

	task, err := s.Get(ctx, userID, taskID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		task.Title = *req.Title
	}
	if req.Description != nil {
		task.Description = req.Description
	} else if req.ClearsDescription() {
		task.Description = nil
	}
	if req.DueDate != nil {
		task.DueDate = req.DueDate
	} else if req.ClearsDueDate() {
		task.DueDate = nil
	}
	if req.IsCompleted != nil {
		task.IsCompleted = *req.IsCompleted
	}

	updated, err := s.store.UpdateTask(ctx, *task)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return updated, nil
}

func (s *TaskService) Delete(ctx context.Context, userID, taskID string) error {
	if err := s.store.DeleteTask(ctx, userID, taskID); err != nil {
		if db.IsNoRows(err) {
			return ErrNotFound
		}
		return err
	}
	return nil
}
