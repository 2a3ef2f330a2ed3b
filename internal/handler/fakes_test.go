package handler

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/taskhub/backend/internal/auth"
	"github.com/taskhub/backend/internal/model"
	"github.com/taskhub/backend/internal/service"
)

var testSecret = []byte("0123456789abcdef0123456789abcdef")

type fakeUserStore struct {
	mu      sync.Mutex
	byEmail map[string]*model.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{byEmail: map[string]*model.User{}}
}

func (f *fakeUserStore) CreateUser(_ context.Context, id, email, passwordHash string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byEmail[email]; ok {
		return nil, &pgconn.PgError{Code: "23505"}
	}
	user := &model.User{ID: id, Email: email, PasswordHash: passwordHash, CreatedAt: time.Now()}
	f.byEmail[email] = user
	return user, nil
}

func (f *fakeUserStore) GetUserByEmail(_ context.Context, email string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.byEmail[email]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return user, nil
}

type fakeTaskStore struct {
	mu    sync.Mutex
	tasks map[string]model.Task
}

func newFakeTaskStore() *fakeTaskStore {
	return &fakeTaskStore{tasks: map[string]model.Task{}}
}

func (f *fakeTaskStore) ListTasks(_ context.Context, userID string) ([]model.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	list := []model.Task{}
	for _, task := range f.tasks {
		if task.UserID == userID {
			list = append(list, task)
		}
	}
	return list, nil
}

func (f *fakeTaskStore) GetTask(_ context.Context, userID, taskID string) (*model.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	task, ok := f.tasks[taskID]
	if !ok || task.UserID != userID {
		return nil, pgx.ErrNoRows
	}
	return &task, nil
}

func (f *fakeTaskStore) CreateTask(_ context.Context, task model.Task) (*model.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	now := time.Now()
	task.CreatedAt = now
	task.UpdatedAt = now
	f.tasks[task.ID] = task
	return &task, nil
}

func (f *fakeTaskStore) UpdateTask(_ context.Context, task model.Task) (*model.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	existing, ok := f.tasks[task.ID]
	if !ok || existing.UserID != task.UserID {
		return nil, pgx.ErrNoRows
	}
	task.CreatedAt = existing.CreatedAt
	task.UpdatedAt = time.Now()
	f.tasks[task.ID] = task
	return &task, nil
}

func (f *fakeTaskStore) DeleteTask(_ context.Context, userID, taskID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	task, ok := f.tasks[taskID]
	if !ok || task.UserID != userID {
		return pgx.ErrNoRows
	}
	delete(f.tasks, taskID)
	return nil
}

// newTestRouter wires the real middleware, handlers and services over
// fake stores, mirroring the production route table.
func newTestRouter(t *testing.T) (*gin.Engine, *auth.TokenService) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	tokens, err := auth.NewTokenService(testSecret, "HS256", time.Hour)
	if err != nil {
		t.Fatalf("NewTokenService error: %v", err)
	}

	authSvc := service.NewAuthService(newFakeUserStore(), auth.NewPasswordHasher(4), tokens)
	taskSvc := service.NewTaskService(newFakeTaskStore())
	authHandler := NewAuthHandler(authSvc)
	taskHandler := NewTaskHandler(taskSvc)

	router := gin.New()
	router.Use(RecoveryMiddleware())
	router.GET("/", OptionalAuthMiddleware(tokens), Root)
	router.POST("/api/auth/register", authHandler.Register)
	router.POST("/api/auth/login", authHandler.Login)
	router.POST("/api/auth/logout", AuthMiddleware(tokens), authHandler.Logout)

	tasks := router.Group("/api/tasks")
	tasks.Use(AuthMiddleware(tokens))
	tasks.GET("", taskHandler.List)
	tasks.POST("", taskHandler.Create)
	tasks.GET("/:id", taskHandler.Get)
	tasks.PUT("/:id", taskHandler.Update)
	tasks.DELETE("/:id", taskHandler.Delete)

	return router, tokens
}
