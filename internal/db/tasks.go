package db

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/taskhub/backend/internal/model"
)

// Every per-task statement below conjoins id AND user_id in its WHERE
// clause. A row owned by someone else is indistinguishable from a row
// that does not exist: both come back as pgx.ErrNoRows.

func (db *Postgres) ListTasks(ctx context.Context, userID string) ([]model.Task, error) {
	query := `
		SELECT id, title, description, due_date, is_completed, created_at, updated_at, user_id
		FROM tasks
		WHERE user_id = $1
		ORDER BY created_at DESC
	`
	rows, err := db.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []model.Task
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, *task)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if list == nil {
		list = []model.Task{}
	}
	return list, nil
}

func (db *Postgres) GetTask(ctx context.Context, userID, taskID string) (*model.Task, error) {
	query := `
		SELECT id, title, description, due_date, is_completed, created_at, updated_at, user_id
		FROM tasks
		WHERE id = $1 AND user_id = $2
	`
	return scanTask(db.Pool.QueryRow(ctx, query, taskID, userID))
}

func (db *Postgres) CreateTask(ctx context.Context, task model.Task) (*model.Task, error) {
	query := `
		INSERT INTO tasks (id, user_id, title, description, due_date, is_completed, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING id, title, description, due_date, is_completed, created_at, updated_at, user_id
	`
	return scanTask(db.Pool.QueryRow(ctx, query,
		task.ID,
		task.UserID,
		task.Title,
		task.Description,
		task.DueDate.TimePtr(),
		task.IsCompleted,
	))
}

// UpdateTask writes the full column set of an already-merged task.
// created_at is deliberately absent from the SET list.
func (db *Postgres) UpdateTask(ctx context.Context, task model.Task) (*model.Task, error) {
	query := `
		UPDATE tasks
		SET title = $3, description = $4, due_date = $5, is_completed = $6, updated_at = NOW()
		WHERE id = $1 AND user_id = $2
		RETURNING id, title, description, due_date, is_completed, created_at, updated_at, user_id
	`
	return scanTask(db.Pool.QueryRow(ctx, query,
		task.ID,
		task.UserID,
		task.Title,
		task.Description,
		task.DueDate.TimePtr(),
		task.IsCompleted,
	))
}

func (db *Postgres) DeleteTask(ctx context.Context, userID, taskID string) error {
	query := `DELETE FROM tasks WHERE id = $1 AND user_id = $2`
	tag, err := db.Pool.Exec(ctx, query, taskID, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func scanTask(row pgx.Row) (*model.Task, error) {
	var task model.Task
	var dueDate *time.Time
	err := row.Scan(
		&task.ID,
		&task.Title,
		&task.Description,
		&dueDate,
		&task.IsCompleted,
		&task.CreatedAt,
		&task.UpdatedAt,
		&task.UserID,
	)
	if err != nil {
		return nil, err
	}
	task.DueDate = model.DateFromTimePtr(dueDate)
	return &task, nil
}
