package model

import (
	"encoding/json"
	"errors"
	"time"
)

type Task struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	DueDate     *Date     `json:"dueDate"`
	IsCompleted bool      `json:"isCompleted"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	UserID      string    `json:"userId"`
}

type CreateTaskRequest struct {
	Title       string  `json:"title" binding:"required,min=1,max=200"`
	Description *string `json:"description" binding:"omitempty,max=1000"`
	DueDate     *Date   `json:"dueDate"`
	IsCompleted bool    `json:"isCompleted"`
}

// UpdateTaskRequest carries partial updates: only fields present in the
// request body are applied. An explicit null clears a nullable field,
// which is why decoding tracks presence instead of relying on nil
// pointers alone. The owner and the creation timestamp are not
// updatable.
type UpdateTaskRequest struct {
	Title       *string `json:"title" binding:"omitempty,min=1,max=200"`
	Description *string `json:"description" binding:"omitempty,max=1000"`
	DueDate     *Date   `json:"dueDate"`
	IsCompleted *bool   `json:"isCompleted"`

	clearDescription bool
	clearDueDate     bool
}

func (r *UpdateTaskRequest) UnmarshalJSON(data []byte) error {
	var raw struct {
		Title       json.RawMessage `json:"title"`
		Description json.RawMessage `json:"description"`
		DueDate     json.RawMessage `json:"dueDate"`
		IsCompleted json.RawMessage `json:"isCompleted"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if raw.Title != nil {
		if isJSONNull(raw.Title) {
			return errors.New("title cannot be null")
		}
		if err := json.Unmarshal(raw.Title, &r.Title); err != nil {
			return err
		}
	}
	if raw.Description != nil {
		if isJSONNull(raw.Description) {
			r.clearDescription = true
		} else if err := json.Unmarshal(raw.Description, &r.Description); err != nil {
			return err
		}
	}
	if raw.DueDate != nil {
		if isJSONNull(raw.DueDate) {
			r.clearDueDate = true
		} else if err := json.Unmarshal(raw.DueDate, &r.DueDate); err != nil {
			return err
		}
	}
	if raw.IsCompleted != nil {
		if isJSONNull(raw.IsCompleted) {
			return errors.New("isCompleted cannot be null")
		}
		if err := json.Unmarshal(raw.IsCompleted, &r.IsCompleted); err != nil {
			return err
		}
	}
	return nil
}

// ClearsDescription reports whether the request carried an explicit
// null for the description field.
func (r UpdateTaskRequest) ClearsDescription() bool { return r.clearDescription }

// ClearsDueDate reports whether the request carried an explicit null
// for the dueDate field.
func (r UpdateTaskRequest) ClearsDueDate() bool { return r.clearDueDate }

func (r UpdateTaskRequest) Empty() bool {
	return r.Title == nil && r.Description == nil && r.DueDate == nil && r.IsCompleted == nil &&
		!r.clearDescription && !r.clearDueDate
}

func isJSONNull(raw json.RawMessage) bool {
	return string(raw) == "null"
}
