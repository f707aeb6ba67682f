package model

import "github.com/google/uuid"

type TaskStatus string

const (
	StatusOpen       TaskStatus = "OPEN"
	StatusInProgress TaskStatus = "IN_PROGRESS"
	StatusDone       TaskStatus = "DONE"
)

func (s TaskStatus) Valid() bool {
	switch s {
	case StatusOpen, StatusInProgress, StatusDone:
		return true
	}
	return false
}

type Task struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      TaskStatus `json:"status"`
	UserID      uuid.UUID  `json:"-"` // владелец не сериализуется
}

type TaskFilter struct {
	Status *TaskStatus `json:"status,omitempty"`
	Search *string     `json:"search,omitempty"`
}

type CreateTaskInput struct {
	Title       string `json:"title" validate:"required,notblank,safetext"`
	Description string `json:"description" validate:"required,notblank,safetext"`
}

type UpdateTaskStatusInput struct {
	Status TaskStatus `json:"status" validate:"required,oneof=OPEN IN_PROGRESS DONE"`
}
