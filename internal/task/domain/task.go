package domain

import (
	"time"

	userdomain "github.com/AlibekovAA/task-manager/internal/user/domain"
)

type ID string

type Status string

const (
	StatusOpen       Status = "OPEN"
	StatusInProgress Status = "IN_PROGRESS"
	StatusDone       Status = "DONE"
)

func (s Status) Valid() bool {
	switch s {
	case StatusOpen, StatusInProgress, StatusDone:
		return true
	}
	return false
}

type Task struct {
	ID          ID
	Title       string
	Description string
	Status      Status
	UserID      userdomain.ID
	CreatedAt   time.Time
}

// Filter narrows a task listing. A nil Status and empty Search match everything.
type Filter struct {
	Status *Status
	Search string
}
