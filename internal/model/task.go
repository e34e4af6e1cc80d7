package model

import "github.com/google/uuid"

type State string

const (
	StateCreated    State = "CREATED"
	StateInProgress State = "IN_PROGRESS"
	StateDone       State = "DONE"
)

func (s State) Valid() bool {
	switch s {
	case StateCreated, StateInProgress, StateDone:
		return true
	}
	return false
}

// Task - сущность задачи в хранилище
type Task struct {
	ID      uuid.UUID
	Title   string
	Content string
	State   State
}
