package dto

import "github.com/google/uuid"

type StateDTO string

const (
	StateCreated    StateDTO = "CREATED"
	StateInProgress StateDTO = "IN_PROGRESS"
	StateDone       StateDTO = "DONE"
)

// TaskDTO - представление задачи на границе сервиса
type TaskDTO struct {
	ID      uuid.UUID `json:"id"`
	Title   string    `json:"title"`
	Content string    `json:"content"`
	State   StateDTO  `json:"state"`
}
