package mapper

import (
	"errors"
	"fmt"

	"github.com/BuzzLyutic/task-service/internal/dto"
	"github.com/BuzzLyutic/task-service/internal/model"
)

var ErrInvalidArgument = errors.New("invalid argument")

// TaskMapper переводит задачу между DTO и сущностью. Состояния не хранит.
type TaskMapper struct{}

func NewTaskMapper() *TaskMapper {
	return &TaskMapper{}
}

// TaskFromDTO копирует поля как есть. Пустое состояние допустимо:
// его заполнит репозиторий при сохранении.
func (m *TaskMapper) TaskFromDTO(d *dto.TaskDTO) (model.Task, error) {
	if d == nil {
		return model.Task{}, fmt.Errorf("task dto is nil: %w", ErrInvalidArgument)
	}

	state := model.State(d.State)
	if state != "" && !state.Valid() {
		return model.Task{}, fmt.Errorf("unknown state %q: %w", d.State, ErrInvalidArgument)
	}

	return model.Task{
		ID:      d.ID,
		Title:   d.Title,
		Content: d.Content,
		State:   state,
	}, nil
}

func (m *TaskMapper) TaskToDTO(t *model.Task) (dto.TaskDTO, error) {
	if t == nil {
		return dto.TaskDTO{}, fmt.Errorf("task is nil: %w", ErrInvalidArgument)
	}

	return dto.TaskDTO{
		ID:      t.ID,
		Title:   t.Title,
		Content: t.Content,
		State:   dto.StateDTO(t.State),
	}, nil
}
