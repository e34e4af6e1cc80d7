package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/BuzzLyutic/task-service/internal/dto"
	"github.com/BuzzLyutic/task-service/internal/model"
	"github.com/BuzzLyutic/task-service/internal/repo"
	"github.com/BuzzLyutic/task-service/pkg/page"
)

var (
	ErrNotFound = errors.New("task not found")
)

// Mapper переводит задачи между DTO и сущностью
type Mapper interface {
	TaskFromDTO(d *dto.TaskDTO) (model.Task, error)
	TaskToDTO(t *model.Task) (dto.TaskDTO, error)
}

type Option func(*TaskService)

// WithStrictUpdate запрещает Update создавать задачу с неизвестным id
func WithStrictUpdate() Option {
	return func(s *TaskService) {
		s.strictUpdate = true
	}
}

type TaskService struct {
	repo         repo.TaskRepository
	mapper       Mapper
	strictUpdate bool
}

func NewTaskService(repo repo.TaskRepository, mapper Mapper, opts ...Option) *TaskService {
	s := &TaskService{repo: repo, mapper: mapper}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *TaskService) Save(ctx context.Context, d *dto.TaskDTO) (dto.TaskDTO, error) {
	return s.persist(ctx, d)
}

func (s *TaskService) GetByID(ctx context.Context, id uuid.UUID) (dto.TaskDTO, error) {
	t, ok, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return dto.TaskDTO{}, err
	}
	if !ok {
		return dto.TaskDTO{}, fmt.Errorf("task %s: %w", id, ErrNotFound)
	}
	return s.mapper.TaskToDTO(&t)
}

// GetByTitle ищет по точному совпадению, с учётом регистра
func (s *TaskService) GetByTitle(ctx context.Context, title string) (dto.TaskDTO, error) {
	t, ok, err := s.repo.FindByTitle(ctx, title)
	if err != nil {
		return dto.TaskDTO{}, err
	}
	if !ok {
		return dto.TaskDTO{}, fmt.Errorf("task with title %q: %w", title, ErrNotFound)
	}
	return s.mapper.TaskToDTO(&t)
}

func (s *TaskService) FindAll(ctx context.Context) ([]dto.TaskDTO, error) {
	tasks, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]dto.TaskDTO, 0, len(tasks))
	for i := range tasks {
		d, err := s.mapper.TaskToDTO(&tasks[i])
		if err != nil {
			return nil, err
		}
		result = append(result, d)
	}
	return result, nil
}

func (s *TaskService) FindAllPaginated(ctx context.Context, req page.Request) (page.Page[dto.TaskDTO], error) {
	p, err := s.repo.FindPage(ctx, req)
	if err != nil {
		return page.Page[dto.TaskDTO]{}, err
	}
	return page.Map(p, func(t model.Task) (dto.TaskDTO, error) {
		return s.mapper.TaskToDTO(&t)
	})
}

// Update по умолчанию работает как upsert. В строгом режиме задача
// с таким id должна уже существовать.
func (s *TaskService) Update(ctx context.Context, d *dto.TaskDTO) (dto.TaskDTO, error) {
	if s.strictUpdate && d != nil {
		if _, err := s.repo.GetByID(ctx, d.ID); err != nil {
			if errors.Is(err, repo.ErrorNotFound) {
				return dto.TaskDTO{}, fmt.Errorf("task %s: %w", d.ID, ErrNotFound)
			}
			return dto.TaskDTO{}, err
		}
	}
	return s.persist(ctx, d)
}

// DeleteTask идемпотентен: удаление несуществующей задачи не ошибка
func (s *TaskService) DeleteTask(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteByID(ctx, id)
}

func (s *TaskService) persist(ctx context.Context, d *dto.TaskDTO) (dto.TaskDTO, error) {
	t, err := s.mapper.TaskFromDTO(d)
	if err != nil {
		return dto.TaskDTO{}, err
	}

	saved, err := s.repo.Save(ctx, t)
	if err != nil {
		return dto.TaskDTO{}, err
	}
	return s.mapper.TaskToDTO(&saved)
}
