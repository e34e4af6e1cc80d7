package repo

import (
	"context"

	"github.com/google/uuid"

	"github.com/BuzzLyutic/task-service/internal/model"
	"github.com/BuzzLyutic/task-service/pkg/page"
)

// TaskRepository определяет интерфейс для работы с задачами.
// Реализации должны быть безопасны для конкурентного использования.
//
// FindByID и FindByTitle возвращают found=false, если задачи нет,
// а GetByID в этом случае возвращает ErrorNotFound.
type TaskRepository interface {
	Save(ctx context.Context, t model.Task) (model.Task, error)
	FindByID(ctx context.Context, id uuid.UUID) (model.Task, bool, error)
	FindByTitle(ctx context.Context, title string) (model.Task, bool, error)
	FindAll(ctx context.Context) ([]model.Task, error)
	FindPage(ctx context.Context, req page.Request) (page.Page[model.Task], error)
	GetByID(ctx context.Context, id uuid.UUID) (model.Task, error)
	DeleteByID(ctx context.Context, id uuid.UUID) error
}

// withDefaults заполняет id и состояние новой задачи
func withDefaults(t model.Task) model.Task {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	if t.State == "" {
		t.State = model.StateCreated
	}
	return t
}
