package repo

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/BuzzLyutic/task-service/internal/model"
	"github.com/BuzzLyutic/task-service/pkg/page"
)

// MemoryRepo хранит задачи в памяти процесса. Используется, когда БД не настроена.
type MemoryRepo struct {
	mu      sync.RWMutex
	byID    map[uuid.UUID]model.Task
	byTitle map[string]uuid.UUID
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		byID:    make(map[uuid.UUID]model.Task),
		byTitle: make(map[string]uuid.UUID),
	}
}

func (r *MemoryRepo) Save(ctx context.Context, t model.Task) (model.Task, error) {
	if err := ctx.Err(); err != nil {
		return t, err
	}
	t = withDefaults(t)

	r.mu.Lock()
	defer r.mu.Unlock()

	if owner, ok := r.byTitle[t.Title]; ok && owner != t.ID {
		return t, ErrorConflict
	}
	if prev, ok := r.byID[t.ID]; ok {
		delete(r.byTitle, prev.Title)
	}
	r.byID[t.ID] = t
	r.byTitle[t.Title] = t.ID
	return t, nil
}

func (r *MemoryRepo) FindByID(ctx context.Context, id uuid.UUID) (model.Task, bool, error) {
	if err := ctx.Err(); err != nil {
		return model.Task{}, false, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.byID[id]
	return t, ok, nil
}

func (r *MemoryRepo) FindByTitle(ctx context.Context, title string) (model.Task, bool, error) {
	if err := ctx.Err(); err != nil {
		return model.Task{}, false, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byTitle[title]
	if !ok {
		return model.Task{}, false, nil
	}
	return r.byID[id], true, nil
}

func (r *MemoryRepo) GetByID(ctx context.Context, id uuid.UUID) (model.Task, error) {
	t, ok, err := r.FindByID(ctx, id)
	if err != nil {
		return t, err
	}
	if !ok {
		return t, ErrorNotFound
	}
	return t, nil
}

func (r *MemoryRepo) FindAll(ctx context.Context) ([]model.Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return r.sorted(), nil
}

func (r *MemoryRepo) FindPage(ctx context.Context, req page.Request) (page.Page[model.Task], error) {
	if err := ctx.Err(); err != nil {
		return page.Page[model.Task]{}, err
	}
	all := r.sorted()

	start := min(req.Offset(), len(all))
	end := len(all)
	if req.Size <= 0 {
		end = start
	} else if req.Size < len(all)-start {
		end = start + req.Size
	}
	return page.New(all[start:end], req, int64(len(all))), nil
}

func (r *MemoryRepo) DeleteByID(ctx context.Context, id uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if t, ok := r.byID[id]; ok {
		delete(r.byTitle, t.Title)
		delete(r.byID, id)
	}
	return nil
}

// sorted возвращает копию в том же порядке, что и TaskRepo: title, затем id
func (r *MemoryRepo) sorted() []model.Task {
	r.mu.RLock()
	tasks := make([]model.Task, 0, len(r.byID))
	for _, t := range r.byID {
		tasks = append(tasks, t)
	}
	r.mu.RUnlock()

	sort.Slice(tasks, func(i, j int) bool {
		if tasks[i].Title != tasks[j].Title {
			return tasks[i].Title < tasks[j].Title
		}
		return tasks[i].ID.String() < tasks[j].ID.String()
	})
	return tasks
}
