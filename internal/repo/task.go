package repo

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/BuzzLyutic/task-service/internal/model"
	"github.com/BuzzLyutic/task-service/pkg/page"
)

var (
	ErrorNotFound = errors.New("not found")
	ErrorConflict = errors.New("conflict")
)

const taskColumns = `id, title, content, state`

type TaskRepo struct { // Репозиторий для работы непосредственно с БД
	pool *pgxpool.Pool
}

func NewTaskRepo(pool *pgxpool.Pool) *TaskRepo { // Конструктор
	return &TaskRepo{
		pool: pool,
	}
}

// Save вставляет задачу или перезаписывает существующую с тем же id
func (r *TaskRepo) Save(ctx context.Context, t model.Task) (model.Task, error) {
	t = withDefaults(t)
	var saved model.Task
	err := r.pool.QueryRow(ctx, `
		INSERT INTO tasks (id, title, content, state)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE
		SET title = EXCLUDED.title, content = EXCLUDED.content, state = EXCLUDED.state
		RETURNING `+taskColumns,
		t.ID, t.Title, t.Content, string(t.State),
	).Scan(&saved.ID, &saved.Title, &saved.Content, &saved.State)
	if err != nil {
		return t, r.mapError(err)
	}
	return saved, nil
}

func (r *TaskRepo) FindByID(ctx context.Context, id uuid.UUID) (model.Task, bool, error) {
	return r.findOne(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = $1`, id)
}

func (r *TaskRepo) FindByTitle(ctx context.Context, title string) (model.Task, bool, error) {
	return r.findOne(ctx, `SELECT `+taskColumns+` FROM tasks WHERE title = $1`, title)
}

func (r *TaskRepo) GetByID(ctx context.Context, id uuid.UUID) (model.Task, error) {
	t, ok, err := r.FindByID(ctx, id)
	if err != nil {
		return t, err
	}
	if !ok {
		return t, ErrorNotFound
	}
	return t, nil
}

func (r *TaskRepo) FindAll(ctx context.Context) ([]model.Task, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+taskColumns+`
		FROM tasks
		ORDER BY title, id
	`)
	if err != nil {
		return nil, err
	}
	return scanTasks(rows, 0)
}

func (r *TaskRepo) FindPage(ctx context.Context, req page.Request) (page.Page[model.Task], error) {
	var total int64
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM tasks`).Scan(&total); err != nil {
		return page.Page[model.Task]{}, err
	}
	if req.Size <= 0 {
		return page.New[model.Task](nil, req, total), nil
	}

	rows, err := r.pool.Query(ctx, `
		SELECT `+taskColumns+`
		FROM tasks
		ORDER BY title, id
		LIMIT $1 OFFSET $2
	`, req.Size, req.Offset())
	if err != nil {
		return page.Page[model.Task]{}, err
	}

	tasks, err := scanTasks(rows, int(min(int64(req.Size), total)))
	if err != nil {
		return page.Page[model.Task]{}, err
	}
	return page.New(tasks, req, total), nil
}

// DeleteByID не считает отсутствие строки ошибкой
func (r *TaskRepo) DeleteByID(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx, "DELETE FROM tasks WHERE id = $1", id)
	return err
}

func (r *TaskRepo) findOne(ctx context.Context, query string, arg any) (model.Task, bool, error) {
	var t model.Task
	err := r.pool.QueryRow(ctx, query, arg).Scan(&t.ID, &t.Title, &t.Content, &t.State)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Task{}, false, nil
	}
	if err != nil {
		return model.Task{}, false, err
	}
	return t, true, nil
}

func scanTasks(rows pgx.Rows, capacity int) ([]model.Task, error) {
	defer rows.Close()

	tasks := make([]model.Task, 0, capacity)
	for rows.Next() {
		var t model.Task
		if err := rows.Scan(&t.ID, &t.Title, &t.Content, &t.State); err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (r *TaskRepo) mapError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" { // unique_violation, дубликат title
			return ErrorConflict
		}
	}
	return err
}
