package repo

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/BuzzLyutic/task-service/internal/model"
	"github.com/BuzzLyutic/task-service/pkg/page"
)

// CachedRepo кэширует поиск по id в Redis поверх любого TaskRepository.
// Ошибки Redis только логируются: запрос уходит в базовый репозиторий.
//
// Запись (Save) перезаписывает ключ, а промах при чтении кладёт значение
// только через SET NX, поэтому чтение старой строки не затирает запись.
// Остаётся окно: чтение до DeleteByID или до неудачного SET у писателя
// может вернуть удалённую/старую строку в кэш до истечения TTL.
type CachedRepo struct {
	base   TaskRepository
	redis  *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

func NewCachedRepo(base TaskRepository, client *redis.Client, ttl time.Duration, logger *zap.Logger) *CachedRepo {
	if base == nil {
		panic("repo.NewCachedRepo: base repository is nil")
	}
	if ttl < 0 {
		ttl = 0
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &CachedRepo{
		base:   base,
		redis:  client,
		ttl:    ttl,
		logger: logger,
	}
}

func (c *CachedRepo) Save(ctx context.Context, t model.Task) (model.Task, error) {
	saved, err := c.base.Save(ctx, t)
	if err != nil {
		return saved, err
	}
	c.store(ctx, saved)
	return saved, nil
}

func (c *CachedRepo) FindByID(ctx context.Context, id uuid.UUID) (model.Task, bool, error) {
	if t, ok := c.load(ctx, id); ok {
		return t, true, nil
	}

	t, ok, err := c.base.FindByID(ctx, id)
	if err != nil || !ok {
		return t, ok, err
	}
	c.fill(ctx, t)
	return t, true, nil
}

func (c *CachedRepo) GetByID(ctx context.Context, id uuid.UUID) (model.Task, error) {
	if t, ok := c.load(ctx, id); ok {
		return t, nil
	}

	t, err := c.base.GetByID(ctx, id)
	if err != nil {
		return t, err
	}
	c.fill(ctx, t)
	return t, nil
}

func (c *CachedRepo) FindByTitle(ctx context.Context, title string) (model.Task, bool, error) {
	return c.base.FindByTitle(ctx, title)
}

func (c *CachedRepo) FindAll(ctx context.Context) ([]model.Task, error) {
	return c.base.FindAll(ctx)
}

func (c *CachedRepo) FindPage(ctx context.Context, req page.Request) (page.Page[model.Task], error) {
	return c.base.FindPage(ctx, req)
}

func (c *CachedRepo) DeleteByID(ctx context.Context, id uuid.UUID) error {
	if err := c.base.DeleteByID(ctx, id); err != nil {
		return err
	}
	c.evict(ctx, id)
	return nil
}

func (c *CachedRepo) load(ctx context.Context, id uuid.UUID) (model.Task, bool) {
	if c.redis == nil {
		return model.Task{}, false
	}
	data, err := c.redis.Get(ctx, taskCacheKey(id)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn("task cache read failed", zap.String("task_id", id.String()), zap.Error(err))
		}
		return model.Task{}, false
	}

	var t model.Task
	if err := json.Unmarshal(data, &t); err != nil {
		c.logger.Warn("task cache entry is corrupted", zap.String("task_id", id.String()), zap.Error(err))
		c.evict(ctx, id)
		return model.Task{}, false
	}
	return t, true
}

func (c *CachedRepo) store(ctx context.Context, t model.Task) {
	if c.redis == nil || c.ttl == 0 {
		return
	}
	data, err := json.Marshal(t)
	if err != nil {
		return
	}
	if err := c.redis.Set(ctx, taskCacheKey(t.ID), data, c.ttl).Err(); err != nil {
		c.logger.Warn("task cache write failed", zap.String("task_id", t.ID.String()), zap.Error(err))
		// старое значение не должно пережить запись
		c.evict(ctx, t.ID)
	}
}

// fill кладёт прочитанную строку, только если ключа ещё нет
func (c *CachedRepo) fill(ctx context.Context, t model.Task) {
	if c.redis == nil || c.ttl == 0 {
		return
	}
	data, err := json.Marshal(t)
	if err != nil {
		return
	}
	if err := c.redis.SetNX(ctx, taskCacheKey(t.ID), data, c.ttl).Err(); err != nil {
		c.logger.Warn("task cache fill failed", zap.String("task_id", t.ID.String()), zap.Error(err))
	}
}

func (c *CachedRepo) evict(ctx context.Context, id uuid.UUID) {
	if c.redis == nil {
		return
	}
	if err := c.redis.Del(ctx, taskCacheKey(id)).Err(); err != nil {
		c.logger.Warn("task cache evict failed", zap.String("task_id", id.String()), zap.Error(err))
	}
}

func taskCacheKey(id uuid.UUID) string {
	return "task:" + id.String()
}
