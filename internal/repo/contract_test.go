package repo

import (
	"context"
	"fmt"
	"math"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BuzzLyutic/task-service/internal/model"
	"github.com/BuzzLyutic/task-service/pkg/page"
)

// testRepositoryContract проверяет поведение, общее для всех реализаций TaskRepository
func testRepositoryContract(t *testing.T, newRepo func(t *testing.T) TaskRepository) {
	ctx := context.Background()

	t.Run("save assigns defaults", func(t *testing.T) {
		r := newRepo(t)

		saved, err := r.Save(ctx, model.Task{Title: "Defaults"})
		require.NoError(t, err)
		assert.NotEqual(t, uuid.Nil, saved.ID)
		assert.Equal(t, model.StateCreated, saved.State)
	})

	t.Run("save keeps caller id", func(t *testing.T) {
		r := newRepo(t)
		id := uuid.New()

		saved, err := r.Save(ctx, model.Task{ID: id, Title: "Own id", Content: "c", State: model.StateDone})
		require.NoError(t, err)
		assert.Equal(t, model.Task{ID: id, Title: "Own id", Content: "c", State: model.StateDone}, saved)
	})

	t.Run("save is an upsert", func(t *testing.T) {
		r := newRepo(t)
		first, err := r.Save(ctx, model.Task{Title: "Before", Content: "old"})
		require.NoError(t, err)

		first.Title = "After"
		first.Content = "new"
		_, err = r.Save(ctx, first)
		require.NoError(t, err)

		got, ok, err := r.FindByID(ctx, first.ID)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, first, got)

		_, ok, err = r.FindByTitle(ctx, "Before")
		require.NoError(t, err)
		assert.False(t, ok, "old title must not resolve")

		all, err := r.FindAll(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 1)
	})

	t.Run("duplicate title conflicts", func(t *testing.T) {
		r := newRepo(t)
		_, err := r.Save(ctx, model.Task{Title: "Same"})
		require.NoError(t, err)

		_, err = r.Save(ctx, model.Task{Title: "Same"})
		assert.ErrorIs(t, err, ErrorConflict)
	})

	t.Run("find by id and title", func(t *testing.T) {
		r := newRepo(t)
		saved, err := r.Save(ctx, model.Task{Title: "Buy milk", Content: "2% milk, 1 gallon"})
		require.NoError(t, err)

		got, ok, err := r.FindByID(ctx, saved.ID)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, saved, got)

		got, ok, err = r.FindByTitle(ctx, "Buy milk")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, saved, got)

		_, ok, err = r.FindByTitle(ctx, "buy milk")
		require.NoError(t, err)
		assert.False(t, ok, "title lookup is case-sensitive")

		_, ok, err = r.FindByID(ctx, uuid.New())
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("get by id fails when absent", func(t *testing.T) {
		r := newRepo(t)

		_, err := r.GetByID(ctx, uuid.New())
		assert.ErrorIs(t, err, ErrorNotFound)
	})

	t.Run("find all is ordered and never nil", func(t *testing.T) {
		r := newRepo(t)

		all, err := r.FindAll(ctx)
		require.NoError(t, err)
		assert.NotNil(t, all)
		assert.Empty(t, all)

		for _, title := range []string{"c", "a", "b"} {
			_, err := r.Save(ctx, model.Task{Title: title})
			require.NoError(t, err)
		}

		all, err = r.FindAll(ctx)
		require.NoError(t, err)
		require.Len(t, all, 3)
		assert.Equal(t, []string{"a", "b", "c"}, []string{all[0].Title, all[1].Title, all[2].Title})
	})

	t.Run("find page", func(t *testing.T) {
		r := newRepo(t)
		for i := 0; i < 5; i++ {
			_, err := r.Save(ctx, model.Task{Title: fmt.Sprintf("Task %d", i)})
			require.NoError(t, err)
		}

		p, err := r.FindPage(ctx, page.Of(0, 100))
		require.NoError(t, err)
		assert.Len(t, p.Content, 5)
		assert.Equal(t, int64(5), p.TotalElements)

		p, err = r.FindPage(ctx, page.Of(1, 2))
		require.NoError(t, err)
		require.Len(t, p.Content, 2)
		assert.Equal(t, "Task 2", p.Content[0].Title)
		assert.Equal(t, "Task 3", p.Content[1].Title)
		assert.Equal(t, int64(5), p.TotalElements)
		assert.Equal(t, 3, p.TotalPages())

		p, err = r.FindPage(ctx, page.Of(10, 2))
		require.NoError(t, err)
		assert.Empty(t, p.Content)
		assert.Equal(t, int64(5), p.TotalElements)
	})

	t.Run("find page with extreme bounds", func(t *testing.T) {
		r := newRepo(t)
		_, err := r.Save(ctx, model.Task{Title: "Only"})
		require.NoError(t, err)

		tests := []struct {
			name    string
			req     page.Request
			wantLen int
		}{
			{name: "max size, first page", req: page.Of(0, math.MaxInt), wantLen: 1},
			{name: "max size, second page", req: page.Of(1, math.MaxInt), wantLen: 0},
			{name: "offset overflows", req: page.Of(math.MaxInt, 2), wantLen: 0},
			{name: "zero size", req: page.Of(0, 0), wantLen: 0},
			{name: "negative size", req: page.Of(0, -5), wantLen: 0},
			{name: "negative page", req: page.Of(-3, 10), wantLen: 1},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				p, err := r.FindPage(ctx, tt.req)
				require.NoError(t, err)
				assert.Len(t, p.Content, tt.wantLen)
				assert.NotNil(t, p.Content)
				assert.Equal(t, int64(1), p.TotalElements)
				assert.Equal(t, tt.req.Number, p.Number)
			})
		}
	})

	t.Run("delete is idempotent", func(t *testing.T) {
		r := newRepo(t)
		saved, err := r.Save(ctx, model.Task{Title: "Temp"})
		require.NoError(t, err)

		require.NoError(t, r.DeleteByID(ctx, saved.ID))
		require.NoError(t, r.DeleteByID(ctx, saved.ID))
		require.NoError(t, r.DeleteByID(ctx, uuid.New()))

		_, ok, err := r.FindByID(ctx, saved.ID)
		require.NoError(t, err)
		assert.False(t, ok)

		// title освобождается после удаления
		_, err = r.Save(ctx, model.Task{Title: "Temp"})
		assert.NoError(t, err)
	})

	t.Run("concurrent saves", func(t *testing.T) {
		r := newRepo(t)
		const goroutines = 20

		var wg sync.WaitGroup
		errs := make([]error, goroutines)
		for i := 0; i < goroutines; i++ {
			wg.Add(1)
			go func(idx int) {
				defer wg.Done()
				_, errs[idx] = r.Save(ctx, model.Task{Title: fmt.Sprintf("Concurrent %02d", idx)})
			}(i)
		}
		wg.Wait()

		for i, err := range errs {
			require.NoError(t, err, "save %d should not error", i)
		}
		all, err := r.FindAll(ctx)
		require.NoError(t, err)
		assert.Len(t, all, goroutines)
	})
}
