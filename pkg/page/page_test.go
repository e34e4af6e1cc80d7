package page

import (
	"errors"
	"math"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequest_Offset(t *testing.T) {
	tests := []struct {
		name         string
		req          Request
		want         int
		wantOverflow bool
	}{
		{name: "first page", req: Of(0, 20), want: 0},
		{name: "third page", req: Of(2, 20), want: 40},
		{name: "negative page", req: Of(-1, 20), want: 0},
		{name: "negative size", req: Of(3, -20), want: 0},
		{name: "max size", req: Of(1, math.MaxInt), want: math.MaxInt},
		{name: "huge page number", req: Of(math.MaxInt, 2), want: math.MaxInt, wantOverflow: true},
		{name: "just past the limit", req: Of(math.MaxInt/10+1, 10), want: math.MaxInt, wantOverflow: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.req.Offset())
			assert.Equal(t, tt.wantOverflow, tt.req.Overflows())
		})
	}
}

func TestPage_TotalPages(t *testing.T) {
	tests := []struct {
		name  string
		size  int
		total int64
		want  int
	}{
		{name: "exact", size: 10, total: 30, want: 3},
		{name: "partial last page", size: 10, total: 31, want: 4},
		{name: "empty", size: 10, total: 0, want: 0},
		{name: "zero size", size: 0, total: 5, want: 0},
		{name: "max size", size: math.MaxInt, total: 5, want: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := New([]int{}, Of(0, tt.size), tt.total)
			assert.Equal(t, tt.want, p.TotalPages())
		})
	}
}

func TestNew_NilContent(t *testing.T) {
	p := New[int](nil, Of(3, 10), 25)

	assert.NotNil(t, p.Content)
	assert.Equal(t, 3, p.Number)
	assert.Equal(t, int64(25), p.TotalElements)
}

func TestMap(t *testing.T) {
	src := New([]int{1, 2, 3}, Of(1, 3), 9)

	got, err := Map(src, func(v int) (string, error) {
		return strconv.Itoa(v * 10), nil
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"10", "20", "30"}, got.Content)
	assert.Equal(t, src.Number, got.Number)
	assert.Equal(t, src.Size, got.Size)
	assert.Equal(t, src.TotalElements, got.TotalElements)
}

func TestMap_StopsOnError(t *testing.T) {
	boom := errors.New("boom")
	var calls int

	_, err := Map(New([]int{1, 2, 3}, Of(0, 3), 3), func(v int) (int, error) {
		calls++
		if v == 2 {
			return 0, boom
		}
		return v, nil
	})

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 2, calls)
}
