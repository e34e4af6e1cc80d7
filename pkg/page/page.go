// Package page holds the paging request/result pair shared by the repository
// and service layers.
package page

import "math"

// Request - номер страницы (с нуля) и её размер
type Request struct {
	Number int `json:"page"`
	Size   int `json:"size"`
}

func Of(number, size int) Request {
	return Request{Number: number, Size: size}
}

// Offset never goes negative and saturates at math.MaxInt
func (r Request) Offset() int {
	if r.Number <= 0 || r.Size <= 0 {
		return 0
	}
	if r.Overflows() {
		return math.MaxInt
	}
	return r.Number * r.Size
}

// Overflows reports whether Number*Size does not fit in an int
func (r Request) Overflows() bool {
	return r.Number > 0 && r.Size > 0 && r.Number > math.MaxInt/r.Size
}

type Page[T any] struct {
	Content       []T   `json:"content"`
	Number        int   `json:"page"`
	Size          int   `json:"size"`
	TotalElements int64 `json:"total_elements"`
}

func New[T any](content []T, req Request, total int64) Page[T] {
	if content == nil {
		content = []T{}
	}
	return Page[T]{
		Content:       content,
		Number:        req.Number,
		Size:          req.Size,
		TotalElements: total,
	}
}

func (p Page[T]) TotalPages() int {
	if p.Size <= 0 {
		return 0
	}
	pages := p.TotalElements / int64(p.Size)
	if p.TotalElements%int64(p.Size) != 0 {
		pages++
	}
	return int(pages)
}

// Map converts the content of p and keeps the metadata as is.
// It stops at the first error.
func Map[T, U any](p Page[T], fn func(T) (U, error)) (Page[U], error) {
	out := make([]U, 0, len(p.Content))
	for _, v := range p.Content {
		u, err := fn(v)
		if err != nil {
			return Page[U]{}, err
		}
		out = append(out, u)
	}
	return Page[U]{
		Content:       out,
		Number:        p.Number,
		Size:          p.Size,
		TotalElements: p.TotalElements,
	}, nil
}
