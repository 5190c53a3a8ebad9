// internal/domain/common/repository_common.go
package common

import "math"

// Page is offset paging input.
type Page struct {
	Number  int // 1-based
	PerPage int // <= 0 means implementation default
}

// PageResult is a page of items plus totals.
type PageResult[T any] struct {
	Items      []T
	TotalCount int
	TotalPages int
	Page       int
	PerPage    int
}

// NormalizePage clamps paging input and returns (page, perPage, offset).
func NormalizePage(number, perPage, def, max int) (int, int, int) {
	if number <= 0 {
		number = 1
	}
	if perPage <= 0 {
		perPage = def
	}
	if perPage > max {
		perPage = max
	}
	if perPage <= 0 {
		perPage = 1
	}
	// Keep (number-1)*perPage inside int.
	if limit := math.MaxInt / perPage; number > limit {
		number = limit
	}
	return number, perPage, (number - 1) * perPage
}

// ComputeTotalPages returns ceil(total/perPage).
func ComputeTotalPages(total, perPage int) int {
	if perPage <= 0 || total <= 0 {
		return 0
	}
	return (total + perPage - 1) / perPage
}

// PageSlice pages an already filtered and ordered slice in memory.
// Stores that cannot page natively (or after an in-memory filter) use it.
func PageSlice[T any](items []T, page Page, def, max int) PageResult[T] {
	number, perPage, offset := NormalizePage(page.Number, page.PerPage, def, max)

	total := len(items)
	out := []T{}
	if offset < total {
		end := offset + perPage
		if end > total {
			end = total
		}
		out = append(out, items[offset:end]...)
	}

	return PageResult[T]{
		Items:      out,
		TotalCount: total,
		TotalPages: ComputeTotalPages(total, perPage),
		Page:       number,
		PerPage:    perPage,
	}
}

// Default paging bounds shared by catalog stores.
const (
	DefaultPerPage = 50
	MaxPerPage     = 200
)
