// Package presenter derives the visible slice of the task grid. It has no
// side effects and does no I/O.
package presenter

import (
	"sort"

	"github.com/sandeepkv93/taskpad/internal/model"
)

const PageSize = 4

type Page struct {
	Items      []model.Task
	Number     int
	TotalPages int
	Total      int
}

// Empty reports whether the whole collection, not just this page, is empty.
func (p Page) Empty() bool {
	return p.Total == 0
}

// SortNewestFirst returns a copy of tasks ordered by created_at descending.
// Ties keep their input order.
func SortNewestFirst(tasks []model.Task) []model.Task {
	out := make([]model.Task, len(tasks))
	copy(out, tasks)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedTime().After(out[j].CreatedTime())
	})
	return out
}

func TotalPages(count, size int) int {
	if size <= 0 {
		size = PageSize
	}
	if count <= 0 {
		return 0
	}
	return (count + size - 1) / size
}

// ClampPage keeps page within [1, max(1, totalPages)].
func ClampPage(page, totalPages int) int {
	if totalPages < 1 {
		totalPages = 1
	}
	if page < 1 {
		return 1
	}
	if page > totalPages {
		return totalPages
	}
	return page
}

// Paginate sorts tasks newest first and returns the requested page. An out
// of range page number is clamped.
func Paginate(tasks []model.Task, page, size int) Page {
	if size <= 0 {
		size = PageSize
	}
	sorted := SortNewestFirst(tasks)
	total := TotalPages(len(sorted), size)
	page = ClampPage(page, total)

	start := (page - 1) * size
	end := start + size
	if start > len(sorted) {
		start = len(sorted)
	}
	if end > len(sorted) {
		end = len(sorted)
	}
	return Page{
		Items:      sorted[start:end],
		Number:     page,
		TotalPages: total,
		Total:      len(sorted),
	}
}
