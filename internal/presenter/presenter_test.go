package presenter

import (
	"fmt"
	"testing"
	"time"

	"github.com/sandeepkv93/taskpad/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tasksWithCreated(n int) []model.Task {
	base := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)
	out := make([]model.Task, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, model.Task{
			ID:        i + 1,
			Title:     fmt.Sprintf("task %d", i+1),
			Status:    model.StatusPending,
			Priority:  1,
			CreatedAt: base.Add(time.Duration(i) * time.Hour).Format(time.RFC3339),
		})
	}
	return out
}

func ids(tasks []model.Task) []int {
	out := make([]int, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t.ID)
	}
	return out
}

func TestSortNewestFirst(t *testing.T) {
	in := tasksWithCreated(4)
	in = append(in, model.Task{ID: 99, Title: "no timestamp"})

	out := SortNewestFirst(in)
	assert.Equal(t, []int{4, 3, 2, 1, 99}, ids(out))
	assert.Equal(t, 1, in[0].ID, "input must not be reordered")

	for i := 1; i < len(out); i++ {
		assert.False(t, out[i].CreatedTime().After(out[i-1].CreatedTime()))
	}
}

func TestSortKeepsTieOrder(t *testing.T) {
	in := []model.Task{
		{ID: 1, CreatedAt: "2026-02-01T09:00:00Z"},
		{ID: 2, CreatedAt: "2026-02-01T09:00:00Z"},
		{ID: 3, CreatedAt: "bad"},
		{ID: 4},
	}
	assert.Equal(t, []int{1, 2, 3, 4}, ids(SortNewestFirst(in)))
}

func TestSortUnparsableOrdersAsEpoch(t *testing.T) {
	in := []model.Task{
		{ID: 1, CreatedAt: "1969-07-20T20:17:00Z"},
		{ID: 2, CreatedAt: "bad"},
		{ID: 3, CreatedAt: "1970-01-02T00:00:00Z"},
	}
	assert.Equal(t, []int{3, 2, 1}, ids(SortNewestFirst(in)))
}

func TestTotalPages(t *testing.T) {
	cases := map[int]int{0: 0, 1: 1, 4: 1, 5: 2, 8: 2, 9: 3}
	for n, want := range cases {
		assert.Equal(t, want, TotalPages(n, PageSize), "n=%d", n)
	}
}

func TestPaginateConcatenationReproducesSortedList(t *testing.T) {
	for n := 0; n <= 13; n++ {
		tasks := tasksWithCreated(n)
		sorted := SortNewestFirst(tasks)
		pages := TotalPages(n, PageSize)

		var joined []model.Task
		for p := 1; p <= pages; p++ {
			page := Paginate(tasks, p, PageSize)
			require.LessOrEqual(t, len(page.Items), PageSize)
			require.Equal(t, p, page.Number)
			require.Equal(t, pages, page.TotalPages)
			joined = append(joined, page.Items...)
		}
		assert.Equal(t, ids(sorted), ids(joined), "n=%d", n)
	}
}

func TestPaginateFiveTasksSecondPageHoldsOldest(t *testing.T) {
	tasks := tasksWithCreated(5)

	first := Paginate(tasks, 1, PageSize)
	assert.Equal(t, []int{5, 4, 3, 2}, ids(first.Items))

	second := Paginate(tasks, 2, PageSize)
	require.Len(t, second.Items, 1)
	assert.Equal(t, 1, second.Items[0].ID)
	assert.Equal(t, 2, second.TotalPages)
}

func TestPaginateClampsPage(t *testing.T) {
	tasks := tasksWithCreated(5)
	assert.Equal(t, 2, Paginate(tasks, 9, PageSize).Number)
	assert.Equal(t, 1, Paginate(tasks, -3, PageSize).Number)

	empty := Paginate(nil, 3, PageSize)
	assert.True(t, empty.Empty())
	assert.Equal(t, 1, empty.Number)
	assert.Empty(t, empty.Items)
}

func TestClampPage(t *testing.T) {
	assert.Equal(t, 1, ClampPage(0, 0))
	assert.Equal(t, 1, ClampPage(2, 0))
	assert.Equal(t, 2, ClampPage(2, 3))
	assert.Equal(t, 3, ClampPage(7, 3))
}
