package listing

import (
	"sort"
	"strings"
	"time"
)

// Comparator reports ordering between two items for one sort field,
// negative when a < b.
type Comparator[T any] func(a, b T) int

// Result is the wire shape every list endpoint returns: the page slice plus
// enough metadata for the client to render pagination controls without
// recomputing anything.
type Result[T any] struct {
	Items         []T       `json:"data"`
	Total         int       `json:"total"`
	FilteredTotal int       `json:"filteredTotal"`
	Page          int       `json:"page"`
	PageSize      int       `json:"pageSize"`
	TotalPages    int       `json:"totalPages"`
	PageWindow    []int     `json:"pageWindow"`
	SortBy        string    `json:"sortBy"`
	SortDir       Direction `json:"sortDir"`
}

// Apply runs the full pipeline over an in-memory snapshot: filter by the
// match predicate, stable-sort by the active comparator, slice out the
// requested page. A page past the end yields an empty slice, not an error.
// items is typically a cached snapshot shared between requests, so Apply
// never sorts it in place: the filter step always produces a fresh slice.
func Apply[T any](items []T, p Params, match func(T) bool, comparators map[string]Comparator[T]) Result[T] {
	var filtered []T
	if match == nil {
		filtered = append([]T(nil), items...)
	} else {
		filtered = make([]T, 0, len(items))
		for _, it := range items {
			if match(it) {
				filtered = append(filtered, it)
			}
		}
	}

	if cmp, ok := comparators[p.SortBy]; ok {
		sort.SliceStable(filtered, func(i, j int) bool {
			if p.SortDir == Desc {
				return cmp(filtered[i], filtered[j]) > 0
			}
			return cmp(filtered[i], filtered[j]) < 0
		})
	}

	pageSize := p.PageSize
	if pageSize <= 0 {
		pageSize = 10
	}

	totalPages := (len(filtered) + pageSize - 1) / pageSize

	page := p.Page
	if page < 1 {
		page = 1
	}

	start := (page - 1) * pageSize
	end := start + pageSize
	if start > len(filtered) {
		start = len(filtered)
	}
	if end > len(filtered) {
		end = len(filtered)
	}

	return Result[T]{
		Items:         filtered[start:end],
		Total:         len(items),
		FilteredTotal: len(filtered),
		Page:          page,
		PageSize:      pageSize,
		TotalPages:    totalPages,
		PageWindow:    PageWindow(page, totalPages),
		SortBy:        p.SortBy,
		SortDir:       p.SortDir,
	}
}

// PageWindow returns at most five page numbers centered on current,
// clamped at both boundaries.
func PageWindow(current, totalPages int) []int {
	if totalPages <= 0 {
		return nil
	}
	if current < 1 {
		current = 1
	}
	if current > totalPages {
		current = totalPages
	}

	start := current - 2
	if start < 1 {
		start = 1
	}
	end := start + 4
	if end > totalPages {
		end = totalPages
		start = end - 4
		if start < 1 {
			start = 1
		}
	}

	window := make([]int, 0, end-start+1)
	for i := start; i <= end; i++ {
		window = append(window, i)
	}
	return window
}

// ContainsFold reports whether s contains substr, case-insensitively.
// The standard search-term match used across list endpoints.
func ContainsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

func CompareString(a, b string) int {
	return strings.Compare(strings.ToLower(a), strings.ToLower(b))
}

func CompareInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func CompareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// CompareTime compares as epoch millis.
func CompareTime(a, b time.Time) int {
	am, bm := a.UnixMilli(), b.UnixMilli()
	switch {
	case am < bm:
		return -1
	case am > bm:
		return 1
	default:
		return 0
	}
}
