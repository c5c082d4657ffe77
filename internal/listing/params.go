package listing

import (
	"net/url"
	"strconv"
	"strings"
)

type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// Params carries the client-controlled view state of a list endpoint:
// search term, active sort field and direction, current page and filters.
type Params struct {
	Search   string
	SortBy   string
	SortDir  Direction
	Page     int
	PageSize int
	Filters  map[string]string
	Refresh  bool
}

// Options fixes the per-endpoint defaults: page size (10 or 15 depending on
// the page), default sort field/direction, and which filter keys are
// accepted from the query string.
type Options struct {
	DefaultSortBy  string
	DefaultSortDir Direction
	PageSize       int
	FilterKeys     []string
}

// FromQuery parses Params from a request query string. Absent page means
// page 1, so a client that resets its page on a new search term simply
// omits the parameter. Unknown sort fields are replaced by the default at
// Apply time; unknown filter keys are dropped here.
func FromQuery(q url.Values, opts Options) Params {
	p := Params{
		Search:   strings.TrimSpace(q.Get("search")),
		SortBy:   q.Get("sortBy"),
		SortDir:  Direction(q.Get("sortDir")),
		Page:     1,
		PageSize: opts.PageSize,
		Refresh:  q.Get("refresh") == "true",
	}

	if p.SortBy == "" {
		p.SortBy = opts.DefaultSortBy
	}
	if p.SortDir != Asc && p.SortDir != Desc {
		p.SortDir = opts.DefaultSortDir
	}

	if pageStr := q.Get("page"); pageStr != "" {
		if page, err := strconv.Atoi(pageStr); err == nil && page > 0 {
			p.Page = page
		}
	}

	if p.PageSize <= 0 {
		p.PageSize = 10
	}

	for _, key := range opts.FilterKeys {
		if v := strings.TrimSpace(q.Get(key)); v != "" && v != "all" {
			if p.Filters == nil {
				p.Filters = make(map[string]string)
			}
			p.Filters[key] = v
		}
	}

	return p
}

// NextSort implements the header-click rule: clicking the active field flips
// direction, clicking another field switches to it with the endpoint's
// default direction.
func NextSort(activeField string, activeDir Direction, clicked string, defaultDir Direction) (string, Direction) {
	if clicked == activeField {
		if activeDir == Asc {
			return clicked, Desc
		}
		return clicked, Asc
	}
	return clicked, defaultDir
}
