// Package paging builds and parses the page/size/search query shared by
// list routes and the remote API.
package paging

import (
	"net/url"
	"slices"
	"strconv"
	"strings"
)

const (
	// DefaultPage is used when the page parameter is absent or invalid.
	DefaultPage = 1
	// DefaultSize is used when the size parameter is absent or invalid.
	DefaultSize = 10

	PageParam   = "page"
	SizeParam   = "size"
	SearchParam = "search"
)

var allowedSizes = []int{10, 20, 50, 100}

// AllowedSizes returns the page sizes offered by list views, ascending.
func AllowedSizes() []int {
	return slices.Clone(allowedSizes)
}

// ClampSize maps size onto the nearest allowed page size. Ties resolve to
// the smaller size; non-positive sizes become DefaultSize.
func ClampSize(size int) int {
	if size <= 0 {
		return DefaultSize
	}
	best := allowedSizes[0]
	bestDist := distance(size, best)
	for _, candidate := range allowedSizes[1:] {
		if d := distance(size, candidate); d < bestDist {
			best, bestDist = candidate, d
		}
	}
	return best
}

func distance(a, b int) int {
	if a > b {
		return a - b
	}
	return b - a
}

// Params is a list request: 1-based page, page size and optional search.
type Params struct {
	Page   int
	Size   int
	Search string
}

// Normalize applies defaults, clamps the size and trims the search.
func (p Params) Normalize() Params {
	if p.Page < 1 {
		p.Page = DefaultPage
	}
	p.Size = ClampSize(p.Size)
	p.Search = strings.TrimSpace(p.Search)
	return p
}

// Values encodes the normalized params. Search is omitted when empty.
func (p Params) Values() url.Values {
	p = p.Normalize()
	values := url.Values{}
	values.Set(PageParam, strconv.Itoa(p.Page))
	values.Set(SizeParam, strconv.Itoa(p.Size))
	if p.Search != "" {
		values.Set(SearchParam, p.Search)
	}
	return values
}

// QueryString encodes the params without a leading "?". Keys are sorted.
func (p Params) QueryString() string {
	return p.Values().Encode()
}

// WithPage returns a copy of p on page.
func (p Params) WithPage(page int) Params {
	p.Page = page
	return p.Normalize()
}

// WithSize returns a copy of p with a new size, restarting at page 1.
func (p Params) WithSize(size int) Params {
	p.Size = size
	p.Page = DefaultPage
	return p.Normalize()
}

// WithSearch returns a copy of p with a new search, restarting at page 1.
func (p Params) WithSearch(search string) Params {
	p.Search = search
	p.Page = DefaultPage
	return p.Normalize()
}

// FromQuery parses params from query values. Missing or malformed values
// fall back to defaults.
func FromQuery(values url.Values) Params {
	return Params{
		Page:   atoiOr(values.Get(PageParam), DefaultPage),
		Size:   atoiOr(values.Get(SizeParam), DefaultSize),
		Search: values.Get(SearchParam),
	}.Normalize()
}

// FromURL parses params from the query of u.
func FromURL(u *url.URL) Params {
	if u == nil {
		return Params{}.Normalize()
	}
	return FromQuery(u.Query())
}

func atoiOr(raw string, fallback int) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return fallback
	}
	return n
}

// URL returns path with the encoded params attached.
func URL(path string, p Params) string {
	return path + "?" + p.QueryString()
}
