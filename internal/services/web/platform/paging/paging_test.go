package paging

import (
	"net/url"
	"reflect"
	"testing"
)

func TestClampSize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   int
		want int
	}{
		{in: -5, want: 10},
		{in: 0, want: 10},
		{in: 1, want: 10},
		{in: 10, want: 10},
		{in: 14, want: 10},
		{in: 15, want: 10},
		{in: 16, want: 20},
		{in: 35, want: 20},
		{in: 36, want: 50},
		{in: 75, want: 50},
		{in: 76, want: 100},
		{in: 5000, want: 100},
	}
	for _, tc := range tests {
		if got := ClampSize(tc.in); got != tc.want {
			t.Fatalf("ClampSize(%d) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestQueryStringOmitsEmptySearch(t *testing.T) {
	t.Parallel()

	got := Params{Page: 2, Size: 20, Search: "   "}.QueryString()
	if got != "page=2&size=20" {
		t.Fatalf("QueryString() = %q, want %q", got, "page=2&size=20")
	}
}

func TestQueryStringEncodesSearch(t *testing.T) {
	t.Parallel()

	got := Params{Page: 1, Size: 10, Search: "X100 pro"}.QueryString()
	if got != "page=1&search=X100+pro&size=10" {
		t.Fatalf("QueryString() = %q", got)
	}
}

func TestFromQueryDefaults(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		query string
		want  Params
	}{
		{name: "empty", query: "", want: Params{Page: 1, Size: 10}},
		{name: "garbage", query: "page=abc&size=xyz", want: Params{Page: 1, Size: 10}},
		{name: "non-positive page", query: "page=0&size=50", want: Params{Page: 1, Size: 50}},
		{name: "clamped size", query: "page=3&size=33", want: Params{Page: 3, Size: 20}},
		{name: "search trimmed", query: "search=+phone+", want: Params{Page: 1, Size: 10, Search: "phone"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			values, err := url.ParseQuery(tc.query)
			if err != nil {
				t.Fatalf("parse query: %v", err)
			}
			if got := FromQuery(values); got != tc.want {
				t.Fatalf("FromQuery(%q) = %+v, want %+v", tc.query, got, tc.want)
			}
		})
	}
}

func TestQueryStringRoundTrip(t *testing.T) {
	t.Parallel()

	for _, p := range []Params{
		{Page: 1, Size: 10},
		{Page: 7, Size: 100, Search: "серия А&Б"},
		{Page: -3, Size: 42, Search: " trim me "},
		{Page: 2, Size: 15, Search: "a=b?c"},
	} {
		values, err := url.ParseQuery(p.QueryString())
		if err != nil {
			t.Fatalf("parse %q: %v", p.QueryString(), err)
		}
		if got, want := FromQuery(values), p.Normalize(); got != want {
			t.Fatalf("round trip of %+v = %+v, want %+v", p, got, want)
		}
	}
}

func TestFromURL(t *testing.T) {
	t.Parallel()

	u, _ := url.Parse("/passports?page=4&size=50&search=alpha")
	if got := FromURL(u); got != (Params{Page: 4, Size: 50, Search: "alpha"}) {
		t.Fatalf("FromURL() = %+v", got)
	}
	if got := FromURL(nil); got != (Params{Page: 1, Size: 10}) {
		t.Fatalf("FromURL(nil) = %+v", got)
	}
}

func TestWithHelpersResetPage(t *testing.T) {
	t.Parallel()

	p := Params{Page: 5, Size: 20, Search: "a"}
	if got := p.WithSearch("b"); got.Page != 1 || got.Search != "b" {
		t.Fatalf("WithSearch() = %+v", got)
	}
	if got := p.WithSize(50); got.Page != 1 || got.Size != 50 {
		t.Fatalf("WithSize() = %+v", got)
	}
	if got := p.WithPage(3); got.Page != 3 || got.Search != "a" || got.Size != 20 {
		t.Fatalf("WithPage() = %+v", got)
	}
	if got := URL("/users", p); got != "/users?page=5&search=a&size=20" {
		t.Fatalf("URL() = %q", got)
	}
}

func TestAllowedSizesIsACopy(t *testing.T) {
	t.Parallel()

	sizes := AllowedSizes()
	sizes[0] = 999
	if AllowedSizes()[0] != 10 {
		t.Fatal("AllowedSizes leaked internal slice")
	}
}

func TestPaginatedDataNormalize(t *testing.T) {
	t.Parallel()

	items := make([]int, 12)
	got := PaginatedData[int]{CurrentPage: 9, TotalPages: 3, Size: 10, TotalItems: 25, Items: items}.Normalize()
	if got.CurrentPage != 3 || len(got.Items) != 10 {
		t.Fatalf("Normalize() = page %d with %d items", got.CurrentPage, len(got.Items))
	}

	empty := PaginatedData[int]{TotalPages: -1, TotalItems: -1}.Normalize()
	if empty.CurrentPage != 1 || empty.Size != DefaultSize || empty.TotalPages != 0 || empty.TotalItems != 0 || empty.Items == nil {
		t.Fatalf("Normalize() of empty = %+v", empty)
	}
	if empty.HasNext() || empty.HasPrevious() || empty.PageCount() != 1 {
		t.Fatalf("empty navigation = next %v prev %v count %d", empty.HasNext(), empty.HasPrevious(), empty.PageCount())
	}
}

func TestPaginatedDataNavigation(t *testing.T) {
	t.Parallel()

	d := PaginatedData[string]{CurrentPage: 2, TotalPages: 3, Size: 10}
	if !d.HasPrevious() || !d.HasNext() {
		t.Fatalf("page 2 of 3 should have both neighbours")
	}
	d.CurrentPage = 3
	if d.HasNext() {
		t.Fatal("last page has no next")
	}
}

func TestPageWindow(t *testing.T) {
	t.Parallel()

	tests := []struct {
		current, total, radius int
		want                   []int
	}{
		{current: 1, total: 0, radius: 2, want: []int{1}},
		{current: 1, total: 3, radius: 2, want: []int{1, 2, 3}},
		{current: 1, total: 10, radius: 2, want: []int{1, 2, 3, 4, 5}},
		{current: 5, total: 10, radius: 2, want: []int{3, 4, 5, 6, 7}},
		{current: 10, total: 10, radius: 2, want: []int{6, 7, 8, 9, 10}},
		{current: 42, total: 10, radius: 1, want: []int{8, 9, 10}},
	}
	for _, tc := range tests {
		if got := PageWindow(tc.current, tc.total, tc.radius); !reflect.DeepEqual(got, tc.want) {
			t.Fatalf("PageWindow(%d, %d, %d) = %v, want %v", tc.current, tc.total, tc.radius, got, tc.want)
		}
	}
}
