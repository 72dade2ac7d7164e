package templates

import (
	"context"
	"strconv"
	"strings"
	"testing"

	"github.com/a-h/templ"
	webi18n "github.com/tuvarna/passport-admin/internal/services/web/i18n"
	"github.com/tuvarna/passport-admin/internal/services/web/platform/paging"
	"golang.org/x/net/html"
	"golang.org/x/text/language"
)

type row struct {
	ID   int
	Name string
}

func englishLoc() Localizer {
	return webi18n.Printer(language.MustParse("en-US"))
}

func renderString(t *testing.T, c templ.Component) string {
	t.Helper()
	var b strings.Builder
	if err := c.Render(context.Background(), &b); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	return b.String()
}

func parseFragment(t *testing.T, markup string) *html.Node {
	t.Helper()
	doc, err := html.Parse(strings.NewReader(markup))
	if err != nil {
		t.Fatalf("parse html: %v", err)
	}
	return doc
}

func findAll(n *html.Node, match func(*html.Node) bool) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && match(n) {
			out = append(out, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return out
}

func attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func hasClass(n *html.Node, class string) bool {
	v, _ := attr(n, "class")
	for _, c := range strings.Fields(v) {
		if c == class {
			return true
		}
	}
	return false
}

func textOf(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return b.String()
}

func bodyRows(doc *html.Node) []*html.Node {
	var rows []*html.Node
	for _, tbody := range findAll(doc, func(n *html.Node) bool { return n.Data == "tbody" }) {
		rows = append(rows, findAll(tbody, func(n *html.Node) bool { return n.Data == "tr" })...)
	}
	return rows
}

func sampleView(items int) TableView[row] {
	data := paging.PaginatedData[row]{CurrentPage: 1, TotalPages: 3, Size: 10, TotalItems: 25}
	for i := range items {
		data.Items = append(data.Items, row{ID: i + 1, Name: "Passport " + strconv.Itoa(i+1)})
	}
	return TableView[row]{
		Data: data,
		Columns: []Column[row]{
			FieldColumn("name", "Name", func(r row) string { return r.Name }),
			ActionsColumn("Actions", func(r row) templ.Component {
				return LinkButton("Edit", "/passports/"+strconv.Itoa(r.ID)+"/edit", "")
			}),
		},
		Params:     paging.Params{Page: 1, Size: 10, Search: "boiler"},
		BasePath:   "/passports",
		RowLink:    func(r row) string { return "/passports/" + strconv.Itoa(r.ID) },
		Searchable: true,
		Loc:        englishLoc(),
	}
}

func TestPaginatedTableRendersOneRowPerItem(t *testing.T) {
	t.Parallel()

	doc := parseFragment(t, renderString(t, PaginatedTable(sampleView(10))))

	if rows := bodyRows(doc); len(rows) != 10 {
		t.Fatalf("rows = %d, want 10", len(rows))
	}
	status := findAll(doc, func(n *html.Node) bool { return hasClass(n, "page-status") })
	if len(status) != 1 || textOf(status[0]) != "Page 1 of 3" {
		t.Fatalf("page status = %v", status)
	}
}

func TestPaginatedTableLinksKeepQuery(t *testing.T) {
	t.Parallel()

	doc := parseFragment(t, renderString(t, PaginatedTable(sampleView(10))))

	next := findAll(doc, func(n *html.Node) bool {
		v, _ := attr(n, "rel")
		return n.Data == "a" && v == "next"
	})
	if len(next) != 1 {
		t.Fatalf("next links = %d, want 1", len(next))
	}
	if href, _ := attr(next[0], "href"); href != "/passports?page=2&search=boiler&size=10" {
		t.Fatalf("next href = %q", href)
	}
	if prev := findAll(doc, func(n *html.Node) bool { v, _ := attr(n, "rel"); return v == "prev" }); len(prev) != 0 {
		t.Fatal("first page should not link to a previous page")
	}

	current := findAll(doc, func(n *html.Node) bool { v, _ := attr(n, "aria-current"); return v == "page" })
	if len(current) != 1 || textOf(current[0]) != "1" {
		t.Fatalf("current page marker = %v", current)
	}
}

func TestPaginatedTableRowLinkAndActions(t *testing.T) {
	t.Parallel()

	doc := parseFragment(t, renderString(t, PaginatedTable(sampleView(2))))
	rows := bodyRows(doc)
	if link, _ := attr(rows[1], "data-row-link"); link != "/passports/2" {
		t.Fatalf("row link = %q", link)
	}
	anchors := findAll(rows[0], func(n *html.Node) bool { return n.Data == "a" })
	if len(anchors) != 2 {
		t.Fatalf("anchors in row = %d, want name link and edit action", len(anchors))
	}
	if href, _ := attr(anchors[1], "href"); href != "/passports/1/edit" {
		t.Fatalf("action href = %q", href)
	}
}

func TestPaginatedTableEmptyState(t *testing.T) {
	t.Parallel()

	view := sampleView(0)
	view.Data = paging.PaginatedData[row]{}
	doc := parseFragment(t, renderString(t, PaginatedTable(view)))

	rows := bodyRows(doc)
	if len(rows) != 1 || !hasClass(rows[0], "empty-row") {
		t.Fatalf("rows = %d, want single empty row", len(rows))
	}
	if got := textOf(rows[0]); got != "No records found." {
		t.Fatalf("empty text = %q", got)
	}
	status := findAll(doc, func(n *html.Node) bool { return hasClass(n, "page-status") })
	if textOf(status[0]) != "Page 1 of 1" {
		t.Fatalf("page status = %q", textOf(status[0]))
	}
}

func TestPaginatedTableSearchDebounceAndSizes(t *testing.T) {
	t.Parallel()

	doc := parseFragment(t, renderString(t, PaginatedTable(sampleView(1))))

	search := findAll(doc, func(n *html.Node) bool { v, _ := attr(n, "type"); return n.Data == "input" && v == "search" })
	if len(search) != 1 {
		t.Fatalf("search inputs = %d", len(search))
	}
	if trigger, _ := attr(search[0], "hx-trigger"); !strings.Contains(trigger, "delay:500ms") {
		t.Fatalf("hx-trigger = %q", trigger)
	}
	if id, _ := attr(search[0], "id"); id != "table-search" {
		t.Fatalf("search id = %q, want stable id for focus restore", id)
	}
	if value, _ := attr(search[0], "value"); value != "boiler" {
		t.Fatalf("search value = %q", value)
	}

	options := findAll(doc, func(n *html.Node) bool { return n.Data == "option" })
	if len(options) != len(paging.AllowedSizes()) {
		t.Fatalf("options = %d", len(options))
	}
	selected := findAll(doc, func(n *html.Node) bool { _, ok := attr(n, "selected"); return n.Data == "option" && ok })
	if len(selected) != 1 || textOf(selected[0]) != "10" {
		t.Fatalf("selected = %v", selected)
	}
}

func TestPaginatedTableEscapesValues(t *testing.T) {
	t.Parallel()

	view := sampleView(0)
	view.Data.Items = []row{{ID: 1, Name: `<script>alert(1)</script>`}}
	markup := renderString(t, PaginatedTable(view))
	if strings.Contains(markup, "<script>alert") {
		t.Fatal("cell value was not escaped")
	}
}

func TestColumnKinds(t *testing.T) {
	t.Parallel()

	field := FieldColumn("name", "Name", func(r row) string { return r.Name })
	actions := ActionsColumn[row]("Actions", nil)
	if field.Kind() != ColumnField || actions.Kind() != ColumnActions {
		t.Fatalf("kinds = %v, %v", field.Kind(), actions.Kind())
	}
	if field.Key() != "name" || actions.Header() != "Actions" {
		t.Fatalf("field key %q, actions header %q", field.Key(), actions.Header())
	}
}
