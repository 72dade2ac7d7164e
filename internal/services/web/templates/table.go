package templates

import (
	"context"
	"io"
	"strconv"
	"strings"

	"github.com/a-h/templ"
	"github.com/tuvarna/passport-admin/internal/services/web/platform/paging"
)

// ColumnKind tags the variant a Column holds.
type ColumnKind int

const (
	// ColumnField renders a value extracted from the item.
	ColumnField ColumnKind = iota
	// ColumnActions renders per-row controls.
	ColumnActions
)

const pageWindowRadius = 2

// Column is one table column: either a field column with an accessor or an
// actions column with a row renderer.
type Column[Item any] struct {
	kind   ColumnKind
	key    string
	header string
	value  func(Item) string
	render func(Item) templ.Component
}

// FieldColumn builds a column showing value(item) under header.
func FieldColumn[Item any](key, header string, value func(Item) string) Column[Item] {
	return Column[Item]{kind: ColumnField, key: key, header: header, value: value}
}

// ActionsColumn builds a column rendering controls for each item.
func ActionsColumn[Item any](header string, render func(Item) templ.Component) Column[Item] {
	return Column[Item]{kind: ColumnActions, key: "actions", header: header, render: render}
}

// Kind reports the column variant.
func (c Column[Item]) Kind() ColumnKind { return c.kind }

// Key returns the column identifier.
func (c Column[Item]) Key() string { return c.key }

// Header returns the column heading.
func (c Column[Item]) Header() string { return c.header }

// TableView describes one rendered page of a collection.
type TableView[Item any] struct {
	Data    paging.PaginatedData[Item]
	Columns []Column[Item]
	// Params is the request that produced Data; pagination links derive
	// from it.
	Params     paging.Params
	BasePath   string
	RowLink    func(Item) string
	Searchable bool
	Loc        Localizer
}

// PaginatedTable renders the table with search, page-size and pagination
// controls. Every control is a link or GET form targeting BasePath, so a
// page change re-runs the route loader.
func PaginatedTable[Item any](view TableView[Item]) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		data := view.Data.Normalize()
		params := view.Params.Normalize()
		hw := newHTMLWriter(w)

		hw.raw(`<section class="table-view">`)
		writeTableToolbar(hw, view.BasePath, params, view.Searchable, view.Loc)

		hw.raw(`<table class="data-table"><thead><tr>`)
		for _, col := range view.Columns {
			hw.raw(`<th scope="col"`)
			hw.attr("data-column", col.key)
			hw.raw(">")
			hw.text(col.header)
			hw.raw("</th>")
		}
		hw.raw("</tr></thead><tbody>")
		if len(data.Items) == 0 {
			hw.raw(`<tr class="empty-row"><td`)
			hw.attr("colspan", strconv.Itoa(max(len(view.Columns), 1)))
			hw.raw(">")
			hw.text(T(view.Loc, "core.table.empty"))
			hw.raw("</td></tr>")
		}
		for _, item := range data.Items {
			writeTableRow(ctx, hw, view, item)
		}
		hw.raw("</tbody></table>")

		writePagination(hw, view.BasePath, params, data.CurrentPage, data.PageCount(), data.TotalItems, view.Loc)
		hw.raw("</section>")
		return hw.err
	})
}

func writeTableRow[Item any](ctx context.Context, hw *htmlWriter, view TableView[Item], item Item) {
	link := ""
	if view.RowLink != nil {
		link = strings.TrimSpace(view.RowLink(item))
	}
	hw.raw("<tr")
	if link != "" {
		hw.attr("data-row-link", link)
	}
	hw.raw(">")
	linked := false
	for _, col := range view.Columns {
		switch col.kind {
		case ColumnActions:
			hw.raw(`<td class="actions">`)
			if col.render != nil {
				hw.component(ctx, col.render(item))
			}
		default:
			hw.raw("<td>")
			value := ""
			if col.value != nil {
				value = col.value(item)
			}
			if link != "" && !linked {
				hw.raw("<a")
				hw.attr("href", link)
				hw.raw(">")
				hw.text(value)
				hw.raw("</a>")
				linked = true
			} else {
				hw.text(value)
			}
		}
		hw.raw("</td>")
	}
	hw.raw("</tr>")
}

func writeTableToolbar(hw *htmlWriter, basePath string, params paging.Params, searchable bool, loc Localizer) {
	hw.raw(`<form class="table-toolbar" method="get"`)
	hw.attr("action", basePath)
	hw.raw(">")
	if searchable {
		hw.raw(`<input type="search" id="table-search"`)
		hw.attr("name", paging.SearchParam)
		hw.attr("value", params.Search)
		hw.attr("placeholder", T(loc, "core.table.search_placeholder"))
		hw.attr("aria-label", T(loc, "core.table.search_placeholder"))
		hw.attr("hx-get", basePath)
		hw.raw(` hx-trigger="keyup changed delay:500ms, search" hx-include="closest form" hx-push-url="true">`)
		hw.raw(`<button type="submit">`)
		hw.text(T(loc, "core.table.search_submit"))
		hw.raw("</button>")
	}
	hw.raw(`<label class="page-size">`)
	hw.text(T(loc, "core.table.page_size"))
	hw.raw(` <select data-autosubmit`)
	hw.attr("name", paging.SizeParam)
	hw.raw(">")
	for _, size := range paging.AllowedSizes() {
		value := strconv.Itoa(size)
		hw.raw("<option")
		hw.attr("value", value)
		hw.attrIf(size == params.Size, "selected")
		hw.raw(">")
		hw.text(value)
		hw.raw("</option>")
	}
	hw.raw(`</select></label><span class="htmx-indicator">`)
	hw.text(T(loc, "core.table.loading"))
	hw.raw("</span></form>")
}

func writePagination(hw *htmlWriter, basePath string, params paging.Params, current, total, totalItems int, loc Localizer) {
	hw.raw(`<nav class="pagination"`)
	hw.attr("aria-label", T(loc, "core.table.page_of", current, total))
	hw.raw(">")

	if current > 1 {
		hw.raw(`<a rel="prev"`)
		hw.attr("href", paging.URL(basePath, params.WithPage(current-1)))
		hw.raw(">")
	} else {
		hw.raw(`<span class="disabled" aria-disabled="true">`)
	}
	hw.text(T(loc, "core.table.previous"))
	if current > 1 {
		hw.raw("</a>")
	} else {
		hw.raw("</span>")
	}

	hw.raw(`<ol class="pages">`)
	for _, n := range paging.PageWindow(current, total, pageWindowRadius) {
		hw.raw("<li><a")
		hw.attr("href", paging.URL(basePath, params.WithPage(n)))
		if n == current {
			hw.raw(` aria-current="page"`)
		}
		hw.raw(">")
		hw.text(strconv.Itoa(n))
		hw.raw("</a></li>")
	}
	hw.raw("</ol>")

	if current < total {
		hw.raw(`<a rel="next"`)
		hw.attr("href", paging.URL(basePath, params.WithPage(current+1)))
		hw.raw(">")
	} else {
		hw.raw(`<span class="disabled" aria-disabled="true">`)
	}
	hw.text(T(loc, "core.table.next"))
	if current < total {
		hw.raw("</a>")
	} else {
		hw.raw("</span>")
	}

	hw.raw(`<span class="page-status">`)
	hw.text(T(loc, "core.table.page_of", current, total))
	hw.raw(`</span> <span class="page-total">`)
	hw.text(T(loc, "core.table.total", totalItems))
	hw.raw("</span></nav>")
}
