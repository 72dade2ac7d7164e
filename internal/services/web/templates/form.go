package templates

import (
	"context"
	"io"
	"strings"

	"github.com/a-h/templ"
	"github.com/tuvarna/passport-admin/internal/services/web/platform/submitguard"
	"github.com/tuvarna/passport-admin/internal/services/web/platform/validation"
)

// Field is one labelled form input.
type Field struct {
	Name         string
	Label        string
	Type         string
	Value        string
	Required     bool
	Min          string
	Autocomplete string
	Error        string
}

// FieldErrorText localizes the validation error recorded for name.
func FieldErrorText(loc Localizer, errs validation.Errors, name string) string {
	fe, ok := errs.Get(name)
	if !ok {
		return ""
	}
	return T(loc, fe.Key, fe.Args...)
}

// InputField renders a label, an input and its inline error.
func InputField(f Field) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		hw := newHTMLWriter(w)
		id := "field-" + f.Name
		inputType := f.Type
		if inputType == "" {
			inputType = "text"
		}
		class := "field"
		if f.Error != "" {
			class += " has-error"
		}
		hw.raw("<div")
		hw.attr("class", class)
		hw.raw("><label")
		hw.attr("for", id)
		hw.raw(">")
		hw.text(f.Label)
		hw.raw("</label><input")
		hw.attr("id", id)
		hw.attr("name", f.Name)
		hw.attr("type", inputType)
		if inputType != "password" {
			hw.attr("value", f.Value)
		}
		if f.Min != "" {
			hw.attr("min", f.Min)
		}
		if f.Autocomplete != "" {
			hw.attr("autocomplete", f.Autocomplete)
		}
		hw.attrIf(f.Required, "required")
		if f.Error != "" {
			hw.raw(` aria-invalid="true"`)
			hw.attr("aria-describedby", id+"-error")
		}
		hw.raw(">")
		if f.Error != "" {
			hw.raw(`<p class="field-error"`)
			hw.attr("id", id+"-error")
			hw.raw(">")
			hw.text(f.Error)
			hw.raw("</p>")
		}
		hw.raw("</div>")
		return hw.err
	})
}

// FormOptions describes a POST form guarded by a submit token.
type FormOptions struct {
	Action       string
	SubmitToken  string
	SubmitLabel  string
	SubmitClass  string
	ErrorMessage string
	CancelURL    string
	Hidden       map[string]string
	Loc          Localizer
}

// Form renders a POST form around fields. While a submission is in flight
// the submit button is disabled and the busy indicator is shown.
func Form(opts FormOptions, fields ...templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := newHTMLWriter(w)
		hw.raw(`<form class="form" method="post" novalidate`)
		hw.attr("action", opts.Action)
		hw.raw(` hx-disabled-elt="find button[type=submit]" hx-indicator="find .htmx-indicator">`)
		if msg := strings.TrimSpace(opts.ErrorMessage); msg != "" {
			hw.raw(`<p class="form-error" role="alert">`)
			hw.text(msg)
			hw.raw("</p>")
		}
		hw.hidden(submitguard.FieldName, opts.SubmitToken)
		for _, name := range sortedKeys(opts.Hidden) {
			hw.hidden(name, opts.Hidden[name])
		}
		for _, field := range fields {
			hw.component(ctx, field)
		}

		label := opts.SubmitLabel
		if label == "" {
			label = T(opts.Loc, "core.form.save")
		}
		class := "button primary"
		if opts.SubmitClass != "" {
			class = opts.SubmitClass
		}
		hw.raw(`<div class="form-actions"><button type="submit"`)
		hw.attr("class", class)
		hw.raw(">")
		hw.text(label)
		hw.raw(`</button><span class="htmx-indicator" aria-live="polite">`)
		hw.text(T(opts.Loc, "core.form.submitting"))
		hw.raw("</span>")
		if opts.CancelURL != "" {
			hw.raw(`<a class="button"`)
			hw.attr("href", opts.CancelURL)
			hw.raw(">")
			hw.text(T(opts.Loc, "core.form.cancel"))
			hw.raw("</a>")
		}
		hw.raw("</div></form>")
		return hw.err
	})
}

// PageHeader renders the page heading with optional actions.
func PageHeader(title string, actions ...templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := newHTMLWriter(w)
		hw.raw(`<div class="page-header"><h1>`)
		hw.text(title)
		hw.raw("</h1>")
		if len(actions) > 0 {
			hw.raw(`<div class="page-actions">`)
			for _, a := range actions {
				hw.component(ctx, a)
			}
			hw.raw("</div>")
		}
		hw.raw("</div>")
		return hw.err
	})
}

// LinkButton renders a link styled as a button.
func LinkButton(label, href, class string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		hw := newHTMLWriter(w)
		hw.raw("<a")
		hw.attr("class", strings.TrimSpace("button "+class))
		hw.attr("href", href)
		hw.raw(">")
		hw.text(label)
		hw.raw("</a>")
		return hw.err
	})
}

// DescriptionItem is one term/value pair of a details card.
type DescriptionItem struct {
	Term  string
	Value string
}

// DescriptionList renders a details card.
func DescriptionList(items []DescriptionItem) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		hw := newHTMLWriter(w)
		hw.raw(`<dl class="details">`)
		for _, item := range items {
			hw.raw("<dt>")
			hw.text(item.Term)
			hw.raw("</dt><dd>")
			hw.text(item.Value)
			hw.raw("</dd>")
		}
		hw.raw("</dl>")
		return hw.err
	})
}

// Paragraph renders escaped text in a paragraph with an optional class.
func Paragraph(text, class string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		hw := newHTMLWriter(w)
		hw.raw("<p")
		if class != "" {
			hw.attr("class", class)
		}
		hw.raw(">")
		hw.text(text)
		hw.raw("</p>")
		return hw.err
	})
}

// Card renders a bordered section grouping children.
func Card(id string, children ...templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		hw := newHTMLWriter(w)
		hw.raw(`<section class="card"`)
		if id != "" {
			hw.attr("id", id)
		}
		hw.raw(">")
		for _, child := range children {
			hw.component(ctx, child)
		}
		hw.raw("</section>")
		return hw.err
	})
}
