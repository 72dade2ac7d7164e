// Package catalog loads the YAML message catalogs for the web surface and
// registers them with golang.org/x/text/message.
package catalog

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path"
	"slices"
	"sort"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"
)

// BaseLocale is the fallback locale every catalog set must define.
const BaseLocale = "en-US"

const catalogGlob = "locales/*/*.yaml"

// file mirrors one locales/<locale>/<namespace>.yaml document.
type file struct {
	Locale    string            `yaml:"locale"`
	Namespace string            `yaml:"namespace"`
	Messages  map[string]string `yaml:"messages"`
}

type localeCatalog struct {
	namespaces map[string][]string
	messages   map[string]string
}

// Bundle holds the messages of every loaded locale.
type Bundle struct {
	locales map[string]*localeCatalog
}

//go:embed locales/*/*.yaml
var embedded embed.FS

var defaultBundle = mustLoadAndRegister()

// Default returns the embedded bundle, already registered with x/text.
func Default() *Bundle {
	return defaultBundle
}

// LoadEmbedded parses the catalogs compiled into the binary.
func LoadEmbedded() (*Bundle, error) {
	return LoadFromFS(embedded)
}

// LoadFromFS parses every locales/<locale>/<namespace>.yaml file in fsys.
func LoadFromFS(fsys fs.FS) (*Bundle, error) {
	paths, err := fs.Glob(fsys, catalogGlob)
	if err != nil {
		return nil, fmt.Errorf("glob locale catalogs: %w", err)
	}
	if len(paths) == 0 {
		return nil, errors.New("no catalog files found")
	}
	sort.Strings(paths)

	bundle := &Bundle{locales: map[string]*localeCatalog{}}
	for _, p := range paths {
		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return nil, fmt.Errorf("read catalog %s: %w", p, err)
		}
		parsed, err := decodeFile(data)
		if err != nil {
			return nil, fmt.Errorf("parse catalog %s: %w", p, err)
		}
		if err := bundle.add(p, parsed); err != nil {
			return nil, err
		}
	}
	if !bundle.HasLocale(BaseLocale) {
		return nil, fmt.Errorf("base locale %s is not defined in catalogs", BaseLocale)
	}
	return bundle, nil
}

func decodeFile(data []byte) (file, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	var out file
	if err := dec.Decode(&out); err != nil {
		if errors.Is(err, io.EOF) {
			return file{}, errors.New("empty document")
		}
		return file{}, err
	}
	return out, nil
}

func (b *Bundle) add(p string, f file) error {
	wantLocale := path.Base(path.Dir(p))
	wantNamespace := strings.TrimSuffix(path.Base(p), path.Ext(p))

	locale := strings.TrimSpace(f.Locale)
	switch {
	case locale == "":
		return fmt.Errorf("catalog %s: locale is required", p)
	case locale != wantLocale:
		return fmt.Errorf("catalog %s: locale %q must match path locale %q", p, locale, wantLocale)
	}
	if _, err := language.Parse(locale); err != nil {
		return fmt.Errorf("catalog %s: invalid locale %q: %w", p, locale, err)
	}

	namespace := strings.TrimSpace(f.Namespace)
	switch {
	case namespace == "":
		return fmt.Errorf("catalog %s: namespace is required", p)
	case namespace != wantNamespace:
		return fmt.Errorf("catalog %s: namespace %q must match filename %q", p, namespace, wantNamespace)
	}
	if len(f.Messages) == 0 {
		return fmt.Errorf("catalog %s: messages are required", p)
	}

	lc := b.locales[locale]
	if lc == nil {
		lc = &localeCatalog{namespaces: map[string][]string{}, messages: map[string]string{}}
		b.locales[locale] = lc
	}
	if _, exists := lc.namespaces[namespace]; exists {
		return fmt.Errorf("catalog %s: namespace %q already defined for %s", p, namespace, locale)
	}

	keys := make([]string, 0, len(f.Messages))
	for rawKey, value := range f.Messages {
		key := strings.TrimSpace(rawKey)
		if key == "" {
			return fmt.Errorf("catalog %s: message key cannot be blank", p)
		}
		if owner, _, _ := strings.Cut(key, "."); owner != namespace {
			return fmt.Errorf("catalog %s: key %q must be prefixed with %q", p, key, namespace+".")
		}
		if _, exists := lc.messages[key]; exists {
			return fmt.Errorf("catalog %s: duplicate key %q in %s", p, key, locale)
		}
		lc.messages[key] = value
		keys = append(keys, key)
	}
	sort.Strings(keys)
	lc.namespaces[namespace] = keys
	return nil
}

// Register installs every message into the x/text default catalog. Each
// locale is also registered under its bare language (bg-BG also as bg).
// Keys missing from a locale are filled from BaseLocale.
func (b *Bundle) Register() error {
	if b == nil {
		return nil
	}
	base := b.locales[BaseLocale]
	for _, locale := range b.Locales() {
		tag, err := language.Parse(locale)
		if err != nil {
			return fmt.Errorf("parse locale tag %q: %w", locale, err)
		}
		tags := []language.Tag{tag}
		if lang, conf := tag.Base(); conf != language.No {
			if bare := language.Make(lang.String()); bare.String() != tag.String() {
				tags = append(tags, bare)
			}
		}
		for _, key := range b.Keys(BaseLocale) {
			value, ok := b.locales[locale].messages[key]
			if !ok {
				value = base.messages[key]
			}
			for _, t := range tags {
				if err := message.SetString(t, key, value); err != nil {
					return fmt.Errorf("register %s/%s: %w", locale, key, err)
				}
			}
		}
	}
	return nil
}

// HasLocale reports whether locale was loaded.
func (b *Bundle) HasLocale(locale string) bool {
	if b == nil {
		return false
	}
	_, ok := b.locales[strings.TrimSpace(locale)]
	return ok
}

// Locales lists the loaded locales in sorted order.
func (b *Bundle) Locales() []string {
	if b == nil {
		return nil
	}
	out := make([]string, 0, len(b.locales))
	for locale := range b.locales {
		out = append(out, locale)
	}
	sort.Strings(out)
	return out
}

// Namespaces lists the namespaces loaded for locale.
func (b *Bundle) Namespaces(locale string) []string {
	if b == nil {
		return nil
	}
	lc := b.locales[strings.TrimSpace(locale)]
	if lc == nil {
		return nil
	}
	out := make([]string, 0, len(lc.namespaces))
	for ns := range lc.namespaces {
		out = append(out, ns)
	}
	sort.Strings(out)
	return out
}

// Keys returns every message key of locale in sorted order.
func (b *Bundle) Keys(locale string) []string {
	if b == nil {
		return nil
	}
	lc := b.locales[strings.TrimSpace(locale)]
	if lc == nil {
		return nil
	}
	out := make([]string, 0, len(lc.messages))
	for key := range lc.messages {
		out = append(out, key)
	}
	slices.Sort(out)
	return out
}

// Message returns the value for key in locale, falling back to BaseLocale.
func (b *Bundle) Message(locale, key string) (string, bool) {
	if b == nil {
		return "", false
	}
	key = strings.TrimSpace(key)
	if lc := b.locales[strings.TrimSpace(locale)]; lc != nil {
		if value, ok := lc.messages[key]; ok {
			return value, true
		}
	}
	if lc := b.locales[BaseLocale]; lc != nil {
		value, ok := lc.messages[key]
		return value, ok
	}
	return "", false
}

func mustLoadAndRegister() *Bundle {
	bundle, err := LoadEmbedded()
	if err != nil {
		panic(err)
	}
	if err := bundle.Register(); err != nil {
		panic(err)
	}
	return bundle
}
