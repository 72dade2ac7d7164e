package templates

import (
	"fmt"
	"strings"

	"golang.org/x/text/message"
)

// Localizer provides translated strings for web templ components.
// *message.Printer satisfies it.
type Localizer interface {
	Sprintf(key message.Reference, args ...any) string
}

// T returns a translated string or a key-derived fallback.
func T(loc Localizer, key message.Reference, args ...any) string {
	if loc != nil {
		return loc.Sprintf(key, args...)
	}
	keyString, ok := key.(string)
	if !ok {
		return ""
	}
	if len(args) > 0 {
		return strings.TrimSpace(fmt.Sprintln(append([]any{keyString}, args...)...))
	}
	return keyString
}
