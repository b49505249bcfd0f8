package hbars

import "strings"

// EscapeFunc transforms a stringified value before it is written for
// a double-brace statement. Triple-brace and raw-statement output
// always bypasses it.
type EscapeFunc func(string) string

var htmlEscapeReplacer = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#x27;",
	"`", "&#x60;",
	"=", "&#x3D;",
)

// EscapeHTML is the default escape function, matching the character
// set Handlebars itself escapes.
func EscapeHTML(s string) string {
	return htmlEscapeReplacer.Replace(s)
}

// NoEscape performs no transformation; NewEngine selects it when
// AutoEscape is off, and engines with a non-HTML output format can use
// it.
func NoEscape(s string) string { return s }
