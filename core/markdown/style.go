package markdown

import "strings"

// Style is a parsed inline style attribute: property name to value.
type Style map[string]string

// ParseStyle splits a declaration list such as "font-weight: bold; color: red".
// Declarations without a colon or with an empty property are skipped; a
// repeated property keeps its last value. Property names are lower-cased,
// values are kept as written.
func ParseStyle(s string) Style {
	style := Style{}
	for _, decl := range strings.Split(s, ";") {
		prop, value, ok := strings.Cut(decl, ":")
		if !ok {
			continue
		}
		prop = strings.ToLower(strings.TrimSpace(prop))
		if prop == "" {
			continue
		}
		style[prop] = strings.TrimSpace(value)
	}
	return style
}

// Markers resolves the style to one Markdown marker pair. Bold wins over
// italic, italic over underline; styles are never combined.
func (s Style) Markers() (prefix, suffix string, ok bool) {
	switch {
	case s["font-weight"] == "bold" || s["font-weight"] == "700":
		return "**", "**", true
	case s["font-style"] == "italic":
		return "*", "*", true
	case s["text-decoration"] == "underline":
		return "__", "__", true
	}
	return "", "", false
}
