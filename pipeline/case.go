package pipeline

import (
	"reflect"
	"strings"
	"unicode"
)

// Namer lets a request report its own name for logs and errors.
type Namer interface {
	RequestName() string
}

// RequestName returns a stable snake_case name for req: the Namer result
// when implemented, otherwise the reflected type name without package or
// pointer prefix (*checklists.GetChecklistItems -> "get_checklist_items").
func RequestName(req Request) string {
	if req == nil {
		return "nil"
	}
	if n, ok := req.(Namer); ok {
		return n.RequestName()
	}

	t := reflect.TypeOf(req)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	name := t.Name()
	if name == "" {
		name = t.String()
	}
	return toSnake(name)
}

// toSnake converts the provided string to snake_case using ASCII-aware rules.
// Punctuation from reflected type names (generic brackets, package dots) is
// folded into single underscores.
func toSnake(s string) string {
	if s == "" {
		return ""
	}

	runes := []rune(s)
	var b strings.Builder
	b.Grow(len(runes) + len(runes)/2)

	lastUnderscore := false

	for i := 0; i < len(runes); i++ {
		r := runes[i]

		switch {
		case unicode.IsUpper(r):
			if b.Len() > 0 {
				prev := runes[i-1]
				nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
				if (unicode.IsLower(prev) || unicode.IsDigit(prev) || nextLower) && !lastUnderscore {
					b.WriteByte('_')
					lastUnderscore = true
				}
			}
			b.WriteRune(unicode.ToLower(r))
			lastUnderscore = false

		case unicode.IsLower(r):
			b.WriteRune(r)
			lastUnderscore = false

		case unicode.IsDigit(r):
			if b.Len() > 0 {
				prev := runes[i-1]
				if !unicode.IsDigit(prev) && prev != '_' && !lastUnderscore {
					b.WriteByte('_')
				}
			}
			b.WriteRune(r)
			lastUnderscore = false

		case r == '_':
			if !lastUnderscore && b.Len() > 0 {
				b.WriteByte('_')
				lastUnderscore = true
			}

		case r == '-' || unicode.IsSpace(r):
			if !lastUnderscore && b.Len() > 0 {
				b.WriteByte('_')
				lastUnderscore = true
			}

		default:
			if !lastUnderscore && b.Len() > 0 {
				b.WriteByte('_')
				lastUnderscore = true
			}
		}
	}

	return strings.Trim(b.String(), "_")
}
