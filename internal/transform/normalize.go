package transform

import (
	"context"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"callclean/internal/schema"
	"callclean/internal/table"
)

// PhoneNumber keeps only ASCII digits. A cell left empty becomes
// schema.UnknownPhone; the check runs after stripping so "n/a" is caught too.
type PhoneNumber struct {
	Column string
}

func (s PhoneNumber) Name() string { return "phone_number" }

func (s PhoneNumber) Apply(_ context.Context, t *table.Table) (int, error) {
	return t.MapColumn(s.Column, func(v table.Value) (table.Value, error) {
		d := Digits(v.Str())
		if d == "" {
			d = schema.UnknownPhone
		}
		return table.Text(d), nil
	})
}

// Digits returns s with every byte outside '0'..'9' removed.
func Digits(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if c := s[i]; c >= '0' && c <= '9' {
			b.WriteByte(c)
		}
	}
	return b.String()
}

var boolSynonyms = map[string]bool{
	"Yes": true, "Y": true, "TRUE": true,
	"No": false, "N": false, "FALSE": false,
}

// Booleans maps the case-sensitive synonyms to booleans, then coerces the
// rest: empty or null is false, other text takes Unmapped.
type Booleans struct {
	Columns  []string
	Unmapped bool
}

func (s Booleans) Name() string { return "booleans" }

func (s Booleans) Apply(_ context.Context, t *table.Table) (int, error) {
	total := 0
	for _, c := range s.Columns {
		n, err := t.MapColumn(c, s.coerce)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

func (s Booleans) coerce(v table.Value) (table.Value, error) {
	switch v.Kind() {
	case table.KindBool:
		return v, nil
	case table.KindNull:
		return table.Bool(false), nil
	case table.KindText:
		if b, ok := boolSynonyms[v.Str()]; ok {
			return table.Bool(b), nil
		}
		if v.Str() == "" {
			return table.Bool(false), nil
		}
		return table.Bool(s.Unmapped), nil
	default:
		return v, fmt.Errorf("%w: %s cell", table.ErrCoercion, v.Kind())
	}
}

// Trim strips surrounding whitespace from text cells and, with Title set,
// title-cases every whitespace-separated word.
type Trim struct {
	Columns []string
	Title   bool
}

func (s Trim) Name() string {
	if s.Title {
		return "title"
	}
	return "trim"
}

func (s Trim) Apply(_ context.Context, t *table.Table) (int, error) {
	lower := cases.Lower(language.English)
	total := 0
	for _, c := range s.Columns {
		n, err := t.MapColumn(c, func(v table.Value) (table.Value, error) {
			if v.Kind() != table.KindText {
				return v, nil
			}
			out := strings.TrimSpace(v.Str())
			if s.Title {
				out = TitleWords(out, lower)
			}
			return table.Text(out), nil
		})
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// TitleWords upper-cases the first letter of each whitespace-separated word
// and lowercases everything else. Separators are kept as they are, so
// "mary-ann" becomes "Mary-ann" and "o'neil" becomes "O'neil".
func TitleWords(s string, lower cases.Caser) string {
	var b strings.Builder
	b.Grow(len(s))
	start := -1
	for i, r := range s {
		if unicode.IsSpace(r) {
			if start >= 0 {
				b.WriteString(titleWord(s[start:i], lower))
				start = -1
			}
			b.WriteRune(r)
			continue
		}
		if start < 0 {
			start = i
		}
	}
	if start >= 0 {
		b.WriteString(titleWord(s[start:], lower))
	}
	return b.String()
}

func titleWord(w string, lower cases.Caser) string {
	i := strings.IndexFunc(w, unicode.IsLetter)
	if i < 0 {
		return lower.String(w)
	}
	r, size := utf8.DecodeRuneInString(w[i:])
	return lower.String(w[:i]) + string(unicode.ToTitle(r)) + lower.String(w[i+size:])
}
