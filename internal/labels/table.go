// Package labels maps backend enum codes to display labels, colors and icons.
package labels

import "strings"

// Color is a display tone understood by the presentation layer
type Color string

const (
	ColorSuccess Color = "success"
	ColorWarning Color = "warning"
	ColorDanger  Color = "danger"
	ColorDefault Color = "default"
	ColorPrimary Color = "primary"
)

// Entry is the display tuple for one code
type Entry struct {
	Label string
	Color Color
	Icon  string
}

// Kind tells whether a code was found in its table
type Kind int

const (
	Unknown Kind = iota
	Known
)

// Resolved is the result of looking a code up. Unknown codes carry the
// fallback tuple: the raw code as label, ColorDefault and no icon.
type Resolved struct {
	Code string
	Kind Kind
	Entry
}

// Table is an immutable code to Entry association
type Table struct {
	entries  map[string]Entry
	foldCase bool
	empty    *Entry
}

// Option customizes a Table
type Option func(*Table)

// FoldCase makes lookups ignore case and surrounding whitespace
func FoldCase() Option {
	return func(t *Table) { t.foldCase = true }
}

// EmptyAs sets the entry returned for an empty code
func EmptyAs(e Entry) Option {
	return func(t *Table) { t.empty = &e }
}

// NewTable builds a table from entries. The map is copied.
func NewTable(entries map[string]Entry, opts ...Option) *Table {
	t := &Table{entries: make(map[string]Entry, len(entries))}
	for _, opt := range opts {
		opt(t)
	}
	for code, e := range entries {
		if e.Color == "" {
			e.Color = ColorDefault
		}
		t.entries[t.key(code)] = e
	}
	return t
}

func (t *Table) key(code string) string {
	if t.foldCase {
		return strings.ToUpper(strings.TrimSpace(code))
	}
	return code
}

// Resolve never fails; codes outside the table resolve to the fallback tuple
func (t *Table) Resolve(code string) Resolved {
	if t == nil {
		return Resolved{Code: code, Kind: Unknown, Entry: Entry{Label: code, Color: ColorDefault}}
	}
	if t.empty != nil && strings.TrimSpace(code) == "" {
		return Resolved{Code: code, Kind: Known, Entry: *t.empty}
	}
	if e, ok := t.entries[t.key(code)]; ok {
		return Resolved{Code: code, Kind: Known, Entry: e}
	}
	return Resolved{Code: code, Kind: Unknown, Entry: Entry{Label: code, Color: ColorDefault}}
}

// Label returns the display label for code
func (t *Table) Label(code string) string {
	return t.Resolve(code).Label
}

// Color returns the display color for code
func (t *Table) Color(code string) Color {
	return t.Resolve(code).Color
}

// Icon returns the icon for code, if the table defines one
func (t *Table) Icon(code string) (string, bool) {
	r := t.Resolve(code)
	return r.Icon, r.Icon != ""
}

// Len returns the number of codes in the table
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.entries)
}
