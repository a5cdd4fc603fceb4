// Package slashmenu implements the state machine behind the slash-command input: a text input that opens a
// filtered block-type menu when its text starts with "/", can open the full menu from an explicit control,
// and can be dragged vertically by a handle. It holds no rendering code; callers feed it edits, key presses,
// pointer positions and on-screen rectangles, then draw what it reports.
package slashmenu

import (
	"slices"
	"strings"
	"unicode/utf8"
)

// Trigger is the leading character that turns input text into a menu query.
const Trigger = "/"

var defaultItems = []string{"text", "text-area", "select"}

// Mode is the visibility state of the menu.
type Mode int

const (
	Closed Mode = iota
	OpenBySlash
	OpenByButton
)

func (m Mode) String() string {
	switch m {
	case OpenBySlash:
		return "open-by-slash"
	case OpenByButton:
		return "open-by-button"
	case Closed:
		fallthrough
	default:
		return "closed"
	}
}

// Entry is a visible menu item split into the part matching the search term and the remainder.
type Entry struct {
	Label string
	Match string
	Rest  string
}

// Menu tracks the input text, menu mode and placement, the last selection and the drag offset of one widget.
type Menu struct {
	items    []string
	metrics  Metrics
	input    string
	cursor   int
	mode     Mode
	position Position
	selected string
	drag     Drag
}

// New returns a closed menu over the fixed item list.
func New(metrics Metrics) *Menu {
	return &Menu{
		items:   slices.Clone(defaultItems),
		metrics: metrics,
	}
}

// Items returns every menu label in display order.
func (m *Menu) Items() []string {
	return slices.Clone(m.items)
}

func (m *Menu) Input() string      { return m.input }
func (m *Menu) Cursor() int        { return m.cursor }
func (m *Menu) Mode() Mode         { return m.mode }
func (m *Menu) IsOpen() bool       { return m.mode != Closed }
func (m *Menu) Position() Position { return m.position }
func (m *Menu) Selected() string   { return m.selected }
func (m *Menu) Drag() *Drag        { return &m.drag }
func (m *Menu) Metrics() Metrics   { return m.metrics }

// SetMetrics changes the measurements used by the next placement.
func (m *Menu) SetMetrics(metrics Metrics) {
	m.metrics = metrics
}

// Term is the search term: the input after the leading trigger. It is empty when the input is not a query.
func (m *Menu) Term() string {
	term, found := strings.CutPrefix(m.input, Trigger)
	if !found {
		return ""
	}

	return term
}

// Edit applies a change of the input text. cursor is the caret offset in runes after the change.
// Text starting with the trigger opens the menu below the caret, anything else closes it.
func (m *Menu) Edit(value string, cursor int, layout Layout) {
	m.input = value
	m.cursor = clampCursor(value, cursor)

	if !strings.HasPrefix(value, Trigger) {
		m.mode = Closed

		return
	}

	m.mode = OpenBySlash
	m.position = layout.below(m.metrics, m.cursor)
}

// OpenMenu opens the unfiltered menu above the input, as the explicit open control does.
func (m *Menu) OpenMenu(layout Layout) {
	m.mode = OpenByButton
	m.position = layout.above(m.metrics)
}

// Close hides the menu without touching the input.
func (m *Menu) Close() {
	m.mode = Closed
}

// Submit handles the enter key. When the input is a query whose term names an item exactly, ignoring case,
// the item becomes the selection, the input is cleared and the menu closes. Otherwise nothing changes.
func (m *Menu) Submit() bool {
	if !strings.HasPrefix(m.input, Trigger) {
		return false
	}

	item, found := m.lookup(m.Term())
	if !found {
		return false
	}

	m.selected = item
	m.input = ""
	m.cursor = 0
	m.mode = Closed

	return true
}

func (m *Menu) lookup(term string) (string, bool) {
	term = strings.ToLower(term)
	for _, item := range m.items {
		if strings.ToLower(item) == term {
			return item, true
		}
	}

	return "", false
}

// Visible returns the entries to draw for the current mode. A closed menu has none.
func (m *Menu) Visible() []Entry {
	switch m.mode {
	case OpenByButton:
		entries := make([]Entry, len(m.items))
		for idx, item := range m.items {
			entries[idx] = Entry{Label: item, Rest: item}
		}

		return entries
	case OpenBySlash:
		term := m.Term()
		matched := Filter(m.items, term)
		entries := make([]Entry, len(matched))
		for idx, item := range matched {
			entries[idx] = split(item, utf8.RuneCountInString(term))
		}

		return entries
	case Closed:
		fallthrough
	default:
		return nil
	}
}

// Filter keeps the items whose label starts with the lower cased term. An empty term keeps everything.
func Filter(items []string, term string) []string {
	term = strings.ToLower(term)
	filtered := make([]string, 0, len(items))
	for _, item := range items {
		if strings.HasPrefix(strings.ToLower(item), term) {
			filtered = append(filtered, item)
		}
	}

	return filtered
}

func split(label string, runes int) Entry {
	labelRunes := []rune(label)
	runes = min(runes, len(labelRunes))

	return Entry{
		Label: label,
		Match: string(labelRunes[:runes]),
		Rest:  string(labelRunes[runes:]),
	}
}

func clampCursor(value string, cursor int) int {
	return max(0, min(cursor, utf8.RuneCountInString(value)))
}
