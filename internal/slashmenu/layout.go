package slashmenu

// Placement says which side of the input the menu is drawn on.
type Placement int

const (
	Below Placement = iota
	Above
)

func (p Placement) String() string {
	if p == Above {
		return "above"
	}

	return "below"
}

// Rect is an on-screen rectangle. Bottom and Right are exclusive.
type Rect struct {
	Top    int
	Left   int
	Bottom int
	Right  int
}

// Layout carries the measured rectangles of the widget container and its text input, in the same units.
type Layout struct {
	Container Rect
	Input     Rect
}

// Position places the menu relative to the container's top left corner. Below, Top is the first row of the
// menu. Above, Top is the row the menu's bottom edge rests on.
type Position struct {
	Top       int
	Left      int
	Placement Placement
}

// Metrics are the measurements used to place the menu.
type Metrics struct {
	// CharWidth approximates the width of one input character.
	CharWidth int
	// Gap separates the menu from the input.
	Gap int
}

var (
	// DefaultMetrics are the browser measurements, in pixels.
	DefaultMetrics = Metrics{CharWidth: 7, Gap: 5}
	// CellMetrics are exact for a monospace terminal, in cells.
	CellMetrics = Metrics{CharWidth: 1, Gap: 0}
)

func (l Layout) below(metrics Metrics, charsBeforeCursor int) Position {
	return Position{
		Top:       l.Input.Bottom - l.Container.Top + metrics.Gap,
		Left:      l.Input.Left - l.Container.Left + charsBeforeCursor*metrics.CharWidth,
		Placement: Below,
	}
}

func (l Layout) above(metrics Metrics) Position {
	return Position{
		Top:       l.Input.Top - l.Container.Top - metrics.Gap,
		Left:      l.Input.Left - l.Container.Left,
		Placement: Above,
	}
}
