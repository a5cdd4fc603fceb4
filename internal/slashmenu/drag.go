package slashmenu

// Drag tracks the vertical offset of the widget. While active the offset follows the pointer 1:1.
type Drag struct {
	active  bool
	startY  int
	offset  int
	bounded bool
	minY    int
	maxY    int
}

func (d *Drag) Active() bool { return d.active }
func (d *Drag) Offset() int  { return d.offset }

// Begin starts a drag with the pointer at y.
func (d *Drag) Begin(y int) {
	d.active = true
	d.startY = y - d.offset
}

// Move follows the pointer to y and reports whether the offset changed. It does nothing when no drag is
// active.
func (d *Drag) Move(y int) bool {
	if !d.active {
		return false
	}

	next := d.clamp(y - d.startY)
	if next == d.offset {
		return false
	}

	d.offset = next

	return true
}

func (d *Drag) End() {
	d.active = false
}

// SetBounds limits the offset to [minY, maxY]. The current offset is clamped immediately.
func (d *Drag) SetBounds(minY int, maxY int) {
	d.bounded = true
	d.minY = min(minY, maxY)
	d.maxY = max(minY, maxY)
	d.offset = d.clamp(d.offset)
}

// ClearBounds makes the offset unconstrained again.
func (d *Drag) ClearBounds() {
	d.bounded = false
}

func (d *Drag) clamp(offset int) int {
	if !d.bounded {
		return offset
	}

	return max(d.minY, min(offset, d.maxY))
}

// Acquire begins a drag at y and returns the capture that routes pointer movement to it.
func (d *Drag) Acquire(y int) *Capture {
	d.Begin(y)

	return &Capture{drag: d}
}

// Capture is the pointer capture held for the duration of a drag. Every pointer event goes to the drag
// while it is held, wherever the pointer is. Release must run when the owner is torn down; it is safe to
// call any number of times and on a nil capture.
type Capture struct {
	drag     *Drag
	released bool
}

func (c *Capture) Held() bool {
	return c != nil && !c.released
}

// Move forwards pointer movement to the captured drag.
func (c *Capture) Move(y int) bool {
	if !c.Held() {
		return false
	}

	return c.drag.Move(y)
}

// Release ends the drag and drops the capture.
func (c *Capture) Release() {
	if !c.Held() {
		return
	}

	c.released = true
	c.drag.End()
}
