package buffer

// The cursor does not hold a reference to its Text. Each movement is given the
// Text it moves through: the Text is the city, and the Cursor is the car.

// A Region represents a selected run of a Text. It is asserted that Start is
// less than or equal to End, and End is exclusive. A Region with Start == End
// selects nothing.
type Region struct {
	Start int
	End   int
}

// NewRegion returns the Region between a and b, clamped to the bounds of in.
// The bounds are clamped independently and then ordered, so NewRegion never
// produces an inverted Region.
func NewRegion(in *Text, a, b int) Region {
	a, b = in.Clamp(a), in.Clamp(b)
	if a > b {
		a, b = b, a
	}
	return Region{a, b}
}

// Empty reports whether the Region selects nothing.
func (r Region) Empty() bool {
	return r.Start == r.End
}

// A Cursor is a rune offset into a Text, somewhere in [0, Len()]. The zero
// value is at the start of any Text.
type Cursor struct {
	pos int
}

// Offset returns the rune offset of the Cursor.
func (c Cursor) Offset() int {
	return c.pos
}

// Set moves the Cursor to pos, clamped within the bounds of in.
func (c Cursor) Set(in *Text, pos int) Cursor {
	c.pos = in.Clamp(pos)
	return c
}

// Move shifts the Cursor by delta runes, stopping at either end of in. Any
// delta is safe, including the extremes of int.
func (c Cursor) Move(in *Text, delta int) Cursor {
	c.pos = in.Clamp(c.pos) // The Text may have shrunk since the last move

	end := in.Len()
	switch {
	case delta < -c.pos:
		c.pos = 0
	case delta > end-c.pos:
		c.pos = end
	default:
		c.pos += delta
	}
	return c
}
