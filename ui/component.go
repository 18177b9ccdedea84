package ui

// baseComponent can be embedded in a component's struct to hide a few of the
// boilerplate fields and functions. After constructing a component, call
// SetPos() and SetSize() before drawing it.
type baseComponent struct {
	focused       bool
	x, y          int
	width, height int
	theme         *Theme
}

func (c *baseComponent) SetFocused(v bool) {
	c.focused = v
}

func (c *baseComponent) SetPos(x, y int) {
	c.x, c.y = x, y
}

func (c *baseComponent) SetSize(width, height int) {
	c.width, c.height = width, height
}
