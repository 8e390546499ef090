package ui

import (
	"github.com/gdamore/tcell/v2"
)

// A Component is a rectangle of the screen that draws itself and may take
// events: the TextEdit and the Labels of the status line. Position and size
// are set by the owner after construction, and again when the screen resizes.
type Component interface {
	Draw(tcell.Screen)
	// A focused Component owns the terminal cursor.
	SetFocused(bool)
	SetTheme(*Theme)

	GetPos() (x, y int)
	SetPos(x, y int)
	GetSize() (w, h int)
	SetSize(w, h int)

	// HandleEvent returns true if the Component used the event, and false if
	// the owner should handle it instead.
	HandleEvent(tcell.Event) bool
}

// baseComponent holds the state every Component has. Embed it to get the
// Component methods other than Draw and HandleEvent.
type baseComponent struct {
	focused       bool
	x, y          int
	width, height int
	theme         *Theme // nil draws with DefaultTheme
}

func (c *baseComponent) SetFocused(v bool) {
	c.focused = v
}

func (c *baseComponent) SetTheme(theme *Theme) {
	c.theme = theme
}

func (c *baseComponent) GetPos() (int, int) {
	return c.x, c.y
}

func (c *baseComponent) SetPos(x, y int) {
	c.x, c.y = x, y
}

func (c *baseComponent) GetSize() (int, int) {
	return c.width, c.height
}

func (c *baseComponent) SetSize(width, height int) {
	c.width, c.height = width, height
}
