package ui

import (
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// Align defines the text alignment of a label.
type Align uint8

const (
	// AlignLeft is the normal text alignment where text is aligned to the left
	// of its bounding box.
	AlignLeft Align = iota
	// AlignRight causes text to be aligned to the right of its bounding box.
	AlignRight
)

// A Label is a component for rendering one line of text. The text is cut to
// fit within the bounding box, and the rest of the box is filled with the
// label's style.
type Label struct {
	Text      string
	Alignment Align
	StyleKey  string // Theme key to draw with; "StatusBar" if empty

	baseComponent
}

func NewLabel(text string, theme *Theme) *Label {
	return &Label{
		Text:          text,
		baseComponent: baseComponent{theme: theme, height: 1},
	}
}

func (l *Label) Draw(s tcell.Screen) {
	key := l.StyleKey
	if key == "" {
		key = "StatusBar"
	}
	style := l.theme.GetOrDefault(key)

	DrawRect(s, l.x, l.y, l.width, l.height, ' ', style)

	text := runewidth.Truncate(l.Text, l.width, "…")
	x := l.x
	if l.Alignment == AlignRight {
		x = l.x + l.width - runewidth.StringWidth(text)
	}
	DrawStr(s, x, l.y, text, style)
}

// HandleEvent does nothing: a Label never handles events.
func (l *Label) HandleEvent(tcell.Event) bool {
	return false
}
