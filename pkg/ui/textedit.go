package ui

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/fivemoreminix/broadnic/pkg/buffer"
	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// TextEdit is a field for line-based editing of a buffer.Document. It decides
// how keys move the cursor and turns typed or pasted text into Document edits.
type TextEdit struct {
	Document    *buffer.Document
	LineNumbers bool   // Whether to render line numbers (and therefore the column)
	Dirty       bool   // Whether the document has been edited since it was saved
	TabSize     int    // How many spaces a tab inserts; zero inserts '\t' itself
	MaxColumn   int    // The cursor does not move right past this column
	FilePath    string // Will be empty if the document has no file yet

	screen           tcell.Screen // We keep our own reference to the screen for cursor purposes.
	scrollx, scrolly int          // X and Y offset of view, known as scroll

	baseComponent
}

// NewTextEdit returns a TextEdit for doc. A nil doc starts an empty Document.
// If filePath is empty, it can be assumed that the TextEdit has no file
// association.
func NewTextEdit(screen tcell.Screen, filePath string, doc *buffer.Document, theme *Theme) *TextEdit {
	if doc == nil {
		doc = buffer.New()
	}
	return &TextEdit{
		Document:    doc,
		LineNumbers: true,
		TabSize:     2,
		MaxColumn:   80,
		FilePath:    filePath,

		screen:        screen,
		baseComponent: baseComponent{theme: theme},
	}
}

// Insert writes `contents` at the cursor. Each '\n' (or "\r\n") starts a new
// line below the cursor, and each tab becomes TabSize spaces. Every other
// byte is inserted as it is. Inserting nothing leaves the TextEdit clean.
func (t *TextEdit) Insert(contents string) {
	if len(contents) == 0 {
		return
	}
	t.Dirty = true

	var tab []byte
	if t.TabSize > 0 {
		tab = []byte(strings.Repeat(" ", t.TabSize))
	} else {
		tab = []byte{'\t'}
	}

	for len(contents) > 0 {
		i := strings.IndexAny(contents, "\n\t")
		if i < 0 {
			t.Document.InsertTextBeforeCursor([]byte(contents))
			break
		}

		switch contents[i] {
		case '\n':
			text := strings.TrimSuffix(contents[:i], "\r")
			if len(text) > 0 {
				t.Document.InsertTextBeforeCursor([]byte(text))
			}
			t.Document.InsertNewLine()
		case '\t':
			if i > 0 {
				t.Document.InsertTextBeforeCursor([]byte(contents[:i]))
			}
			t.Document.InsertTextBeforeCursor(tab)
		}
		contents = contents[i+1:]
	}

	t.ScrollToCursor()
	t.updateCursorVisibility()
}

// NewLine inserts an empty line below the cursor and moves to it. The text
// after the cursor is not carried down.
func (t *TextEdit) NewLine() {
	t.Dirty = true
	t.Document.InsertNewLine()
	t.ScrollToCursor()
	t.updateCursorVisibility()
}

// Delete with `forwards` false will backspace, destroying the byte before the cursor,
// while Delete with `forwards` true will delete the byte under the cursor. Lines are
// never joined, so at the start or end of a line nothing may change, and then the
// TextEdit is not marked dirty.
func (t *TextEdit) Delete(forwards bool) {
	lineCount := t.Document.LineCount()
	row, _ := t.Document.Cursor()
	lineLen := t.Document.LineLen(Min(Max(row, 0), lineCount-1))

	if forwards {
		t.Document.Delete()
	} else {
		t.Document.Backspace()
	}

	// The first edit of an empty Document creates a line
	row, _ = t.Document.Cursor()
	if t.Document.LineCount() != lineCount || t.Document.LineLen(row) != lineLen {
		t.Dirty = true
	}
	t.ScrollToCursor()
	t.updateCursorVisibility()
}

// CurrentLine returns a copy of the line the cursor is on, or of the last line
// if the cursor is below it.
func (t *TextEdit) CurrentLine() []byte {
	row, _ := t.Document.Cursor()
	row = Min(Max(row, 0), t.Document.LineCount()-1)
	return append([]byte(nil), t.Document.Line(row)...)
}

func (t *TextEdit) GetCursor() Cursor {
	return NewCursor(t.Document, t.MaxColumn)
}

func (t *TextEdit) SetCursor(newCursor Cursor) {
	newCursor.Apply()
	t.ScrollToCursor()
	t.updateCursorVisibility()
}

// Scroll the view if the cursor is out of it.
func (t *TextEdit) ScrollToCursor() {
	row, col := t.Document.Cursor()
	x := t.cellsBefore(t.Document.Line(row), col)

	// Scroll the view when going to rows out of it
	if row >= t.scrolly+t.height { // If the new row is below view...
		t.scrolly = row - t.height + 1 // Scroll just enough to view that row
	} else if row < t.scrolly { // If the new row is above view
		t.scrolly = Max(row, 0)
	}

	textWidth := t.width - t.getColumnWidth()

	// Scroll the view horizontally when going to columns out of it
	if x >= t.scrollx+textWidth { // If the new column is right of view
		t.scrollx = x - textWidth + 1 // Scroll just enough to view that column
	} else if x < t.scrollx { // If the new column is left of view
		t.scrollx = x
	}
}

// cursorScreenPos returns where the cursor is drawn, and false if it is out
// of view.
func (t *TextEdit) cursorScreenPos() (x, y int, ok bool) {
	row, col := t.Document.Cursor()
	columnWidth := t.getColumnWidth()

	x = t.x + columnWidth + t.cellsBefore(t.Document.Line(row), col) - t.scrollx
	y = t.y + row - t.scrolly
	ok = x >= t.x+columnWidth && x < t.x+t.width && y >= t.y && y < t.y+t.height
	return x, y, ok
}

// updateCursorVisibility sets the position of the terminal's cursor with the
// cursor of the TextEdit, if the TextEdit is focused.
func (t *TextEdit) updateCursorVisibility() {
	if !t.focused || t.screen == nil {
		return
	}
	if x, y, ok := t.cursorScreenPos(); ok {
		t.screen.ShowCursor(x, y)
	} else {
		t.screen.HideCursor()
	}
}

// getColumnWidth returns the width of the line numbers column if it is present.
func (t *TextEdit) getColumnWidth() int {
	var columnWidth int
	if t.LineNumbers {
		// Set columnWidth to max count of line number digits
		columnWidth = Max(3, 1+len(strconv.Itoa(t.Document.LineCount()))) // Column has minimum width of 2
	}
	return columnWidth
}

// cellsBefore returns how many screen cells the first col bytes of line take
// up. Columns past the end of the line take one cell each.
func (t *TextEdit) cellsBefore(line []byte, col int) int {
	col = Max(col, 0)
	end := Min(col, len(line))

	var cells, i int
	for i < end {
		r, size := utf8.DecodeRune(line[i:])
		cells += t.runeCells(r)
		i += size
	}
	return cells + Max(col-len(line), 0)
}

func (t *TextEdit) runeCells(r rune) int {
	if r == '\t' {
		return Max(t.TabSize, 1)
	}
	return Max(runewidth.RuneWidth(r), 1)
}

// displayRune returns the rune drawn for r. Control characters and bytes that
// are not UTF-8 are drawn as '?'.
func displayRune(r rune) rune {
	if r == utf8.RuneError || r < ' ' || r == 0x7f {
		return '?'
	}
	return r
}

// Draw renders the TextEdit component.
func (t *TextEdit) Draw(s tcell.Screen) {
	columnWidth := t.getColumnWidth()
	lineCount := t.Document.LineCount()

	style := t.theme.GetOrDefault("TextEdit")
	columnStyle := t.theme.GetOrDefault("TextEditColumn")

	for lineY := t.y; lineY < t.y+t.height; lineY++ { // For each line we can draw...
		line := lineY + t.scrolly - t.y // The line number being drawn (starts at zero)

		DrawRect(s, t.x+columnWidth, lineY, t.width-columnWidth, 1, ' ', style)

		lineNumStr := "" // Line number as a string

		if line < lineCount { // Only index the document if we are within it...
			lineNumStr = strconv.Itoa(line + 1)
			t.drawLine(s, lineY, t.Document.Line(line), style)
		}

		if t.LineNumbers {
			columnStr := fmt.Sprintf("%s%s│", strings.Repeat(" ", columnWidth-len(lineNumStr)-1), lineNumStr) // Right align line number
			DrawStr(s, t.x, lineY, columnStr, columnStyle) // Draw column
		}
	}

	if t.focused {
		t.drawCursor(s)
	}
	t.updateCursorVisibility()
}

func (t *TextEdit) drawLine(s tcell.Screen, y int, line []byte, style tcell.Style) {
	left := t.x + t.getColumnWidth()
	x := left - t.scrollx // X offset we draw the next rune at (some runes can be 2 cols wide)

	var i int
	for i < len(line) && x < t.x+t.width {
		r, size := utf8.DecodeRune(line[i:])
		cells := t.runeCells(r)

		if r == '\t' {
			for c := 0; c < cells; c++ {
				if x+c >= left && x+c < t.x+t.width {
					s.SetContent(x+c, y, ' ', nil, style)
				}
			}
		} else if x >= left {
			s.SetContent(x, y, displayRune(r), nil, style)
		}

		x += cells
		i += size
	}
}

// drawCursor draws the character under the cursor in the cursor style, or a
// blank cell if the cursor is not on a character.
func (t *TextEdit) drawCursor(s tcell.Screen) {
	x, y, ok := t.cursorScreenPos()
	if !ok {
		return
	}

	glyph := ' '
	if b, ok := t.Document.CharUnderCursor(); ok {
		glyph = displayRune(rune(b))
		if b >= utf8.RuneSelf { // Draw the whole rune starting at the cursor
			row, col := t.Document.Cursor()
			r, _ := utf8.DecodeRune(t.Document.Line(row)[col:])
			glyph = displayRune(r)
		}
		if b == '\t' {
			glyph = ' '
		}
	}
	s.SetContent(x, y, glyph, nil, t.theme.GetOrDefault("TextEditCursor"))
}

// SetFocused sets whether the TextEdit is focused. When focused, the cursor is set visible
// and its position is updated on every event.
func (t *TextEdit) SetFocused(v bool) {
	t.focused = v
	if v {
		t.updateCursorVisibility()
	} else if t.screen != nil {
		t.screen.HideCursor()
	}
}

// HandleEvent allows the TextEdit to handle `event` if it chooses, returns
// whether the TextEdit handled the event.
func (t *TextEdit) HandleEvent(event tcell.Event) bool {
	switch ev := event.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		// Cursor movement
		case tcell.KeyUp:
			t.SetCursor(t.GetCursor().Up())
		case tcell.KeyDown:
			t.SetCursor(t.GetCursor().Down())
		case tcell.KeyLeft:
			if ev.Modifiers()&tcell.ModCtrl != 0 {
				t.SetCursor(t.GetCursor().PrevWordBoundaryStart())
			} else {
				t.SetCursor(t.GetCursor().Left())
			}
		case tcell.KeyRight:
			if ev.Modifiers()&tcell.ModCtrl != 0 {
				t.SetCursor(t.GetCursor().NextWordBoundaryEnd())
			} else {
				t.SetCursor(t.GetCursor().Right())
			}
		case tcell.KeyHome:
			t.SetCursor(t.GetCursor().Home())
		case tcell.KeyEnd:
			t.SetCursor(t.GetCursor().End())
		case tcell.KeyPgUp:
			cursor := t.GetCursor()
			for i := 0; i < t.height; i++ { // Go a page up
				cursor = cursor.Up()
			}
			t.SetCursor(cursor)
		case tcell.KeyPgDn:
			cursor := t.GetCursor()
			for i := 0; i < t.height; i++ { // Go a page down
				cursor = cursor.Down()
			}
			t.SetCursor(cursor)

		// Deleting
		case tcell.KeyBackspace, tcell.KeyBackspace2:
			t.Delete(false)
		case tcell.KeyDelete:
			t.Delete(true)

		// Other control
		case tcell.KeyTab:
			t.Insert("\t") // (translates to TabSize spaces)
		case tcell.KeyEnter:
			t.NewLine()

		// Inserting
		case tcell.KeyRune:
			t.Insert(string(ev.Rune())) // Insert rune
		default:
			return false
		}
		return true
	}
	return false
}
