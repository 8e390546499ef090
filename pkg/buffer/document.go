package buffer

import "strings"

// DocumentInitCapacity is the number of lines a Document allocates the first
// time it grows.
const DocumentInitCapacity = 128

// A Document is an ordered sequence of Lines and a single cursor. The first
// edit on an empty Document creates its first line; lines are only ever added.
//
// The cursor is not kept in bounds. Callers may move it anywhere with
// SetCursor, and every edit clamps it before using it. A Document must only be
// used by one goroutine at a time. Use Snapshot to hand its contents to another.
type Document struct {
	lines []Line // len is the line count, cap the allocated slots

	cursorRow int
	cursorCol int
}

// New returns an empty Document with no lines.
func New() *Document {
	return &Document{}
}

// Cursor returns the row and column of the cursor, as last set. They may be
// out of range.
func (d *Document) Cursor() (row, col int) {
	return d.cursorRow, d.cursorCol
}

// SetCursor moves the cursor to row, col without clamping.
func (d *Document) SetCursor(row, col int) {
	d.cursorRow, d.cursorCol = row, col
}

// LineCount returns the number of lines. An empty Document has none.
func (d *Document) LineCount() int {
	return len(d.lines)
}

// Line returns the bytes of the given row, or nil if there is no such row. The
// slice aliases the Document's storage and is only valid until the next edit.
func (d *Document) Line(row int) []byte {
	if row < 0 || row >= len(d.lines) {
		return nil
	}
	return d.lines[row].Bytes()
}

// LineLen returns the number of bytes in the given row, or zero if there is
// no such row.
func (d *Document) LineLen(row int) int {
	if row < 0 || row >= len(d.lines) {
		return 0
	}
	return d.lines[row].Len()
}

// String returns the Document in its saved form: every line followed by '\n'.
func (d *Document) String() string {
	var sb strings.Builder
	for i := range d.lines {
		sb.Write(d.lines[i].Bytes())
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Grow ensures there is room for n more lines, doubling the capacity from
// DocumentInitCapacity.
func (d *Document) Grow(n int) {
	size := len(d.lines)
	newCap := growCap(cap(d.lines), size, n, DocumentInitCapacity)
	if newCap == cap(d.lines) {
		return
	}
	grown := make([]Line, size, newCap)
	copy(grown, d.lines)
	d.lines = grown
}

// pushNewLine appends an empty line to the end of the Document.
func (d *Document) pushNewLine() {
	d.Grow(1)
	d.lines = append(d.lines, Line{})
}

// ensureFirstLine clamps the cursor row to the last line, creating the first
// line if the Document is empty.
func (d *Document) ensureFirstLine() {
	if d.cursorRow < 0 {
		d.cursorRow = 0
	}
	if d.cursorRow >= len(d.lines) {
		if len(d.lines) > 0 {
			d.cursorRow = len(d.lines) - 1
		} else {
			d.pushNewLine()
			d.cursorRow = 0
		}
	}
}

// InsertNewLine inserts an empty line below the cursor row and moves the
// cursor to the start of it. Text after the cursor stays where it is; the line
// is not split.
//
// If the cursor row is past the last line, the empty line is appended and the
// cursor is put on it.
func (d *Document) InsertNewLine() {
	row := clamp(d.cursorRow, 0, len(d.lines))
	at := min(row+1, len(d.lines))

	d.Grow(1)
	size := len(d.lines)
	d.lines = d.lines[:size+1]
	copy(d.lines[at+1:], d.lines[at:size])
	d.lines[at] = Line{}

	d.cursorRow = at
	d.cursorCol = 0
}

// InsertTextBeforeCursor inserts text at the cursor and moves the cursor past
// it. Every byte is inserted as-is, including '\n'.
func (d *Document) InsertTextBeforeCursor(text []byte) {
	d.ensureFirstLine()
	d.cursorCol = d.lines[d.cursorRow].InsertBefore(text, d.cursorCol)
}

// Backspace removes the byte before the cursor. At column zero nothing
// happens.
func (d *Document) Backspace() {
	d.ensureFirstLine()
	d.cursorCol = d.lines[d.cursorRow].Backspace(d.cursorCol)
}

// Delete removes the byte under the cursor. At the end of a line nothing
// happens.
func (d *Document) Delete() {
	d.ensureFirstLine()
	d.cursorCol = d.lines[d.cursorRow].Delete(d.cursorCol)
}

// CharUnderCursor returns the byte under the cursor. It returns false if the
// cursor is not on a byte of the Document.
func (d *Document) CharUnderCursor() (byte, bool) {
	if d.cursorRow < 0 || d.cursorRow >= len(d.lines) {
		return 0, false
	}
	return d.lines[d.cursorRow].At(d.cursorCol)
}
