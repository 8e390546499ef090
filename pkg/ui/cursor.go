package ui

import (
	"unicode"
	"unicode/utf8"

	"github.com/fivemoreminix/broadnic/pkg/buffer"
)

// A Cursor's functions emulate common cursor actions. A Cursor is a value:
// every motion returns a new Cursor, which has to be applied to the Document
// with Apply.
type Cursor struct {
	doc       *buffer.Document
	maxColumn int
	row, col  int
}

// NewCursor reads the cursor of doc. Columns past maxColumn are not reached
// by moving right.
func NewCursor(doc *buffer.Document, maxColumn int) Cursor {
	row, col := doc.Cursor()
	return Cursor{doc: doc, maxColumn: maxColumn, row: row, col: col}
}

// Apply moves the cursor of the Document to c.
func (c Cursor) Apply() {
	c.doc.SetCursor(c.row, c.col)
}

func (c Cursor) GetRowCol() (row, col int) {
	return c.row, c.col
}

// Up moves to the row above, keeping the column.
func (c Cursor) Up() Cursor {
	if c.row > 0 {
		c.row--
	}
	return c
}

// Down moves to the row below, keeping the column. The cursor may move one
// row past the last line; typing there edits the last line.
func (c Cursor) Down() Cursor {
	if c.row < c.doc.LineCount() {
		c.row++
	}
	return c
}

func (c Cursor) Left() Cursor {
	if c.col > 0 {
		c.col--
	}
	return c
}

// Right moves one byte right, up to the maximum column. It is not limited by
// the length of the line.
func (c Cursor) Right() Cursor {
	if c.col < c.maxColumn {
		c.col++
	}
	return c
}

// Home moves to the start of the row.
func (c Cursor) Home() Cursor {
	c.col = 0
	return c
}

// End moves to the end of the row's line.
func (c Cursor) End() Cursor {
	c.col = c.doc.LineLen(c.row)
	return c
}

// NextWordBoundaryEnd moves to the position after the last character of the
// next word to the right of the Cursor, staying on the current row. A word is
// any sequence of same-classed characters. Whitespace is skipped.
func (c Cursor) NextWordBoundaryEnd() Cursor {
	line := c.doc.Line(c.row)
	pos := Min(Max(c.col, 0), len(line))

	for pos < len(line) { // Skip whitespace
		r, size := utf8.DecodeRune(line[pos:])
		if getRuneCharclass(r) != charwhitespace {
			break
		}
		pos += size
	}
	if pos < len(line) {
		r, size := utf8.DecodeRune(line[pos:])
		startClass := getRuneCharclass(r)
		pos += size
		for pos < len(line) {
			r, size := utf8.DecodeRune(line[pos:])
			if getRuneCharclass(r) != startClass {
				break
			}
			pos += size
		}
	}

	c.col = pos
	return c
}

// PrevWordBoundaryStart moves to the first character of the word to the left
// of the Cursor, staying on the current row.
func (c Cursor) PrevWordBoundaryStart() Cursor {
	line := c.doc.Line(c.row)
	pos := Min(Max(c.col, 0), len(line))

	for pos > 0 { // Skip whitespace
		r, size := utf8.DecodeLastRune(line[:pos])
		if getRuneCharclass(r) != charwhitespace {
			break
		}
		pos -= size
	}
	if pos > 0 {
		r, size := utf8.DecodeLastRune(line[:pos])
		startClass := getRuneCharclass(r)
		pos -= size
		for pos > 0 {
			r, size := utf8.DecodeLastRune(line[:pos])
			if getRuneCharclass(r) != startClass {
				break
			}
			pos -= size
		}
	}

	c.col = pos
	return c
}

type charclass uint8

const (
	charwhitespace charclass = iota
	charword
	charsymbol
)

func getRuneCharclass(r rune) charclass {
	if unicode.IsSpace(r) {
		return charwhitespace
	} else if r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) {
		return charword
	} else {
		return charsymbol
	}
}
