package buffer

import "errors"

// LineInitCapacity is the capacity a Line is given the first time it grows.
const LineInitCapacity = 1024

// ErrTooLarge is passed to panic if a Line or Document cannot grow any further.
var ErrTooLarge = errors.New("buffer: too large")

// A Line is one row of a Document. It owns a growable byte buffer and tracks
// its size separately from its capacity: the length of the slice is the size,
// and the capacity of the slice is the allocated byte count. The line
// delimiter is never stored.
//
// All columns are byte offsets. Any column out of range is clamped to the
// nearest valid column, instead of being rejected.
type Line struct {
	bytes []byte
}

// Len returns the number of bytes in the line.
func (l *Line) Len() int {
	return len(l.bytes)
}

// Cap returns the number of bytes allocated for the line.
func (l *Line) Cap() int {
	return cap(l.bytes)
}

// Bytes returns the contents of the line. The slice aliases the line's storage
// and is only valid until the next edit: do not write to it.
func (l *Line) Bytes() []byte {
	return l.bytes
}

func (l *Line) String() string {
	return string(l.bytes)
}

// At returns the byte at col, and false if col is not within the line.
func (l *Line) At(col int) (byte, bool) {
	if col < 0 || col >= len(l.bytes) {
		return 0, false
	}
	return l.bytes[col], true
}

// Grow ensures there are at least n free bytes after the end of the line.
// Capacity starts at LineInitCapacity and doubles until the bytes fit. Grow
// never changes the size of the line.
func (l *Line) Grow(n int) {
	size := len(l.bytes)
	newCap := growCap(cap(l.bytes), size, n, LineInitCapacity)
	if newCap == cap(l.bytes) {
		return
	}
	grown := make([]byte, size, newCap)
	copy(grown, l.bytes)
	l.bytes = grown
}

// InsertBefore inserts text before the byte at col, and returns the column
// after the inserted text. If col is past the end of the line, text is
// appended.
func (l *Line) InsertBefore(text []byte, col int) int {
	col = l.clamp(col)
	n := len(text)
	if n == 0 {
		return col
	}
	l.Grow(n)

	size := len(l.bytes)
	l.bytes = l.bytes[:size+n]
	copy(l.bytes[col+n:], l.bytes[col:size]) // copy handles the overlap
	copy(l.bytes[col:], text)
	return col + n
}

// Append adds text to the end of the line.
func (l *Line) Append(text []byte) {
	l.InsertBefore(text, len(l.bytes))
}

// Backspace removes the byte before col and returns the new column. At the
// start of the line nothing happens; the line is not joined with the one above.
func (l *Line) Backspace(col int) int {
	col = l.clamp(col)
	if len(l.bytes) > 0 && col > 0 {
		copy(l.bytes[col-1:], l.bytes[col:])
		l.bytes = l.bytes[:len(l.bytes)-1]
		col--
	}
	return col
}

// Delete removes the byte at col. At the end of the line nothing happens; the
// line is not joined with the one below. The clamped column is returned.
func (l *Line) Delete(col int) int {
	col = l.clamp(col)
	if col < len(l.bytes) {
		copy(l.bytes[col:], l.bytes[col+1:])
		l.bytes = l.bytes[:len(l.bytes)-1]
	}
	return col
}

func (l *Line) clamp(col int) int {
	return clamp(col, 0, len(l.bytes))
}

// growCap returns the capacity needed for n more elements past size, starting
// from initCap and doubling. The current capacity is returned when it already
// fits.
func growCap(capacity, size, n, initCap int) int {
	if n < 0 {
		panic("buffer: negative count")
	}
	newCap := capacity
	for newCap-size < n {
		if newCap == 0 {
			newCap = initCap
		} else {
			if newCap > maxInt/2 {
				panic(ErrTooLarge)
			}
			newCap *= 2
		}
	}
	return newCap
}

const maxInt = int(^uint(0) >> 1)
