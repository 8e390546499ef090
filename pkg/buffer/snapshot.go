package buffer

import (
	"bytes"
	"io"

	"github.com/zyedidia/rope"
)

// A Snapshot is a copy of a Document in its saved form, held in a rope. It
// shares nothing with the Document it was taken from, so it can be read or
// written from another goroutine while the Document is edited.
type Snapshot rope.Node

// Snapshot copies the Document into a new Snapshot.
func (d *Document) Snapshot() *Snapshot {
	var b bytes.Buffer
	b.Grow(d.savedLen())
	d.WriteTo(&b) // bytes.Buffer only fails by panicking
	return (*Snapshot)(rope.New(b.Bytes()))
}

func (d *Document) savedLen() int {
	n := len(d.lines)
	for i := range d.lines {
		n += d.lines[i].Len()
	}
	return n
}

// Len returns the number of bytes in the Snapshot, including line delimiters.
func (s *Snapshot) Len() int {
	return (*rope.Node)(s).Len()
}

// Lines returns the number of lines in the Snapshot. Every line ends with a
// delimiter, so this is the number of '\n' bytes.
func (s *Snapshot) Lines() int {
	r := (*rope.Node)(s)
	return r.Count(0, r.Len(), []byte{'\n'})
}

// Line returns the bytes of the given line without its delimiter, or nil if
// there is no such line.
func (s *Snapshot) Line(line int) []byte {
	if line < 0 || line >= s.Lines() {
		return nil
	}
	r := (*rope.Node)(s)

	start, end := 0, r.Len()
	found := 0
	r.IndexAllFunc(0, r.Len(), []byte{'\n'}, func(idx int) bool {
		if found == line { // idx is the delimiter ending the line we want
			end = idx
			return true
		}
		found++
		start = idx + 1 // Start of the line after the delimiter
		return false
	})

	return r.Slice(start, end)
}

// Bytes returns a copy of the whole Snapshot.
func (s *Snapshot) Bytes() []byte {
	return (*rope.Node)(s).Value()
}

// WriteTo writes the Snapshot to w exactly as SaveFile would have written the
// Document.
func (s *Snapshot) WriteTo(w io.Writer) (int64, error) {
	return (*rope.Node)(s).WriteTo(w)
}
