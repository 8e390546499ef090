package buffer

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
)

// LoadChunkSize is the number of bytes Load reads from its source at a time.
const LoadChunkSize = 640 * 1024

// Load reads a Document from r. Every '\n' ends a line; no other byte is
// special, so "\r\n" leaves '\r' at the end of the line. A final '\n' does not
// begin another line. The cursor is left at the start of the Document.
//
// An empty source yields a Document with one empty line.
func Load(r io.Reader) (*Document, error) {
	return LoadChunked(r, LoadChunkSize)
}

// LoadChunked is Load, reading at most chunkSize bytes at a time. A chunkSize
// less than one uses LoadChunkSize.
func LoadChunked(r io.Reader, chunkSize int) (*Document, error) {
	if chunkSize < 1 {
		chunkSize = LoadChunkSize
	}

	d := New()
	d.ensureFirstLine()

	chunk := make([]byte, chunkSize)
	var last byte
	for {
		n, err := r.Read(chunk)
		if n > 0 {
			d.appendChunk(chunk[:n])
			last = chunk[n-1]
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("buffer: read: %w", err)
		}
	}

	// The '\n' that ended the source terminated the line before it, and left
	// an empty line behind that is not part of the content.
	if last == '\n' && len(d.lines) > 1 {
		end := len(d.lines) - 1
		d.lines[end] = Line{}
		d.lines = d.lines[:end]
	}

	d.cursorRow, d.cursorCol = 0, 0
	return d, nil
}

// appendChunk adds chunk to the end of the last line, starting a new line at
// every '\n'. A line may be continued by the next chunk.
func (d *Document) appendChunk(chunk []byte) {
	for len(chunk) > 0 {
		// InsertNewLine may move the lines, so the last line is found again
		// every time around.
		last := &d.lines[len(d.lines)-1]

		i := bytes.IndexByte(chunk, '\n')
		if i < 0 {
			last.Append(chunk)
			return
		}
		last.Append(chunk[:i])

		d.cursorRow = len(d.lines) - 1
		d.InsertNewLine()
		chunk = chunk[i+1:]
	}
}

// LoadFile opens and loads the file at path. Errors include the path; a
// missing file can be detected with errors.Is(err, fs.ErrNotExist).
func LoadFile(path string) (*Document, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	defer file.Close()

	d, err := Load(file)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}
	return d, nil
}

// WriteTo writes every line of the Document to w, each followed by a single
// '\n'. It returns the number of bytes w accepted.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	cw := &countWriter{w: w}
	bw := bufio.NewWriter(cw)
	for i := range d.lines {
		if _, err := bw.Write(d.lines[i].Bytes()); err != nil {
			return cw.n, err
		}
		if err := bw.WriteByte('\n'); err != nil {
			return cw.n, err
		}
	}
	err := bw.Flush()
	return cw.n, err
}

// SaveFile writes the Document to the file at path, creating or truncating it.
// If writing fails the file is left partially written.
func SaveFile(d *Document, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	if _, err := d.WriteTo(file); err != nil {
		file.Close()
		return fmt.Errorf("save %s: %w", path, err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("save %s: %w", path, err)
	}
	return nil
}

type countWriter struct {
	w io.Writer
	n int64
}

func (c *countWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
