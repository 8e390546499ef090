package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/fivemoreminix/broadnic/pkg/buffer"
	"github.com/fivemoreminix/broadnic/pkg/ui"
	"github.com/gdamore/tcell/v2"
	"github.com/sirupsen/logrus"
)

var theme = ui.Theme{}

// editor is the application: one TextEdit for one document, and a status line
// below it. All of its methods run on the event loop goroutine.
type editor struct {
	screen   tcell.Screen
	log      logrus.FieldLogger
	textEdit *ui.TextEdit
	status   *ui.Label // File name and messages
	position *ui.Label // row:col, right aligned over the status line

	message    string // Replaces the file name in the status line until the next key
	messageErr bool

	clip *Clipboard

	autosave *autosaver // nil when autosave is off or the document has no path
}

func newEditor(s tcell.Screen, cfg Config, log logrus.FieldLogger, clip *Clipboard, path string, doc *buffer.Document) *editor {
	te := ui.NewTextEdit(s, path, doc, &theme)
	te.TabSize = cfg.Editor.TabSize
	te.MaxColumn = cfg.Editor.MaxColumn
	te.LineNumbers = cfg.Editor.LineNumbers

	e := &editor{
		screen:   s,
		log:      log,
		textEdit: te,
		status:   ui.NewLabel("", &theme),
		position: ui.NewLabel("", &theme),
		clip:     clip,
	}
	e.position.Alignment = ui.AlignRight
	if path != "" && cfg.Autosave.Interval > 0 {
		e.autosave = newAutosaver(path, log)
	}

	e.layout()
	te.SetFocused(true)
	return e
}

// layout fits the components to the size of the screen: the TextEdit takes
// every row but the last, which is the status line.
func (e *editor) layout() {
	sizex, sizey := e.screen.Size()

	e.textEdit.SetPos(0, 0)
	e.textEdit.SetSize(sizex, ui.Max(sizey-1, 0))
	e.textEdit.ScrollToCursor()

	e.status.SetPos(0, sizey-1)
	e.status.SetSize(sizex, 1)
}

func (e *editor) updateStatus() {
	te := e.textEdit

	name := te.FilePath
	if name == "" {
		name = "[No Name]"
	}
	if te.Dirty {
		name += " [+]"
	}

	e.status.StyleKey = "StatusBar"
	e.status.Text = " " + name
	if e.message != "" {
		e.status.Text = " " + e.message
		if e.messageErr {
			e.status.StyleKey = "StatusBarError"
		}
	}

	row, col := te.Document.Cursor()
	e.position.Text = fmt.Sprintf("%d:%d ", row+1, col+1)
	e.position.StyleKey = e.status.StyleKey

	// The position takes only the cells it needs at the right of the status line
	sizex, _ := e.screen.Size()
	width := ui.Min(len(e.position.Text), sizex)
	_, y := e.status.GetPos()
	e.position.SetPos(sizex-width, y)
	e.position.SetSize(width, 1)
}

func (e *editor) draw() {
	e.screen.SetStyle(theme.GetOrDefault("Normal"))
	e.screen.Clear()
	e.updateStatus()
	for _, c := range []ui.Component{e.textEdit, e.status, e.position} {
		c.Draw(e.screen)
	}
	e.screen.Show()
}

func (e *editor) setMessage(msg string, isErr bool) {
	e.message, e.messageErr = msg, isErr
}

// save writes the document to its file. Failures are shown on the status line
// and editing continues.
func (e *editor) save() {
	te := e.textEdit
	if te.FilePath == "" {
		e.setMessage("No file name: start broadnic with a path to save", true)
		return
	}

	if err := buffer.SaveFile(te.Document, te.FilePath); err != nil {
		e.log.WithError(err).Error("save failed")
		e.setMessage(err.Error(), true)
		return
	}

	te.Dirty = false
	e.log.WithFields(logrus.Fields{
		"path":  te.FilePath,
		"lines": te.Document.LineCount(),
	}).Info("saved")
	e.setMessage("Saved "+filepath.Base(te.FilePath), false)

	if e.autosave != nil {
		e.autosave.Discard()
	}
}

func (e *editor) paste() {
	contents, err := e.clip.Read()
	if err != nil {
		e.log.WithError(err).Warn("clipboard read failed")
		e.setMessage("Paste: "+err.Error(), true)
		return
	}
	e.textEdit.Insert(contents)
}

func (e *editor) copyLine() {
	line := e.textEdit.CurrentLine()
	if err := e.clip.Write(string(line)); err != nil {
		e.log.WithError(err).Warn("clipboard write failed")
		e.setMessage("Copy: "+err.Error(), true)
		return
	}
	e.setMessage("Copied line", false)
}

// handleEvent handles one event from the screen and returns whether the editor
// should quit.
func (e *editor) handleEvent(event tcell.Event) (quit bool) {
	switch ev := event.(type) {
	case nil: // The screen was finalized
		return true
	case *tcell.EventResize:
		e.layout()
		e.screen.Sync() // Redraw everything
	case *tcell.EventInterrupt:
		if _, ok := ev.Data().(autosaveTick); ok && e.autosave != nil && e.textEdit.Dirty {
			e.autosave.Save(e.textEdit.Document.Snapshot())
		}
	case *tcell.EventKey:
		e.message = ""
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlQ:
			return true
		case tcell.KeyF2, tcell.KeyCtrlS:
			e.save()
		case tcell.KeyCtrlV:
			e.paste()
		case tcell.KeyCtrlC:
			e.copyLine()
		default:
			e.textEdit.HandleEvent(ev)
		}
	}
	return false
}

// run draws and handles events until the user quits. Autosave ticks are
// posted for as long as it runs.
func (e *editor) run(ctx context.Context, cfg Config) {
	if e.autosave != nil {
		ctx, cancel := context.WithCancel(ctx)
		defer cancel()
		go postAutosaveTicks(ctx, e.screen, cfg.Autosave.Interval)
	}

	for {
		e.draw()
		if e.handleEvent(e.screen.PollEvent()) {
			break
		}
	}

	if e.autosave != nil {
		e.autosave.Wait()
	}
}

// openDocument loads the document at path. A file that does not exist yet is
// an empty document; saving creates it.
func openDocument(path string, log logrus.FieldLogger) (*buffer.Document, error) {
	if path == "" {
		return buffer.New(), nil
	}
	doc, err := buffer.LoadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		log.WithField("path", path).Info("new file")
		return buffer.New(), nil
	} else if err != nil {
		return nil, err
	}
	log.WithFields(logrus.Fields{
		"path":  path,
		"lines": doc.LineCount(),
	}).Info("loaded")
	return doc, nil
}

func main() {
	if len(os.Args) > 2 {
		fmt.Fprintf(os.Stderr, "usage: %s [path]\n", filepath.Base(os.Args[0]))
		os.Exit(2)
	}
	var path string
	if len(os.Args) == 2 {
		path = os.Args[1]
	}

	cfg, err := LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	log, logFile, err := newLogger(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	defer logFile.Close()

	doc, err := openDocument(path, log)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	clip := NewClipboard(cfg.Clipboard.External, log)

	s, e := tcell.NewScreen()
	if e != nil {
		fmt.Fprintf(os.Stderr, "%v\n", e)
		os.Exit(1)
	}
	if e := s.Init(); e != nil {
		fmt.Fprintf(os.Stderr, "%v\n", e)
		os.Exit(1)
	}
	defer s.Fini() // Useful for handling panics
	s.EnablePaste()

	newEditor(s, cfg, log, clip, path, doc).run(context.Background(), cfg)
}
