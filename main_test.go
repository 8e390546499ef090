package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fivemoreminix/broadnic/pkg/buffer"
	"github.com/fivemoreminix/broadnic/pkg/ui"
	"github.com/gdamore/tcell/v2"
	"github.com/google/go-cmp/cmp"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

func newSimScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	if err := s.Init(); err != nil {
		t.Fatal(err)
	}
	s.SetSize(w, h)
	t.Cleanup(s.Fini)
	return s
}

func testConfig(t *testing.T) Config {
	t.Helper()
	cfg, err := LoadConfig(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	return cfg
}

func newTestEditor(t *testing.T, cfg Config, path string) (*editor, tcell.SimulationScreen, *test.Hook) {
	t.Helper()
	s := newSimScreen(t, 80, 5)
	log, hook := test.NewNullLogger()
	log.SetLevel(logrus.DebugLevel)

	doc, err := openDocument(path, log)
	if err != nil {
		t.Fatal(err)
	}
	return newEditor(s, cfg, log, NewClipboard(false, log), path, doc), s, hook
}

func keyEvent(k tcell.Key) *tcell.EventKey {
	return tcell.NewEventKey(k, 0, tcell.ModNone)
}

func typeInto(e *editor, str string) {
	for _, r := range str {
		e.handleEvent(tcell.NewEventKey(tcell.KeyRune, r, tcell.ModNone))
	}
}

// screenRow returns the text on row y of s with trailing blanks removed.
func screenRow(s tcell.SimulationScreen, y int) string {
	cells, w, _ := s.GetContents()
	var b strings.Builder
	for _, c := range cells[y*w : (y+1)*w] {
		if len(c.Runes) > 0 {
			b.WriteRune(c.Runes[0])
		}
	}
	return strings.TrimRight(b.String(), " ")
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

func TestEditorEditAndSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	e, s, hook := newTestEditor(t, testConfig(t), path)

	typeInto(e, "hello")
	e.handleEvent(keyEvent(tcell.KeyEnter))
	typeInto(e, "world")
	e.draw()
	if row := screenRow(s, 4); !strings.Contains(row, "notes.txt [+]") {
		t.Errorf("Expected a dirty marker in the status line, got %#v", row)
	}
	if row := screenRow(s, 4); !strings.HasSuffix(row, "2:6") {
		t.Errorf("Expected the position 2:6 in the status line, got %#v", row)
	}

	if quit := e.handleEvent(keyEvent(tcell.KeyF2)); quit {
		t.Errorf("Expected F2 not to quit")
	}
	if got := readFile(t, path); got != "hello\nworld\n" {
		t.Errorf("Expected the saved file to be \"hello\\nworld\\n\", got %#v", got)
	}
	if e.textEdit.Dirty {
		t.Errorf("Expected the document to be clean after saving")
	}
	if entry := hook.LastEntry(); entry == nil || entry.Message != "saved" {
		t.Errorf("Expected a \"saved\" log entry, got %v", entry)
	}

	e.draw()
	if row := screenRow(s, 4); !strings.HasPrefix(row, " Saved notes.txt") {
		t.Errorf("Expected a saved message, got %#v", row)
	}

	// Ctrl+S saves too
	typeInto(e, "!")
	e.handleEvent(keyEvent(tcell.KeyCtrlS))
	if got := readFile(t, path); got != "hello\nworld!\n" {
		t.Errorf("Expected the saved file to be \"hello\\nworld!\\n\", got %#v", got)
	}
}

func TestEditorOpensExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.txt")
	if err := os.WriteFile(path, []byte("one\ntwo\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	e, s, _ := newTestEditor(t, testConfig(t), path)
	e.draw()

	if row := screenRow(s, 1); row != " 2│two" {
		t.Errorf("Expected the second line drawn, got %#v", row)
	}
	if e.textEdit.Dirty {
		t.Errorf("Expected a freshly opened document to be clean")
	}
}

func TestEditorSaveError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing", "a.txt")
	e, s, hook := newTestEditor(t, testConfig(t), path)

	typeInto(e, "x")
	e.handleEvent(keyEvent(tcell.KeyF2))

	if !e.textEdit.Dirty {
		t.Errorf("Expected the document to stay dirty after a failed save")
	}
	if !e.messageErr {
		t.Errorf("Expected an error message")
	}
	if entry := hook.LastEntry(); entry == nil || entry.Level != logrus.ErrorLevel {
		t.Errorf("Expected an error to be logged, got %v", entry)
	}

	e.draw()
	cells, w, h := s.GetContents()
	if style := cells[(h-1)*w].Style; style != ui.DefaultTheme["StatusBarError"] {
		t.Errorf("Expected the status line in the error style")
	}

	// The message goes away with the next key
	e.handleEvent(keyEvent(tcell.KeyLeft))
	if e.message != "" {
		t.Errorf("Expected the message to be cleared, got %#v", e.message)
	}
}

func TestEditorSaveWithoutPath(t *testing.T) {
	e, _, _ := newTestEditor(t, testConfig(t), "")
	typeInto(e, "x")
	e.handleEvent(keyEvent(tcell.KeyCtrlS))
	if !e.messageErr || !e.textEdit.Dirty {
		t.Errorf("Expected saving without a path to fail")
	}
}

func TestEditorQuitKeys(t *testing.T) {
	e, _, _ := newTestEditor(t, testConfig(t), "")
	for _, k := range []tcell.Key{tcell.KeyEscape, tcell.KeyCtrlQ} {
		if !e.handleEvent(keyEvent(k)) {
			t.Errorf("Expected key %v to quit", tcell.KeyNames[k])
		}
	}
	if !e.handleEvent(nil) {
		t.Errorf("Expected a nil event to quit")
	}
	if e.handleEvent(keyEvent(tcell.KeyRight)) {
		t.Errorf("Expected Right not to quit")
	}
}

func TestEditorCopyPaste(t *testing.T) {
	e, _, _ := newTestEditor(t, testConfig(t), "")

	typeInto(e, "abc")
	e.handleEvent(keyEvent(tcell.KeyCtrlC))
	e.handleEvent(keyEvent(tcell.KeyEnter))
	e.handleEvent(keyEvent(tcell.KeyCtrlV))

	if got, _ := e.clip.Read(); got != "abc" {
		t.Errorf("Expected \"abc\" on the clipboard, got %#v", got)
	}
	lines := []string{string(e.textEdit.Document.Line(0)), string(e.textEdit.Document.Line(1))}
	if diff := cmp.Diff([]string{"abc", "abc"}, lines); diff != "" {
		t.Errorf("lines mismatch (-want +got):\n%s", diff)
	}
}

func TestEditorResize(t *testing.T) {
	e, s, _ := newTestEditor(t, testConfig(t), "")
	s.SetSize(30, 10)
	e.handleEvent(tcell.NewEventResize(30, 10))

	if w, h := e.textEdit.GetSize(); w != 30 || h != 9 {
		t.Errorf("Expected the TextEdit to be 30x9, got %vx%v", w, h)
	}
	if _, y := e.status.GetPos(); y != 9 {
		t.Errorf("Expected the status line on row 9, got %v", y)
	}
}

func TestEditorConfig(t *testing.T) {
	cfg := testConfig(t)
	cfg.Editor.TabSize = 4
	cfg.Editor.LineNumbers = false
	e, s, _ := newTestEditor(t, cfg, "")

	e.handleEvent(keyEvent(tcell.KeyTab))
	typeInto(e, "x")
	e.draw()
	if row := screenRow(s, 0); row != "    x" {
		t.Errorf("Expected \"    x\" without line numbers, got %#v", row)
	}
}

func TestEditorRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "run.txt")
	e, s, _ := newTestEditor(t, testConfig(t), path)

	for _, r := range "hi" {
		s.InjectKey(tcell.KeyRune, r, tcell.ModNone)
	}
	s.InjectKey(tcell.KeyF2, 0, tcell.ModNone)
	s.InjectKey(tcell.KeyEscape, 0, tcell.ModNone)

	cfg := testConfig(t)
	done := make(chan struct{})
	go func() {
		e.run(context.Background(), cfg)
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Expected run to return after Escape")
	}

	if got := readFile(t, path); got != "hi\n" {
		t.Errorf("Expected \"hi\\n\" saved, got %#v", got)
	}
}

func TestOpenDocumentMissingFile(t *testing.T) {
	log, hook := test.NewNullLogger()
	doc, err := openDocument(filepath.Join(t.TempDir(), "new.txt"), log)
	if err != nil {
		t.Fatal(err)
	}
	if doc.LineCount() != 0 {
		t.Errorf("Expected an empty document, got %v lines", doc.LineCount())
	}
	if entry := hook.LastEntry(); entry == nil || entry.Message != "new file" {
		t.Errorf("Expected a \"new file\" log entry, got %v", entry)
	}

	// Anything else is an error
	if _, err := openDocument(t.TempDir(), log); err == nil {
		t.Errorf("Expected loading a directory to fail")
	}
}

func TestOpenDocumentNoPath(t *testing.T) {
	log, _ := test.NewNullLogger()
	doc, err := openDocument("", log)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(buffer.New().String(), doc.String()); diff != "" {
		t.Errorf("Expected an empty document (-want +got):\n%s", diff)
	}
}

func TestEditorEmptyPasteStaysClean(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.txt")
	cfg := testConfig(t)
	cfg.Autosave.Interval = time.Hour
	e, _, _ := newTestEditor(t, cfg, path)

	e.handleEvent(keyEvent(tcell.KeyCtrlV)) // Nothing on the clipboard
	e.handleEvent(tcell.NewEventInterrupt(autosaveTick{}))
	e.autosave.Wait()

	if e.textEdit.Dirty {
		t.Errorf("Expected an empty paste to leave the document clean")
	}
	if _, err := os.Stat(autosavePath(path)); err == nil {
		t.Errorf("Expected no autosave for a clean document")
	}
}
