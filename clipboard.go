package main

import (
	"github.com/sirupsen/logrus"
	"github.com/zyedidia/clipboard"
)

type clipMethod uint8

const (
	clipExternal clipMethod = iota // The system clipboard
	clipInternal                   // A string kept by the editor
)

// A Clipboard is where Ctrl+C copies the current line to and where Ctrl+V
// pastes from. Without a usable system clipboard it keeps its contents in
// memory, so copy and paste still work within the editor.
type Clipboard struct {
	method   clipMethod
	internal string
}

// NewClipboard returns a Clipboard backed by the system clipboard if external
// is true and the system clipboard can be initialized. Failing that is not
// fatal: it is logged and the internal clipboard is used instead.
func NewClipboard(external bool, log logrus.FieldLogger) *Clipboard {
	c := &Clipboard{method: clipInternal}
	if !external {
		return c
	}
	if err := clipboard.Initialize(); err != nil {
		log.WithError(err).Warn("system clipboard unavailable, using internal clipboard")
		return c
	}
	c.method = clipExternal
	return c
}

// External reports whether the system clipboard is in use.
func (c *Clipboard) External() bool {
	return c.method == clipExternal
}

func (c *Clipboard) Read() (string, error) {
	if c.method == clipExternal {
		return clipboard.ReadAll("clipboard")
	}
	return c.internal, nil
}

func (c *Clipboard) Write(content string) error {
	if c.method == clipExternal {
		return clipboard.WriteAll(content, "clipboard")
	}
	c.internal = content
	return nil
}
