package main

import "github.com/zyedidia/clipboard"

type ClipMethod uint8

const (
	ClipExternal ClipMethod = iota
	_
	ClipInternal
)

// A Clipboard holds text copied out of an evaluation. When the system
// clipboard cannot be reached, text is kept internally instead.
type Clipboard struct {
	Method   ClipMethod
	internal string
}

// NewClipboard will initialize the system clipboard, and if that fails, an
// internal method will be chosen, instead. The error is returned along with
// the Clipboard but is not fatal, because the internal method still works.
func NewClipboard() (*Clipboard, error) {
	if err := clipboard.Initialize(); err != nil {
		return &Clipboard{Method: ClipInternal}, err
	}
	return &Clipboard{Method: ClipExternal}, nil
}

// Write sets the clipboard contents using the Clipboard's method.
func (c *Clipboard) Write(content string) error {
	switch c.Method {
	case ClipExternal:
		return clipboard.WriteAll(content, "clipboard")
	case ClipInternal:
		c.internal = content
		return nil
	}
	panic("How did execution get here?")
}
