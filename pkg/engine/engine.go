package engine

import (
	"unicode/utf8"

	"github.com/fivemoreminix/notepad/pkg/buffer"
)

// An Engine owns a text buffer, a cursor and an optional selection, and applies
// Commands to them one at a time. The buffer is edited in place; every Append,
// Backspace or Insert that runs records a copy of it as a snapshot.
//
// An Engine is not safe for concurrent use.
type Engine struct {
	text       buffer.Text
	cursor     buffer.Cursor
	selection  buffer.Region // Only meaningful while selectMode is true
	selectMode bool

	snapshots []string
	steps     []Step

	onSkip func(Skip)
}

// A Step is the state of an Engine after one command was given to it.
type Step struct {
	Command   Command
	Text      string
	Cursor    int
	Selection buffer.Region // Zero unless Selecting
	Selecting bool
	Skipped   bool
	Snapshot  int // Index into the snapshot log, or -1 if none was recorded
}

// New returns an Engine with an empty buffer, the cursor at zero and nothing
// selected.
func New(opts ...Option) *Engine {
	e := &Engine{}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Run applies commands in order to a fresh Engine and returns its snapshots.
func Run(commands []Command, opts ...Option) []string {
	e := New(opts...)
	for _, cmd := range commands {
		e.Apply(cmd)
	}
	return e.Snapshots()
}

// Apply runs cmd and reports whether it recorded a new snapshot. Move,
// Backspace and Select do nothing until the first snapshot exists; a nil cmd
// never does anything. Both cases are reported to the skip handler.
func (e *Engine) Apply(cmd Command) bool {
	if cmd == nil || (len(e.snapshots) == 0 && needsContent(cmd.Kind())) {
		if e.onSkip != nil {
			e.onSkip(Skip{Index: len(e.steps), Command: cmd})
		}
		step := e.step(cmd, -1)
		step.Skipped = true
		e.steps = append(e.steps, step)
		return false
	}

	changed := cmd.apply(e)

	snapshot := -1
	if changed {
		e.snapshots = append(e.snapshots, e.text.String())
		snapshot = len(e.snapshots) - 1
	}
	e.steps = append(e.steps, e.step(cmd, snapshot))
	return changed
}

// Text returns the most recent snapshot, or "" if none was recorded.
func (e *Engine) Text() string {
	if n := len(e.snapshots); n > 0 {
		return e.snapshots[n-1]
	}
	return ""
}

// Cursor returns the cursor's character offset.
func (e *Engine) Cursor() int {
	return e.cursor.Offset()
}

// Selection returns the selected region, and whether there is one.
func (e *Engine) Selection() (buffer.Region, bool) {
	if !e.selectMode {
		return buffer.Region{}, false
	}
	return e.selection, true
}

// Snapshots returns a copy of the snapshot log.
func (e *Engine) Snapshots() []string {
	out := make([]string, len(e.snapshots))
	copy(out, e.snapshots)
	return out
}

// Steps returns a copy of the state recorded after each command, skipped
// commands included.
func (e *Engine) Steps() []Step {
	out := make([]Step, len(e.steps))
	copy(out, e.steps)
	return out
}

func (e *Engine) step(cmd Command, snapshot int) Step {
	sel, selecting := e.Selection()
	return Step{
		Command:   cmd,
		Text:      e.text.String(),
		Cursor:    e.cursor.Offset(),
		Selection: sel,
		Selecting: selecting,
		Snapshot:  snapshot,
	}
}

// replaceSelection swaps the selected region for s, leaves the cursor after s,
// and ends select mode.
func (e *Engine) replaceSelection(s string) {
	start := e.selection.Start
	e.text.Remove(start, e.selection.End)
	e.text.Insert(start, s)
	e.cursor = e.cursor.Set(&e.text, start+utf8.RuneCountInString(s))
	e.clearSelection()
}

func (e *Engine) clearSelection() {
	e.selectMode = false
	e.selection = buffer.Region{}
}

func (c Append) apply(e *Engine) bool {
	if e.selectMode {
		e.replaceSelection(c.Text)
		return true
	}
	e.text.Insert(e.text.Len(), c.Text)
	e.cursor = e.cursor.Set(&e.text, e.text.Len())
	return true
}

func (c Move) apply(e *Engine) bool {
	e.clearSelection()
	e.cursor = e.cursor.Move(&e.text, c.Delta)
	return false
}

func (c Backspace) apply(e *Engine) bool {
	if e.selectMode {
		e.replaceSelection("") // Count is ignored for a selection
		return true
	}
	end := e.cursor.Offset()
	start := e.cursor.Move(&e.text, -c.count())
	e.text.Remove(start.Offset(), end)
	e.cursor = start
	return true
}

// Insert on a buffer with no snapshots writes at offset zero of an empty
// buffer, which makes Text the whole content.
func (c Insert) apply(e *Engine) bool {
	if e.selectMode {
		e.replaceSelection(c.Text)
		return true
	}
	pos := e.cursor.Offset()
	e.text.Insert(pos, c.Text)
	e.cursor = e.cursor.Set(&e.text, pos+utf8.RuneCountInString(c.Text))
	return true
}

func (c Select) apply(e *Engine) bool {
	region := buffer.NewRegion(&e.text, c.Left, c.Right)
	if region.Empty() {
		e.clearSelection()
		e.cursor = e.cursor.Set(&e.text, region.Start)
		return false
	}
	e.selection = region
	e.selectMode = true
	e.cursor = e.cursor.Set(&e.text, region.End)
	return false
}
