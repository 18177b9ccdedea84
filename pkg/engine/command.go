package engine

import (
	"fmt"
	"strings"
)

// Kind identifies a Command variant.
type Kind uint8

const (
	KindAppend Kind = iota
	KindMove
	KindBackspace
	KindInsert
	KindSelect
)

var kindNames = [...]string{
	KindAppend:    "append",
	KindMove:      "move",
	KindBackspace: "backspace",
	KindInsert:    "insert",
	KindSelect:    "select",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}

// ParseKind returns the Kind named by s, ignoring case.
func ParseKind(s string) (Kind, bool) {
	for k, name := range kindNames {
		if strings.EqualFold(s, name) {
			return Kind(k), true
		}
	}
	return 0, false
}

// A Command is one edit applied by an Engine. The set of commands is closed:
// Append, Move, Backspace, Insert and Select are the only implementations.
type Command interface {
	Kind() Kind
	String() string

	apply(e *Engine) bool
}

// Append adds Text to the end of the buffer, or replaces the selection.
type Append struct {
	Text string
}

// Move shifts the cursor by Delta characters and drops the selection.
type Move struct {
	Delta int
}

// Backspace deletes Count characters before the cursor, or the selection. A
// Count of zero or less deletes nothing but still records a snapshot.
type Backspace struct {
	Count int
}

// Insert writes Text at the cursor, or replaces the selection.
type Insert struct {
	Text string
}

// Select marks the characters between Left and Right. Both bounds are clamped
// to the buffer.
type Select struct {
	Left, Right int
}

func (Append) Kind() Kind    { return KindAppend }
func (Move) Kind() Kind      { return KindMove }
func (Backspace) Kind() Kind { return KindBackspace }
func (Insert) Kind() Kind    { return KindInsert }
func (Select) Kind() Kind    { return KindSelect }

func (c Append) String() string { return fmt.Sprintf("append(%q)", c.Text) }
func (c Move) String() string   { return fmt.Sprintf("move(%d)", c.Delta) }
func (c Insert) String() string { return fmt.Sprintf("insert(%q)", c.Text) }
func (c Select) String() string { return fmt.Sprintf("select(%d, %d)", c.Left, c.Right) }

func (c Backspace) String() string { return fmt.Sprintf("backspace(%d)", c.Count) }

func (c Backspace) count() int {
	return max(c.Count, 0)
}

// needsContent reports whether a command of kind k is skipped until the first
// snapshot exists.
func needsContent(k Kind) bool {
	switch k {
	case KindMove, KindBackspace, KindSelect:
		return true
	}
	return false
}
