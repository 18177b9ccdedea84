// Package script reads edit command lists written in YAML.
//
// A script is a sequence. Each item is a single-key mapping from a command
// name to its argument, or a bare command name when the argument is optional.
// A bare backspace deletes one character:
//
//	# Greet, then shorten the greeting.
//	- append: "Hello World!"
//	- select: [0, 5]
//	- append: Hi
//	- backspace
//	- move: -2
//	- insert: " beautiful"
//	- select: {left: -5, right: 100}
package script

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/fivemoreminix/notepad/pkg/engine"
)

// Errors wrapped by *Error.
var (
	// ErrNotSequence indicates the document is not a list of commands.
	ErrNotSequence = errors.New("script must be a sequence of commands")

	// ErrUnknownCommand indicates an item names no known command.
	ErrUnknownCommand = errors.New("unknown command")

	// ErrBadArgument indicates a command's argument has the wrong shape.
	ErrBadArgument = errors.New("bad argument")
)

// An Error reports where in a script decoding failed.
type Error struct {
	Line   int
	Column int
	Err    error
}

func (e *Error) Error() string {
	return fmt.Sprintf("line %d, column %d: %v", e.Line, e.Column, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func errorAt(n *yaml.Node, err error) *Error {
	return &Error{Line: n.Line, Column: n.Column, Err: err}
}

// Parse decodes a script held in memory.
func Parse(data []byte) ([]engine.Command, error) {
	return Decode(bytes.NewReader(data))
}

// Decode reads a whole script from r. An empty document is an empty script.
func Decode(r io.Reader) ([]engine.Command, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return []engine.Command{}, nil
		}
		return nil, fmt.Errorf("parse script: %w", err)
	}

	root := &doc
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}
	if root.Kind == 0 || root.Kind == yaml.DocumentNode || isAbsent(root) {
		return []engine.Command{}, nil // Nothing but comments, or an explicit null
	}
	if root.Kind != yaml.SequenceNode {
		return nil, errorAt(root, ErrNotSequence)
	}

	commands := make([]engine.Command, 0, len(root.Content))
	for _, item := range root.Content {
		cmd, err := decodeCommand(item)
		if err != nil {
			return nil, err
		}
		commands = append(commands, cmd)
	}
	return commands, nil
}

func decodeCommand(item *yaml.Node) (engine.Command, error) {
	var nameNode, arg *yaml.Node

	switch item.Kind {
	case yaml.ScalarNode: // Bare name; no argument
		nameNode = item
	case yaml.MappingNode:
		if len(item.Content) != 2 {
			return nil, errorAt(item, fmt.Errorf("%w: expected exactly one command per item", ErrBadArgument))
		}
		nameNode, arg = item.Content[0], item.Content[1]
	default:
		return nil, errorAt(item, fmt.Errorf("%w: expected a command name or a one-key mapping", ErrBadArgument))
	}

	kind, ok := engine.ParseKind(strings.TrimSpace(nameNode.Value))
	if !ok {
		return nil, errorAt(nameNode, fmt.Errorf("%w %q", ErrUnknownCommand, nameNode.Value))
	}

	switch kind {
	case engine.KindAppend:
		text, err := decodeText(kind, item, arg)
		return engine.Append{Text: text}, err
	case engine.KindInsert:
		text, err := decodeText(kind, item, arg)
		return engine.Insert{Text: text}, err
	case engine.KindMove:
		if isAbsent(arg) {
			return nil, errorAt(item, fmt.Errorf("%w: move needs a delta", ErrBadArgument))
		}
		delta, err := decodeInt(kind, arg)
		return engine.Move{Delta: delta}, err
	case engine.KindBackspace:
		if isAbsent(arg) {
			return engine.Backspace{Count: 1}, nil
		}
		count, err := decodeInt(kind, arg)
		return engine.Backspace{Count: count}, err
	case engine.KindSelect:
		return decodeSelect(item, arg)
	}
	panic("How did execution get here?")
}

func isAbsent(n *yaml.Node) bool {
	return n == nil || (n.Kind == yaml.ScalarNode && n.Tag == "!!null")
}

func decodeText(kind engine.Kind, item, arg *yaml.Node) (string, error) {
	if isAbsent(arg) {
		return "", errorAt(item, fmt.Errorf("%w: %v needs text", ErrBadArgument, kind))
	}
	if arg.Kind != yaml.ScalarNode {
		return "", errorAt(arg, fmt.Errorf("%w: %v text must be a scalar", ErrBadArgument, kind))
	}
	return arg.Value, nil
}

// decodeInt accepts only nodes tagged !!int. Decoding a float into an int
// would truncate it.
func decodeInt(kind engine.Kind, arg *yaml.Node) (int, error) {
	var v int
	if arg.Kind != yaml.ScalarNode || arg.ShortTag() != "!!int" || arg.Decode(&v) != nil {
		return 0, errorAt(arg, fmt.Errorf("%w: %v needs an integer, got %q", ErrBadArgument, kind, arg.Value))
	}
	return v, nil
}

func decodeSelect(item, arg *yaml.Node) (engine.Command, error) {
	switch {
	case isAbsent(arg):
		return nil, errorAt(item, fmt.Errorf("%w: select needs two bounds", ErrBadArgument))
	case arg.Kind == yaml.SequenceNode:
		if len(arg.Content) != 2 {
			return nil, errorAt(arg, fmt.Errorf("%w: select needs exactly two bounds, got %d", ErrBadArgument, len(arg.Content)))
		}
		left, err := decodeInt(engine.KindSelect, arg.Content[0])
		if err != nil {
			return nil, err
		}
		right, err := decodeInt(engine.KindSelect, arg.Content[1])
		if err != nil {
			return nil, err
		}
		return engine.Select{Left: left, Right: right}, nil
	case arg.Kind == yaml.MappingNode:
		var left, right *yaml.Node
		for i := 0; i+1 < len(arg.Content); i += 2 {
			key, value := arg.Content[i], arg.Content[i+1]
			switch key.Value {
			case "left":
				left = value
			case "right":
				right = value
			default:
				return nil, errorAt(key, fmt.Errorf("%w: select takes only left and right, got %q", ErrBadArgument, key.Value))
			}
		}
		if left == nil || right == nil {
			return nil, errorAt(arg, fmt.Errorf("%w: select needs both left and right", ErrBadArgument))
		}
		l, err := decodeInt(engine.KindSelect, left)
		if err != nil {
			return nil, err
		}
		r, err := decodeInt(engine.KindSelect, right)
		if err != nil {
			return nil, err
		}
		return engine.Select{Left: l, Right: r}, nil
	}
	return nil, errorAt(arg, fmt.Errorf("%w: select needs [left, right] or {left, right}", ErrBadArgument))
}
