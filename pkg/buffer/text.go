package buffer

import (
	"unicode/utf8"

	"github.com/zyedidia/rope"
)

// A Text is a run of characters held in a rope and edited in place. All
// positions given to a Text are rune offsets, not byte offsets, and every
// position is clamped to the range [0, Len()]. Contents are expected to be
// valid UTF-8.
//
// The zero value is an empty Text.
type Text struct {
	node  *rope.Node
	runes int
}

// Len returns the number of runes in the Text.
func (t *Text) Len() int {
	return t.runes
}

// String returns a copy of the Text's contents.
func (t *Text) String() string {
	if t.node == nil {
		return ""
	}
	return string(t.node.Value())
}

// Insert copies s into the Text at rune offset pos.
func (t *Text) Insert(pos int, s string) {
	if len(s) == 0 {
		return
	}
	if t.node == nil {
		t.node = rope.New([]byte(s))
	} else {
		t.node.Insert(t.byteOffset(t.Clamp(pos)), []byte(s))
	}
	t.runes += utf8.RuneCountInString(s)
}

// Remove deletes the runes between start and end, exclusive end. If start is
// past end, the two are swapped.
func (t *Text) Remove(start, end int) {
	start, end = t.clampRange(start, end)
	if start == end {
		return
	}
	t.node.Remove(t.byteOffset(start), t.byteOffset(end))
	t.runes -= end - start
}

// Clamp keeps pos within the bounds of the Text.
func (t *Text) Clamp(pos int) int {
	return Clamp(pos, 0, t.runes)
}

func (t *Text) clampRange(start, end int) (int, int) {
	start, end = t.Clamp(start), t.Clamp(end)
	if start > end {
		start, end = end, start
	}
	return start, end
}

// byteOffset converts a rune offset, already clamped, into the index of its
// first byte. An offset of Len() returns the length of the rope in bytes.
func (t *Text) byteOffset(pos int) int {
	if pos <= 0 || t.node == nil {
		return 0
	}
	if pos >= t.runes {
		return t.node.Len()
	}

	var offset int
	var carry []byte // Head of a codepoint split across two leaves
	t.node.EachLeaf(func(n *rope.Node) bool {
		data := n.Value() // Reference; not a copy.
		if len(carry) > 0 {
			data = append(carry, data...)
			carry = nil
		}

		var i int
		for i < len(data) && pos > 0 {
			if !utf8.FullRune(data[i:]) {
				carry = append([]byte(nil), data[i:]...)
				break
			}
			_, size := utf8.DecodeRune(data[i:])
			i += size
			pos--
		}
		offset += i
		return pos == 0
	})

	// An incomplete codepoint at the very end decodes one rune per byte
	return offset + min(pos, len(carry))
}
