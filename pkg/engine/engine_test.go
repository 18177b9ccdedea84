package engine

import (
	"math"
	"math/rand"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/google/go-cmp/cmp"

	"github.com/fivemoreminix/notepad/pkg/buffer"
)

var runTests = []struct {
	name     string
	commands []Command
	want     []string
}{
	{
		name: "move and edit at cursor",
		commands: []Command{
			Append{"Hi"},
			Append{" there!"},
			Move{-600},
			Move{6},
			Backspace{3},
			Insert{"Squa"},
		},
		want: []string{"Hi", "Hi there!", "Hi re!", "Hi Square!"},
	},
	{
		name: "selections replace and delete",
		commands: []Command{
			Append{"Hello World!"},
			Select{0, 5},
			Append{"Hi"},
			Select{3, 8},
			Backspace{},
			Select{2, 2},
			Insert{" beautiful"},
			Select{-5, 100},
			Append{"Greetings!"},
		},
		want: []string{"Hello World!", "Hi World!", "Hi !", "Hi beautiful !", "Greetings!"},
	},
	{
		name: "clamped selections",
		commands: []Command{
			Append{"Test"},
			Select{-10, 20},
			Insert{"ABC"},
			Select{1, 1},
			Move{2},
			Select{0, 3},
			Backspace{},
		},
		want: []string{"Test", "ABC", ""},
	},
	{
		name:     "no commands",
		commands: nil,
		want:     []string{},
	},
	{
		name:     "cursor commands on an empty log are skipped",
		commands: []Command{Move{3}, Backspace{}, Select{0, 4}, Append{"abc"}},
		want:     []string{"abc"},
	},
	{
		name:     "insert may start the content",
		commands: []Command{Move{5}, Insert{"xyz"}, Insert{"!"}},
		want:     []string{"xyz", "xyz!"},
	},
	{
		name:     "append ignores the cursor",
		commands: []Command{Append{"abc"}, Move{-2}, Append{"d"}},
		want:     []string{"abc", "abcd"},
	},
	{
		name:     "backspace past the start clamps to zero",
		commands: []Command{Append{"abcdef"}, Move{-2}, Backspace{100}},
		want:     []string{"abcdef", "ef"},
	},
	{
		name:     "backspace at zero still records a snapshot",
		commands: []Command{Append{"abc"}, Move{-3}, Backspace{1}},
		want:     []string{"abc", "abc"},
	},
	{
		name:     "backspace of zero deletes nothing but records a snapshot",
		commands: []Command{Append{"abc"}, Backspace{0}, Backspace{}},
		want:     []string{"abc", "abc", "abc"},
	},
	{
		name:     "negative backspace deletes nothing",
		commands: []Command{Append{"abc"}, Move{-1}, Backspace{-4}, Insert{"X"}},
		want:     []string{"abc", "abc", "abXc"},
	},
	{
		name:     "move drops the selection",
		commands: []Command{Append{"abcdef"}, Select{1, 4}, Move{0}, Insert{"X"}},
		want:     []string{"abcdef", "abcdXef"},
	},
	{
		name:     "inverted select bounds are ordered",
		commands: []Command{Append{"abcdef"}, Select{4, 1}, Backspace{}},
		want:     []string{"abcdef", "aef"},
	},
	{
		name:     "select past the end collapses to a cursor at the end",
		commands: []Command{Append{"abc"}, Select{10, 20}, Backspace{1}},
		want:     []string{"abc", "ab"},
	},
	{
		name:     "a content buffer of empty string still counts as content",
		commands: []Command{Append{""}, Move{1}, Insert{"a"}},
		want:     []string{"", "a"},
	},
	{
		name:     "empty text before and after the first snapshot",
		commands: []Command{Select{-3, 5}, Select{0, 0}, Insert{""}, Select{0, 0}, Insert{""}, Append{""}},
		want:     []string{"", "", ""},
	},
	{
		name:     "multibyte characters",
		commands: []Command{Append{"日本語"}, Move{-1}, Backspace{1}, Select{0, 1}, Insert{"にほ"}},
		want:     []string{"日本語", "日語", "にほ語"},
	},
	{
		name:     "extreme deltas",
		commands: []Command{Append{"abc"}, Move{math.MinInt}, Insert{"<"}, Move{math.MaxInt}, Insert{">"}},
		want:     []string{"abc", "<abc", "<abc>"},
	},
}

func TestRun(t *testing.T) {
	for _, tt := range runTests {
		t.Run(tt.name, func(t *testing.T) {
			got := Run(tt.commands)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Run() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRunIsIndependent(t *testing.T) {
	commands := []Command{Append{"a"}, Move{-1}, Insert{"b"}}
	first := Run(commands)
	second := Run(commands)
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("second Run differs (-first +second):\n%s", diff)
	}
}

func TestSkipHandler(t *testing.T) {
	var skips []Skip
	Run([]Command{Move{1}, Backspace{}, Select{0, 1}, Append{"a"}, Move{1}, Select{0, 1}},
		WithSkipHandler(func(s Skip) { skips = append(skips, s) }))

	want := []Skip{
		{Index: 0, Command: Move{1}},
		{Index: 1, Command: Backspace{}},
		{Index: 2, Command: Select{0, 1}},
	}
	if diff := cmp.Diff(want, skips); diff != "" {
		t.Errorf("skips mismatch (-want +got):\n%s", diff)
	}
}

func TestApplyNil(t *testing.T) {
	var skipped int
	e := New(WithSkipHandler(func(Skip) { skipped++ }))
	e.Apply(Append{"a"})

	if e.Apply(nil) {
		t.Errorf("expected nil command to record nothing")
	}
	if skipped != 1 {
		t.Errorf("expected one skip, got %d", skipped)
	}
	steps := e.Steps()
	if len(steps) != 2 || !steps[1].Skipped {
		t.Errorf("expected nil command to be recorded as a skipped step, got %+v", steps)
	}
}

func TestEngineState(t *testing.T) {
	e := New()
	if e.Text() != "" || e.Cursor() != 0 {
		t.Fatalf("expected empty engine, got %q at %d", e.Text(), e.Cursor())
	}

	if !e.Apply(Append{"Hello World!"}) {
		t.Errorf("expected Append to record a snapshot")
	}
	if e.Cursor() != 12 {
		t.Errorf("expected cursor 12, got %d", e.Cursor())
	}

	if e.Apply(Select{0, 5}) {
		t.Errorf("expected Select not to record a snapshot")
	}
	sel, ok := e.Selection()
	if !ok || sel != (buffer.Region{Start: 0, End: 5}) {
		t.Errorf("expected selection 0,5 got %+v, %v", sel, ok)
	}
	if e.Cursor() != 5 {
		t.Errorf("expected cursor at selection end, got %d", e.Cursor())
	}

	e.Apply(Append{"Hi"})
	if _, ok := e.Selection(); ok {
		t.Errorf("expected Append to clear the selection")
	}
	if e.Cursor() != 2 {
		t.Errorf("expected cursor after replacement, got %d", e.Cursor())
	}

	e.Apply(Select{4, 4})
	if _, ok := e.Selection(); ok {
		t.Errorf("expected an empty selection to be none")
	}
	if e.Cursor() != 4 {
		t.Errorf("expected cursor 4, got %d", e.Cursor())
	}

	snaps := e.Snapshots()
	snaps[0] = "changed"
	if e.Snapshots()[0] != "Hello World!" {
		t.Errorf("Snapshots() must return a copy")
	}
}

func TestSteps(t *testing.T) {
	e := New()
	for _, cmd := range []Command{Move{1}, Append{"abcdef"}, Select{1, 3}, Backspace{}} {
		e.Apply(cmd)
	}

	want := []Step{
		{Command: Move{1}, Skipped: true, Snapshot: -1},
		{Command: Append{"abcdef"}, Text: "abcdef", Cursor: 6, Snapshot: 0},
		{Command: Select{1, 3}, Text: "abcdef", Cursor: 3, Selection: buffer.Region{Start: 1, End: 3}, Selecting: true, Snapshot: -1},
		{Command: Backspace{}, Text: "adef", Cursor: 1, Snapshot: 1},
	}
	if diff := cmp.Diff(want, e.Steps()); diff != "" {
		t.Errorf("steps mismatch (-want +got):\n%s", diff)
	}
}

func TestMoveZeroIsIdempotent(t *testing.T) {
	e := New()
	e.Apply(Append{"abc"})
	e.Apply(Move{-1})

	before := e.Snapshots()
	cursor := e.Cursor()
	if e.Apply(Move{0}) {
		t.Errorf("Move(0) recorded a snapshot")
	}
	if diff := cmp.Diff(before, e.Snapshots()); diff != "" {
		t.Errorf("Move(0) changed the log (-before +after):\n%s", diff)
	}
	if e.Cursor() != cursor {
		t.Errorf("Move(0) moved the cursor from %d to %d", cursor, e.Cursor())
	}
}

func TestInsertBackspaceRoundTrip(t *testing.T) {
	for _, s := range []string{"x", "hello", "日本"} {
		e := New()
		e.Apply(Append{"The quick fox"})
		e.Apply(Move{-4})
		before := e.Text()

		e.Apply(Insert{s})
		e.Apply(Backspace{utf8.RuneCountInString(s)})
		if e.Text() != before {
			t.Errorf("insert %q then backspace: expected %q, got %q", s, before, e.Text())
		}
	}
}

func TestInvariants(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	words := []string{"", "a", "bc", "def", "日本", " "}

	randomCommand := func() Command {
		n := rng.Intn(40) - 20
		switch rng.Intn(5) {
		case 0:
			return Append{words[rng.Intn(len(words))]}
		case 1:
			return Move{n}
		case 2:
			return Backspace{rng.Intn(7) - 2}
		case 3:
			return Insert{words[rng.Intn(len(words))]}
		default:
			l := rng.Intn(40) - 20
			return Select{l, l + rng.Intn(20)}
		}
	}

	for run := 0; run < 200; run++ {
		e := New()
		for i := 0; i < 50; i++ {
			cmd := randomCommand()
			e.Apply(cmd)

			length := utf8.RuneCountInString(e.Text())
			if c := e.Cursor(); c < 0 || c > length {
				t.Fatalf("after %v: cursor %d outside [0, %d]", cmd, c, length)
			}
			if sel, ok := e.Selection(); ok {
				if sel.Start < 0 || sel.Start >= sel.End || sel.End > length {
					t.Fatalf("after %v: bad selection %+v for length %d", cmd, sel, length)
				}
			}
		}
	}
}

func TestCommandString(t *testing.T) {
	got := make([]string, 0, 5)
	for _, cmd := range []Command{Append{"Hi"}, Move{-6}, Backspace{1}, Insert{"a\"b"}, Select{0, 5}} {
		got = append(got, cmd.String())
	}
	want := `append("Hi") move(-6) backspace(1) insert("a\"b") select(0, 5)`
	if s := strings.Join(got, " "); s != want {
		t.Errorf("expected %s, got %s", want, s)
	}
}

func TestParseKind(t *testing.T) {
	for _, name := range []string{"append", "MOVE", "Backspace", "insert", "select"} {
		k, ok := ParseKind(name)
		if !ok || !strings.EqualFold(k.String(), name) {
			t.Errorf("ParseKind(%q) = %v, %v", name, k, ok)
		}
	}
	if _, ok := ParseKind("undo"); ok {
		t.Errorf("expected undo to be unknown")
	}
	if s := Kind(42).String(); s != "Kind(42)" {
		t.Errorf("unexpected name for unknown kind: %s", s)
	}
}
