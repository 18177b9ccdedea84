package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/fivemoreminix/notepad/pkg/buffer"
	"github.com/fivemoreminix/notepad/pkg/engine"
)

// TabSize is how many columns a '\t' is drawn as.
const TabSize = 4

// Viewer is a read-only component that shows the state of the buffer after each
// command of an evaluation. The first row is a status bar naming the command;
// the rest of the component holds the buffer, with the selection highlighted
// and the terminal cursor at the buffer's cursor.
type Viewer struct {
	steps []engine.Step
	step  int // Index of the step being shown

	baseComponent
}

func NewViewer(steps []engine.Step, theme *Theme) *Viewer {
	return &Viewer{
		steps:         steps,
		baseComponent: baseComponent{theme: theme},
	}
}

// Step returns the index of the step being shown.
func (v *Viewer) Step() int {
	return v.step
}

// SetStep shows the step at index i, clamped to the available steps.
func (v *Viewer) SetStep(i int) {
	v.step = buffer.Clamp(i, 0, max(0, len(v.steps)-1))
}

// statusLine describes the current step, like "2/9  select(0, 5)".
func (v *Viewer) statusLine() string {
	if len(v.steps) == 0 {
		return " no commands"
	}
	step := v.steps[v.step]

	name := "nil"
	if step.Command != nil {
		name = step.Command.String()
	}
	status := fmt.Sprintf(" %d/%d  %s", v.step+1, len(v.steps), name)

	switch {
	case step.Skipped:
		status += "  skipped"
	case step.Snapshot >= 0:
		status += fmt.Sprintf("  snapshot %d", step.Snapshot+1)
	}
	return status
}

// Draw renders the Viewer component.
func (v *Viewer) Draw(s tcell.Screen) {
	normalStyle := v.theme.GetOrDefault("Viewer")
	selectedStyle := v.theme.GetOrDefault("ViewerSelected")
	statusStyle := v.theme.GetOrDefault("StatusBar")

	if len(v.steps) > 0 && v.steps[v.step].Skipped {
		statusStyle = v.theme.GetOrDefault("StatusBarSkipped")
	}

	DrawRect(s, v.x, v.y, v.width, v.height, ' ', normalStyle)
	DrawRect(s, v.x, v.y, v.width, 1, ' ', statusStyle)
	DrawStr(s, v.x, v.y, v.x+v.width, v.statusLine(), statusStyle)

	if len(v.steps) == 0 {
		s.HideCursor()
		return
	}
	step := v.steps[v.step]

	maxX, maxY := v.x+v.width, v.y+v.height
	col, row := v.x, v.y+1 // Where the next rune is drawn
	cursorX, cursorY := -1, -1

	var idx int // Rune index into the text
	for _, r := range step.Text {
		if idx == step.Cursor {
			cursorX, cursorY = col, row
		}

		selected := step.Selecting && idx >= step.Selection.Start && idx < step.Selection.End
		style := normalStyle
		if selected {
			style = selectedStyle
		}

		switch r {
		case '\n':
			if selected && col < maxX && row < maxY {
				s.SetContent(col, row, ' ', nil, style) // Show that the line break is selected
			}
			col, row = v.x, row+1
		case '\t':
			for i := 0; i < TabSize && col < maxX; i++ {
				if row < maxY {
					s.SetContent(col, row, ' ', nil, style)
				}
				col++
			}
		default:
			width := cellWidth(r)
			if col+width <= maxX && row < maxY {
				s.SetContent(col, row, r, nil, style)
			}
			col += width
		}
		idx++
	}
	if step.Cursor >= idx { // Cursor after the last rune
		cursorX, cursorY = col, row
	}

	// The cursor is hidden while selecting, like a text field with a selection.
	if v.focused && !step.Selecting && cursorX >= v.x && cursorX < maxX && cursorY < maxY {
		s.ShowCursor(cursorX, cursorY)
	} else {
		s.HideCursor()
	}
}

// HandleEvent steps through the evaluation on arrow keys, Home and End, or
// on 'n', 'p' and space. Returns whether the event was handled.
func (v *Viewer) HandleEvent(event tcell.Event) bool {
	ev, ok := event.(*tcell.EventKey)
	if !ok {
		return false
	}

	switch ev.Key() {
	case tcell.KeyRight, tcell.KeyDown:
		v.SetStep(v.step + 1)
	case tcell.KeyLeft, tcell.KeyUp:
		v.SetStep(v.step - 1)
	case tcell.KeyHome:
		v.SetStep(0)
	case tcell.KeyEnd:
		v.SetStep(len(v.steps) - 1)
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'n', ' ':
			v.SetStep(v.step + 1)
		case 'p':
			v.SetStep(v.step - 1)
		default:
			return false
		}
	default:
		return false
	}
	return true
}

// isQuit reports whether ev should close the viewer.
func isQuit(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlQ, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		return ev.Rune() == 'q'
	}
	return false
}

// Run shows steps on s until the user quits or the screen is finalized. The
// screen must already be initialized; Run does not finalize it.
func Run(s tcell.Screen, steps []engine.Step, theme *Theme) {
	viewer := NewViewer(steps, theme)
	viewer.SetFocused(true)

	for {
		sizex, sizey := s.Size()
		viewer.SetPos(0, 0)
		viewer.SetSize(sizex, sizey)

		s.Clear()
		viewer.Draw(s)
		s.Show()

		switch ev := s.PollEvent().(type) {
		case nil: // The screen was finalized
			return
		case *tcell.EventResize:
			s.Sync() // Redraw everything
		case *tcell.EventKey:
			if isQuit(ev) {
				return
			}
			viewer.HandleEvent(ev)
		}
	}
}
