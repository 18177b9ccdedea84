// Package engine interprets a sequence of edit commands over a single text
// buffer and records the buffer after every command that changes it.
//
// The buffer starts empty with the cursor at zero. Append, Backspace and
// Insert change the content and each records one snapshot; Move and Select
// only reposition the cursor or the selection. Until the first snapshot is
// recorded, Move, Backspace and Select are ignored.
//
// All positions are character offsets and every position is clamped, so no
// command can fail:
//
//	snapshots := engine.Run([]engine.Command{
//		engine.Append{Text: "Hello World!"},
//		engine.Select{Left: 0, Right: 5},
//		engine.Append{Text: "Hi"},
//	})
//	// snapshots == []string{"Hello World!", "Hi World!"}
package engine
