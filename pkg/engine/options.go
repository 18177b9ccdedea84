package engine

// Option configures an Engine during creation.
type Option func(*Engine)

// A Skip describes a command the Engine ignored because no content had been
// written yet.
type Skip struct {
	Index   int // Position of the command in the order it was applied
	Command Command
}

// WithSkipHandler registers fn to be called for every skipped command. The
// handler is only a side channel: it cannot change what the Engine does.
func WithSkipHandler(fn func(Skip)) Option {
	return func(e *Engine) {
		e.onSkip = fn
	}
}
