// Package vtcore implements a VT500-series/xterm-compatible terminal
// emulator core: a byte stream in, a screen state machine out. It owns
// no PTY, no rendering, and no event loop — vtcore.Terminal consumes
// bytes via Feed and exposes current state through Snapshot,
// ScrollbackView and a few direct accessors (Rows, Cols, Title,
// CursorPos), leaving I/O and painting to the caller.
//
// The escape-sequence grammar lives in internal/vtparse; this package
// is the Performer that turns parsed actions into grid, cursor, mode,
// and scrollback changes.
package vtcore
