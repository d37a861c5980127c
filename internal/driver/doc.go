// Package driver runs the terminal animation.
//
// A [Composer] turns a point in time and a terminal size into a [Screen]:
// sampled data, rendered rows, the bordered box and the centered caption.
// A [Driver] repaints that screen on a fixed interval:
//
//	Idle --Start--> Running --Stop--> Stopped
//
// Each repaint homes the cursor, clears the screen and writes the whole
// frame in one write. Ticks never overlap: a tick that arrives while the
// previous one is still drawing is dropped and counted in [Stats].
//
// # Shutdown
//
// Stop is idempotent. Restore shows the cursor again and runs once; [Driver.Run]
// defers it so every exit path, including a panic mid-frame, leaves the
// cursor visible. Signals are not handled here; pass a context canceled by
// terminal.WatchSignals.
package driver
