// Package logging provides concrete implementations of the setup.Logger interface.
//
// Available implementations:
//   - ConsoleLogger: writes level-prefixed lines to a writer (stderr by default),
//     colouring the prefixes when the writer is a terminal
//   - NullLogger: discards all messages
//   - RecordingLogger: keeps messages in memory for assertions
//
// All logger implementations are safe for concurrent use by multiple goroutines.
package logging
