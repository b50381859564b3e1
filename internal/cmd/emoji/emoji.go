// Package emoji provides symbol constants for CLI output.
package emoji

// Symbols used for status lines in terminal output.
const (
	// Success represents successful completion of an operation.
	Success = "✓"

	// Error represents a failed operation.
	Error = "✗"

	// Stop represents shutdowns and stop signals.
	Stop = "■"

	// Warning represents non-critical issues.
	Warning = "!"
)
