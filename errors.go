package htmlscan

import "github.com/htmlscan/htmlscan/scan"

// Re-exported error types from package scan, so callers inspecting a
// Parse error with errors.As don't need to import scan directly.
type (
	SyntaxError            = scan.SyntaxError
	ReplayUnavailableError = scan.ReplayUnavailableError
	IOError                = scan.IOError
)
