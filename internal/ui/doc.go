// Package ui provides semantic text formatting for CLI output.
//
// Instead of picking raw colors at call sites, commands use semantic
// formatters that say what a piece of text is:
//
//	ui.Success.Sprint("✓") + " Secret encrypted for " + ui.Highlight.Sprint(service)
//
// Each formatter degrades gracefully when color output is disabled
// (NO_COLOR, dumb terminals, piped output) by falling back to plain
// text decorations such as backticks and quotes.
package ui
