// Package printer is the output sink dotfiler writes user-facing messages to.
//
// Commands receive a Printer rather than writing to stdout directly so that
// the filter loader, linker and restore logic can be exercised in tests with
// a Recorder. Terminal output is styled with lipgloss; piped output, NO_COLOR
// and ASCII-only terminals fall back to plain text with the same prefixes.
package printer
