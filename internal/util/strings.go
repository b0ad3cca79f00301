// Package util provides small text helpers shared by the CLI and the TUI.
package util

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Ellipsis marks truncated text.
const Ellipsis = "..."

// TruncateANSI truncates s to maxWidth terminal columns, ending in Ellipsis
// when cut. Escape sequences are preserved and wide characters count by
// their display width.
func TruncateANSI(s string, maxWidth int) string {
	if maxWidth <= len(Ellipsis) {
		return Ellipsis
	}
	if lipgloss.Width(s) <= maxWidth {
		return s
	}
	// ansi.Truncate counts the tail toward maxWidth.
	return ansi.Truncate(s, maxWidth, Ellipsis)
}

// NormalizeText flattens line breaks and tabs to single spaces and trims the
// result, so a task always renders on one line.
func NormalizeText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
