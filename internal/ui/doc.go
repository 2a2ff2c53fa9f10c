// Package ui styles terminal output with a small [lipgloss] palette: titles, status markers and
// colored progress lines for bulk link resolution.
package ui
