package ui

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/desertthunder/partyx/internal/party"
)

var styles = NewPalette("#7D56F4", "#04B575", "#FF0000", "#FFA500", "#626262")

// Palette is a simple stylesheet built with named [lipgloss.Style] fields
type Palette struct {
	title lipgloss.Style
	ok    lipgloss.Style
	err   lipgloss.Style
	warn  lipgloss.Style
	muted lipgloss.Style
}

func NewPalette(t, s, e, w, m string) *Palette {
	return &Palette{
		title: NewBold(t),
		ok:    NewBold(s),
		err:   NewBold(e),
		warn:  NewStyle(w),
		muted: NewEm(m),
	}
}

func NewStyle(fg string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(fg))
}

func NewBold(fg string) lipgloss.Style {
	return NewStyle(fg).Bold(true)
}

func NewEm(fg string) lipgloss.Style {
	return NewStyle(fg).Italic(true)
}

func Title(s string) string { return styles.title.Render(s) }
func OK(s string) string    { return styles.ok.Render(s) }
func Err(s string) string   { return styles.err.Render(s) }
func Warn(s string) string  { return styles.warn.Render(s) }
func Muted(s string) string { return styles.muted.Render(s) }

// Header renders a framed section title.
func Header(title string) string {
	rule := styles.muted.Render("═══════════════════════════════════════")
	return fmt.Sprintf("%s\n%s\n%s\n", rule, Title(title), rule)
}

// Check renders a completion marker.
func Check(done bool) string {
	if done {
		return OK("✓")
	}
	return Muted("·")
}

// Progress colors a link resolution update by its outcome.
func Progress(update party.ProgressUpdate) string {
	res, ok := update.Data.(party.SongResult)
	switch {
	case !ok:
		return Muted(update.Message)
	case res.Error != nil:
		return Err(update.Message)
	case res.Link == "":
		return Warn(update.Message)
	default:
		return OK(update.Message)
	}
}
