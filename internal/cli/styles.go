package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/tracker/internal/models"
)

var (
	HeaderStyle = lipgloss.NewStyle().Bold(true).Underline(true)

	SectionStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Bold(true)

	MutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)

	DoneStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	WarningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))
)

// Swatch renders a small block in the tracker's color.
func Swatch(c models.Color) string {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(c.String())).Render("■")
}

// TrackerLine renders one tracker row: swatch, emoji, name, schedule, and an
// optional completion mark and day count.
func TrackerLine(t models.Tracker, done bool, days int, showID bool) string {
	mark := "[ ]"
	if done {
		mark = DoneStyle.Render("[x]")
	}
	line := fmt.Sprintf("%s %s %s %s", mark, Swatch(t.Color), t.Emoji, t.Name)
	if t.IsPinned {
		line += " 📌"
	}
	line += MutedStyle.Render(fmt.Sprintf("  %s, %s", t.Schedule, DaysLabel(days)))
	if showID {
		line += MutedStyle.Render("  (ID: " + t.ID + ")")
	}
	return line
}

// DaysLabel is the per-tracker completion counter.
func DaysLabel(n int) string {
	if n == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", n)
}
