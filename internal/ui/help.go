package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderHelpContent renders the help page shown in the pager
func renderHelpContent(privileged bool) string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("99")).
		MarginBottom(1)

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("39")).
		MarginTop(1)

	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("220")).
		Width(12)

	descStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("252"))

	var help strings.Builder
	line := func(keys, desc string) {
		help.WriteString(fmt.Sprintf("  %s %s\n", keyStyle.Render(keys), descStyle.Render(desc)))
	}

	help.WriteString(titleStyle.Render("modgrip Help"))
	help.WriteString("\n")

	help.WriteString(sectionStyle.Render("Navigation"))
	help.WriteString("\n")
	line("↑/↓, j/k", "Move up/down")
	line("PgUp/PgDn", "Page up/down")
	line("g/G", "Go to top/bottom")
	help.WriteString("\n")

	help.WriteString(sectionStyle.Render("Search"))
	help.WriteString("\n")
	line("/", "Focus the search field")
	line("tag:name␣", "Typing a tag followed by a space adds a tag chip")
	line("Backspace", "On an empty field, removes the last tag chip")
	line("Enter/Esc", "Back to the listing, the search stays applied")
	help.WriteString("\n")

	filterStyle := lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("241"))
	help.WriteString(filterStyle.Render("  Searches run 1.5s after the last keystroke."))
	help.WriteString("\n")

	help.WriteString(sectionStyle.Render("Listing"))
	help.WriteString("\n")
	line("f", "Choose filter (all, trusted, ...)")
	line("]/[", "More/fewer modules per page")
	line("r", "Reload")
	help.WriteString("\n")

	help.WriteString(sectionStyle.Render("Modules"))
	help.WriteString("\n")
	line("Enter/v", "View description")
	if privileged {
		line("e", "Edit description (ctrl+s save, tab preview)")
		line("d", "Delete module")
	}
	help.WriteString("\n")

	help.WriteString(sectionStyle.Render("Other"))
	help.WriteString("\n")
	line("?", "Show this help")
	line("q", "Quit")

	return strings.TrimRight(help.String(), "\n")
}
