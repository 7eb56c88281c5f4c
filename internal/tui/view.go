package tui

import (
	"fmt"
	"strings"
)

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("apptbot watch"))
	b.WriteString("\n\n")
	b.WriteString(baseStyle.Render(m.table.View()))
	b.WriteString("\n")

	status := fmt.Sprintf("%d armed · %d missed", m.armed, m.missed)
	if m.lastEvent != "" {
		status += " · " + m.lastEvent
	}
	b.WriteString(statusStyle.Render(status))
	b.WriteString("\n")

	if m.err != nil {
		b.WriteString(errorStyle.Render("error: " + m.err.Error()))
		b.WriteString("\n")
	}

	b.WriteString(helpStyle.Render("r refresh · q quit"))
	return b.String()
}
