package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"github.com/SumukhPhulari10/apptbot/internal/models"
)

var (
	idStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	subjectStyle = lipgloss.NewStyle().Bold(true)

	stateStyles = map[models.ReminderState]lipgloss.Style{
		models.ReminderStatePending:    lipgloss.NewStyle().Foreground(lipgloss.Color("33")),
		models.ReminderStateReminded:   lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		models.ReminderStateFollowedUp: lipgloss.NewStyle().Foreground(lipgloss.Color("36")),
		models.ReminderStateMissed:     lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		models.ReminderStateCancelled:  lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	}
)

func renderState(state models.ReminderState) string {
	if style, ok := stateStyles[state]; ok {
		return style.Render(string(state))
	}
	return string(state)
}

type ListCmd struct {
	All bool `short:"a" help:"Include cancelled and missed appointments."`
}

func (c *ListCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	records, err := ctx.Store.GetAllAppointments()
	if err != nil {
		return err
	}
	if len(records) == 0 {
		fmt.Println("No appointments found")
		return nil
	}

	shown := 0
	for _, rec := range records {
		if !c.All && (rec.ReminderState == models.ReminderStateCancelled ||
			rec.ReminderState == models.ReminderStateMissed) {
			continue
		}
		shown++

		fmt.Printf("%s  %s [%s]\n", subjectStyle.Render(rec.Subject),
			rec.FormatDateTime(), renderState(rec.ReminderState))
		fmt.Printf("  %s\n", idStyle.Render("ID: "+rec.ID))
		if rec.Email != "" || rec.Phone != "" {
			contact := rec.Email
			if rec.Phone != "" {
				if contact != "" {
					contact += " / "
				}
				contact += rec.Phone
			}
			fmt.Printf("  %s\n", idStyle.Render("Contact: "+contact))
		}
	}

	if shown == 0 {
		fmt.Println("No upcoming appointments (use --all to include cancelled and missed)")
	}
	return nil
}
