// Package tui is the watch dashboard: a live table of appointments with
// their reminder states, refreshed on every timer fire and on a periodic
// rescan that arms timers for records added by other commands.
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/SumukhPhulari10/apptbot/internal/lifecycle"
	"github.com/SumukhPhulari10/apptbot/internal/models"
	"github.com/SumukhPhulari10/apptbot/internal/storage"
)

const (
	FireReminder = "reminder"
	FireFollowUp = "follow-up"

	rescanInterval = 15 * time.Second
)

// FireMsg is sent by the timer hooks when a reminder or follow-up fires.
type FireMsg struct {
	Kind   string
	Record models.AppointmentRecord
}

type tickMsg time.Time

type KeyMap struct {
	Quit    key.Binding
	Refresh key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
	}
}

type Model struct {
	store storage.Provider
	svc   *lifecycle.Service
	table table.Model
	keys  KeyMap

	armed     int
	missed    int
	lastEvent string
	err       error
}

func New(store storage.Provider, svc *lifecycle.Service, armed, missed int) Model {
	columns := []table.Column{
		{Title: "When", Width: 38},
		{Title: "Subject", Width: 28},
		{Title: "State", Width: 12},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(12),
	)

	m := Model{
		store:  store,
		svc:    svc,
		table:  t,
		keys:   DefaultKeyMap(),
		armed:  armed,
		missed: missed,
	}
	m.refreshRows()
	return m
}

func (m *Model) refreshRows() {
	records, err := m.store.GetAllAppointments()
	if err != nil {
		m.err = err
		return
	}
	m.err = nil

	rows := make([]table.Row, 0, len(records))
	for _, rec := range records {
		if rec.ReminderState == models.ReminderStateCancelled {
			continue
		}
		rows = append(rows, table.Row{
			rec.FormatDateTime(),
			rec.Subject,
			string(rec.ReminderState),
		})
	}
	m.table.SetRows(rows)
}

func tick() tea.Cmd {
	return tea.Tick(rescanInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) Init() tea.Cmd {
	return tick()
}
