package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Refresh):
			m.rescan()
			return m, nil
		}

	case tickMsg:
		m.rescan()
		return m, tick()

	case FireMsg:
		m.lastEvent = fmt.Sprintf("%s fired for %q at %s",
			msg.Kind, msg.Record.Subject, msg.Record.FormatDateTime())
		m.refreshRows()
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// rescan re-derives timers from the store so appointments added, edited,
// or deleted by other commands while watching get picked up. Reconciliation
// is idempotent, and it sweeps timers whose record is gone.
func (m *Model) rescan() {
	if err := m.store.Load(); err != nil {
		m.err = err
		return
	}
	armed, missed, err := m.svc.Reconcile()
	if err != nil {
		m.err = err
		return
	}
	m.armed = armed
	m.missed += missed
	m.refreshRows()
}
