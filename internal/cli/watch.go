package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mitchellh/go-ps"

	"github.com/SumukhPhulari10/apptbot/internal/config"
	"github.com/SumukhPhulari10/apptbot/internal/constants"
	"github.com/SumukhPhulari10/apptbot/internal/lifecycle"
	"github.com/SumukhPhulari10/apptbot/internal/logger"
	"github.com/SumukhPhulari10/apptbot/internal/models"
	"github.com/SumukhPhulari10/apptbot/internal/schedule"
	"github.com/SumukhPhulari10/apptbot/internal/tui"
)

var findProcessFunc = ps.FindProcess

type WatchCmd struct{}

func (c *WatchCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	lockPath, err := acquireWatchLock()
	if err != nil {
		return err
	}
	defer os.Remove(lockPath)

	// Hooks close over the service and program so the registry can be
	// built before either exists.
	var svc *lifecycle.Service
	var program *tea.Program

	registry := schedule.New(schedule.Hooks{
		Reminder: func(rec models.AppointmentRecord) {
			if err := svc.MarkReminded(rec.ID); err != nil {
				logger.Warn("failed to record reminder", "id", rec.ID, "error", err)
			}
			if program != nil {
				program.Send(tui.FireMsg{Kind: tui.FireReminder, Record: rec})
			}
		},
		FollowUp: func(rec models.AppointmentRecord) {
			if err := svc.MarkFollowedUp(rec.ID); err != nil {
				logger.Warn("failed to record follow-up", "id", rec.ID, "error", err)
			}
			if program != nil {
				program.Send(tui.FireMsg{Kind: tui.FireFollowUp, Record: rec})
			}
		},
	})
	defer registry.Stop()

	svc = ctx.Service(registry)
	armed, missed, err := svc.Reconcile()
	if err != nil {
		return err
	}
	logger.Info("watch started", "armed", armed, "missed", missed)

	program = tea.NewProgram(tui.New(ctx.Store, svc, armed, missed), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("watch ui error: %w", err)
	}
	return nil
}

// acquireWatchLock enforces a single watch process per user. A stale
// lockfile from a dead or unrelated process is overwritten.
func acquireWatchLock() (string, error) {
	dir, err := config.Dir()
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, constants.WatchLockfileName)

	if content, err := os.ReadFile(path); err == nil {
		if pid, err := strconv.Atoi(strings.TrimSpace(string(content))); err == nil {
			process, err := findProcessFunc(pid)
			if err == nil && process != nil && strings.HasPrefix(process.Executable(), constants.AppName) {
				return "", fmt.Errorf("watch is already running (pid %d)", pid)
			}
		}
	}

	if err := os.WriteFile(path, []byte(strconv.Itoa(os.Getpid())), 0600); err != nil {
		return "", fmt.Errorf("failed to write lockfile: %w", err)
	}
	return path, nil
}
