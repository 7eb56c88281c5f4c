package cli

import (
	"github.com/SumukhPhulari10/apptbot/internal/api"
	"github.com/SumukhPhulari10/apptbot/internal/config"
	"github.com/SumukhPhulari10/apptbot/internal/lifecycle"
	"github.com/SumukhPhulari10/apptbot/internal/schedule"
	"github.com/SumukhPhulari10/apptbot/internal/storage"
)

type Context struct {
	Store  storage.Provider
	Config *config.Config
	// Client is nil when no notification server is configured.
	Client *api.Client
}

// Service builds the appointment service for a command. Commands that do
// not keep timers pass a nil registry.
func (c *Context) Service(registry *schedule.Registry) *lifecycle.Service {
	var backend lifecycle.Backend
	if c.Client != nil {
		backend = c.Client
	}
	return lifecycle.NewService(c.Store, registry, backend)
}
