package main

import (
	"path/filepath"

	"github.com/alecthomas/kong"

	"github.com/SumukhPhulari10/apptbot/internal/api"
	"github.com/SumukhPhulari10/apptbot/internal/cli"
	"github.com/SumukhPhulari10/apptbot/internal/config"
	apperrors "github.com/SumukhPhulari10/apptbot/internal/errors"
	"github.com/SumukhPhulari10/apptbot/internal/logger"
	"github.com/SumukhPhulari10/apptbot/internal/storage"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Config file path." type:"path"`
	Debug   bool   `help:"Enable debug logging."`

	Init   cli.InitCmd   `cmd:"" help:"Initialize apptbot storage."`
	Add    cli.AddCmd    `cmd:"" help:"Add an appointment step by step."`
	Quick  cli.QuickCmd  `cmd:"" help:"Add an appointment from a plain-language description."`
	List   cli.ListCmd   `cmd:"" help:"List appointments."`
	Edit   cli.EditCmd   `cmd:"" help:"Edit an appointment."`
	Delete cli.DeleteCmd `cmd:"" help:"Delete an appointment."`
	Watch  cli.WatchCmd  `cmd:"" help:"Keep reminder timers running and show the live dashboard."`
	Secret struct {
		Set    cli.SecretSetCmd    `cmd:"" help:"Store a server credential in the OS keyring."`
		Delete cli.SecretDeleteCmd `cmd:"" help:"Remove a server credential from the OS keyring."`
	} `cmd:"" help:"Manage server credentials."`
	Backup struct {
		Create  cli.BackupCreateCmd  `cmd:"" default:"1" help:"Snapshot the appointment store."`
		List    cli.BackupListCmd    `cmd:"" help:"List store snapshots."`
		Restore cli.BackupRestoreCmd `cmd:"" help:"Restore the store from a snapshot."`
	} `cmd:"" help:"Manage store snapshots."`
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name("apptbot"),
		kong.Description("Appointment scheduler with reminder and follow-up notifications"),
		kong.UsageOnError(),
		kong.Vars{"version": "v0.1.0"},
	)

	configDir, err := config.Dir()
	if err != nil {
		apperrors.Fatal(err)
	}

	configPath := CLI.Config
	if configPath == "" {
		configPath = filepath.Join(configDir, "config.yaml")
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		apperrors.Fatal(err)
	}

	if err := logger.Init(logger.Config{Debug: CLI.Debug || cfg.Debug, ConfigDir: configDir}); err != nil {
		apperrors.Fatal(err)
	}

	storePath := cfg.ResolveStorePath(configDir)
	var store storage.Provider
	if cfg.Backend == "json" {
		store = storage.NewJSONStore(storePath)
	} else {
		store = storage.NewSQLiteStore(storePath)
	}
	appCtx := &cli.Context{
		Store:  store,
		Config: cfg,
	}
	if cfg.ServerURL != "" {
		appCtx.Client = api.NewClient(cfg.ServerURL)
	}

	err = ctx.Run(appCtx)
	store.Close()
	if err != nil {
		apperrors.Fatal(err)
	}
}
