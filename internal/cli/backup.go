package cli

import (
	"fmt"

	"github.com/SumukhPhulari10/apptbot/internal/backup"
	"github.com/SumukhPhulari10/apptbot/internal/config"
)

func (c *Context) backupManager() (*backup.Manager, error) {
	dir, err := config.Dir()
	if err != nil {
		return nil, err
	}
	return backup.NewManager(c.Config.ResolveStorePath(dir)), nil
}

type BackupCreateCmd struct{}

func (c *BackupCreateCmd) Run(ctx *Context) error {
	mgr, err := ctx.backupManager()
	if err != nil {
		return err
	}
	path, err := mgr.Create()
	if err != nil {
		return err
	}
	fmt.Printf("Created backup: %s\n", path)
	return nil
}

type BackupListCmd struct{}

func (c *BackupListCmd) Run(ctx *Context) error {
	mgr, err := ctx.backupManager()
	if err != nil {
		return err
	}
	backups, err := mgr.List()
	if err != nil {
		return err
	}
	if len(backups) == 0 {
		fmt.Println("No backups found")
		return nil
	}
	for _, b := range backups {
		fmt.Printf("%s  %s (%d bytes)\n", b.Timestamp.Format("2006-01-02 15:04:05"), b.Path, b.Size)
	}
	return nil
}

type BackupRestoreCmd struct {
	Path string `arg:"" optional:"" help:"Backup file to restore. Defaults to the newest backup."`
}

func (c *BackupRestoreCmd) Run(ctx *Context) error {
	mgr, err := ctx.backupManager()
	if err != nil {
		return err
	}

	path := c.Path
	if path == "" {
		backups, err := mgr.List()
		if err != nil {
			return err
		}
		if len(backups) == 0 {
			return fmt.Errorf("no backups to restore")
		}
		path = backups[0].Path
	}

	if err := mgr.Restore(path); err != nil {
		return err
	}
	fmt.Printf("Restored store from: %s\n", path)
	return nil
}
