package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/SumukhPhulari10/apptbot/internal/intake"
	"github.com/SumukhPhulari10/apptbot/internal/lifecycle"
)

type AddCmd struct{}

func (c *AddCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	draft, err := runComposer(lifecycle.NewComposer())
	if err != nil {
		if errors.Is(err, intake.ErrAborted) {
			fmt.Println("Cancelled.")
			return nil
		}
		return err
	}

	rec, err := ctx.Service(nil).Confirm(context.Background(), draft, "")
	if err != nil {
		return err
	}

	fmt.Printf("Scheduled %q for %s (ID: %s)\n", rec.Subject, rec.FormatDateTime(), rec.ID)
	if rec.BackendReference == "" {
		fmt.Println("Note: reminders are local-only until the notification server is reachable.")
	}
	return nil
}
