package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/SumukhPhulari10/apptbot/internal/intake"
	"github.com/SumukhPhulari10/apptbot/internal/lifecycle"
)

type EditCmd struct {
	ID string `arg:"" help:"Appointment ID."`
}

func (c *EditCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	rec, err := ctx.Store.GetAppointment(c.ID)
	if err != nil {
		return err
	}

	comp := lifecycle.NewEditComposer(rec)
	draft, err := runComposer(comp)
	if err != nil {
		if errors.Is(err, intake.ErrAborted) {
			fmt.Println("Cancelled, appointment unchanged.")
			return nil
		}
		return err
	}

	updated, err := ctx.Service(nil).Confirm(context.Background(), draft, comp.EditingID())
	if err != nil {
		return err
	}

	fmt.Printf("Updated %q to %s (ID: %s)\n", updated.Subject, updated.FormatDateTime(), updated.ID)
	return nil
}
