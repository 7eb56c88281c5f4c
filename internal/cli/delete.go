package cli

import (
	"context"
	"fmt"

	"github.com/charmbracelet/huh"
)

type DeleteCmd struct {
	ID    string `arg:"" help:"Appointment ID."`
	Force bool   `short:"f" help:"Skip the confirmation prompt."`
}

func (c *DeleteCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	rec, err := ctx.Store.GetAppointment(c.ID)
	if err != nil {
		return err
	}

	if !c.Force {
		confirmed := false
		form := huh.NewForm(huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("Delete %q (%s)?", rec.Subject, rec.FormatDateTime())).
				Value(&confirmed),
		))
		if err := form.Run(); err != nil {
			return wizardErr(err)
		}
		if !confirmed {
			fmt.Println("Cancelled.")
			return nil
		}
	}

	if err := ctx.Service(nil).Delete(context.Background(), c.ID); err != nil {
		return err
	}

	fmt.Printf("Deleted appointment %s\n", c.ID)
	return nil
}
