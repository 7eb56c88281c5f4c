package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/SumukhPhulari10/apptbot/internal/intake"
	"github.com/SumukhPhulari10/apptbot/internal/lifecycle"
)

type QuickCmd struct {
	Message []string `arg:"" optional:"" help:"Appointment described in plain language, e.g. 'dentist next tuesday at 3pm'."`
}

func (c *QuickCmd) Run(ctx *Context) error {
	if ctx.Client == nil {
		return errors.New("quick add needs the notification server, set server_url in the config")
	}
	if err := ctx.Store.Load(); err != nil {
		return err
	}

	message := strings.Join(c.Message, " ")
	if message == "" {
		var err error
		message, err = promptMessage("Describe your appointment")
		if err != nil {
			if errors.Is(err, intake.ErrAborted) {
				fmt.Println("Cancelled.")
				return nil
			}
			return err
		}
	}

	adapter := &intake.NaturalAdapter{
		Extractor: ctx.Client,
		Message:   message,
		Prompt: func(question string) (string, bool) {
			text, err := promptMessage(question)
			if err != nil {
				return "", false
			}
			return text, true
		},
	}

	draft, err := adapter.Solicit(context.Background())
	if err != nil {
		if errors.Is(err, intake.ErrAborted) {
			fmt.Println("Cancelled.")
			return nil
		}
		return err
	}

	// The extraction covers date, time, and subject; contact details and
	// the final confirmation go through the same wizard as manual entry.
	comp := lifecycle.NewComposer()
	if err := comp.SetDate(draft.Date); err != nil {
		return err
	}
	if err := comp.SetTime(draft.Hour, draft.Minute, draft.Period); err != nil {
		return err
	}
	if err := comp.SetSubject(draft.Subject); err != nil {
		return err
	}

	full, err := runComposer(comp)
	if err != nil {
		if errors.Is(err, intake.ErrAborted) {
			fmt.Println("Cancelled.")
			return nil
		}
		return err
	}

	rec, err := ctx.Service(nil).Confirm(context.Background(), full, "")
	if err != nil {
		return err
	}

	fmt.Printf("Scheduled %q for %s (ID: %s)\n", rec.Subject, rec.FormatDateTime(), rec.ID)
	return nil
}

func promptMessage(title string) (string, error) {
	var text string
	form := huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title(title).
			Value(&text),
	))
	if err := form.Run(); err != nil {
		return "", wizardErr(err)
	}
	return text, nil
}
