package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/huh"

	"github.com/SumukhPhulari10/apptbot/internal/constants"
	"github.com/SumukhPhulari10/apptbot/internal/intake"
	"github.com/SumukhPhulari10/apptbot/internal/lifecycle"
	"github.com/SumukhPhulari10/apptbot/internal/models"
	"github.com/SumukhPhulari10/apptbot/internal/validation"
)

// runComposer drives the step-by-step wizard from whatever step the
// composer is at until the summary is confirmed. Choosing a field to change
// at the summary walks the composer back through the intermediate steps,
// which clears the data those steps had collected, and re-prompts forward
// from there.
func runComposer(comp *lifecycle.Composer) (models.Draft, error) {
	for {
		var err error
		switch comp.Step() {
		case lifecycle.StepDate:
			err = promptDate(comp)
		case lifecycle.StepTime:
			err = promptTime(comp)
		case lifecycle.StepSubject:
			err = promptSubject(comp)
		case lifecycle.StepContact:
			err = promptContact(comp)
		case lifecycle.StepSummary:
			var done bool
			done, err = promptSummary(comp)
			if err == nil && done {
				return comp.Draft(), nil
			}
		}
		if err != nil {
			return models.Draft{}, err
		}
	}
}

func promptDate(comp *lifecycle.Composer) error {
	date := comp.Draft().Date
	if date == "" {
		date = time.Now().Format(constants.DateFormat)
	}

	form := huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("Appointment date").
			Description("YYYY-MM-DD").
			Value(&date).
			Validate(func(s string) error {
				if _, err := time.Parse(constants.DateFormat, s); err != nil {
					return fmt.Errorf("date must be YYYY-MM-DD")
				}
				return nil
			}),
	))
	if err := form.Run(); err != nil {
		return wizardErr(err)
	}
	return comp.SetDate(date)
}

func promptTime(comp *lifecycle.Composer) error {
	draft := comp.Draft()
	hour := ""
	minute := "00"
	period := "PM"
	if draft.HasTime() {
		hour = strconv.Itoa(draft.Hour)
		minute = fmt.Sprintf("%02d", draft.Minute)
		period = draft.Period
	}

	form := huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("Hour").
			Description("1-12").
			Value(&hour).
			Validate(intRange(1, 12, "hour")),
		huh.NewInput().
			Title("Minute").
			Description("0-59").
			Value(&minute).
			Validate(intRange(0, 59, "minute")),
		huh.NewSelect[string]().
			Title("Period").
			Options(
				huh.NewOption("AM", "AM"),
				huh.NewOption("PM", "PM"),
			).
			Value(&period),
	))
	if err := form.Run(); err != nil {
		return wizardErr(err)
	}

	h, _ := strconv.Atoi(strings.TrimSpace(hour))
	m, _ := strconv.Atoi(strings.TrimSpace(minute))
	return comp.SetTime(h, m, period)
}

func promptSubject(comp *lifecycle.Composer) error {
	subject := comp.Draft().Subject

	form := huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("Subject").
			Description("What is the appointment for?").
			Value(&subject).
			Validate(validation.ValidateSubject),
	))
	if err := form.Run(); err != nil {
		return wizardErr(err)
	}
	return comp.SetSubject(subject)
}

func promptContact(comp *lifecycle.Composer) error {
	draft := comp.Draft()
	email := draft.Email
	phone := draft.Phone

	form := huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("Email").
			Description("Optional, for email reminders").
			Value(&email).
			Validate(validation.ValidateEmail),
		huh.NewInput().
			Title("Phone").
			Description("Optional, for SMS reminders").
			Value(&phone).
			Validate(func(s string) error {
				_, err := validation.NormalizePhone(s)
				return err
			}),
	))
	if err := form.Run(); err != nil {
		return wizardErr(err)
	}
	return comp.SetContact(email, phone)
}

func promptSummary(comp *lifecycle.Composer) (bool, error) {
	draft := comp.Draft()
	choice := "confirm"

	form := huh.NewForm(huh.NewGroup(
		huh.NewSelect[string]().
			Title("Confirm this appointment?").
			Description(summarize(draft)).
			Options(
				huh.NewOption("Confirm", "confirm"),
				huh.NewOption("Change date", "date"),
				huh.NewOption("Change time", "time"),
				huh.NewOption("Change subject", "subject"),
				huh.NewOption("Change contact", "contact"),
				huh.NewOption("Cancel", "cancel"),
			).
			Value(&choice),
	))
	if err := form.Run(); err != nil {
		return false, wizardErr(err)
	}

	switch choice {
	case "confirm":
		return true, nil
	case "cancel":
		return false, intake.ErrAborted
	case "date":
		backTo(comp, lifecycle.StepDate)
	case "time":
		backTo(comp, lifecycle.StepTime)
	case "subject":
		backTo(comp, lifecycle.StepSubject)
	case "contact":
		backTo(comp, lifecycle.StepContact)
	}
	return false, nil
}

func backTo(comp *lifecycle.Composer, step lifecycle.Step) {
	for comp.Step() != step {
		comp.Back()
	}
}

func summarize(d models.Draft) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s at %s\n", d.Date, d.FormatTime())
	fmt.Fprintf(&b, "Subject: %s\n", d.Subject)
	if d.Email != "" {
		fmt.Fprintf(&b, "Email:   %s\n", d.Email)
	}
	if d.Phone != "" {
		fmt.Fprintf(&b, "Phone:   %s\n", d.Phone)
	}
	return b.String()
}

func intRange(min, max int, field string) func(string) error {
	return func(s string) error {
		n, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return fmt.Errorf("%s must be a number", field)
		}
		if n < min || n > max {
			return fmt.Errorf("%s must be between %d and %d", field, min, max)
		}
		return nil
	}
}

// wizardErr maps huh's abort into the shared intake abort error.
func wizardErr(err error) error {
	if err == huh.ErrUserAborted {
		return intake.ErrAborted
	}
	return err
}
