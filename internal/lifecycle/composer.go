package lifecycle

import (
	"time"

	"github.com/SumukhPhulari10/apptbot/internal/constants"
	"github.com/SumukhPhulari10/apptbot/internal/models"
	"github.com/SumukhPhulari10/apptbot/internal/validation"
)

// Step is a stage of the composition flow.
type Step int

const (
	StepDate Step = iota
	StepTime
	StepSubject
	StepContact
	StepSummary
)

func (s Step) String() string {
	switch s {
	case StepDate:
		return "date"
	case StepTime:
		return "time"
	case StepSubject:
		return "subject"
	case StepContact:
		return "contact"
	case StepSummary:
		return "summary"
	default:
		return "unknown"
	}
}

// Composer walks a draft through the composition steps. Transitions are
// linear: each Set* call validates its own field and advances one step;
// Back retreats one step and clears the data the abandoned step had
// collected, so re-confirming never silently reuses stale partial input.
type Composer struct {
	step   Step
	draft  models.Draft
	editID string
}

// NewComposer starts a fresh composition at the date step.
func NewComposer() *Composer {
	return &Composer{step: StepDate}
}

// NewEditComposer re-enters the flow for an existing record, pre-seeded
// with its values and tagged with its id so confirmation takes the
// in-place-mutation path.
func NewEditComposer(rec models.AppointmentRecord) *Composer {
	hour := rec.DateTime.Hour()
	period := "AM"
	if hour >= 12 {
		period = "PM"
	}
	hour = hour % 12
	if hour == 0 {
		hour = 12
	}
	return &Composer{
		step: StepDate,
		draft: models.Draft{
			Date:    rec.DateTime.Format(constants.DateFormat),
			Hour:    hour,
			Minute:  rec.DateTime.Minute(),
			Period:  period,
			Subject: rec.Subject,
			Email:   rec.Email,
			Phone:   rec.Phone,
		},
		editID: rec.ID,
	}
}

func (c *Composer) Step() Step {
	return c.step
}

func (c *Composer) Draft() models.Draft {
	return c.draft
}

// EditingID returns the id of the record being edited, or "" for a new
// appointment.
func (c *Composer) EditingID() string {
	return c.editID
}

// SetDate records the date and advances to the time step.
func (c *Composer) SetDate(date string) error {
	if _, err := time.Parse(constants.DateFormat, date); err != nil {
		return &validation.Error{Field: "date", Reason: "date must be YYYY-MM-DD"}
	}
	c.draft.Date = date
	c.step = StepTime
	return nil
}

// SetTime records the resolved time-of-day and advances to the subject step.
func (c *Composer) SetTime(hour, minute int, period string) error {
	if hour < 1 || hour > 12 {
		return &validation.Error{Field: "time", Reason: "hour must be between 1 and 12"}
	}
	if minute < 0 || minute > 59 {
		return &validation.Error{Field: "time", Reason: "minute must be between 0 and 59"}
	}
	if period != "AM" && period != "PM" {
		return &validation.Error{Field: "time", Reason: "period must be AM or PM"}
	}
	c.draft.Hour = hour
	c.draft.Minute = minute
	c.draft.Period = period
	c.step = StepSubject
	return nil
}

// SetSubject records the subject and advances to the contact step.
func (c *Composer) SetSubject(subject string) error {
	if err := validation.ValidateSubject(subject); err != nil {
		return err
	}
	c.draft.Subject = subject
	c.step = StepContact
	return nil
}

// SetContact records the optional contact details and advances to summary.
// Both fields may be empty.
func (c *Composer) SetContact(email, phone string) error {
	if err := validation.ValidateEmail(email); err != nil {
		return err
	}
	if _, err := validation.NormalizePhone(phone); err != nil {
		return err
	}
	c.draft.Email = email
	c.draft.Phone = phone
	c.step = StepSummary
	return nil
}

// Back retreats one step, clearing the data the step being left had
// collected. At the date step it is a no-op.
func (c *Composer) Back() {
	switch c.step {
	case StepTime:
		c.draft.Hour = 0
		c.draft.Minute = 0
		c.draft.Period = ""
		c.step = StepDate
	case StepSubject:
		c.draft.Subject = ""
		c.step = StepTime
	case StepContact:
		c.draft.Email = ""
		c.draft.Phone = ""
		c.step = StepSubject
	case StepSummary:
		c.step = StepContact
	}
}
