// Package intake turns user input into appointment drafts. The manual
// step-by-step flow and the natural-language flow both feed the same
// lifecycle confirmation path, so neither can grow its own validation
// rules.
package intake

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/SumukhPhulari10/apptbot/internal/models"
	"github.com/SumukhPhulari10/apptbot/internal/validation"
)

// Extraction is the fixed-schema result of the extraction collaborator.
type Extraction struct {
	Date                string   `json:"date"`
	Time                string   `json:"time"` // HH:MM, 24-hour
	Subject             string   `json:"subject"`
	Confidence          float64  `json:"confidence"`
	MissingFields       []string `json:"missing_fields"`
	ClarificationNeeded string   `json:"clarification_needed,omitempty"`
	Error               string   `json:"error,omitempty"`
}

// Complete reports whether every required field was extracted.
func (e Extraction) Complete() bool {
	return e.Error == "" && len(e.MissingFields) == 0 &&
		e.Date != "" && e.Time != "" && e.Subject != ""
}

// Extractor is the natural-language extraction collaborator.
type Extractor interface {
	Extract(ctx context.Context, message string) (Extraction, error)
}

// Adapter produces a complete draft ready for the summary/confirm step.
type Adapter interface {
	Solicit(ctx context.Context) (models.Draft, error)
}

// ErrAborted is returned when the user abandons an intake flow.
var ErrAborted = errors.New("intake aborted")

// PromptFunc re-solicits free text from the user with a clarification
// question. ok is false when the user gives up.
type PromptFunc func(question string) (text string, ok bool)

// NaturalAdapter drives the free-text flow: extract once, and on missing
// fields or errors surface the collaborator's clarification and re-solicit.
// It never guesses a field the collaborator did not return.
type NaturalAdapter struct {
	Extractor Extractor
	Prompt    PromptFunc
	// Message is the initial free text; further text comes from Prompt.
	Message string
}

func (a *NaturalAdapter) Solicit(ctx context.Context) (models.Draft, error) {
	message := a.Message
	for {
		message = validation.SanitizeMessage(message)
		if message == "" {
			return models.Draft{}, &validation.Error{Field: "message", Reason: "message is required"}
		}

		ext, err := a.Extractor.Extract(ctx, message)
		if err != nil {
			return models.Draft{}, err
		}
		if ext.Complete() {
			return ToDraft(ext)
		}

		question := ext.ClarificationNeeded
		if question == "" && len(ext.MissingFields) > 0 {
			question = "Please provide: " + strings.Join(ext.MissingFields, ", ")
		}
		if question == "" {
			question = "Could you rephrase your appointment request?"
		}

		next, ok := a.Prompt(question)
		if !ok {
			return models.Draft{}, ErrAborted
		}
		message = next
	}
}

// ToDraft converts a structurally complete extraction into the same draft
// shape the manual flow produces, splitting the 24-hour HH:MM into the
// hour/minute/period triple the composition flow collects.
func ToDraft(ext Extraction) (models.Draft, error) {
	if !ext.Complete() {
		return models.Draft{}, fmt.Errorf("extraction is incomplete")
	}

	parts := strings.SplitN(ext.Time, ":", 2)
	if len(parts) != 2 {
		return models.Draft{}, fmt.Errorf("invalid extracted time %q", ext.Time)
	}
	hour24, err := strconv.Atoi(parts[0])
	if err != nil || hour24 < 0 || hour24 > 23 {
		return models.Draft{}, fmt.Errorf("invalid extracted hour %q", parts[0])
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return models.Draft{}, fmt.Errorf("invalid extracted minute %q", parts[1])
	}

	period := "AM"
	if hour24 >= 12 {
		period = "PM"
	}
	hour := hour24 % 12
	if hour == 0 {
		hour = 12
	}

	return models.Draft{
		Date:    ext.Date,
		Hour:    hour,
		Minute:  minute,
		Period:  period,
		Subject: ext.Subject,
	}, nil
}
