package models

import (
	"fmt"
	"time"

	"github.com/SumukhPhulari10/apptbot/internal/constants"
)

// ReminderState tracks how far a record's notification sequence has run.
type ReminderState string

const (
	ReminderStatePending    ReminderState = "pending"
	ReminderStateReminded   ReminderState = "reminded"
	ReminderStateFollowedUp ReminderState = "followedUp"
	// ReminderStateMissed marks records whose time had already passed when
	// their timer would have been armed. Missed reminders are never fired.
	ReminderStateMissed    ReminderState = "missed"
	ReminderStateCancelled ReminderState = "cancelled"
)

// AppointmentRecord is a confirmed appointment. Edits mutate the record in
// place under the same ID; a duplicate is never created.
type AppointmentRecord struct {
	ID        string    `json:"id"`
	DateTime  time.Time `json:"date_time"`
	Subject   string    `json:"subject"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	// BackendReference is the server-side booking id for this record, used
	// to cancel the server copy when the record is edited or deleted.
	BackendReference string        `json:"backend_reference,omitempty"`
	ReminderState    ReminderState `json:"reminder_state"`
}

// AdvanceReminder moves the reminder state forward. Allowed edges are
// pending→reminded→followedUp, pending→missed, and any→cancelled; every
// other transition is rejected so a record can never regress.
func (r *AppointmentRecord) AdvanceReminder(next ReminderState) error {
	if next == ReminderStateCancelled {
		r.ReminderState = next
		return nil
	}

	ok := false
	switch r.ReminderState {
	case ReminderStatePending:
		ok = next == ReminderStateReminded || next == ReminderStateMissed
	case ReminderStateReminded:
		ok = next == ReminderStateFollowedUp
	}
	if !ok {
		return fmt.Errorf("invalid reminder transition %s -> %s", r.ReminderState, next)
	}
	r.ReminderState = next
	return nil
}

// ResetReminder puts an edited record back at the start of the sequence.
func (r *AppointmentRecord) ResetReminder() {
	r.ReminderState = ReminderStatePending
}

// FormatDateTime renders the appointment instant for messages and listings.
func (r *AppointmentRecord) FormatDateTime() string {
	return r.DateTime.Format(constants.DisplayFormat)
}
