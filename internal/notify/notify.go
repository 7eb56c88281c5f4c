// Package notify fans a notification out to the configured channels. Each
// channel send is independent and best-effort: a failed channel is logged
// and reported, and never blocks the others or the record's state advance.
package notify

import (
	"github.com/SumukhPhulari10/apptbot/internal/logger"
	"github.com/SumukhPhulari10/apptbot/internal/models"
)

// EmailChannel sends one HTML mail.
type EmailChannel interface {
	Send(to, subject, htmlBody string) error
}

// SMSChannel sends one text message.
type SMSChannel interface {
	Send(to, body string) error
}

// Dispatcher routes appointment notifications to whichever channels are
// configured and applicable. A nil channel or a record without the matching
// contact field simply skips that channel.
type Dispatcher struct {
	Email EmailChannel
	SMS   SMSChannel
}

// Result reports which channels were attempted and which failed.
type Result struct {
	EmailSent bool
	SMSSent   bool
	Errors    []error
}

// SendConfirmation delivers the booking confirmation.
func (d *Dispatcher) SendConfirmation(rec models.AppointmentRecord) Result {
	return d.send(rec, "confirmation",
		ConfirmationEmailSubject(rec), ConfirmationEmailBody(rec), ConfirmationSMS(rec))
}

// SendReminder delivers the at-time reminder.
func (d *Dispatcher) SendReminder(rec models.AppointmentRecord) Result {
	return d.send(rec, "reminder",
		ReminderEmailSubject(rec), ReminderEmailBody(rec), ReminderSMS(rec))
}

// SendFollowUp delivers the post-appointment follow-up.
func (d *Dispatcher) SendFollowUp(rec models.AppointmentRecord) Result {
	return d.send(rec, "follow-up",
		FollowUpEmailSubject(rec), FollowUpEmailBody(rec), FollowUpSMS(rec))
}

func (d *Dispatcher) send(rec models.AppointmentRecord, kind, emailSubject, emailBody, smsBody string) Result {
	var res Result

	if d.Email != nil && rec.Email != "" {
		if err := d.Email.Send(rec.Email, emailSubject, emailBody); err != nil {
			logger.Warn("email send failed", "kind", kind, "id", rec.ID, "error", err)
			res.Errors = append(res.Errors, err)
		} else {
			logger.Info("email sent", "kind", kind, "id", rec.ID, "to", rec.Email)
			res.EmailSent = true
		}
	}

	if d.SMS != nil && rec.Phone != "" {
		if err := d.SMS.Send(rec.Phone, smsBody); err != nil {
			logger.Warn("sms send failed", "kind", kind, "id", rec.ID, "error", err)
			res.Errors = append(res.Errors, err)
		} else {
			logger.Info("sms sent", "kind", kind, "id", rec.ID, "to", rec.Phone)
			res.SMSSent = true
		}
	}

	return res
}
