package notify

import (
	"fmt"

	"github.com/SumukhPhulari10/apptbot/internal/models"
)

// Message bodies follow the original bot's templates: a colored card per
// kind with the subject and formatted instant.

func ConfirmationEmailSubject(rec models.AppointmentRecord) string {
	return "Appointment Confirmed: " + rec.Subject
}

func ConfirmationEmailBody(rec models.AppointmentRecord) string {
	return fmt.Sprintf(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
    <h2 style="color: #6366f1;">✅ Appointment Confirmed</h2>
    <p>Your appointment has been successfully scheduled!</p>
    <div style="background: #f1f5f9; padding: 20px; border-radius: 10px; margin: 20px 0;">
        <h3 style="margin-top: 0; color: #334155;">Appointment Details</h3>
        <p><strong>Subject:</strong> %s</p>
        <p><strong>Date &amp; Time:</strong> %s</p>
    </div>
    <p>You will receive a reminder notification at the scheduled time.</p>
    <p style="color: #64748b; font-size: 14px;">- Your Appointment Bot</p>
</div>`, rec.Subject, rec.FormatDateTime())
}

func ConfirmationSMS(rec models.AppointmentRecord) string {
	return fmt.Sprintf("✅ Appointment confirmed!\n\n\"%s\"\n%s\n\nYou'll receive a reminder at the scheduled time.",
		rec.Subject, rec.FormatDateTime())
}

func ReminderEmailSubject(rec models.AppointmentRecord) string {
	return "⏰ Reminder: " + rec.Subject
}

func ReminderEmailBody(rec models.AppointmentRecord) string {
	return fmt.Sprintf(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
    <h2 style="color: #ef4444;">⏰ Appointment Reminder</h2>
    <p>This is your scheduled appointment reminder!</p>
    <div style="background: #fef2f2; padding: 20px; border-radius: 10px; margin: 20px 0; border-left: 4px solid #ef4444;">
        <h3 style="margin-top: 0; color: #991b1b;">Time for your appointment</h3>
        <p><strong>Subject:</strong> %s</p>
        <p><strong>Scheduled Time:</strong> %s</p>
    </div>
    <p style="color: #64748b; font-size: 14px;">- Your Appointment Bot</p>
</div>`, rec.Subject, rec.FormatDateTime())
}

func ReminderSMS(rec models.AppointmentRecord) string {
	return fmt.Sprintf("⏰ APPOINTMENT REMINDER\n\n\"%s\"\n\nScheduled for: %s\n\nTime to get ready!",
		rec.Subject, rec.FormatDateTime())
}

func FollowUpEmailSubject(rec models.AppointmentRecord) string {
	return "⚠️ Follow-up: " + rec.Subject
}

func FollowUpEmailBody(rec models.AppointmentRecord) string {
	return fmt.Sprintf(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
    <h2 style="color: #dc2626;">⚠️ Appointment Follow-up</h2>
    <p>This is a follow-up reminder for your appointment that was scheduled 2 minutes ago.</p>
    <div style="background: #fee2e2; padding: 20px; border-radius: 10px; margin: 20px 0; border-left: 4px solid #dc2626;">
        <h3 style="margin-top: 0; color: #991b1b;">Were you able to attend?</h3>
        <p><strong>Subject:</strong> %s</p>
        <p><strong>Scheduled Time:</strong> %s</p>
        <p style="margin-top: 15px; font-size: 14px;">If you missed this appointment, please reschedule at your earliest convenience.</p>
    </div>
    <p style="color: #64748b; font-size: 14px;">- Your Appointment Bot</p>
</div>`, rec.Subject, rec.FormatDateTime())
}

func FollowUpSMS(rec models.AppointmentRecord) string {
	return fmt.Sprintf("⚠️ FOLLOW-UP REMINDER\n\n\"%s\" was scheduled for %s.\n\nDid you attend? If you missed it, please reschedule.",
		rec.Subject, rec.FormatDateTime())
}
