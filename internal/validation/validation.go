package validation

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/SumukhPhulari10/apptbot/internal/constants"
	"github.com/SumukhPhulari10/apptbot/internal/models"
)

// Error is a recoverable input problem, reported inline against the field
// that owns it. It never crashes a flow; the user re-enters the field.
type Error struct {
	Field  string
	Reason string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

var (
	emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	phoneStrip   = regexp.MustCompile(`[\s\-\(\)]`)
	phoneDigits  = regexp.MustCompile(`^[0-9]+$`)
)

// ValidateSubject requires a non-empty subject.
func ValidateSubject(subject string) error {
	if strings.TrimSpace(subject) == "" {
		return &Error{Field: "subject", Reason: "subject is required"}
	}
	return nil
}

// ValidateEmail checks email shape. Empty is allowed; email is optional.
func ValidateEmail(email string) error {
	if email == "" {
		return nil
	}
	if !emailPattern.MatchString(email) {
		return &Error{Field: "email", Reason: "invalid email format"}
	}
	return nil
}

// NormalizePhone converts a phone number into canonical international form
// or rejects it. Separators are stripped; bare 10-digit numbers get the
// default country prefix; 11-15 digit numbers are assumed to carry their
// country code already. Empty input is allowed; phone is optional.
func NormalizePhone(phone string) (string, error) {
	if phone == "" {
		return "", nil
	}

	clean := phoneStrip.ReplaceAllString(phone, "")
	clean = strings.TrimPrefix(clean, "+")
	if !phoneDigits.MatchString(clean) {
		return "", &Error{Field: "phone", Reason: "phone may contain only digits and separators"}
	}
	if len(clean) < 10 || len(clean) > 15 {
		return "", &Error{Field: "phone", Reason: "phone must have 10 to 15 digits"}
	}
	if len(clean) == 10 {
		return constants.DefaultCountryPrefix + clean, nil
	}
	return "+" + clean, nil
}

// ValidateDraft runs the full confirmation-time validation pass, in order:
// subject, email, phone, then the future-instant check. On success it
// returns the draft with the phone rewritten to canonical form together
// with the resolved instant. Both the manual flow and the natural-language
// intake go through this one pass.
func ValidateDraft(d models.Draft, now time.Time, loc *time.Location) (models.Draft, time.Time, error) {
	if err := ValidateSubject(d.Subject); err != nil {
		return d, time.Time{}, err
	}
	if err := ValidateEmail(d.Email); err != nil {
		return d, time.Time{}, err
	}
	phone, err := NormalizePhone(d.Phone)
	if err != nil {
		return d, time.Time{}, err
	}
	d.Phone = phone

	dt, err := d.Resolve(loc)
	if err != nil {
		return d, time.Time{}, &Error{Field: "dateTime", Reason: err.Error()}
	}
	if !dt.After(now) {
		return d, time.Time{}, &Error{Field: "dateTime", Reason: "appointment time must be in the future"}
	}
	return d, dt, nil
}

// SanitizeMessage cleans free text before it is handed to the extraction
// service: trim, cap length, strip angle brackets.
func SanitizeMessage(text string) string {
	text = strings.TrimSpace(text)
	if len(text) > constants.MaxMessageLength {
		cut := constants.MaxMessageLength
		// Never split a multi-byte rune at the cap.
		for cut > 0 && !utf8.RuneStart(text[cut]) {
			cut--
		}
		text = text[:cut]
	}
	text = strings.ReplaceAll(text, "<", "")
	text = strings.ReplaceAll(text, ">", "")
	return text
}
