package validation

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/SumukhPhulari10/apptbot/internal/models"
)

func TestNormalizePhone_TenDigitGetsCountryPrefix(t *testing.T) {
	got, err := NormalizePhone("9876543210")
	if err != nil {
		t.Fatalf("NormalizePhone failed: %v", err)
	}
	if got != "+919876543210" {
		t.Errorf("expected +919876543210, got %s", got)
	}
}

func TestNormalizePhone_StripsSeparators(t *testing.T) {
	got, err := NormalizePhone("(987) 654-3210")
	if err != nil {
		t.Fatalf("NormalizePhone failed: %v", err)
	}
	if got != "+919876543210" {
		t.Errorf("expected +919876543210, got %s", got)
	}
}

func TestNormalizePhone_KeepsLongerNumbers(t *testing.T) {
	got, err := NormalizePhone("+14155552671")
	if err != nil {
		t.Fatalf("NormalizePhone failed: %v", err)
	}
	if got != "+14155552671" {
		t.Errorf("expected +14155552671, got %s", got)
	}
}

func TestNormalizePhone_RejectsTooShort(t *testing.T) {
	if _, err := NormalizePhone("12345"); err == nil {
		t.Error("expected too-short number to be rejected")
	}
}

func TestNormalizePhone_RejectsLetters(t *testing.T) {
	if _, err := NormalizePhone("98765abcde"); err == nil {
		t.Error("expected number with letters to be rejected")
	}
}

func TestNormalizePhone_EmptyIsAllowed(t *testing.T) {
	got, err := NormalizePhone("")
	if err != nil {
		t.Fatalf("empty phone should be allowed: %v", err)
	}
	if got != "" {
		t.Errorf("expected empty result, got %s", got)
	}
}

func TestValidateEmail(t *testing.T) {
	if err := ValidateEmail("someone@example.com"); err != nil {
		t.Errorf("valid email rejected: %v", err)
	}
	if err := ValidateEmail(""); err != nil {
		t.Errorf("empty email should be allowed: %v", err)
	}
	for _, bad := range []string{"not-an-email", "a@b", "@example.com", "a b@example.com"} {
		if err := ValidateEmail(bad); err == nil {
			t.Errorf("expected %q to be rejected", bad)
		}
	}
}

func TestValidateSubject(t *testing.T) {
	if err := ValidateSubject("Dentist checkup"); err != nil {
		t.Errorf("valid subject rejected: %v", err)
	}
	if err := ValidateSubject("   "); err == nil {
		t.Error("expected blank subject to be rejected")
	}
}

func TestValidateDraft_RejectsPast(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	draft := models.Draft{
		Date:    "2026-03-10",
		Hour:    9,
		Minute:  0,
		Period:  "AM",
		Subject: "Dentist",
		Email:   "a@example.com",
	}

	if _, _, err := ValidateDraft(draft, now, time.UTC); err == nil {
		t.Error("expected draft in the past to be rejected")
	}
}

func TestValidateDraft_ResolvesFutureInstant(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	draft := models.Draft{
		Date:    "2026-03-11",
		Hour:    3,
		Minute:  30,
		Period:  "PM",
		Subject: "Dentist",
		Phone:   "9876543210",
	}

	normalized, when, err := ValidateDraft(draft, now, time.UTC)
	if err != nil {
		t.Fatalf("ValidateDraft failed: %v", err)
	}
	want := time.Date(2026, 3, 11, 15, 30, 0, 0, time.UTC)
	if !when.Equal(want) {
		t.Errorf("expected %v, got %v", want, when)
	}
	if normalized.Phone != "+919876543210" {
		t.Errorf("expected normalized phone, got %s", normalized.Phone)
	}
}

func TestSanitizeMessage(t *testing.T) {
	if got := SanitizeMessage("  dentist <b>tomorrow</b>  "); got != "dentist btomorrow/b" {
		t.Errorf("unexpected sanitized message: %q", got)
	}

	long := strings.Repeat("a", 600)
	if got := SanitizeMessage(long); len(got) != 500 {
		t.Errorf("expected message capped at 500, got %d", len(got))
	}
}

func TestSanitizeMessage_CapKeepsRunesWhole(t *testing.T) {
	// "é" is two bytes; the cap lands mid-rune and must back up rather
	// than emit a broken trailing byte.
	msg := strings.Repeat("a", 499) + "ée"
	got := SanitizeMessage(msg)
	if len(got) != 499 {
		t.Errorf("expected truncation at the rune boundary, got %d bytes", len(got))
	}
	if !utf8.ValidString(got) {
		t.Errorf("truncated message is not valid UTF-8: %q", got)
	}
}
