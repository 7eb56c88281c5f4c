package intake

import (
	"context"
	"errors"
	"testing"
)

type scriptedExtractor struct {
	results []Extraction
	calls   []string
}

func (s *scriptedExtractor) Extract(ctx context.Context, message string) (Extraction, error) {
	s.calls = append(s.calls, message)
	if len(s.results) == 0 {
		return Extraction{}, errors.New("no scripted result")
	}
	next := s.results[0]
	s.results = s.results[1:]
	return next, nil
}

func complete() Extraction {
	return Extraction{
		Date:       "2026-03-11",
		Time:       "15:30",
		Subject:    "Dentist",
		Confidence: 0.9,
	}
}

func TestNaturalAdapter_CompleteOnFirstTry(t *testing.T) {
	ext := &scriptedExtractor{results: []Extraction{complete()}}
	adapter := &NaturalAdapter{
		Extractor: ext,
		Message:   "dentist on march 11 at 3:30pm",
		Prompt: func(string) (string, bool) {
			t.Fatal("prompt must not be called when extraction is complete")
			return "", false
		},
	}

	draft, err := adapter.Solicit(context.Background())
	if err != nil {
		t.Fatalf("Solicit failed: %v", err)
	}
	if draft.Date != "2026-03-11" || draft.Hour != 3 || draft.Minute != 30 || draft.Period != "PM" {
		t.Errorf("unexpected draft: %+v", draft)
	}
	if draft.Subject != "Dentist" {
		t.Errorf("unexpected subject: %s", draft.Subject)
	}
}

func TestNaturalAdapter_ResolicitsOnMissingFields(t *testing.T) {
	partial := complete()
	partial.Time = ""
	partial.MissingFields = []string{"time"}
	partial.ClarificationNeeded = "What time works for you?"

	ext := &scriptedExtractor{results: []Extraction{partial, complete()}}

	var asked string
	adapter := &NaturalAdapter{
		Extractor: ext,
		Message:   "dentist on march 11",
		Prompt: func(question string) (string, bool) {
			asked = question
			return "at 3:30pm", true
		},
	}

	draft, err := adapter.Solicit(context.Background())
	if err != nil {
		t.Fatalf("Solicit failed: %v", err)
	}
	if asked != "What time works for you?" {
		t.Errorf("expected the collaborator's clarification, got %q", asked)
	}
	if len(ext.calls) != 2 {
		t.Errorf("expected 2 extraction calls, got %d", len(ext.calls))
	}
	if !draft.HasTime() {
		t.Errorf("expected a complete draft, got %+v", draft)
	}
}

func TestNaturalAdapter_GivingUpAborts(t *testing.T) {
	partial := complete()
	partial.Date = ""
	partial.MissingFields = []string{"date"}

	ext := &scriptedExtractor{results: []Extraction{partial}}
	adapter := &NaturalAdapter{
		Extractor: ext,
		Message:   "dentist sometime",
		Prompt:    func(string) (string, bool) { return "", false },
	}

	if _, err := adapter.Solicit(context.Background()); !errors.Is(err, ErrAborted) {
		t.Errorf("expected ErrAborted, got %v", err)
	}
}

func TestNaturalAdapter_EmptyMessageRejected(t *testing.T) {
	adapter := &NaturalAdapter{
		Extractor: &scriptedExtractor{},
		Message:   "   ",
	}
	if _, err := adapter.Solicit(context.Background()); err == nil {
		t.Error("expected empty message to be rejected")
	}
}

func TestToDraft_SplitsTwentyFourHourTime(t *testing.T) {
	cases := []struct {
		time   string
		hour   int
		minute int
		period string
	}{
		{"00:15", 12, 15, "AM"},
		{"09:00", 9, 0, "AM"},
		{"12:00", 12, 0, "PM"},
		{"15:30", 3, 30, "PM"},
		{"23:59", 11, 59, "PM"},
	}

	for _, tc := range cases {
		ext := complete()
		ext.Time = tc.time
		draft, err := ToDraft(ext)
		if err != nil {
			t.Fatalf("ToDraft(%s) failed: %v", tc.time, err)
		}
		if draft.Hour != tc.hour || draft.Minute != tc.minute || draft.Period != tc.period {
			t.Errorf("%s: expected %d:%02d %s, got %d:%02d %s",
				tc.time, tc.hour, tc.minute, tc.period, draft.Hour, draft.Minute, draft.Period)
		}
	}
}

func TestToDraft_RejectsMalformedTime(t *testing.T) {
	for _, bad := range []string{"25:00", "3pm", "15", "15:99"} {
		ext := complete()
		ext.Time = bad
		if _, err := ToDraft(ext); err == nil {
			t.Errorf("expected %q to be rejected", bad)
		}
	}
}

func TestExtractionComplete(t *testing.T) {
	if !complete().Complete() {
		t.Error("expected a full extraction to be complete")
	}

	withError := complete()
	withError.Error = "not appointment related"
	if withError.Complete() {
		t.Error("an extraction error means incomplete")
	}

	missing := complete()
	missing.MissingFields = []string{"date"}
	if missing.Complete() {
		t.Error("missing fields mean incomplete")
	}
}
