package intake

import (
	"context"
	"testing"
)

func TestGeminiExtract_ShortMessageSkipsRequest(t *testing.T) {
	g := NewGeminiExtractor("key", "model")
	g.Client = nil // any request attempt would panic

	ext, err := g.Extract(context.Background(), "hi")
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if ext.Error == "" || ext.ClarificationNeeded == "" {
		t.Errorf("expected an error extraction with clarification, got %+v", ext)
	}
	if ext.Complete() {
		t.Error("a short message must not produce a complete extraction")
	}
}

func TestStripCodeFence(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{`{"date":"2026-03-11"}`, `{"date":"2026-03-11"}`},
		{"```json\n{\"date\":\"2026-03-11\"}\n```", `{"date":"2026-03-11"}`},
		{"```\n{}\n```", `{}`},
	}
	for _, tc := range cases {
		if got := stripCodeFence(tc.in); got != tc.want {
			t.Errorf("stripCodeFence(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestNormalizeExtraction_FillsMissingFields(t *testing.T) {
	ext := Extraction{Subject: "Dentist", MissingFields: []string{"date"}}
	got := normalizeExtraction(ext)

	want := map[string]bool{"date": true, "time": true}
	if len(got.MissingFields) != 2 {
		t.Fatalf("expected 2 missing fields, got %v", got.MissingFields)
	}
	for _, f := range got.MissingFields {
		if !want[f] {
			t.Errorf("unexpected missing field %q", f)
		}
		delete(want, f)
	}
}
