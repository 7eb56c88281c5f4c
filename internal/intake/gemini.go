package intake

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const geminiEndpoint = "https://generativelanguage.googleapis.com/v1beta/models/%s:generateContent"

// GeminiExtractor calls the Gemini API with a structured-JSON response
// schema. Prompt design lives here; everything downstream sees only the
// Extraction contract.
type GeminiExtractor struct {
	APIKey string
	Model  string
	Client *http.Client
	// Now is the reference instant for resolving relative dates; defaults
	// to time.Now.
	Now func() time.Time
}

func NewGeminiExtractor(apiKey, model string) *GeminiExtractor {
	return &GeminiExtractor{
		APIKey: apiKey,
		Model:  model,
		Client: &http.Client{Timeout: 30 * time.Second},
		Now:    time.Now,
	}
}

type geminiRequest struct {
	Contents         []geminiContent `json:"contents"`
	GenerationConfig geminiGenConfig `json:"generationConfig"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiGenConfig struct {
	Temperature      float64 `json:"temperature"`
	ResponseMimeType string  `json:"responseMimeType"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []geminiPart `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

func (g *GeminiExtractor) Extract(ctx context.Context, message string) (Extraction, error) {
	if len(strings.TrimSpace(message)) < 3 {
		return Extraction{
			Error:               "Message too short",
			ClarificationNeeded: "Please describe your appointment (e.g., 'Dentist tomorrow at 3pm')",
		}, nil
	}

	body, err := json.Marshal(geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: g.prompt(message)}}}},
		GenerationConfig: geminiGenConfig{
			Temperature:      0.1,
			ResponseMimeType: "application/json",
		},
	})
	if err != nil {
		return Extraction{}, err
	}

	url := fmt.Sprintf(geminiEndpoint, g.Model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return Extraction{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", g.APIKey)

	res, err := g.Client.Do(req)
	if err != nil {
		return Extraction{}, fmt.Errorf("gemini request failed: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(res.Body)
		return Extraction{}, fmt.Errorf("gemini returned status %d: %s", res.StatusCode, string(b))
	}

	var gr geminiResponse
	if err := json.NewDecoder(res.Body).Decode(&gr); err != nil {
		return Extraction{}, fmt.Errorf("failed to decode gemini response: %w", err)
	}
	if len(gr.Candidates) == 0 || len(gr.Candidates[0].Content.Parts) == 0 {
		return Extraction{}, fmt.Errorf("gemini returned no candidates")
	}

	text := strings.TrimSpace(gr.Candidates[0].Content.Parts[0].Text)
	text = stripCodeFence(text)

	var ext Extraction
	if err := json.Unmarshal([]byte(text), &ext); err != nil {
		return Extraction{
			Error:               "Failed to extract appointment details",
			ClarificationNeeded: "Could you please rephrase your appointment request?",
		}, nil
	}

	return normalizeExtraction(ext), nil
}

func (g *GeminiExtractor) prompt(message string) string {
	now := g.Now()
	tomorrow := now.AddDate(0, 0, 1)
	return fmt.Sprintf(`You are an appointment scheduling assistant. Extract appointment details from natural, casual user messages.

Current date and time: %s
Current date: %s

RULES:
1. Accept any date, whether past, present, or future. Never reject a date.
2. Parse relative dates: "tomorrow", "today", "next Monday", "in 2 days", etc.
3. Parse times in any format: "3pm" -> "15:00", "10:30am" -> "10:30", "noon" -> "12:00"
4. Extract subject/purpose from ANY part of the message.
5. Word order does NOT matter.
6. If date, time, or subject is missing, list it in missing_fields and ask for clarification.
7. Be lenient and intelligent: try your best to extract something useful.

Return ONLY valid JSON matching this schema:
{"date": "YYYY-MM-DD or null", "time": "HH:MM or null", "subject": "string or null", "confidence": 0.0, "missing_fields": [], "clarification_needed": "question or null", "error": "message or null"}

Examples:
- "dentist tomorrow at 3pm" -> {"date": "%s", "time": "15:00", "subject": "Dentist appointment", "confidence": 0.95, "missing_fields": []}
- "meeting next Monday" -> {"date": "[next Monday]", "time": null, "subject": "Meeting", "confidence": 0.7, "missing_fields": ["time"], "clarification_needed": "What time is the meeting?"}

User message: %q

Extract appointment details and respond with valid JSON only:`,
		now.Format("Monday, January 2, 2006 at 3:04 PM"),
		now.Format("2006-01-02"),
		tomorrow.Format("2006-01-02"),
		message,
	)
}

// normalizeExtraction mirrors the required-field bookkeeping the schema
// promises: any empty required field appears in MissingFields exactly once.
func normalizeExtraction(ext Extraction) Extraction {
	required := map[string]string{
		"date":    ext.Date,
		"time":    ext.Time,
		"subject": ext.Subject,
	}
	present := make(map[string]bool, len(ext.MissingFields))
	for _, f := range ext.MissingFields {
		present[f] = true
	}
	for _, field := range []string{"date", "time", "subject"} {
		if required[field] == "" && !present[field] {
			ext.MissingFields = append(ext.MissingFields, field)
		}
	}
	return ext
}

func stripCodeFence(text string) string {
	if !strings.HasPrefix(text, "```") {
		return text
	}
	text = strings.TrimPrefix(text, "```")
	text = strings.TrimPrefix(text, "json")
	if idx := strings.LastIndex(text, "```"); idx >= 0 {
		text = text[:idx]
	}
	return strings.TrimSpace(text)
}
