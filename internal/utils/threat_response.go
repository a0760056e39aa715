package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Sushmit94/solana-project/internal/core"
)

// ThreatPrompt is the instruction sent to LLM backends. It is formatted with
// sender, recipients, subject, attachment names and body.
const ThreatPrompt = `You are an email security analyst. Analyze the following email and decide whether it is malicious.
Respond with a JSON object containing:
- is_malicious: boolean
- threat_level: one of "critical", "high", "medium", "low", "safe"
- event_type: one of "phishing", "spam", "malware", "social_engineering"
- confidence: number between 0 and 1
- detected_keywords: array of suspicious phrases found in the email
- reasons: array of short explanations

Email:
From: %s
To: %s
Subject: %s
Attachments: %s
Body:
%s

Respond only with the JSON object and nothing else.`

// SystemPrompt is the system role message for chat style backends
const SystemPrompt = "You are an email threat classifier. Respond only with JSON."

var errNoJSON = errors.New("no JSON object in response")

// FormatThreatPrompt renders ThreatPrompt for msg with an already processed body
func FormatThreatPrompt(msg *core.Message, body string) string {
	to := ""
	if len(msg.To) > 0 {
		to = msg.To[0]
		if len(msg.To) > 1 {
			to += fmt.Sprintf(" and %d others", len(msg.To)-1)
		}
	}
	names := make([]string, 0, len(msg.Attachments))
	for _, a := range msg.Attachments {
		names = append(names, a.Filename)
	}
	attachments := "none"
	if len(names) > 0 {
		attachments = strings.Join(names, ", ")
	}
	return fmt.Sprintf(ThreatPrompt, msg.From, to, msg.Subject, attachments, body)
}

type threatResponse struct {
	IsMalicious      bool     `json:"is_malicious"`
	ThreatLevel      string   `json:"threat_level"`
	EventType        string   `json:"event_type"`
	Confidence       float64  `json:"confidence"`
	DetectedKeywords []string `json:"detected_keywords"`
	Reasons          []string `json:"reasons"`
}

// ParseThreatResponse decodes a backend reply into a classification. Replies
// wrapped in prose or code fences are accepted as long as they contain one
// JSON object. Unknown levels and types are coerced to the closest valid value.
func ParseThreatResponse(text, model string) (*core.ClassificationResult, error) {
	raw, err := ExtractJSON(text)
	if err != nil {
		return nil, fmt.Errorf("failed to extract JSON from LLM response: %w", err)
	}

	var resp threatResponse
	if err := json.Unmarshal([]byte(raw), &resp); err != nil {
		return nil, fmt.Errorf("failed to parse LLM response as JSON: %w", err)
	}

	result := &core.ClassificationResult{
		IsMalicious:      resp.IsMalicious,
		ThreatLevel:      parseLevel(resp.ThreatLevel, resp.IsMalicious),
		EventType:        parseEventType(resp.EventType),
		Confidence:       clamp(resp.Confidence),
		DetectedKeywords: resp.DetectedKeywords,
		Reasons:          resp.Reasons,
		ModelUsed:        model,
		AnalyzedAt:       time.Now(),
	}
	if !result.IsMalicious {
		result.ThreatLevel = core.ThreatSafe
	}
	return result, nil
}

// ExtractJSON returns the outermost {...} span of text
func ExtractJSON(text string) (string, error) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return "", errNoJSON
	}
	return text[start : end+1], nil
}

func parseLevel(s string, malicious bool) core.ThreatLevel {
	level := core.ThreatLevel(strings.ToLower(strings.TrimSpace(s)))
	for _, l := range core.AllThreatLevels {
		if l == level {
			if l == core.ThreatSafe && malicious {
				return core.ThreatLow
			}
			return l
		}
	}
	if malicious {
		return core.ThreatMedium
	}
	return core.ThreatSafe
}

func parseEventType(s string) core.EventType {
	t := core.EventType(strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), " ", "_"))
	for _, e := range core.AllEventTypes {
		if e == t {
			return e
		}
	}
	return core.EventSpam
}

func clamp(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
