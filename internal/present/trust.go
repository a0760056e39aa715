package present

import "github.com/Sushmit94/solana-project/internal/core"

// Tone is the visual emphasis a trust level is rendered with
type Tone string

const (
	ToneGood    Tone = "success"
	ToneNeutral Tone = "neutral"
	ToneWarn    Tone = "warning"
	ToneDanger  Tone = "danger"
	ToneUnknown Tone = "muted"
)

// TrustView is the display form of a scorer-supplied trust level
type TrustView struct {
	Level          core.TrustLevel `json:"level"`
	Label          string          `json:"label"`
	Badge          string          `json:"badge"`
	Tone           Tone            `json:"tone"`
	Recommendation string          `json:"recommendation"`
	Known          bool            `json:"known"`
}

// Trust maps a trust level to its display form. Values outside the four
// known levels render as unknown and keep the original level.
func Trust(level core.TrustLevel) TrustView {
	switch level {
	case core.TrustTrusted:
		return TrustView{
			Level:          level,
			Label:          "Trusted",
			Badge:          "✓ Trusted",
			Tone:           ToneGood,
			Recommendation: "This sender has a good reputation. Messages are likely safe.",
			Known:          true,
		}
	case core.TrustNeutral:
		return TrustView{
			Level:          level,
			Label:          "Neutral",
			Badge:          "○ Neutral",
			Tone:           ToneNeutral,
			Recommendation: "No significant threat history. Exercise normal caution.",
			Known:          true,
		}
	case core.TrustSuspicious:
		return TrustView{
			Level:          level,
			Label:          "Suspicious",
			Badge:          "⚠ Suspicious",
			Tone:           ToneWarn,
			Recommendation: "This sender has been reported for suspicious activity. Be careful with links and attachments.",
			Known:          true,
		}
	case core.TrustDangerous:
		return TrustView{
			Level:          level,
			Label:          "Dangerous",
			Badge:          "✗ Dangerous",
			Tone:           ToneDanger,
			Recommendation: "This sender is a known threat. Do not open links or attachments.",
			Known:          true,
		}
	default:
		return TrustView{
			Level:          level,
			Label:          "Unknown",
			Badge:          "? Unknown",
			Tone:           ToneUnknown,
			Recommendation: "Reputation could not be determined.",
		}
	}
}

// ReputationView is a reputation score prepared for display
type ReputationView struct {
	Score      *core.ReputationScore `json:"score"`
	Trust      TrustView             `json:"trust"`
	Confidence int                   `json:"confidence"`
}

// Reputation wraps a score with its trust view and confidence
func Reputation(score *core.ReputationScore) ReputationView {
	return ReputationView{
		Score:      score,
		Trust:      Trust(score.TrustLevel),
		Confidence: score.Confidence(),
	}
}
