package present

import (
	"testing"

	"github.com/Sushmit94/solana-project/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrust(t *testing.T) {
	tests := []struct {
		level core.TrustLevel
		badge string
		tone  Tone
	}{
		{core.TrustTrusted, "✓ Trusted", ToneGood},
		{core.TrustNeutral, "○ Neutral", ToneNeutral},
		{core.TrustSuspicious, "⚠ Suspicious", ToneWarn},
		{core.TrustDangerous, "✗ Dangerous", ToneDanger},
	}
	for _, tt := range tests {
		t.Run(string(tt.level), func(t *testing.T) {
			view := Trust(tt.level)
			assert.True(t, view.Known)
			assert.Equal(t, tt.badge, view.Badge)
			assert.Equal(t, tt.tone, view.Tone)
			assert.NotEmpty(t, view.Recommendation)
		})
	}
}

func TestTrust_UnknownPassesThrough(t *testing.T) {
	view := Trust(core.TrustLevel("quarantined"))
	assert.False(t, view.Known)
	assert.Equal(t, "? Unknown", view.Badge)
	assert.Equal(t, core.TrustLevel("quarantined"), view.Level)
}

func TestReputation(t *testing.T) {
	view := Reputation(&core.ReputationScore{TrustLevel: core.TrustSuspicious, TotalProofs: 2})
	assert.Equal(t, 95, view.Confidence)
	assert.Equal(t, "Suspicious", view.Trust.Label)
}

func TestBreakdown(t *testing.T) {
	stats := core.NewStatistics()
	stats.Total = 5
	stats.SafeCount = 1
	stats.ThreatCount = 4
	stats.ByLevel[core.ThreatCritical] = 1
	stats.ByLevel[core.ThreatMedium] = 3
	stats.ByType[core.EventPhishing] = 2
	stats.ByType[core.EventSocialEngineering] = 2

	view := Breakdown(stats)
	require.Len(t, view.Levels, 4)
	assert.Equal(t, "critical", view.Levels[0].Key)
	assert.InDelta(t, 25.0, view.Levels[0].Percent, 0.001)
	assert.InDelta(t, 75.0, view.Levels[2].Percent, 0.001)
	require.Len(t, view.Types, 4)
	assert.Equal(t, "Social Engineering", view.Types[3].Label)
	assert.InDelta(t, 50.0, view.Types[3].Percent, 0.001)
}

func TestBreakdown_OtherRowsSumToThreatCount(t *testing.T) {
	// one high phishing threat, one flagged with the safe level and one
	// with a level and type outside the known sets
	stats := core.NewStatistics()
	stats.Total = 3
	stats.ThreatCount = 3
	stats.ByLevel[core.ThreatHigh] = 1
	stats.ByLevel[core.ThreatSafe] = 1
	stats.ByLevel[core.ThreatLevel("severe")] = 1
	stats.ByType[core.EventPhishing] = 2
	stats.ByType[core.EventType("worm")] = 1

	view := Breakdown(stats)
	sum := func(rows []Row) (n int, pct float64) {
		for _, r := range rows {
			n += r.Count
			pct += r.Percent
		}
		return n, pct
	}

	n, pct := sum(view.Levels)
	assert.Equal(t, 3, n)
	assert.InDelta(t, 100.0, pct, 0.001)
	last := view.Levels[len(view.Levels)-1]
	assert.Equal(t, OtherKey, last.Key)
	assert.Equal(t, "Other", last.Label)
	assert.Equal(t, 2, last.Count)

	n, pct = sum(view.Types)
	assert.Equal(t, 3, n)
	assert.InDelta(t, 100.0, pct, 0.001)
	assert.Equal(t, OtherKey, view.Types[len(view.Types)-1].Key)
	assert.Equal(t, 1, view.Types[len(view.Types)-1].Count)

	require.Len(t, Breakdown(nil).Levels, 4)
}

func TestBreakdown_NoThreats(t *testing.T) {
	view := Breakdown(nil)
	for _, row := range append(view.Levels, view.Types...) {
		assert.Zero(t, row.Count)
		assert.Zero(t, row.Percent)
	}
}

func TestTruncateAddress(t *testing.T) {
	assert.Equal(t, "7xKX...AsU3", TruncateAddress("7xKXtg2CW87d97TXJSDpbD5jBkheTqA83TZRuJosgAsU3"))
	assert.Equal(t, "short", TruncateAddress("short"))
	assert.Equal(t, "", TruncateAddress(""))
}

func TestFilterMessages(t *testing.T) {
	items := []InboxItem{
		{Message: core.Message{ID: "a"}, Result: &core.ClassificationResult{}},
		{Message: core.Message{ID: "b"}, Result: &core.ClassificationResult{IsMalicious: true}},
		{Message: core.Message{ID: "c"}},
	}
	ids := func(in []InboxItem) []string {
		var out []string
		for _, i := range in {
			out = append(out, i.Message.ID)
		}
		return out
	}
	assert.Equal(t, []string{"a", "b", "c"}, ids(FilterMessages(items, FilterAll)))
	assert.Equal(t, []string{"a"}, ids(FilterMessages(items, FilterSafe)))
	assert.Equal(t, []string{"b"}, ids(FilterMessages(items, FilterThreats)))
}

func TestParseFilter(t *testing.T) {
	f, err := ParseFilter("")
	require.NoError(t, err)
	assert.Equal(t, FilterAll, f)
	f, err = ParseFilter(" Threats ")
	require.NoError(t, err)
	assert.Equal(t, FilterThreats, f)
	_, err = ParseFilter("spam")
	assert.Error(t, err)
}
