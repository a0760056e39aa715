package present

import (
	"strings"

	"github.com/Sushmit94/solana-project/internal/core"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Row is one line of a statistics breakdown
type Row struct {
	Key     string  `json:"key"`
	Label   string  `json:"label"`
	Count   int     `json:"count"`
	Percent float64 `json:"percent"`
}

// BreakdownView groups threat counts by level and by type
type BreakdownView struct {
	Levels []Row `json:"levels"`
	Types  []Row `json:"types"`
}

// OtherKey collects threats whose level or type has no row of its own
const OtherKey = "other"

// Breakdown returns per-level rows (critical to low) and per-type rows,
// each with its share of all threats. Threats reported with the safe
// level, or with a level or type outside the known sets, are counted in a
// trailing "other" row so each side sums to ThreatCount. Percentages are
// zero when there are no threats.
func Breakdown(stats *core.Statistics) BreakdownView {
	view := BreakdownView{}
	if stats == nil {
		stats = core.NewStatistics()
	}
	levelSum := 0
	for _, level := range core.AllThreatLevels {
		if level == core.ThreatSafe {
			continue
		}
		n := stats.ByLevel[level]
		levelSum += n
		view.Levels = append(view.Levels, newRow(string(level), n, stats.ThreatCount))
	}
	if rest := stats.ThreatCount - levelSum; rest > 0 {
		view.Levels = append(view.Levels, newRow(OtherKey, rest, stats.ThreatCount))
	}

	typeSum := 0
	for _, typ := range core.AllEventTypes {
		n := stats.ByType[typ]
		typeSum += n
		view.Types = append(view.Types, newRow(string(typ), n, stats.ThreatCount))
	}
	if rest := stats.ThreatCount - typeSum; rest > 0 {
		view.Types = append(view.Types, newRow(OtherKey, rest, stats.ThreatCount))
	}
	return view
}

func newRow(key string, n, total int) Row {
	return Row{
		Key:     key,
		Label:   humanize(key),
		Count:   n,
		Percent: percent(n, total),
	}
}

func percent(n, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(n) * 100 / float64(total)
}

func humanize(key string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(key, "_", " "))
}

// TruncateAddress shortens a ledger address to its first and last four
// characters. Short addresses are returned unchanged.
func TruncateAddress(addr string) string {
	r := []rune(addr)
	if len(r) <= 11 {
		return addr
	}
	return string(r[:4]) + "..." + string(r[len(r)-4:])
}
