package present

import (
	"fmt"
	"strings"

	"github.com/Sushmit94/solana-project/internal/core"
)

// Filter selects which inbox items are shown
type Filter string

const (
	FilterAll     Filter = "all"
	FilterSafe    Filter = "safe"
	FilterThreats Filter = "threats"
)

// ParseFilter accepts all, safe or threats. An empty value means all.
func ParseFilter(s string) (Filter, error) {
	switch f := Filter(strings.ToLower(strings.TrimSpace(s))); f {
	case "", FilterAll:
		return FilterAll, nil
	case FilterSafe, FilterThreats:
		return f, nil
	default:
		return "", fmt.Errorf("unknown inbox filter %q", s)
	}
}

// InboxItem is a message paired with its verdict, if one is known
type InboxItem struct {
	Message core.Message               `json:"message"`
	Result  *core.ClassificationResult `json:"classification,omitempty"`
}

// Threat reports whether the item was classified as malicious
func (i InboxItem) Threat() bool {
	return i.Result != nil && i.Result.IsMalicious
}

// FilterMessages returns the items matching filter in their original order.
// Unclassified items only appear under FilterAll.
func FilterMessages(items []InboxItem, filter Filter) []InboxItem {
	out := make([]InboxItem, 0, len(items))
	for _, item := range items {
		switch filter {
		case FilterSafe:
			if item.Result == nil || item.Result.IsMalicious {
				continue
			}
		case FilterThreats:
			if !item.Threat() {
				continue
			}
		}
		out = append(out, item)
	}
	return out
}
