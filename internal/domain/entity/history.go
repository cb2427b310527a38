package entity

import (
	"fmt"
	"sort"
	"strings"
)

// maxResultInSummary bounds one history line so the summary stays cheap to
// feed back into the oracle's context.
const maxResultInSummary = 200

// HistoryItem is one completed loop iteration.
type HistoryItem struct {
	Step      int
	Action    ActionName
	Args      map[string]any
	Result    string
	Navigated bool
}

// HistoryLedger is the append-only record of completed steps. Insertion
// order is chronological order; entries are never reordered or truncated.
type HistoryLedger struct {
	items []HistoryItem
}

func NewHistoryLedger() *HistoryLedger {
	return &HistoryLedger{}
}

// Append is the only mutator.
func (l *HistoryLedger) Append(item HistoryItem) {
	l.items = append(l.items, item)
}

func (l *HistoryLedger) Len() int {
	return len(l.items)
}

// Items returns a copy so callers cannot break the append-only contract.
func (l *HistoryLedger) Items() []HistoryItem {
	out := make([]HistoryItem, len(l.items))
	copy(out, l.items)
	return out
}

// Summarize renders the last maxItems entries, oldest first, one line per
// entry. maxItems <= 0 renders everything. Pure function of current state.
func (l *HistoryLedger) Summarize(maxItems int) string {
	if len(l.items) == 0 {
		return "No previous actions yet"
	}

	items := l.items
	if maxItems > 0 && len(items) > maxItems {
		items = items[len(items)-maxItems:]
	}

	var sb strings.Builder
	for i, item := range items {
		if i > 0 {
			sb.WriteByte('\n')
		}
		fmt.Fprintf(&sb, "[step %d] %s(%s) -> %s",
			item.Step, item.Action, renderArgs(item.Args), truncate(item.Result, maxResultInSummary))
		if item.Navigated {
			sb.WriteString(" [navigated]")
		}
	}
	return sb.String()
}

// renderArgs renders arguments with sorted keys so the summary is
// deterministic across calls.
func renderArgs(args map[string]any) string {
	if len(args) == 0 {
		return ""
	}

	keys := make([]string, 0, len(args))
	for k := range args {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, args[k]))
	}
	return strings.Join(parts, ", ")
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
