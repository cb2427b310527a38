package entity

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleItems(n int) []HistoryItem {
	items := make([]HistoryItem, 0, n)
	for i := 0; i < n; i++ {
		items = append(items, HistoryItem{
			Step:   i,
			Action: ActionNavigate,
			Args:   map[string]any{"url": "https://example.com"},
			Result: "ok",
		})
	}
	return items
}

func TestHistoryLedger_AppendPreservesOrder(t *testing.T) {
	ledger := NewHistoryLedger()
	for _, item := range sampleItems(4) {
		ledger.Append(item)
	}

	items := ledger.Items()
	require.Len(t, items, 4)
	for i, item := range items {
		assert.Equal(t, i, item.Step)
	}
}

func TestHistoryLedger_ItemsReturnsCopy(t *testing.T) {
	ledger := NewHistoryLedger()
	ledger.Append(HistoryItem{Step: 0, Action: ActionClick})

	items := ledger.Items()
	items[0].Step = 99

	assert.Equal(t, 0, ledger.Items()[0].Step)
}

func TestSummarize_Idempotent(t *testing.T) {
	ledger := NewHistoryLedger()
	ledger.Append(HistoryItem{
		Step:   0,
		Action: ActionClick,
		Args:   map[string]any{"index": 5, "reason": "product link"},
		Result: "Clicked element 5",
	})
	ledger.Append(HistoryItem{
		Step:      1,
		Action:    ActionNavigate,
		Args:      map[string]any{"url": "https://example.com/cart"},
		Result:    "ok",
		Navigated: true,
	})

	first := ledger.Summarize(0)
	second := ledger.Summarize(0)
	assert.Equal(t, first, second)

	// Multi-key args render with sorted keys, so the output is stable even
	// though map iteration order is not.
	assert.Contains(t, first, "index=5, reason=product link")
	assert.Contains(t, first, "[navigated]")
}

func TestSummarize_TruncatesOldestOnly(t *testing.T) {
	ledger := NewHistoryLedger()
	for _, item := range sampleItems(10) {
		ledger.Append(item)
	}

	summary := ledger.Summarize(3)
	lines := strings.Split(summary, "\n")
	require.Len(t, lines, 3)

	assert.Contains(t, lines[0], "[step 7]")
	assert.Contains(t, lines[1], "[step 8]")
	assert.Contains(t, lines[2], "[step 9]")
	assert.NotContains(t, summary, "[step 6]")
}

func TestSummarize_AllWhenUnbounded(t *testing.T) {
	ledger := NewHistoryLedger()
	for _, item := range sampleItems(7) {
		ledger.Append(item)
	}

	summary := ledger.Summarize(0)
	assert.Len(t, strings.Split(summary, "\n"), 7)
}

func TestSummarize_Empty(t *testing.T) {
	ledger := NewHistoryLedger()
	assert.Equal(t, "No previous actions yet", ledger.Summarize(5))
}

func TestSummarize_TruncatesLongResults(t *testing.T) {
	ledger := NewHistoryLedger()
	ledger.Append(HistoryItem{
		Step:   0,
		Action: ActionExtract,
		Result: strings.Repeat("x", 1000),
	})

	summary := ledger.Summarize(0)
	assert.Less(t, len(summary), 400)
	assert.Contains(t, summary, "...")
}
