package journey

import "testing"

func TestAggregateScenario(t *testing.T) {
	entries := []Entry{
		{Timestamp: 1, Cards: []Card{{Name: "The Fool"}}},
		{Timestamp: 2, Cards: []Card{{Name: "The Fool"}}},
		{Timestamp: 3, Cards: []Card{{Name: "The Star", Orientation: OrientationReversed}}},
	}

	freq := Aggregate(entries)

	if freq.TotalCards != 3 {
		t.Fatalf("expected 3 cards, got %d", freq.TotalCards)
	}
	if freq.ReversalRate != 33 {
		t.Fatalf("expected reversal rate 33, got %d", freq.ReversalRate)
	}
	if len(freq.FrequentCards) != 2 {
		t.Fatalf("expected 2 ranked cards, got %d", len(freq.FrequentCards))
	}
	if freq.FrequentCards[0].Name != "The Fool" || freq.FrequentCards[0].Count != 2 {
		t.Fatalf("unexpected top card: %+v", freq.FrequentCards[0])
	}
	if freq.FrequentCards[1].Name != "The Star" || freq.FrequentCards[1].Count != 1 {
		t.Fatalf("unexpected second card: %+v", freq.FrequentCards[1])
	}
}

func TestAggregateEmptyInput(t *testing.T) {
	freq := Aggregate(nil)

	if freq.TotalCards != 0 || freq.ReversalRate != 0 {
		t.Fatalf("expected zero totals, got %+v", freq)
	}
	if len(freq.FrequentCards) != 0 || len(freq.ContextBreakdown) != 0 {
		t.Fatalf("expected empty tables, got %+v", freq)
	}
}

func TestAggregateTieBreakFirstSeen(t *testing.T) {
	entries := []Entry{
		{Timestamp: 1, Cards: []Card{{Name: "The Moon"}, {Name: "The Sun"}}},
		{Timestamp: 2, Cards: []Card{{Name: "The Sun"}, {Name: "The Moon"}}},
	}

	freq := Aggregate(entries)
	if freq.FrequentCards[0].Name != "The Moon" || freq.FrequentCards[1].Name != "The Sun" {
		t.Fatalf("expected first-seen order on ties, got %+v", freq.FrequentCards)
	}
}

func TestAggregateContextPerEntry(t *testing.T) {
	entries := []Entry{
		{Timestamp: 1, Context: "love", Cards: []Card{{Name: "A"}, {Name: "B"}, {Name: "C"}}},
		{Timestamp: 2, Context: "love"},
		{Timestamp: 3, Context: "career"},
		{Timestamp: 4}, // 无语境，整条跳过
	}

	freq := Aggregate(entries)
	if len(freq.ContextBreakdown) != 2 {
		t.Fatalf("expected 2 contexts, got %+v", freq.ContextBreakdown)
	}
	if freq.ContextBreakdown[0].Name != "love" || freq.ContextBreakdown[0].Count != 2 {
		t.Fatalf("expected love counted once per entry, got %+v", freq.ContextBreakdown[0])
	}
}

func TestReversalRateBounds(t *testing.T) {
	allReversed := []Entry{{Timestamp: 1, Cards: []Card{
		{Name: "A", Orientation: OrientationReversed},
		{Name: "B", Orientation: OrientationReversed},
	}}}

	if rate := Aggregate(allReversed).ReversalRate; rate != 100 {
		t.Fatalf("expected 100, got %d", rate)
	}

	noCards := []Entry{{Timestamp: 1}}
	if rate := Aggregate(noCards).ReversalRate; rate != 0 {
		t.Fatalf("expected 0 for zero cards, got %d", rate)
	}
}
