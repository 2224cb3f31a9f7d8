package journey

import "testing"

func TestDyadPatternIDCanonical(t *testing.T) {
	a := DyadPatternID([]string{"Ace of Cups", "The Fool"})
	b := DyadPatternID([]string{"The Fool", "Ace of Cups"})

	if a != b {
		t.Fatalf("pair order must not change the id: %q vs %q", a, b)
	}
	if a != "Ace of Cups-The Fool" {
		t.Fatalf("unexpected canonical id: %q", a)
	}
}

func TestQualifyingPatternsScenario(t *testing.T) {
	graph := Graph{
		CompleteTriadIDs: []string{"a-b-c"},
		DyadPairs: []DyadPair{
			{Cards: []string{"Y", "X"}, Significance: "high"},
			{Cards: []string{"Z", "Q"}, Significance: "low"},
		},
	}

	refs := QualifyingPatterns(graph)
	if len(refs) != 2 {
		t.Fatalf("expected 2 qualifying patterns, got %+v", refs)
	}
	if refs[0].Type != PatternTypeTriad || refs[0].ID != "a-b-c" {
		t.Fatalf("unexpected triad ref: %+v", refs[0])
	}
	if refs[1].Type != PatternTypeDyad || refs[1].ID != "X-Y" {
		t.Fatalf("expected sorted dyad id X-Y, got %+v", refs[1])
	}
}

func TestQualifyingPatternsEmptyGraph(t *testing.T) {
	if refs := QualifyingPatterns(Graph{}); len(refs) != 0 {
		t.Fatalf("expected no patterns, got %+v", refs)
	}

	graph := Graph{DyadPairs: []DyadPair{{Cards: []string{"A", "B"}, Significance: "medium"}}}
	if refs := QualifyingPatterns(graph); len(refs) != 0 {
		t.Fatalf("non-high dyads must not qualify, got %+v", refs)
	}
}
