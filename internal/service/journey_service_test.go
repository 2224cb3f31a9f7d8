package service

import (
	"testing"
	"time"

	"github.com/arcanalog/internal/db"
)

func setupJourneyServices(t *testing.T) (*JournalService, *PreferenceService, *JourneyService, func()) {
	t.Helper()
	cleanup := setupJournalTestDB(t)

	journal := NewJournalService(db.DB)
	prefs := NewPreferenceService(db.DB)
	journeys, err := NewJourneyService(journal, prefs, 16)
	if err != nil {
		t.Fatalf("NewJourneyService returned error: %v", err)
	}

	return journal, prefs, journeys, cleanup
}

func TestJourneySnapshot(t *testing.T) {
	journal, prefs, journeys, cleanup := setupJourneyServices(t)
	defer cleanup()

	now := time.Date(2024, 5, 2, 12, 0, 0, 0, time.UTC)
	day0 := now.AddDate(0, 0, -1)

	for _, ts := range []time.Time{day0, now, now.Add(time.Hour)} {
		clientTS := ts.UnixMilli()
		if _, err := journal.Create(1, EntryInput{
			Context:  "love",
			ClientTS: clientTS,
			Cards:    []CardInput{{Name: "The Fool"}},
		}); err != nil {
			t.Fatalf("Create returned error: %v", err)
		}
	}
	if _, err := prefs.SetFocusAreas(1, []string{"career"}); err != nil {
		t.Fatalf("SetFocusAreas returned error: %v", err)
	}

	snapshot, err := journeys.Snapshot(1, EntryFilter{}, now)
	if err != nil {
		t.Fatalf("Snapshot returned error: %v", err)
	}

	if snapshot.Stats.TotalReadings != 3 || snapshot.Stats.TotalCards != 3 {
		t.Fatalf("unexpected totals: %+v", snapshot.Stats)
	}
	if snapshot.Stats.CurrentStreak != 2 {
		t.Fatalf("expected streak 2, got %d", snapshot.Stats.CurrentStreak)
	}
	if len(snapshot.Stats.MonthlyCadence) != 6 {
		t.Fatalf("cadence invariant broken: %+v", snapshot.Stats.MonthlyCadence)
	}
	if snapshot.Scope != "all" {
		t.Fatalf("expected scope all, got %q", snapshot.Scope)
	}
	if !snapshot.Drift.HasDrift || snapshot.Drift.Contexts[0].Name != "love" {
		t.Fatalf("expected love drift against career focus, got %+v", snapshot.Drift)
	}
}

func TestJourneySnapshotCacheInvalidation(t *testing.T) {
	journal, _, journeys, cleanup := setupJourneyServices(t)
	defer cleanup()

	now := time.Date(2024, 5, 2, 12, 0, 0, 0, time.UTC)

	if _, err := journal.Create(1, EntryInput{ClientTS: now.UnixMilli(), Cards: []CardInput{{Name: "The Fool"}}}); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	first, err := journeys.Snapshot(1, EntryFilter{}, now)
	if err != nil {
		t.Fatalf("Snapshot returned error: %v", err)
	}
	if first.Stats.TotalReadings != 1 {
		t.Fatalf("expected 1 reading, got %d", first.Stats.TotalReadings)
	}

	// 失效由 handler 负责；未失效前新写入不应反映到快照
	if _, err := journal.Create(1, EntryInput{ClientTS: now.Add(time.Minute).UnixMilli(), Cards: []CardInput{{Name: "The Sun"}}}); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	cached, err := journeys.Snapshot(1, EntryFilter{}, now)
	if err != nil {
		t.Fatalf("Snapshot returned error: %v", err)
	}
	if cached.Stats.TotalReadings != 1 {
		t.Fatalf("expected cached snapshot, got %d readings", cached.Stats.TotalReadings)
	}

	// 失效后重算
	journeys.Invalidate(1)
	fresh, err := journeys.Snapshot(1, EntryFilter{}, now)
	if err != nil {
		t.Fatalf("Snapshot returned error: %v", err)
	}
	if fresh.Stats.TotalReadings != 2 {
		t.Fatalf("expected recomputed snapshot, got %d readings", fresh.Stats.TotalReadings)
	}
}

func TestJourneySnapshotScopeLabel(t *testing.T) {
	_, _, journeys, cleanup := setupJourneyServices(t)
	defer cleanup()

	now := time.Now()

	filtered, err := journeys.Snapshot(1, EntryFilter{Context: "love"}, now)
	if err != nil {
		t.Fatalf("Snapshot returned error: %v", err)
	}
	if filtered.Scope != "filtered" {
		t.Fatalf("expected filtered scope, got %q", filtered.Scope)
	}

	// 空账本返回零态而不是错误
	if filtered.Stats.TotalReadings != 0 || len(filtered.Stats.MonthlyCadence) != 6 {
		t.Fatalf("expected zero-state snapshot, got %+v", filtered.Stats)
	}
}
