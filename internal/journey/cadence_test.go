package journey

import (
	"testing"
	"time"
)

func TestBuildCadenceAlwaysSixBuckets(t *testing.T) {
	now := time.Date(2024, 7, 15, 10, 0, 0, 0, time.UTC)

	buckets := BuildCadence(nil, now)
	if len(buckets) != 6 {
		t.Fatalf("expected 6 buckets for empty input, got %d", len(buckets))
	}
	for _, bucket := range buckets {
		if bucket.Count != 0 {
			t.Fatalf("expected zero counts, got %+v", bucket)
		}
	}

	if buckets[0].Label != "Feb 2024" {
		t.Fatalf("expected oldest bucket Feb 2024, got %s", buckets[0].Label)
	}
	if buckets[5].Label != "Jul 2024" {
		t.Fatalf("expected newest bucket Jul 2024, got %s", buckets[5].Label)
	}
}

func TestBuildCadenceAssignsAndExcludes(t *testing.T) {
	now := time.Date(2024, 7, 15, 10, 0, 0, 0, time.UTC)

	entries := []Entry{
		entryOn(time.Date(2024, 7, 1, 0, 30, 0, 0, time.UTC)),
		entryOn(time.Date(2024, 7, 31, 23, 30, 0, 0, time.UTC)),
		entryOn(time.Date(2024, 2, 29, 12, 0, 0, 0, time.UTC)),
		// 窗口之外：不折入最旧的桶
		entryOn(time.Date(2024, 1, 31, 12, 0, 0, 0, time.UTC)),
		entryOn(time.Date(2023, 7, 15, 12, 0, 0, 0, time.UTC)),
	}

	buckets := BuildCadence(entries, now)

	total := 0
	for _, bucket := range buckets {
		total += bucket.Count
	}
	if total != 3 {
		t.Fatalf("expected 3 entries inside window, got %d", total)
	}
	if buckets[0].Count != 1 {
		t.Fatalf("expected Feb 2024 count 1, got %+v", buckets[0])
	}
	if buckets[5].Count != 2 {
		t.Fatalf("expected Jul 2024 count 2, got %+v", buckets[5])
	}
}

func TestBuildCadenceYearBoundary(t *testing.T) {
	now := time.Date(2024, 2, 10, 10, 0, 0, 0, time.UTC)

	buckets := BuildCadence(nil, now)
	if buckets[0].Label != "Sep 2023" || buckets[5].Label != "Feb 2024" {
		t.Fatalf("unexpected window across year boundary: %s .. %s", buckets[0].Label, buckets[5].Label)
	}
}
