package service

import (
	"testing"
	"time"

	"github.com/arcanalog/internal/db"
	"github.com/arcanalog/internal/journey"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupPatternTestDB(t *testing.T) func() {
	t.Helper()

	gdb, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := gdb.AutoMigrate(&db.PatternOccurrence{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	db.DB = gdb

	return func() {
		sqlDB, err := db.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}
}

func TestPatternRecordScenario(t *testing.T) {
	cleanup := setupPatternTestDB(t)
	defer cleanup()

	svc := NewPatternService(db.DB)
	now := time.Date(2024, 5, 10, 8, 0, 0, 0, time.UTC)

	graph := journey.Graph{
		CompleteTriadIDs: []string{"a-b-c"},
		DyadPairs: []journey.DyadPair{
			{Cards: []string{"Y", "X"}, Significance: "high"},
			{Cards: []string{"Z", "Q"}, Significance: "low"},
		},
	}

	inserted, err := svc.Record(7, "entry-1", graph, now)
	if err != nil {
		t.Fatalf("Record returned error: %v", err)
	}
	if inserted != 2 {
		t.Fatalf("expected exactly 2 rows, got %d", inserted)
	}

	var rows []db.PatternOccurrence
	if err := db.DB.Order("id ASC").Find(&rows).Error; err != nil {
		t.Fatalf("failed to load rows: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 persisted rows, got %d", len(rows))
	}

	if rows[0].PatternType != "triad" || rows[0].PatternID != "a-b-c" {
		t.Fatalf("unexpected triad row: %+v", rows[0])
	}
	if rows[1].PatternType != "dyad" || rows[1].PatternID != "X-Y" {
		t.Fatalf("expected canonical dyad id X-Y, got %+v", rows[1])
	}
	for _, row := range rows {
		if row.UserID != 7 || row.EntryID != "entry-1" {
			t.Fatalf("unexpected row ownership: %+v", row)
		}
		if row.YearMonth != "2024-05" {
			t.Fatalf("expected UTC year_month 2024-05, got %q", row.YearMonth)
		}
		if row.CreatedAt != now.Unix() {
			t.Fatalf("expected epoch-seconds created_at, got %d", row.CreatedAt)
		}
	}
}

func TestPatternRecordNoQualifyingPatterns(t *testing.T) {
	cleanup := setupPatternTestDB(t)
	defer cleanup()

	svc := NewPatternService(db.DB)

	inserted, err := svc.Record(7, "entry-2", journey.Graph{
		DyadPairs: []journey.DyadPair{{Cards: []string{"A", "B"}, Significance: "medium"}},
	}, time.Now())
	if err != nil {
		t.Fatalf("Record returned error: %v", err)
	}
	if inserted != 0 {
		t.Fatalf("expected no-op, got %d rows", inserted)
	}

	var count int64
	db.DB.Model(&db.PatternOccurrence{}).Count(&count)
	if count != 0 {
		t.Fatalf("expected empty table, got %d rows", count)
	}
}

func TestPatternRecordAsyncSwallowsFailure(t *testing.T) {
	cleanup := setupPatternTestDB(t)
	defer cleanup()

	// 删表制造插入失败：异步路径必须吞掉错误，调用方不受影响
	if err := db.DB.Migrator().DropTable(&db.PatternOccurrence{}); err != nil {
		t.Fatalf("failed to drop table: %v", err)
	}

	svc := NewPatternService(db.DB)
	graph := journey.Graph{CompleteTriadIDs: []string{"x-y-z"}}

	done := make(chan struct{})
	go func() {
		defer close(done)
		svc.RecordAsync(1, "entry-3", graph, time.Now())
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("RecordAsync must return immediately")
	}

	// 同步路径返回错误，供日志使用
	if _, err := svc.Record(1, "entry-3", graph, time.Now()); err == nil {
		t.Fatal("expected error from missing table")
	}

	// 给后台 goroutine 一点时间完成，确认没有 panic 泄漏到测试进程
	time.Sleep(50 * time.Millisecond)
}

func TestPatternAlertsGroupsByMonth(t *testing.T) {
	cleanup := setupPatternTestDB(t)
	defer cleanup()

	svc := NewPatternService(db.DB)
	now := time.Date(2024, 5, 20, 12, 0, 0, 0, time.UTC)

	graph := journey.Graph{DyadPairs: []journey.DyadPair{{Cards: []string{"B", "A"}, Significance: "high"}}}
	for i := 0; i < 3; i++ {
		if _, err := svc.Record(9, "entry-a", graph, now); err != nil {
			t.Fatalf("Record returned error: %v", err)
		}
	}
	if _, err := svc.Record(9, "entry-b", journey.Graph{CompleteTriadIDs: []string{"t-1"}}, now); err != nil {
		t.Fatalf("Record returned error: %v", err)
	}
	// 上个月的行不计入本月告警
	if _, err := svc.Record(9, "entry-c", graph, now.AddDate(0, -1, 0)); err != nil {
		t.Fatalf("Record returned error: %v", err)
	}
	// 其他用户不串
	if _, err := svc.Record(10, "entry-d", graph, now); err != nil {
		t.Fatalf("Record returned error: %v", err)
	}

	alerts, err := svc.Alerts(9, now)
	if err != nil {
		t.Fatalf("Alerts returned error: %v", err)
	}

	if len(alerts) != 2 {
		t.Fatalf("expected 2 alerts, got %+v", alerts)
	}
	if alerts[0].PatternID != "A-B" || alerts[0].OccurrenceCount != 3 {
		t.Fatalf("unexpected top alert: %+v", alerts[0])
	}
	if alerts[1].PatternID != "t-1" || alerts[1].OccurrenceCount != 1 {
		t.Fatalf("unexpected second alert: %+v", alerts[1])
	}
}

func TestPatternAlertsEmpty(t *testing.T) {
	cleanup := setupPatternTestDB(t)
	defer cleanup()

	alerts, err := NewPatternService(db.DB).Alerts(1, time.Now())
	if err != nil {
		t.Fatalf("Alerts returned error: %v", err)
	}
	if alerts == nil || len(alerts) != 0 {
		t.Fatalf("expected stable empty slice, got %+v", alerts)
	}
}
