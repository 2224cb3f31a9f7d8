package service

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/arcanalog/internal/db"
	"github.com/arcanalog/internal/journey"
	"gorm.io/gorm"
)

// PatternService 负责牌间模式出现记录的写入与告警查询。
// 写入是尽力而为的遥测：失败只记日志，绝不影响触发它的保存流程。
type PatternService struct {
	db *gorm.DB
}

// PatternAlert 表示某个模式在近期窗口内的出现次数
type PatternAlert struct {
	PatternID       string `json:"pattern_id"`
	OccurrenceCount int    `json:"occurrence_count"`
}

// NewPatternService 构造 PatternService
func NewPatternService(gdb *gorm.DB) *PatternService {
	return &PatternService{db: gdb}
}

// Record 把一次阅读的知识图谱中合格的模式各落一行：
// 全部三元组，加上 significance 为 high 的二元组。
// 所有行在同一事务内批量插入；没有合格模式时不发起任何数据库调用。
func (s *PatternService) Record(userID uint, entryID string, graph journey.Graph, now time.Time) (int, error) {
	refs := journey.QualifyingPatterns(graph)
	if len(refs) == 0 {
		return 0, nil
	}

	yearMonth := now.UTC().Format("2006-01")
	createdAt := now.Unix()

	rows := make([]db.PatternOccurrence, 0, len(refs))
	for _, ref := range refs {
		rows = append(rows, db.PatternOccurrence{
			UserID:      userID,
			PatternType: ref.Type,
			PatternID:   ref.ID,
			EntryID:     strings.TrimSpace(entryID),
			YearMonth:   yearMonth,
			CreatedAt:   createdAt,
		})
	}

	if err := s.db.Transaction(func(tx *gorm.DB) error {
		return tx.Create(&rows).Error
	}); err != nil {
		return 0, fmt.Errorf("record pattern occurrences: %w", err)
	}

	return len(rows), nil
}

// RecordAsync 在独立 goroutine 中执行 Record。
// 调用方不等待结果；任何失败都被吞掉并记日志，保存阅读的操作照常完成。
func (s *PatternService) RecordAsync(userID uint, entryID string, graph journey.Graph, now time.Time) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				log.Printf("pattern tracking panic for entry %s: %v", entryID, r)
			}
		}()

		if _, err := s.Record(userID, entryID, graph, now); err != nil {
			log.Printf("pattern tracking failed for entry %s: %v", entryID, err)
		}
	}()
}

// Alerts 返回当前 UTC 月内按 pattern_id 聚合的出现次数，次数降序。
// 同一次阅读的重复行在这里被 GROUP BY 吸收。
func (s *PatternService) Alerts(userID uint, now time.Time) ([]PatternAlert, error) {
	var alerts []PatternAlert
	if err := s.db.Model(&db.PatternOccurrence{}).
		Select("pattern_id, COUNT(*) AS occurrence_count").
		Where("user_id = ? AND year_month = ?", userID, now.UTC().Format("2006-01")).
		Group("pattern_id").
		Order("occurrence_count DESC, pattern_id ASC").
		Scan(&alerts).Error; err != nil {
		return nil, fmt.Errorf("load pattern alerts: %w", err)
	}

	if alerts == nil {
		alerts = []PatternAlert{}
	}
	return alerts, nil
}
