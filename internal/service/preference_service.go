package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/arcanalog/internal/db"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// PreferenceService 提供用户偏好的读取与更新能力，
// 偏好按键值行存放，目前只有 focus_areas 一个键。
type PreferenceService struct {
	db *gorm.DB
}

// NewPreferenceService 构造 PreferenceService
func NewPreferenceService(gdb *gorm.DB) *PreferenceService {
	return &PreferenceService{db: gdb}
}

// FocusAreas 读取用户声明的关注语境，未设置时返回空集而不是错误
func (s *PreferenceService) FocusAreas(userID uint) ([]string, error) {
	var pref db.Preference
	err := s.db.Where("user_id = ? AND key = ?", userID, db.PreferenceKeyFocusAreas).First(&pref).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("load focus areas: %w", err)
	}

	return splitFocusAreas(pref.Value), nil
}

// SetFocusAreas 覆盖写入关注语境，小写去重后逗号拼接存储
func (s *PreferenceService) SetFocusAreas(userID uint, areas []string) ([]string, error) {
	normalized := normalizeFocusAreas(areas)

	pref := db.Preference{
		UserID: userID,
		Key:    db.PreferenceKeyFocusAreas,
		Value:  strings.Join(normalized, ","),
	}

	if err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&pref).Error; err != nil {
		return nil, fmt.Errorf("save focus areas: %w", err)
	}

	return normalized, nil
}

func splitFocusAreas(value string) []string {
	return normalizeFocusAreas(strings.Split(value, ","))
}

func normalizeFocusAreas(areas []string) []string {
	seen := make(map[string]bool, len(areas))
	normalized := make([]string, 0, len(areas))
	for _, area := range areas {
		area = strings.ToLower(strings.TrimSpace(area))
		if area == "" || seen[area] {
			continue
		}
		seen[area] = true
		normalized = append(normalized, area)
	}
	return normalized
}
