package db

import (
	"time"

	"gorm.io/gorm"
)

// Entry 表示一条塔罗日志：一次抽牌连同牌阵、语境与自由记述。
// PublicID 是对外可见的 UUID，分享链接使用；本地优先的前端同步
// 上来的条目带 ClientTS（毫秒），服务端落库时间另由 gorm 维护。
// Context 按前端给定原样保存，缺失不补 general，聚合层同样不补。
type Entry struct {
	gorm.Model
	UserID   uint   `gorm:"index"`
	PublicID string `gorm:"size:36;uniqueIndex"`
	Spread   string
	Context  string `gorm:"size:32;index"`
	Question string
	Note     string
	ReadAt   *time.Time
	ClientTS int64
	Cards    []EntryCard  `gorm:"constraint:OnDelete:CASCADE"`
	Themes   []EntryTheme `gorm:"constraint:OnDelete:CASCADE"`
}

// EntryCard 是条目中的一张牌，Position 保持抽牌顺序。
// Orientation 为空表示正位。
type EntryCard struct {
	gorm.Model
	EntryID     uint `gorm:"index"`
	Position    int
	Name        string `gorm:"size:64"`
	Orientation string `gorm:"size:16"`
}

// EntryTheme 是条目关联的主题标签
type EntryTheme struct {
	gorm.Model
	EntryID uint   `gorm:"index"`
	Label   string `gorm:"size:128"`
}
