package db

// PatternOccurrence 记录一次牌间模式（二元组/三元组）的出现，只追加不更新。
// YearMonth 为插入时的 UTC YYYY-MM 桶，供"本月出现几次"的告警查询使用。
// 不设唯一约束：同一模式在同一条目重复落行是允许的，下游读取方
// 需要时自行 GROUP BY 去重。CreatedAt 存秒级时间戳。
type PatternOccurrence struct {
	ID          uint   `gorm:"primaryKey"`
	UserID      uint   `gorm:"index:idx_pattern_user_month"`
	PatternType string `gorm:"size:16"`
	PatternID   string `gorm:"size:255;index"`
	EntryID     string `gorm:"size:64"`
	YearMonth   string `gorm:"size:7;index:idx_pattern_user_month"`
	CreatedAt   int64
}

// TableName 指定自定义表名，避免自动复数化导致的歧义。
func (PatternOccurrence) TableName() string {
	return "pattern_occurrences"
}
