package journey

import (
	"sort"
	"time"
)

// recentThemeLimit 为最近主题的展示上限
const recentThemeLimit = 5

// Stats 是一次聚合运行产出的不可变快照，所有界面共用同一份派生结果。
// 快照是 (条目集, now, scope) 的纯函数，每次调用全量重建，绝不原地修改。
type Stats struct {
	TotalReadings    int           `json:"total_readings"`
	TotalCards       int           `json:"total_cards"`
	ReversalRate     int           `json:"reversal_rate"`
	FrequentCards    []NameCount   `json:"frequent_cards"`
	ContextBreakdown []NameCount   `json:"context_breakdown"`
	RecentThemes     []string      `json:"recent_themes"`
	MonthlyCadence   []MonthBucket `json:"monthly_cadence"`
	CurrentStreak    int           `json:"current_streak"`
	LongestStreak    int           `json:"longest_streak"`
	Badges           []Badge       `json:"badges"`
}

// BuildStats 对一组原始条目执行完整聚合。
// 空输入返回各字段置零的快照而不是错误：坏数据最多让面板显示零态。
func BuildStats(records []Record, now time.Time, scopeLabel string) Stats {
	entries := NormalizeAll(records)

	freq := Aggregate(entries)
	streaks := ComputeStreaks(entries, now)

	return Stats{
		TotalReadings:    len(entries),
		TotalCards:       freq.TotalCards,
		ReversalRate:     freq.ReversalRate,
		FrequentCards:    freq.FrequentCards,
		ContextBreakdown: freq.ContextBreakdown,
		RecentThemes:     RecentThemes(entries),
		MonthlyCadence:   BuildCadence(entries, now),
		CurrentStreak:    streaks.Current,
		LongestStreak:    streaks.Longest,
		Badges:           EvaluateBadges(freq, streaks, len(entries), scopeLabel),
	}
}

// RecentThemes 从最近的条目里收集主题标签，最新在前，去重后截到 5 个
func RecentThemes(entries []Entry) []string {
	ordered := make([]Entry, len(entries))
	copy(ordered, entries)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Timestamp > ordered[j].Timestamp
	})

	seen := make(map[string]bool)
	themes := make([]string, 0, recentThemeLimit)
	for _, entry := range ordered {
		for _, theme := range entry.Themes {
			if theme == "" || seen[theme] {
				continue
			}
			seen[theme] = true
			themes = append(themes, theme)
			if len(themes) == recentThemeLimit {
				return themes
			}
		}
	}
	return themes
}
