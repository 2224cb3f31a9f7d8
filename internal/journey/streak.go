package journey

import (
	"sort"
	"time"
)

const dayKeyFormat = "2006-01-02"

// Streaks 表示连续抽牌天数统计
type Streaks struct {
	Current int `json:"current_streak"`
	Longest int `json:"longest_streak"`
}

// ComputeStreaks 按自然日计算当前与历史最长连续天数。
// 日期键取 now 所在时区；同一天多条记录只算一天。
// 当前连胜的锚点允许是今天或昨天（今天尚未抽牌时给一天宽限），
// 最近一条早于昨天则当前连胜为 0。最长连胜扫描全历史，不锚定 now。
func ComputeStreaks(entries []Entry, now time.Time) Streaks {
	if len(entries) == 0 {
		return Streaks{}
	}

	days := uniqueDays(entries, now.Location())
	if len(days) == 0 {
		return Streaks{}
	}

	return Streaks{
		Current: currentRun(days, now),
		Longest: longestRun(days),
	}
}

// uniqueDays 返回按日期升序排列的去重日零点序列
func uniqueDays(entries []Entry, loc *time.Location) []time.Time {
	seen := make(map[string]time.Time, len(entries))
	for _, entry := range entries {
		day := startOfDay(time.UnixMilli(entry.Timestamp).In(loc))
		seen[day.Format(dayKeyFormat)] = day
	}

	days := make([]time.Time, 0, len(seen))
	for _, day := range seen {
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })
	return days
}

func currentRun(days []time.Time, now time.Time) int {
	today := startOfDay(now)
	yesterday := today.AddDate(0, 0, -1)

	anchor := days[len(days)-1]
	if !anchor.Equal(today) && !anchor.Equal(yesterday) {
		return 0
	}

	run := 1
	for i := len(days) - 2; i >= 0; i-- {
		if !days[i].Equal(days[i+1].AddDate(0, 0, -1)) {
			break
		}
		run++
	}
	return run
}

func longestRun(days []time.Time) int {
	longest := 1
	run := 1
	for i := 1; i < len(days); i++ {
		if days[i].Equal(days[i-1].AddDate(0, 0, 1)) {
			run++
			if run > longest {
				longest = run
			}
		} else {
			run = 1
		}
	}
	return longest
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
