package journey

import "time"

// cadenceMonths 固定为尾随 6 个自然月
const cadenceMonths = 6

// MonthBucket 表示月度节奏中的一个月
type MonthBucket struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// BuildCadence 把条目归入以 now 所在月收尾的 6 个自然月桶，最旧在前。
// 没有条目的月份保留计数 0；窗口之外的条目直接排除，不折入边缘桶。
func BuildCadence(entries []Entry, now time.Time) []MonthBucket {
	start := startOfMonth(now).AddDate(0, -(cadenceMonths - 1), 0)

	buckets := make([]MonthBucket, cadenceMonths)
	index := make(map[string]int, cadenceMonths)
	for i := 0; i < cadenceMonths; i++ {
		month := start.AddDate(0, i, 0)
		label := month.Format("Jan 2006")
		buckets[i] = MonthBucket{Label: label}
		index[monthKey(month)] = i
	}

	for _, entry := range entries {
		month := startOfMonth(time.UnixMilli(entry.Timestamp).In(now.Location()))
		if i, ok := index[monthKey(month)]; ok {
			buckets[i].Count++
		}
	}

	return buckets
}

func startOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

func monthKey(t time.Time) string {
	return t.Format("2006-01")
}
