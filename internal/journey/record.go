// Package journey 实现日志聚合引擎：把原始抽牌记录归一化后
// 计算频率表、连续天数、徽章、月度节奏与偏好漂移。
// 该层必须保持纯函数：不读时钟、不触数据库，now 一律由调用方注入。
package journey

// Orientation 取值，缺省视为正位
const (
	OrientationUpright  = "upright"
	OrientationReversed = "reversed"
)

// 时间戳小于该值按秒处理，乘以 1000 换算成毫秒
const millisecondFloor = int64(1e12)

// Card 表示一次抽牌中的单张牌
type Card struct {
	Name        string
	Orientation string
}

// Reversed 判断该牌是否逆位
func (c Card) Reversed() bool {
	return c.Orientation == OrientationReversed
}

// Record 是进入引擎前的原始条目，时间字段可能缺失或混用秒/毫秒，
// 本地条目可能没有 ID。字段形态对应前端与服务端两种来源。
type Record struct {
	ID        string
	TS        int64
	CreatedAt int64
	UpdatedAt int64
	Spread    string
	Context   string
	Question  string
	Cards     []Card
	Themes    []string
}

// Entry 是归一化后的规范条目，Timestamp 恒为正的毫秒值
type Entry struct {
	ID        string
	Timestamp int64
	Spread    string
	Context   string
	Question  string
	Cards     []Card
	Themes    []string
}

// Normalize 把原始条目归一化为规范条目。
// 时间戳按 TS → CreatedAt → UpdatedAt 的优先级取第一个正值，
// 小于 1e12 的按秒换算为毫秒；全部缺失时返回 nil，条目被整体剔除。
// 该函数不会 panic：nil 卡组按空卡组处理。
func Normalize(record Record) *Entry {
	ts := resolveTimestamp(record)
	if ts <= 0 {
		return nil
	}

	cards := record.Cards
	if cards == nil {
		cards = []Card{}
	}

	return &Entry{
		ID:        record.ID,
		Timestamp: ts,
		Spread:    record.Spread,
		Context:   record.Context,
		Question:  record.Question,
		Cards:     cards,
		Themes:    record.Themes,
	}
}

// NormalizeAll 归一化整组条目，剔除无法定位时间的条目并保持输入顺序
func NormalizeAll(records []Record) []Entry {
	entries := make([]Entry, 0, len(records))
	for _, record := range records {
		if entry := Normalize(record); entry != nil {
			entries = append(entries, *entry)
		}
	}
	return entries
}

func resolveTimestamp(record Record) int64 {
	for _, candidate := range []int64{record.TS, record.CreatedAt, record.UpdatedAt} {
		if candidate <= 0 {
			continue
		}
		if candidate < millisecondFloor {
			return candidate * 1000
		}
		return candidate
	}
	return 0
}
