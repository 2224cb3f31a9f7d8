package journey

import (
	"math"
	"sort"
)

// NameCount 表示频率表中的一行
type NameCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Frequency 汇总一组条目的抽牌/语境频率
type Frequency struct {
	FrequentCards    []NameCount `json:"frequent_cards"`
	ContextBreakdown []NameCount `json:"context_breakdown"`
	TotalCards       int         `json:"total_cards"`
	ReversalRate     int         `json:"reversal_rate"`
}

// Aggregate 单次遍历统计每张牌的出现与逆位次数，以及按条目计数的语境分布。
// 排序规则：次数降序，并列时按名字首次出现的顺序，保证同序输入结果可重复。
// 无语境的条目直接跳过，不落入 general；是否补默认语境由调用方负责。
func Aggregate(entries []Entry) Frequency {
	cardCounter := newOrderedCounter()
	contextCounter := newOrderedCounter()

	totalCards := 0
	reversedCards := 0

	for _, entry := range entries {
		for _, card := range entry.Cards {
			if card.Name == "" {
				continue
			}
			cardCounter.Add(card.Name)
			totalCards++
			if card.Reversed() {
				reversedCards++
			}
		}
		if entry.Context != "" {
			contextCounter.Add(entry.Context)
		}
	}

	return Frequency{
		FrequentCards:    cardCounter.Ranked(),
		ContextBreakdown: contextCounter.Ranked(),
		TotalCards:       totalCards,
		ReversalRate:     ratePercent(reversedCards, totalCards),
	}
}

// ratePercent 计算四舍五入的百分比，分母为零时返回 0
func ratePercent(part, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(100 * float64(part) / float64(total)))
}

// orderedCounter 记录计数的同时保留键首次出现的顺序，用于稳定并列排序
type orderedCounter struct {
	counts map[string]int
	names  []string
}

func newOrderedCounter() *orderedCounter {
	return &orderedCounter{counts: make(map[string]int)}
}

func (c *orderedCounter) Add(name string) {
	if _, seen := c.counts[name]; !seen {
		c.names = append(c.names, name)
	}
	c.counts[name]++
}

// Ranked 返回次数降序、并列按首次出现顺序的列表
func (c *orderedCounter) Ranked() []NameCount {
	ranked := make([]NameCount, 0, len(c.names))
	for _, name := range c.names {
		ranked = append(ranked, NameCount{Name: name, Count: c.counts[name]})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Count > ranked[j].Count
	})

	return ranked
}
