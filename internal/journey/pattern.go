package journey

import (
	"sort"
	"strings"
)

// 模式类型与写入 pattern_occurrences 的 pattern_type 列一致
const (
	PatternTypeTriad = "triad"
	PatternTypeDyad  = "dyad"
)

// SignificanceHigh 之外的二元组不会被记录
const SignificanceHigh = "high"

// DyadPair 表示上游知识图谱检出的一对牌
type DyadPair struct {
	Cards        []string `json:"cards"`
	Significance string   `json:"significance"`
}

// Graph 是保存一次阅读时上游检出的牌间关系
type Graph struct {
	CompleteTriadIDs []string   `json:"complete_triad_ids"`
	DyadPairs        []DyadPair `json:"dyad_pairs"`
}

// PatternRef 是一条待记录的模式出现
type PatternRef struct {
	Type string
	ID   string
}

// DyadPatternID 生成二元组的规范 ID：排序后用连字符拼接，
// 同一对牌无论检出顺序如何都会映射到同一个 ID。
func DyadPatternID(cards []string) string {
	sorted := make([]string, len(cards))
	copy(sorted, cards)
	sort.Strings(sorted)
	return strings.Join(sorted, "-")
}

// QualifyingPatterns 过滤出需要落库的模式：全部三元组，
// 以及 significance 为 high 的二元组。三元组 ID 由上游计算，原样使用。
func QualifyingPatterns(graph Graph) []PatternRef {
	refs := make([]PatternRef, 0, len(graph.CompleteTriadIDs)+len(graph.DyadPairs))

	for _, triadID := range graph.CompleteTriadIDs {
		if triadID == "" {
			continue
		}
		refs = append(refs, PatternRef{Type: PatternTypeTriad, ID: triadID})
	}

	for _, dyad := range graph.DyadPairs {
		if dyad.Significance != SignificanceHigh || len(dyad.Cards) == 0 {
			continue
		}
		refs = append(refs, PatternRef{Type: PatternTypeDyad, ID: DyadPatternID(dyad.Cards)})
	}

	return refs
}
