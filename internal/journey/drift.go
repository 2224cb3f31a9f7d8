package journey

import "strings"

const (
	// driftMinCount 为语境计入漂移所需的最小出现次数
	driftMinCount = 2
	// driftMaxContexts 为返回的漂移语境上限，界面最多展示 2 个
	driftMaxContexts = 2
)

// Drift 描述阅读语境相对用户声明关注点的偏移
type Drift struct {
	HasDrift bool        `json:"has_drift"`
	Contexts []NameCount `json:"drift_contexts"`
}

// DetectDrift 对比条目的语境分布与用户声明的关注点。
// 某语境出现 2 次以上且不在关注点里才算漂移；两个条件缺一不可。
// 未声明关注点时返回无漂移的稳定形态——没有表态不构成漂移证据。
func DetectDrift(entries []Entry, focusAreas []string) Drift {
	none := Drift{Contexts: []NameCount{}}
	if len(focusAreas) == 0 {
		return none
	}

	declared := make(map[string]bool, len(focusAreas))
	for _, area := range focusAreas {
		area = strings.ToLower(strings.TrimSpace(area))
		if area != "" {
			declared[area] = true
		}
	}
	if len(declared) == 0 {
		return none
	}

	drifting := make([]NameCount, 0, driftMaxContexts)
	for _, context := range Aggregate(entries).ContextBreakdown {
		if context.Count < driftMinCount || declared[context.Name] {
			continue
		}
		drifting = append(drifting, context)
		if len(drifting) == driftMaxContexts {
			break
		}
	}

	return Drift{HasDrift: len(drifting) > 0, Contexts: drifting}
}
