package journey

import (
	"fmt"
	"strings"
)

// 徽章类型沿用前端的固定词表，图标与类型成对出现
const (
	BadgeTypeStreak        = "streak"
	BadgeTypeFirstReading  = "first_reading"
	BadgeTypeTenReadings   = "ten_readings"
	BadgeTypeFiftyReadings = "fifty_readings"
	BadgeTypeMastery       = "mastery"
	BadgeTypeCardAffinity  = "card_affinity"
)

const (
	BadgeIconFire    = "fire"
	BadgeIconStar    = "star"
	BadgeIconMedal   = "medal"
	BadgeIconTrophy  = "trophy"
	BadgeIconSparkle = "sparkle"
)

// 固定阈值：里程碑按总次数 1/10/50/100，单牌徽章按范围内出现 3 次
const (
	milestoneFirst   = 1
	milestoneTen     = 10
	milestoneFifty   = 50
	milestoneHundred = 100
	cardAffinityMin  = 3
)

// Badge 表示一次聚合派生出的成就徽章。
// 徽章不落库，每次重算整组派生；BadgeKey 确定性生成，保证重算幂等。
type Badge struct {
	BadgeKey  string `json:"badge_key"`
	BadgeType string `json:"badge_type"`
	Icon      string `json:"icon"`
	CardName  string `json:"card_name,omitempty"`
	Count     int    `json:"count,omitempty"`
	Metadata  string `json:"metadata,omitempty"`
}

// EvaluateBadges 由频率与连胜结果派生徽章集合。
// scopeLabel 描述本次聚合的范围（如 all / filtered），写进单牌徽章的
// 说明文字，避免把范围内计数误读成一辈子的总数。
func EvaluateBadges(freq Frequency, streaks Streaks, totalReadings int, scopeLabel string) []Badge {
	scope := strings.TrimSpace(scopeLabel)
	if scope == "" {
		scope = "all"
	}

	badges := make([]Badge, 0, 4)

	milestones := []struct {
		threshold int
		badgeType string
		icon      string
	}{
		{milestoneFirst, BadgeTypeFirstReading, BadgeIconStar},
		{milestoneTen, BadgeTypeTenReadings, BadgeIconMedal},
		{milestoneFifty, BadgeTypeFiftyReadings, BadgeIconTrophy},
		{milestoneHundred, BadgeTypeMastery, BadgeIconSparkle},
	}
	for _, milestone := range milestones {
		if totalReadings >= milestone.threshold {
			badges = append(badges, Badge{
				BadgeKey:  fmt.Sprintf("milestone:%s", milestone.badgeType),
				BadgeType: milestone.badgeType,
				Icon:      milestone.icon,
				Count:     milestone.threshold,
			})
		}
	}

	if streaks.Current >= 1 {
		badges = append(badges, Badge{
			BadgeKey:  "streak:current",
			BadgeType: BadgeTypeStreak,
			Icon:      BadgeIconFire,
			Count:     streaks.Current,
		})
	}

	for _, card := range freq.FrequentCards {
		if card.Count < cardAffinityMin {
			continue
		}
		badges = append(badges, Badge{
			BadgeKey:  fmt.Sprintf("card:%s", card.Name),
			BadgeType: BadgeTypeCardAffinity,
			Icon:      BadgeIconMedal,
			CardName:  card.Name,
			Count:     card.Count,
			Metadata:  fmt.Sprintf("appeared %d+ times in scope %s", cardAffinityMin, scope),
		})
	}

	return badges
}
