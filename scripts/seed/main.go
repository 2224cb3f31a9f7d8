package main

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/arcanalog/internal/config"
	"github.com/arcanalog/internal/db"
	"github.com/arcanalog/internal/service"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

// 演示数据生成器：创建一个演示账号并灌入最近几个月的随机抽牌日志，
// 用来在本地把 Reading Journey 面板跑出有内容的状态。

var spreads = []string{"单牌", "三牌阵", "凯尔特十字"}

var contexts = []string{"love", "career", "self", "spiritual", "wellbeing", ""}

var cardNames = []string{
	"The Fool", "The Magician", "The High Priestess", "The Empress",
	"The Emperor", "The Lovers", "The Chariot", "Strength", "The Hermit",
	"Wheel of Fortune", "Justice", "The Hanged Man", "Death", "Temperance",
	"The Tower", "The Star", "The Moon", "The Sun", "Judgement", "The World",
}

var themes = []string{"新的开始", "放手", "信任", "耐心", "转变", "勇气", "直觉"}

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	if err := db.Init(cfg.DatabasePath); err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	user, err := ensureDemoUser()
	if err != nil {
		log.Fatalf("failed to ensure demo user: %v", err)
	}

	journal := service.NewJournalService(db.DB)
	prefs := service.NewPreferenceService(db.DB)

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	now := time.Now()

	created := 0
	for day := 150; day >= 0; day-- {
		// 平均每三天抽一次，近两周每天都抽，养出连胜
		if day > 14 && rng.Intn(3) != 0 {
			continue
		}

		readAt := now.AddDate(0, 0, -day).Add(time.Duration(rng.Intn(12)) * time.Hour)
		input := service.EntryInput{
			Spread:   spreads[rng.Intn(len(spreads))],
			Context:  contexts[rng.Intn(len(contexts))],
			Question: fmt.Sprintf("第 %d 次抽牌想到的问题", created+1),
			ReadAt:   &readAt,
			ClientTS: readAt.UnixMilli(),
			Cards:    randomCards(rng),
			Themes:   randomThemes(rng),
		}

		if _, err := journal.Create(user.ID, input); err != nil {
			log.Fatalf("failed to seed entry: %v", err)
		}
		created++
	}

	if _, err := prefs.SetFocusAreas(user.ID, []string{"career", "self"}); err != nil {
		log.Fatalf("failed to seed focus areas: %v", err)
	}

	fmt.Printf("seeded %d entries for user %s\n", created, user.Username)
}

func ensureDemoUser() (*db.User, error) {
	var existing db.User
	if err := db.DB.Where("username = ?", "demo").First(&existing).Error; err == nil {
		return &existing, nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte("demo123"), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := db.User{
		Username:    "demo",
		Password:    string(hashed),
		DisplayName: fmt.Sprintf("Demo %s", uuid.NewString()[:8]),
	}
	if err := db.DB.Create(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func randomCards(rng *rand.Rand) []service.CardInput {
	count := 1 + rng.Intn(3)
	cards := make([]service.CardInput, 0, count)
	for i := 0; i < count; i++ {
		orientation := "upright"
		if rng.Intn(4) == 0 {
			orientation = "reversed"
		}
		cards = append(cards, service.CardInput{
			Name:        cardNames[rng.Intn(len(cardNames))],
			Orientation: orientation,
		})
	}
	return cards
}

func randomThemes(rng *rand.Rand) []string {
	if rng.Intn(2) == 0 {
		return nil
	}
	return []string{themes[rng.Intn(len(themes))]}
}
