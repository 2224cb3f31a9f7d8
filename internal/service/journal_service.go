package service

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/arcanalog/internal/db"
	"github.com/arcanalog/internal/journey"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	// ErrEntryNotFound 在指定条目不存在时返回
	ErrEntryNotFound = errors.New("journal entry not found")
)

// JournalService 负责日志条目的增删改查
// 主要服务于前端的日志簿与 Reading Journey 面板，保持与 handler 解耦
// Context 原样保存：缺失语境不会被补成 general，聚合层同样跳过

type JournalService struct {
	db *gorm.DB
}

// EntryFilter 描述列表过滤条件
type EntryFilter struct {
	Context   string
	Search    string
	StartDate *time.Time
	EndDate   *time.Time
	Page      int
	PerPage   int
}

// CardInput 定义条目中的单张牌
type CardInput struct {
	Name        string
	Orientation string
}

// EntryInput 定义创建/更新条目时可配置字段
type EntryInput struct {
	Spread   string
	Context  string
	Question string
	Note     string
	ReadAt   *time.Time
	ClientTS int64
	Cards    []CardInput
	Themes   []string
}

// EntryListResult 聚合分页列表数据
type EntryListResult struct {
	Entries    []db.Entry
	Total      int64
	TotalPages int
	Page       int
	PerPage    int
}

// NewJournalService 构造 JournalService
func NewJournalService(gdb *gorm.DB) *JournalService {
	return &JournalService{db: gdb}
}

// Create 新建条目并在同一事务内写入牌与主题
func (s *JournalService) Create(userID uint, input EntryInput) (*db.Entry, error) {
	entry := db.Entry{
		UserID:   userID,
		PublicID: uuid.NewString(),
		Spread:   strings.TrimSpace(input.Spread),
		Context:  normalizeContext(input.Context),
		Question: strings.TrimSpace(input.Question),
		Note:     input.Note,
		ReadAt:   input.ReadAt,
		ClientTS: input.ClientTS,
		Cards:    buildEntryCards(input.Cards),
		Themes:   buildEntryThemes(input.Themes),
	}

	if err := s.db.Create(&entry).Error; err != nil {
		return nil, fmt.Errorf("create entry: %w", err)
	}
	return &entry, nil
}

// Update 更新条目，整组替换牌与主题
func (s *JournalService) Update(userID, id uint, input EntryInput) (*db.Entry, error) {
	var existing db.Entry
	if err := s.db.Where("user_id = ?", userID).First(&existing, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEntryNotFound
		}
		return nil, fmt.Errorf("find entry: %w", err)
	}

	if err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("entry_id = ?", existing.ID).Delete(&db.EntryCard{}).Error; err != nil {
			return err
		}
		if err := tx.Where("entry_id = ?", existing.ID).Delete(&db.EntryTheme{}).Error; err != nil {
			return err
		}

		existing.Spread = strings.TrimSpace(input.Spread)
		existing.Context = normalizeContext(input.Context)
		existing.Question = strings.TrimSpace(input.Question)
		existing.Note = input.Note
		existing.ReadAt = input.ReadAt
		if input.ClientTS > 0 {
			existing.ClientTS = input.ClientTS
		}
		existing.Cards = buildEntryCards(input.Cards)
		existing.Themes = buildEntryThemes(input.Themes)

		return tx.Session(&gorm.Session{FullSaveAssociations: true}).Save(&existing).Error
	}); err != nil {
		return nil, fmt.Errorf("update entry: %w", err)
	}

	return &existing, nil
}

// Get 根据 ID 获取条目
func (s *JournalService) Get(userID, id uint) (*db.Entry, error) {
	var entry db.Entry
	if err := s.db.Preload("Cards").Preload("Themes").
		Where("user_id = ?", userID).First(&entry, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEntryNotFound
		}
		return nil, fmt.Errorf("get entry: %w", err)
	}
	sortCards(&entry)
	return &entry, nil
}

// GetByPublicID 根据对外 UUID 获取条目，供分享链接使用
func (s *JournalService) GetByPublicID(publicID string) (*db.Entry, error) {
	var entry db.Entry
	if err := s.db.Preload("Cards").Preload("Themes").
		Where("public_id = ?", strings.TrimSpace(publicID)).First(&entry).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEntryNotFound
		}
		return nil, fmt.Errorf("get entry by public id: %w", err)
	}
	sortCards(&entry)
	return &entry, nil
}

// List 返回分页条目集合，支持语境/时间/关键字筛选
func (s *JournalService) List(userID uint, filter EntryFilter) (*EntryListResult, error) {
	countQuery := s.applyFilter(s.db.Model(&db.Entry{}), userID, filter)

	var total int64
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, fmt.Errorf("count entries: %w", err)
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	perPage := filter.PerPage
	if perPage < 1 {
		perPage = 20
	}

	dataQuery := s.applyFilter(s.db.Model(&db.Entry{}), userID, filter)

	var entries []db.Entry
	if err := dataQuery.Preload("Cards").Preload("Themes").
		Order("created_at DESC").
		Offset((page - 1) * perPage).Limit(perPage).
		Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("list entries: %w", err)
	}
	for i := range entries {
		sortCards(&entries[i])
	}

	totalPages := int((total + int64(perPage) - 1) / int64(perPage))

	return &EntryListResult{
		Entries:    entries,
		Total:      total,
		TotalPages: totalPages,
		Page:       page,
		PerPage:    perPage,
	}, nil
}

// Delete 删除条目及其关联的牌与主题
func (s *JournalService) Delete(userID, id uint) error {
	var entry db.Entry
	if err := s.db.Where("user_id = ?", userID).First(&entry, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEntryNotFound
		}
		return fmt.Errorf("find entry: %w", err)
	}

	if err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("entry_id = ?", entry.ID).Delete(&db.EntryCard{}).Error; err != nil {
			return err
		}
		if err := tx.Where("entry_id = ?", entry.ID).Delete(&db.EntryTheme{}).Error; err != nil {
			return err
		}
		return tx.Delete(&entry).Error
	}); err != nil {
		return fmt.Errorf("delete entry: %w", err)
	}
	return nil
}

// Records 把指定范围内的条目映射成聚合引擎的原始记录。
// 时间字段优先本地客户端毫秒值，其次用户选择的阅读时间（秒），
// 归一化的优先级与换算由引擎负责。
func (s *JournalService) Records(userID uint, filter EntryFilter) ([]journey.Record, error) {
	var entries []db.Entry
	if err := s.applyFilter(s.db.Model(&db.Entry{}), userID, filter).
		Preload("Cards").Preload("Themes").
		Order("created_at ASC").
		Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("load entries for aggregation: %w", err)
	}

	records := make([]journey.Record, 0, len(entries))
	for i := range entries {
		sortCards(&entries[i])
		records = append(records, toRecord(entries[i]))
	}
	return records, nil
}

func (s *JournalService) applyFilter(query *gorm.DB, userID uint, filter EntryFilter) *gorm.DB {
	query = query.Where("user_id = ?", userID)

	if context := normalizeContext(filter.Context); context != "" {
		query = query.Where("context = ?", context)
	}
	if filter.StartDate != nil {
		query = query.Where("COALESCE(read_at, created_at) >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		query = query.Where("COALESCE(read_at, created_at) <= ?", *filter.EndDate)
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		like := fmt.Sprintf("%%%s%%", search)
		query = query.Where("question LIKE ? OR spread LIKE ? OR note LIKE ?", like, like, like)
	}

	return query
}

func toRecord(entry db.Entry) journey.Record {
	var createdAt int64
	if entry.ReadAt != nil {
		createdAt = entry.ReadAt.Unix()
	} else {
		createdAt = entry.CreatedAt.Unix()
	}

	cards := make([]journey.Card, 0, len(entry.Cards))
	for _, card := range entry.Cards {
		cards = append(cards, journey.Card{Name: card.Name, Orientation: card.Orientation})
	}

	themes := make([]string, 0, len(entry.Themes))
	for _, theme := range entry.Themes {
		themes = append(themes, theme.Label)
	}

	return journey.Record{
		ID:        entry.PublicID,
		TS:        entry.ClientTS,
		CreatedAt: createdAt,
		UpdatedAt: entry.UpdatedAt.Unix(),
		Spread:    entry.Spread,
		Context:   entry.Context,
		Question:  entry.Question,
		Cards:     cards,
		Themes:    themes,
	}
}

func buildEntryCards(cards []CardInput) []db.EntryCard {
	built := make([]db.EntryCard, 0, len(cards))
	for i, card := range cards {
		name := strings.TrimSpace(card.Name)
		if name == "" {
			continue
		}
		orientation := strings.TrimSpace(strings.ToLower(card.Orientation))
		if orientation != journey.OrientationReversed {
			orientation = journey.OrientationUpright
		}
		built = append(built, db.EntryCard{Position: i, Name: name, Orientation: orientation})
	}
	return built
}

func buildEntryThemes(themes []string) []db.EntryTheme {
	built := make([]db.EntryTheme, 0, len(themes))
	for _, label := range themes {
		label = strings.TrimSpace(label)
		if label == "" {
			continue
		}
		built = append(built, db.EntryTheme{Label: label})
	}
	return built
}

func normalizeContext(context string) string {
	return strings.ToLower(strings.TrimSpace(context))
}

func sortCards(entry *db.Entry) {
	sort.SliceStable(entry.Cards, func(i, j int) bool {
		return entry.Cards[i].Position < entry.Cards[j].Position
	})
}
