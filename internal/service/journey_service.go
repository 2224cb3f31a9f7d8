package service

import (
	"fmt"
	"sync"
	"time"

	"github.com/arcanalog/internal/journey"
	"github.com/arcanalog/internal/requests"
	lru "github.com/hashicorp/golang-lru/v2"
)

// defaultSnapshotCacheSize 为快照缓存的默认容量
const defaultSnapshotCacheSize = 128

// Snapshot 捆绑一次聚合运行的全部派生结果，
// 侧栏、移动端抽屉与导出面板消费同一份快照保持一致。
type Snapshot struct {
	Stats       journey.Stats `json:"stats"`
	Drift       journey.Drift `json:"drift"`
	Scope       string        `json:"scope"`
	GeneratedAt time.Time     `json:"generated_at"`
}

type cachedSnapshot struct {
	snapshot Snapshot
	seqID    uint64
}

// JourneyService 在条目仓库之上运行聚合引擎，并做快照级缓存。
// 缓存按 用户+范围+自然日 作键；每个用户有一个请求序号，
// 写路径令其失效，过期的异步重算结果会被直接丢弃而不是写回缓存。
type JourneyService struct {
	journal *JournalService
	prefs   *PreferenceService
	cache   *lru.Cache[string, cachedSnapshot]

	mu   sync.Mutex
	seqs map[uint]*requests.Sequencer
}

// NewJourneyService 构造 JourneyService，cacheSize 不合法时使用默认容量
func NewJourneyService(journal *JournalService, prefs *PreferenceService, cacheSize int) (*JourneyService, error) {
	if cacheSize <= 0 {
		cacheSize = defaultSnapshotCacheSize
	}

	cache, err := lru.New[string, cachedSnapshot](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("create snapshot cache: %w", err)
	}

	return &JourneyService{
		journal: journal,
		prefs:   prefs,
		cache:   cache,
		seqs:    make(map[uint]*requests.Sequencer),
	}, nil
}

// Snapshot 返回用户在给定范围下的聚合快照，优先走缓存。
// 快照是 (条目集, now, focusAreas) 的纯函数，缓存只是省去重复计算，
// 不引入任何可变共享状态。
func (s *JourneyService) Snapshot(userID uint, filter EntryFilter, now time.Time) (Snapshot, error) {
	key := snapshotKey(userID, filter, now)
	seq := s.sequencer(userID)
	seqID := seq.Current()

	if cached, ok := s.cache.Get(key); ok && seq.IsCurrent(cached.seqID) {
		return cached.snapshot, nil
	}

	snapshot, err := s.compute(userID, filter, now)
	if err != nil {
		return Snapshot{}, err
	}

	// 计算期间发生写入则结果已过期，丢弃不回填
	if seq.IsCurrent(seqID) {
		s.cache.Add(key, cachedSnapshot{snapshot: snapshot, seqID: seqID})
	}

	return snapshot, nil
}

// Invalidate 在条目或偏好变更后使该用户的全部缓存快照过期
func (s *JourneyService) Invalidate(userID uint) {
	s.sequencer(userID).Invalidate()
}

func (s *JourneyService) compute(userID uint, filter EntryFilter, now time.Time) (Snapshot, error) {
	records, err := s.journal.Records(userID, filter)
	if err != nil {
		return Snapshot{}, err
	}

	focusAreas, err := s.prefs.FocusAreas(userID)
	if err != nil {
		return Snapshot{}, err
	}

	scope := scopeLabel(filter)

	return Snapshot{
		Stats:       journey.BuildStats(records, now, scope),
		Drift:       journey.DetectDrift(journey.NormalizeAll(records), focusAreas),
		Scope:       scope,
		GeneratedAt: now,
	}, nil
}

func (s *JourneyService) sequencer(userID uint) *requests.Sequencer {
	s.mu.Lock()
	defer s.mu.Unlock()

	seq, ok := s.seqs[userID]
	if !ok {
		seq = &requests.Sequencer{}
		s.seqs[userID] = seq
	}
	return seq
}

func snapshotKey(userID uint, filter EntryFilter, now time.Time) string {
	start, end := "", ""
	if filter.StartDate != nil {
		start = filter.StartDate.Format("2006-01-02")
	}
	if filter.EndDate != nil {
		end = filter.EndDate.Format("2006-01-02")
	}
	return fmt.Sprintf("%d|%s|%s|%s|%s|%s",
		userID, normalizeContext(filter.Context), filter.Search, start, end, now.Format("2006-01-02"))
}

func scopeLabel(filter EntryFilter) string {
	if normalizeContext(filter.Context) == "" && filter.Search == "" &&
		filter.StartDate == nil && filter.EndDate == nil {
		return "all"
	}
	return "filtered"
}
