package matching

import (
	"context"
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/connectsphere/backend/models"

	"go.uber.org/zap"
)

const (
	// 阶段一的质量门槛
	qualityThreshold = 60

	// 阶段二随机配对的合成分数区间 [35, 60)
	fallbackScoreMin    = 35
	fallbackScoreSpread = 25

	// 自动排期的会议默认值
	defaultMeetingDuration = 30
	defaultMeetingHour     = 14
)

// PairKey 无序用户对的键
type PairKey struct {
	Low  uint
	High uint
}

// NewPairKey 规范化用户对，保证 (a,b) 与 (b,a) 等价
func NewPairKey(a, b uint) PairKey {
	if a > b {
		a, b = b, a
	}
	return PairKey{Low: a, High: b}
}

// MeetingDraft 自动排期生成的会议记录
type MeetingDraft struct {
	MatchID     uint
	ScheduledAt time.Time
	Duration    int
	MeetingType models.MeetingType
	MeetingLink string
}

// Store 匹配器依赖的持久化接口
type Store interface {
	// ActiveUsers 返回已开启匹配的用户及档案属性
	ActiveUsers(ctx context.Context) ([]Candidate, error)
	// ExistingPairs 返回本周期已存在的用户对
	ExistingPairs(ctx context.Context, monthYear string) (map[PairKey]bool, error)
	// CreateMatch 创建匹配记录并返回其ID
	CreateMatch(ctx context.Context, user1, user2 uint, score int, monthYear string) (uint, error)
	// CreateMeeting 创建自动排期的会议
	CreateMeeting(ctx context.Context, draft MeetingDraft) error
}

// Notifier 匹配结果通知接口。实现方自行处理发送失败，只记录不上抛。
type Notifier interface {
	MatchCreated(a, b Candidate, score int)
	NoMatch(c Candidate)
}

// Matcher 月度匹配器：两阶段贪心配对
type Matcher struct {
	store       Store
	notifier    Notifier
	cache       *ScoreCache
	logger      *zap.Logger
	meetingLink string

	// 测试可注入的随机源与时钟
	rng *rand.Rand
	now func() time.Time

	// 同一进程内的并发触发串行执行
	mu sync.Mutex
}

// NewMatcher 创建匹配器实例
func NewMatcher(store Store, notifier Notifier, meetingLink string, logger *zap.Logger) *Matcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Matcher{
		store:       store,
		notifier:    notifier,
		logger:      logger,
		meetingLink: meetingLink,
		rng:         rand.New(rand.NewSource(time.Now().UnixNano())),
		now:         time.Now,
	}
}

// SetRand 注入随机源，用于可复现的阶段二配对
func (m *Matcher) SetRand(r *rand.Rand) {
	m.rng = r
}

// SetClock 注入时钟，用于可复现的会议排期
func (m *Matcher) SetClock(now func() time.Time) {
	m.now = now
}

// SetScoreCache 启用配对分数缓存
func (m *Matcher) SetScoreCache(c *ScoreCache) {
	m.cache = c
}

// Run 执行一轮月度匹配，返回本轮创建的匹配数。
// 存储层错误会中断本轮并上抛；通知与会议排期失败只记录日志。
func (m *Matcher) Run(ctx context.Context, monthYear string, weights models.WeightConfig) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	users, err := m.store.ActiveUsers(ctx)
	if err != nil {
		return 0, err
	}
	if len(users) < 2 {
		m.logger.Info("not enough active users for matching",
			zap.String("monthYear", monthYear),
			zap.Int("activeUsers", len(users)))
		return 0, nil
	}

	existing, err := m.store.ExistingPairs(ctx, monthYear)
	if err != nil {
		return 0, err
	}

	// 候选集：本周期尚未匹配过的所有无序用户对
	type pairCandidate struct {
		i, j  int
		score int
	}
	var pairs []pairCandidate
	for i := 0; i < len(users); i++ {
		for j := i + 1; j < len(users); j++ {
			if existing[NewPairKey(users[i].UserID, users[j].UserID)] {
				continue
			}
			pairs = append(pairs, pairCandidate{
				i:     i,
				j:     j,
				score: m.scorePair(&users[i], &users[j], weights),
			})
		}
	}

	sort.SliceStable(pairs, func(a, b int) bool {
		return pairs[a].score > pairs[b].score
	})

	assigned := make(map[uint]bool)
	created := 0

	// 阶段一：按分数降序贪心提交达到门槛的配对
	for _, p := range pairs {
		if p.score < qualityThreshold {
			break
		}
		a, b := users[p.i], users[p.j]
		if assigned[a.UserID] || assigned[b.UserID] {
			continue
		}
		if err := m.commit(ctx, a, b, p.score, monthYear); err != nil {
			return created, err
		}
		assigned[a.UserID] = true
		assigned[b.UserID] = true
		created++
	}

	// 阶段二：剩余用户随机洗牌后按相邻两人配对
	var leftovers []Candidate
	for _, u := range users {
		if !assigned[u.UserID] {
			leftovers = append(leftovers, u)
		}
	}
	m.rng.Shuffle(len(leftovers), func(i, j int) {
		leftovers[i], leftovers[j] = leftovers[j], leftovers[i]
	})

	for i := 0; i+1 < len(leftovers); i += 2 {
		a, b := leftovers[i], leftovers[i+1]
		if assigned[a.UserID] || assigned[b.UserID] {
			continue
		}
		if existing[NewPairKey(a.UserID, b.UserID)] {
			continue
		}
		score := fallbackScoreMin + m.rng.Intn(fallbackScoreSpread)
		if err := m.commit(ctx, a, b, score, monthYear); err != nil {
			return created, err
		}
		assigned[a.UserID] = true
		assigned[b.UserID] = true
		created++
	}

	// 残余用户本周期无匹配，发送无匹配通知
	for _, u := range leftovers {
		if !assigned[u.UserID] {
			m.notifier.NoMatch(u)
			m.logger.Info("user left unmatched this period",
				zap.Uint("userID", u.UserID),
				zap.String("monthYear", monthYear))
		}
	}

	m.logger.Info("matching run finished",
		zap.String("monthYear", monthYear),
		zap.Int("activeUsers", len(users)),
		zap.Int("matchesCreated", created))

	return created, nil
}

// commit 提交一个配对：创建匹配、自动排期会议、发送通知
func (m *Matcher) commit(ctx context.Context, a, b Candidate, score int, monthYear string) error {
	matchID, err := m.store.CreateMatch(ctx, a.UserID, b.UserID, score, monthYear)
	if err != nil {
		return err
	}

	draft := MeetingDraft{
		MatchID:     matchID,
		ScheduledAt: defaultMeetingTime(m.now()),
		Duration:    defaultMeetingDuration,
		MeetingType: models.MeetingVideo,
		MeetingLink: m.meetingLink,
	}
	if err := m.store.CreateMeeting(ctx, draft); err != nil {
		// 会议排期失败不回滚匹配
		m.logger.Warn("failed to auto-schedule meeting",
			zap.Uint("matchID", matchID),
			zap.Error(err))
	}

	m.notifier.MatchCreated(a, b, score)
	return nil
}

// scorePair 计算配对分数，命中缓存则直接返回
func (m *Matcher) scorePair(a, b *Candidate, weights models.WeightConfig) int {
	if m.cache != nil {
		if score, ok := m.cache.Get(a.UserID, b.UserID, weights); ok {
			return score
		}
	}
	score := Score(a, b, weights)
	if m.cache != nil {
		m.cache.Set(a.UserID, b.UserID, weights, score)
	}
	return score
}

// defaultMeetingTime 默认会期：7天后的当天14:00（服务器本地时区）
func defaultMeetingTime(now time.Time) time.Time {
	d := now.AddDate(0, 0, 7)
	return time.Date(d.Year(), d.Month(), d.Day(), defaultMeetingHour, 0, 0, 0, d.Location())
}
