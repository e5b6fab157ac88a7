package database

import (
	"context"

	"github.com/connectsphere/backend/models"
	"github.com/connectsphere/backend/pkg/matching"

	"gorm.io/gorm"
)

// MatchStore matching.Store 的gorm实现。
// 匹配器只依赖接口，不接触存储细节。
type MatchStore struct {
	db *gorm.DB
}

// NewMatchStore 创建匹配存储
func NewMatchStore(db *gorm.DB) *MatchStore {
	return &MatchStore{db: db}
}

// ActiveUsers 返回开启匹配的用户及档案属性
func (s *MatchStore) ActiveUsers(ctx context.Context) ([]matching.Candidate, error) {
	var users []models.User
	err := s.db.WithContext(ctx).
		Preload("Profile").
		Where("is_active = ?", true).
		Find(&users).Error
	if err != nil {
		return nil, err
	}

	candidates := make([]matching.Candidate, 0, len(users))
	for _, u := range users {
		c := matching.Candidate{
			UserID:   u.ID,
			Username: u.Username,
			Email:    u.Email,
		}
		if u.Profile != nil {
			c.JobTitle = u.Profile.JobTitle
			c.Company = u.Profile.Company
			c.Industry = u.Profile.Industry
			c.Goals = u.Profile.NetworkingGoals
		}
		candidates = append(candidates, c)
	}
	return candidates, nil
}

// ExistingPairs 返回指定周期已匹配的用户对
func (s *MatchStore) ExistingPairs(ctx context.Context, monthYear string) (map[matching.PairKey]bool, error) {
	var matches []models.Match
	err := s.db.WithContext(ctx).
		Select("user1_id", "user2_id").
		Where("month_year = ?", monthYear).
		Find(&matches).Error
	if err != nil {
		return nil, err
	}

	pairs := make(map[matching.PairKey]bool, len(matches))
	for _, m := range matches {
		pairs[matching.NewPairKey(m.User1ID, m.User2ID)] = true
	}
	return pairs, nil
}

// CreateMatch 创建待确认状态的匹配记录
func (s *MatchStore) CreateMatch(ctx context.Context, user1, user2 uint, score int, monthYear string) (uint, error) {
	match := models.Match{
		User1ID:    user1,
		User2ID:    user2,
		MatchScore: score,
		MonthYear:  monthYear,
		Status:     models.MatchPending,
	}
	if err := s.db.WithContext(ctx).Create(&match).Error; err != nil {
		return 0, err
	}
	return match.ID, nil
}

// CreateMeeting 写入自动排期的会议
func (s *MatchStore) CreateMeeting(ctx context.Context, draft matching.MeetingDraft) error {
	meeting := models.Meeting{
		MatchID:     draft.MatchID,
		ScheduledAt: draft.ScheduledAt,
		Duration:    draft.Duration,
		MeetingType: draft.MeetingType,
		MeetingLink: draft.MeetingLink,
		Status:      models.MeetingScheduled,
	}
	return s.db.WithContext(ctx).Create(&meeting).Error
}
