package matching

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/connectsphere/backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type createdMatch struct {
	user1     uint
	user2     uint
	score     int
	monthYear string
}

type fakeStore struct {
	users      []Candidate
	existing   map[PairKey]bool
	matches    []createdMatch
	meetings   []MeetingDraft
	nextID     uint
	usersErr   error
	meetingErr error
}

func (s *fakeStore) ActiveUsers(ctx context.Context) ([]Candidate, error) {
	return s.users, s.usersErr
}

func (s *fakeStore) ExistingPairs(ctx context.Context, monthYear string) (map[PairKey]bool, error) {
	if s.existing == nil {
		return map[PairKey]bool{}, nil
	}
	return s.existing, nil
}

func (s *fakeStore) CreateMatch(ctx context.Context, user1, user2 uint, score int, monthYear string) (uint, error) {
	s.nextID++
	s.matches = append(s.matches, createdMatch{user1: user1, user2: user2, score: score, monthYear: monthYear})
	return s.nextID, nil
}

func (s *fakeStore) CreateMeeting(ctx context.Context, draft MeetingDraft) error {
	if s.meetingErr != nil {
		return s.meetingErr
	}
	s.meetings = append(s.meetings, draft)
	return nil
}

type fakeNotifier struct {
	matched []createdMatch
	noMatch []uint
}

func (n *fakeNotifier) MatchCreated(a, b Candidate, score int) {
	n.matched = append(n.matched, createdMatch{user1: a.UserID, user2: b.UserID, score: score})
}

func (n *fakeNotifier) NoMatch(c Candidate) {
	n.noMatch = append(n.noMatch, c.UserID)
}

const testMeetingLink = "https://meet.jit.si/networking-match"

func newTestMatcher(store *fakeStore, notifier *fakeNotifier) *Matcher {
	m := NewMatcher(store, notifier, testMeetingLink, nil)
	m.SetRand(rand.New(rand.NewSource(42)))
	m.SetClock(func() time.Time {
		return time.Date(2025, 1, 15, 14, 0, 0, 0, time.UTC)
	})
	return m
}

// richUser 档案完整的用户，两两之间分数达到阶段一门槛
func richUser(id uint) Candidate {
	return Candidate{
		UserID:   id,
		Username: fmt.Sprintf("user%d", id),
		Email:    fmt.Sprintf("user%d@example.com", id),
		Industry: "Technology",
		Company:  "Acme Inc",
		JobTitle: "Senior Engineer",
		Goals:    []string{"mentorship"},
	}
}

// sparseUser 空档案用户，两两之间只有保底分40
func sparseUser(id uint) Candidate {
	return Candidate{
		UserID:   id,
		Username: fmt.Sprintf("user%d", id),
		Email:    fmt.Sprintf("user%d@example.com", id),
	}
}

func TestRunDegreeInvariantAndNoDuplicatePairs(t *testing.T) {
	store := &fakeStore{}
	for i := uint(1); i <= 6; i++ {
		store.users = append(store.users, richUser(i))
	}
	notifier := &fakeNotifier{}
	matcher := newTestMatcher(store, notifier)

	created, err := matcher.Run(context.Background(), "2025-01", models.DefaultWeights())
	require.NoError(t, err)
	assert.Equal(t, 3, created)

	// 每个用户最多出现在一条匹配中
	seen := make(map[uint]int)
	pairs := make(map[PairKey]int)
	for _, m := range store.matches {
		seen[m.user1]++
		seen[m.user2]++
		pairs[NewPairKey(m.user1, m.user2)]++
		assert.Equal(t, "2025-01", m.monthYear)
	}
	for userID, count := range seen {
		assert.Equal(t, 1, count, "user %d matched more than once", userID)
	}
	for pair, count := range pairs {
		assert.Equal(t, 1, count, "pair %v committed more than once", pair)
	}

	// 无剩余用户，不应有无匹配通知
	assert.Empty(t, notifier.noMatch)
}

func TestRunOddCountFallback(t *testing.T) {
	// 5个空档案用户：没有达到门槛的配对，全部走阶段二
	store := &fakeStore{}
	for i := uint(1); i <= 5; i++ {
		store.users = append(store.users, sparseUser(i))
	}
	notifier := &fakeNotifier{}
	matcher := newTestMatcher(store, notifier)

	created, err := matcher.Run(context.Background(), "2025-01", models.DefaultWeights())
	require.NoError(t, err)

	assert.Equal(t, 2, created)
	assert.Len(t, store.matches, 2)
	assert.Len(t, notifier.noMatch, 1)

	// 阶段二的合成分数落在 [35, 60)
	for _, m := range store.matches {
		assert.GreaterOrEqual(t, m.score, 35)
		assert.Less(t, m.score, 60)
	}
}

func TestRunPhaseThresholds(t *testing.T) {
	// 两个完整档案配成高分对，三个空档案走随机兜底
	store := &fakeStore{
		users: []Candidate{
			richUser(1), richUser(2),
			sparseUser(3), sparseUser(4), sparseUser(5),
		},
	}
	notifier := &fakeNotifier{}
	matcher := newTestMatcher(store, notifier)

	created, err := matcher.Run(context.Background(), "2025-01", models.DefaultWeights())
	require.NoError(t, err)
	assert.Equal(t, 2, created)

	for _, m := range store.matches {
		if m.user1 == 1 || m.user1 == 2 {
			assert.GreaterOrEqual(t, m.score, 60)
		} else {
			assert.GreaterOrEqual(t, m.score, 35)
			assert.Less(t, m.score, 60)
		}
	}
	assert.Len(t, notifier.noMatch, 1)
}

func TestRunMeetingDefaults(t *testing.T) {
	store := &fakeStore{users: []Candidate{richUser(1), richUser(2)}}
	notifier := &fakeNotifier{}
	matcher := newTestMatcher(store, notifier)

	_, err := matcher.Run(context.Background(), "2025-01", models.DefaultWeights())
	require.NoError(t, err)
	require.Len(t, store.meetings, 1)

	meeting := store.meetings[0]
	assert.Equal(t, 30, meeting.Duration)
	assert.Equal(t, models.MeetingVideo, meeting.MeetingType)
	assert.Equal(t, testMeetingLink, meeting.MeetingLink)

	// 注入时钟为14:00，排期应正好是7天后的14:00
	expected := time.Date(2025, 1, 22, 14, 0, 0, 0, time.UTC)
	assert.Equal(t, expected, meeting.ScheduledAt)
}

func TestRunInsufficientUsers(t *testing.T) {
	store := &fakeStore{users: []Candidate{richUser(1)}}
	notifier := &fakeNotifier{}
	matcher := newTestMatcher(store, notifier)

	created, err := matcher.Run(context.Background(), "2025-01", models.DefaultWeights())
	require.NoError(t, err)
	assert.Equal(t, 0, created)
	assert.Empty(t, store.matches)
	assert.Empty(t, notifier.noMatch)
}

func TestRunSkipsPairsAlreadyMatchedThisPeriod(t *testing.T) {
	store := &fakeStore{
		users:    []Candidate{richUser(1), richUser(2)},
		existing: map[PairKey]bool{NewPairKey(1, 2): true},
	}
	notifier := &fakeNotifier{}
	matcher := newTestMatcher(store, notifier)

	created, err := matcher.Run(context.Background(), "2025-01", models.DefaultWeights())
	require.NoError(t, err)

	// 唯一可配的对已存在：不创建新匹配，双方收到无匹配通知
	assert.Equal(t, 0, created)
	assert.Empty(t, store.matches)
	assert.Len(t, notifier.noMatch, 2)
}

func TestRunMeetingFailureDoesNotAbortBatch(t *testing.T) {
	store := &fakeStore{
		users:      []Candidate{richUser(1), richUser(2), richUser(3), richUser(4)},
		meetingErr: errors.New("meeting store unavailable"),
	}
	notifier := &fakeNotifier{}
	matcher := newTestMatcher(store, notifier)

	created, err := matcher.Run(context.Background(), "2025-01", models.DefaultWeights())
	require.NoError(t, err)

	// 会议排期失败不影响匹配创建和通知
	assert.Equal(t, 2, created)
	assert.Len(t, store.matches, 2)
	assert.Len(t, notifier.matched, 2)
}

func TestRunStoreErrorPropagates(t *testing.T) {
	store := &fakeStore{usersErr: errors.New("db unavailable")}
	matcher := newTestMatcher(store, &fakeNotifier{})

	_, err := matcher.Run(context.Background(), "2025-01", models.DefaultWeights())
	assert.Error(t, err)
}

func TestRunNotifiesPartnersWithScore(t *testing.T) {
	store := &fakeStore{users: []Candidate{richUser(1), richUser(2)}}
	notifier := &fakeNotifier{}
	matcher := newTestMatcher(store, notifier)

	_, err := matcher.Run(context.Background(), "2025-01", models.DefaultWeights())
	require.NoError(t, err)

	require.Len(t, notifier.matched, 1)
	require.Len(t, store.matches, 1)
	assert.Equal(t, store.matches[0].score, notifier.matched[0].score)
}
