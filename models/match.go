package models

import (
	"time"

	"gorm.io/gorm"
)

// 匹配状态
type MatchStatus string

const (
	MatchPending          MatchStatus = "pending"
	MatchAccepted         MatchStatus = "accepted"
	MatchDeclined         MatchStatus = "declined"
	MatchMeetingScheduled MatchStatus = "meeting_scheduled"
)

// 会议状态
type MeetingStatus string

const (
	MeetingScheduled MeetingStatus = "scheduled"
	MeetingCompleted MeetingStatus = "completed"
	MeetingCancelled MeetingStatus = "cancelled"
	MeetingNoShow    MeetingStatus = "no_show"
)

// 会议类型
type MeetingType string

const (
	MeetingVideo  MeetingType = "video"
	MeetingCoffee MeetingType = "coffee"
)

// Match 月度匹配记录
type Match struct {
	gorm.Model
	User1ID    uint        `gorm:"not null;index" json:"user1Id"`
	User2ID    uint        `gorm:"not null;index" json:"user2Id"`
	MatchScore int         `gorm:"not null" json:"matchScore"`
	MonthYear  string      `gorm:"size:7;not null;index" json:"monthYear"` // "2025-01"
	Status     MatchStatus `gorm:"size:20;not null;default:'pending'" json:"status"`

	Meeting *Meeting `gorm:"foreignKey:MatchID" json:"meeting,omitempty"`
}

// Meeting 一对一会议，隶属于一条匹配记录
type Meeting struct {
	gorm.Model
	MatchID     uint          `gorm:"not null;index" json:"matchId"`
	ScheduledAt time.Time     `gorm:"not null" json:"scheduledAt"`
	Duration    int           `gorm:"default:30" json:"duration"` // 分钟
	MeetingType MeetingType   `gorm:"size:20;not null;default:'video'" json:"meetingType"`
	MeetingLink string        `gorm:"size:255" json:"meetingLink"`
	Location    string        `gorm:"size:255" json:"location"`
	Status      MeetingStatus `gorm:"size:20;not null;default:'scheduled'" json:"status"`
}

// WeightConfig 四个兼容性因子的打分权重
type WeightConfig struct {
	Industry        float64 `json:"industry"`
	Company         float64 `json:"company"`
	NetworkingGoals float64 `json:"networkingGoals"`
	JobTitle        float64 `json:"jobTitle"`
}

// DefaultWeights 默认打分权重
func DefaultWeights() WeightConfig {
	return WeightConfig{
		Industry:        35,
		Company:         20,
		NetworkingGoals: 30,
		JobTitle:        15,
	}
}

// FillDefaults 将未提供（零值）的权重替换为默认值
func (w WeightConfig) FillDefaults() WeightConfig {
	defaults := DefaultWeights()
	if w.Industry == 0 {
		w.Industry = defaults.Industry
	}
	if w.Company == 0 {
		w.Company = defaults.Company
	}
	if w.NetworkingGoals == 0 {
		w.NetworkingGoals = defaults.NetworkingGoals
	}
	if w.JobTitle == 0 {
		w.JobTitle = defaults.JobTitle
	}
	return w
}

// MonthYear 返回某时间所属的匹配周期键
func MonthYear(t time.Time) string {
	return t.Format("2006-01")
}
