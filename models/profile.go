package models

import (
	"time"
)

// TimeSlot 每周可用时间段
type TimeSlot struct {
	Day   int    `json:"day"` // 0=周日 ... 6=周六
	Start string `json:"start"`
	End   string `json:"end"`
}

// Profile 职业档案模型
type Profile struct {
	ID     uint `json:"id" gorm:"primaryKey"`
	UserID uint `json:"user_id" gorm:"uniqueIndex"`

	// 匹配用的职业属性
	JobTitle string `json:"job_title" gorm:"size:100"`
	Company  string `json:"company" gorm:"size:100"`
	Industry string `json:"industry" gorm:"size:100"`
	Bio      string `json:"bio" gorm:"type:text"`

	// 人脉目标与每周可用时间
	NetworkingGoals []string   `json:"networking_goals" gorm:"serializer:json"`
	Availability    []TimeSlot `json:"availability" gorm:"serializer:json"`

	// 四个匹配属性齐全时为true
	IsComplete bool `json:"is_complete"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ComputeComplete 判断档案是否完整
func (p *Profile) ComputeComplete() bool {
	return p.JobTitle != "" && p.Company != "" && p.Industry != "" && len(p.NetworkingGoals) > 0
}

// ProfileUpdateRequest 档案更新请求
type ProfileUpdateRequest struct {
	JobTitle        *string    `json:"jobTitle"`
	Company         *string    `json:"company"`
	Industry        *string    `json:"industry"`
	Bio             *string    `json:"bio"`
	NetworkingGoals []string   `json:"networkingGoals"`
	Availability    []TimeSlot `json:"availability"`
}
