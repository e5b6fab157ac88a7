package handlers

import (
	"net/http"
	"time"

	"github.com/connectsphere/backend/database"
	"github.com/connectsphere/backend/models"

	"github.com/gin-gonic/gin"
)

// CreateMeetingRequest 创建会议请求，字段直接映射到会议记录
type CreateMeetingRequest struct {
	MatchID     uint               `json:"matchId" binding:"required"`
	ScheduledAt time.Time          `json:"scheduledAt" binding:"required"`
	Duration    int                `json:"duration"`
	MeetingType models.MeetingType `json:"meetingType"`
	MeetingLink string             `json:"meetingLink"`
	Location    string             `json:"location"`
}

// CreateMeeting 为某个匹配手动创建会议
func CreateMeeting(c *gin.Context) {
	userID, _ := c.Get("userID")

	var req CreateMeetingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	match, ok := loadParticipantMatch(c, req.MatchID, userID.(uint))
	if !ok {
		return
	}

	if req.Duration == 0 {
		req.Duration = 30
	}
	if req.MeetingType == "" {
		req.MeetingType = models.MeetingVideo
	}

	meeting := models.Meeting{
		MatchID:     match.ID,
		ScheduledAt: req.ScheduledAt,
		Duration:    req.Duration,
		MeetingType: req.MeetingType,
		MeetingLink: req.MeetingLink,
		Location:    req.Location,
		Status:      models.MeetingScheduled,
	}

	if err := database.DB.Create(&meeting).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create meeting"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"meeting": meeting})
}

// ListMeetings 获取当前用户所有匹配下的会议
func ListMeetings(c *gin.Context) {
	userID, _ := c.Get("userID")

	var meetings []models.Meeting
	err := database.DB.
		Joins("JOIN matches ON matches.id = meetings.match_id").
		Where("matches.user1_id = ? OR matches.user2_id = ?", userID, userID).
		Order("meetings.scheduled_at ASC").
		Find(&meetings).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"meetings": meetings})
}

// RescheduleMeetingRequest 改期请求，空字段保持原值
type RescheduleMeetingRequest struct {
	ScheduledAt *time.Time          `json:"scheduledAt"`
	Duration    *int                `json:"duration"`
	MeetingType *models.MeetingType `json:"meetingType"`
	MeetingLink *string             `json:"meetingLink"`
	Location    *string             `json:"location"`
}

// RescheduleMeeting 修改会议安排
func RescheduleMeeting(c *gin.Context) {
	userID, _ := c.Get("userID")

	meeting, ok := loadParticipantMeeting(c, userID.(uint))
	if !ok {
		return
	}

	var req RescheduleMeetingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.ScheduledAt != nil {
		meeting.ScheduledAt = *req.ScheduledAt
	}
	if req.Duration != nil {
		meeting.Duration = *req.Duration
	}
	if req.MeetingType != nil {
		meeting.MeetingType = *req.MeetingType
	}
	if req.MeetingLink != nil {
		meeting.MeetingLink = *req.MeetingLink
	}
	if req.Location != nil {
		meeting.Location = *req.Location
	}

	if err := database.DB.Save(&meeting).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update meeting"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"meeting": meeting})
}

// CancelMeeting 取消会议
func CancelMeeting(c *gin.Context) {
	userID, _ := c.Get("userID")

	meeting, ok := loadParticipantMeeting(c, userID.(uint))
	if !ok {
		return
	}

	meeting.Status = models.MeetingCancelled
	if err := database.DB.Save(&meeting).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to cancel meeting"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"meeting": meeting})
}

// loadParticipantMatch 加载匹配并校验当前用户是参与者
func loadParticipantMatch(c *gin.Context, matchID, userID uint) (models.Match, bool) {
	var match models.Match
	if err := database.DB.First(&match, matchID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Match not found"})
		return match, false
	}

	if match.User1ID != userID && match.User2ID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not a participant of this match"})
		return match, false
	}

	return match, true
}

// loadParticipantMeeting 通过URL参数加载会议并校验归属
func loadParticipantMeeting(c *gin.Context, userID uint) (models.Meeting, bool) {
	var meeting models.Meeting
	if err := database.DB.First(&meeting, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Meeting not found"})
		return meeting, false
	}

	if _, ok := loadParticipantMatch(c, meeting.MatchID, userID); !ok {
		return meeting, false
	}

	return meeting, true
}
