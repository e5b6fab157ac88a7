package handlers

import (
	"net/http"

	"github.com/connectsphere/backend/database"
	"github.com/connectsphere/backend/models"

	"github.com/gin-gonic/gin"
)

// ListMatches 获取当前用户的匹配列表，可按周期过滤
func ListMatches(c *gin.Context) {
	userID, _ := c.Get("userID")

	query := database.DB.Preload("Meeting").
		Where("user1_id = ? OR user2_id = ?", userID, userID).
		Order("created_at DESC")

	if monthYear := c.Query("monthYear"); monthYear != "" {
		query = query.Where("month_year = ?", monthYear)
	}

	var matches []models.Match
	if err := query.Find(&matches).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	// 附带对方的用户信息和档案
	results := make([]gin.H, 0, len(matches))
	for _, match := range matches {
		partnerID := match.User1ID
		if partnerID == userID.(uint) {
			partnerID = match.User2ID
		}

		var partner models.User
		if err := database.DB.Preload("Profile").First(&partner, partnerID).Error; err != nil {
			continue
		}

		item := gin.H{
			"match":   match,
			"partner": partner.ToResponse(),
		}
		if partner.Profile != nil {
			item["partnerProfile"] = partner.Profile
		}
		results = append(results, item)
	}

	c.JSON(http.StatusOK, gin.H{"matches": results})
}

// AcceptMatch 接受匹配
func AcceptMatch(c *gin.Context) {
	updateMatchStatus(c, models.MatchAccepted)
}

// DeclineMatch 拒绝匹配
func DeclineMatch(c *gin.Context) {
	updateMatchStatus(c, models.MatchDeclined)
}

// updateMatchStatus 状态只能从pending流转
func updateMatchStatus(c *gin.Context, status models.MatchStatus) {
	userID, _ := c.Get("userID")

	var match models.Match
	if err := database.DB.First(&match, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Match not found"})
		return
	}

	if match.User1ID != userID.(uint) && match.User2ID != userID.(uint) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not a participant of this match"})
		return
	}

	if match.Status != models.MatchPending {
		c.JSON(http.StatusConflict, gin.H{"error": "Match is no longer pending"})
		return
	}

	match.Status = status
	if err := database.DB.Save(&match).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update match"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"match": match})
}
