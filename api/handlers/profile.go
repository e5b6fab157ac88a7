package handlers

import (
	"net/http"

	"github.com/connectsphere/backend/database"
	"github.com/connectsphere/backend/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// GetProfile 获取当前用户档案
func GetProfile(c *gin.Context) {
	userID, _ := c.Get("userID")

	var profile models.Profile
	result := database.DB.Where("user_id = ?", userID).First(&profile)
	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			// 尚未填写过档案时返回空档案
			c.JSON(http.StatusOK, gin.H{"profile": models.Profile{UserID: userID.(uint)}})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"profile": profile})
}

// UpdateProfile 更新档案，四个匹配属性齐全时标记档案完整
func UpdateProfile(c *gin.Context) {
	userID, _ := c.Get("userID")

	var req models.ProfileUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var profile models.Profile
	result := database.DB.Where("user_id = ?", userID).First(&profile)
	if result.Error != nil && result.Error != gorm.ErrRecordNotFound {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}
	profile.UserID = userID.(uint)

	if req.JobTitle != nil {
		profile.JobTitle = *req.JobTitle
	}
	if req.Company != nil {
		profile.Company = *req.Company
	}
	if req.Industry != nil {
		profile.Industry = *req.Industry
	}
	if req.Bio != nil {
		profile.Bio = *req.Bio
	}
	if req.NetworkingGoals != nil {
		profile.NetworkingGoals = req.NetworkingGoals
	}
	if req.Availability != nil {
		profile.Availability = req.Availability
	}
	profile.IsComplete = profile.ComputeComplete()

	if err := database.DB.Save(&profile).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update profile"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Profile updated successfully",
		"profile": profile,
	})
}

// OptIn 加入月度匹配
func OptIn(c *gin.Context) {
	setMatchingActive(c, true)
}

// OptOut 退出月度匹配
func OptOut(c *gin.Context) {
	setMatchingActive(c, false)
}

func setMatchingActive(c *gin.Context, active bool) {
	userID, _ := c.Get("userID")

	var user models.User
	if err := database.DB.First(&user, userID).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to find user"})
		return
	}

	user.IsActive = active
	if err := database.DB.Save(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update matching status"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Matching status updated",
		"user":    user.ToResponse(),
	})
}
