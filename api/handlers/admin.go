package handlers

import (
	"net/http"
	"time"

	"github.com/connectsphere/backend/database"
	"github.com/connectsphere/backend/models"
	"github.com/connectsphere/backend/pkg/matching"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// 匹配相关的依赖，启动时注入
var (
	monthlyMatcher *matching.Matcher
	scoreCache     *matching.ScoreCache
	matchingLogger *zap.Logger
)

// InitMatching 注入匹配器依赖
func InitMatching(m *matching.Matcher, cache *matching.ScoreCache, logger *zap.Logger) {
	monthlyMatcher = m
	scoreCache = cache
	matchingLogger = logger
}

// TriggerMatchingRequest 手动触发请求，可携带本轮权重
type TriggerMatchingRequest struct {
	Weights models.WeightConfig `json:"weights"`
}

// TriggerMatching 同步执行一轮月度匹配并返回创建数。
// 单个通知失败不影响结果；存储层错误返回500。
func TriggerMatching(c *gin.Context) {
	var req TriggerMatchingRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	// 未提供的权重按默认值补齐
	weights := req.Weights.FillDefaults()
	monthYear := models.MonthYear(time.Now())

	created, err := monthlyMatcher.Run(c.Request.Context(), monthYear, weights)
	if err != nil {
		matchingLogger.Error("matching run failed",
			zap.String("monthYear", monthYear),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Matching run failed"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"matchesCreated": created,
		"monthYear":      monthYear,
	})
}

// ScoreCacheStats 查看分数缓存统计
func ScoreCacheStats(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"stats": scoreCache.Stats()})
}

// ListUsers 管理员查看用户列表
func ListUsers(c *gin.Context) {
	var users []models.User
	if err := database.DB.Preload("Profile").Order("id ASC").Find(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Database error"})
		return
	}

	results := make([]gin.H, 0, len(users))
	for _, u := range users {
		item := gin.H{"user": u.ToResponse()}
		if u.Profile != nil {
			item["profile"] = u.Profile
		}
		results = append(results, item)
	}

	c.JSON(http.StatusOK, gin.H{"users": results})
}
