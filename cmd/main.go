package main

import (
	"context"
	"log"
	"time"

	"github.com/connectsphere/backend/api"
	"github.com/connectsphere/backend/api/handlers"
	"github.com/connectsphere/backend/configs"
	"github.com/connectsphere/backend/database"
	"github.com/connectsphere/backend/pkg/mailer"
	"github.com/connectsphere/backend/pkg/matching"
	"github.com/connectsphere/backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/connectsphere/backend/models"
)

func main() {
	// 加载配置
	cfg, err := configs.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer logger.Sync()

	// 初始化JWT
	utils.InitJWT(cfg)

	// 初始化数据库连接
	if err := database.Initialize(cfg); err != nil {
		logger.Fatal("failed to initialize database", zap.Error(err))
	}
	defer database.Close()

	// 组装匹配器：存储、通知、分数缓存
	store := database.NewMatchStore(database.DB)

	var notifier matching.Notifier
	if cfg.SMTP.Host != "" {
		notifier = mailer.New(cfg.SMTP, logger)
	} else {
		logger.Warn("smtp not configured, notifications will only be logged")
		notifier = &mailer.LogNotifier{Logger: logger}
	}

	cache := matching.NewScoreCache(
		cfg.Matching.CacheMaxEntries,
		time.Duration(cfg.Matching.CacheTTLMinutes)*time.Minute,
	)

	matcher := matching.NewMatcher(store, notifier, cfg.Matching.MeetingLink, logger)
	matcher.SetScoreCache(cache)

	handlers.InitMatching(matcher, cache, logger)

	// 每月定时触发匹配
	defaultWeights := models.WeightConfig{
		Industry:        cfg.Matching.Weights.Industry,
		Company:         cfg.Matching.Weights.Company,
		NetworkingGoals: cfg.Matching.Weights.NetworkingGoals,
		JobTitle:        cfg.Matching.Weights.JobTitle,
	}.FillDefaults()

	scheduler := cron.New()
	_, err = scheduler.AddFunc(cfg.Matching.CronSpec, func() {
		monthYear := models.MonthYear(time.Now())
		created, err := matcher.Run(context.Background(), monthYear, defaultWeights)
		if err != nil {
			logger.Error("scheduled matching run failed",
				zap.String("monthYear", monthYear),
				zap.Error(err))
			return
		}
		logger.Info("scheduled matching run finished",
			zap.String("monthYear", monthYear),
			zap.Int("matchesCreated", created))
	})
	if err != nil {
		logger.Fatal("invalid matching cron spec",
			zap.String("cronSpec", cfg.Matching.CronSpec),
			zap.Error(err))
	}
	scheduler.Start()
	defer scheduler.Stop()

	// 创建Gin实例
	router := gin.Default()

	// 设置路由
	api.SetupRouter(router, cfg)

	// 启动服务器
	logger.Info("server starting", zap.String("port", cfg.Server.Port))
	if err := router.Run(":" + cfg.Server.Port); err != nil {
		logger.Fatal("failed to start server", zap.Error(err))
	}
}
