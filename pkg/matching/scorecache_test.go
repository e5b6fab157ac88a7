package matching

import (
	"testing"
	"time"

	"github.com/connectsphere/backend/models"

	"github.com/stretchr/testify/assert"
)

func TestScoreCacheSetGet(t *testing.T) {
	cache := NewScoreCache(10, time.Hour)
	weights := models.DefaultWeights()

	cache.Set(1, 2, weights, 85)

	score, ok := cache.Get(1, 2, weights)
	assert.True(t, ok)
	assert.Equal(t, 85, score)

	// 用户对无序：反向查询也命中
	score, ok = cache.Get(2, 1, weights)
	assert.True(t, ok)
	assert.Equal(t, 85, score)

	_, ok = cache.Get(1, 3, weights)
	assert.False(t, ok)
}

func TestScoreCacheWeightsSensitive(t *testing.T) {
	cache := NewScoreCache(10, time.Hour)

	cache.Set(1, 2, models.DefaultWeights(), 85)

	// 不同权重是不同的缓存键
	other := models.WeightConfig{Industry: 50, Company: 20, NetworkingGoals: 20, JobTitle: 10}
	_, ok := cache.Get(1, 2, other)
	assert.False(t, ok)
}

func TestScoreCacheExpiry(t *testing.T) {
	cache := NewScoreCache(10, 50*time.Millisecond)
	weights := models.DefaultWeights()

	cache.Set(1, 2, weights, 85)

	_, ok := cache.Get(1, 2, weights)
	assert.True(t, ok)

	time.Sleep(100 * time.Millisecond)

	// 条目过期后未命中
	_, ok = cache.Get(1, 2, weights)
	assert.False(t, ok)
}

func TestScoreCacheEviction(t *testing.T) {
	cache := NewScoreCache(3, time.Hour)
	weights := models.DefaultWeights()

	var evicted []string
	cache.SetEvictionCallback(func(key string, score int) {
		evicted = append(evicted, key)
	})

	cache.Set(1, 2, weights, 80)
	cache.Set(1, 3, weights, 70)
	cache.Set(1, 4, weights, 60)
	cache.Set(1, 5, weights, 50) // 超出容量，触发淘汰

	assert.Len(t, evicted, 1)
	assert.Equal(t, 3, cache.Stats().Size)
	assert.Equal(t, 1, cache.Stats().Evictions)

	// 最新写入的条目仍在缓存中
	score, ok := cache.Get(1, 5, weights)
	assert.True(t, ok)
	assert.Equal(t, 50, score)
}

func TestScoreCacheStats(t *testing.T) {
	cache := NewScoreCache(10, time.Hour)
	weights := models.DefaultWeights()

	cache.Set(1, 2, weights, 85)

	cache.Get(1, 2, weights) // hit
	cache.Get(3, 4, weights) // miss

	stats := cache.Stats()
	assert.Equal(t, 1, stats.Hits)
	assert.Equal(t, 1, stats.Misses)
	assert.InDelta(t, 0.5, stats.HitRate, 0.001)

	cache.Clear()
	stats = cache.Stats()
	assert.Equal(t, 0, stats.Size)
	assert.Equal(t, 0, stats.Hits)
	assert.Equal(t, 0, stats.Misses)
}
