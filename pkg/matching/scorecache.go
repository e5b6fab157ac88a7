package matching

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sync"
	"time"

	"github.com/connectsphere/backend/models"
)

// CacheStats 缓存统计信息
type CacheStats struct {
	Size      int     `json:"size"`
	Hits      int     `json:"hits"`
	Misses    int     `json:"misses"`
	HitRate   float64 `json:"hitRate"`
	Evictions int     `json:"evictions"`
}

// cacheEntry 缓存条目
type cacheEntry struct {
	score      int
	expiry     time.Time
	lastAccess time.Time
}

// ScoreCache 配对分数缓存：TTL加LRU淘汰。
// 同一轮的O(n²)打分与管理端重复触发之间复用结果；
// 档案编辑后的短暂陈旧读取可以接受，条目到期自动失效。
type ScoreCache struct {
	data       map[string]cacheEntry
	maxEntries int
	ttl        time.Duration
	mu         sync.Mutex

	evictionCallback func(key string, score int)

	// 统计信息
	hits      int
	misses    int
	evictions int
}

// NewScoreCache 创建分数缓存
func NewScoreCache(maxEntries int, ttl time.Duration) *ScoreCache {
	return &ScoreCache{
		data:       make(map[string]cacheEntry),
		maxEntries: maxEntries,
		ttl:        ttl,
	}
}

// SetEvictionCallback 设置条目淘汰回调
func (c *ScoreCache) SetEvictionCallback(callback func(key string, score int)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.evictionCallback = callback
}

// cacheKey 生成缓存键：规范化的用户对加权重指纹
func cacheKey(user1, user2 uint, weights models.WeightConfig) string {
	pair := NewPairKey(user1, user2)

	hasher := sha256.New()
	fmt.Fprintf(hasher, "%g:%g:%g:%g",
		weights.Industry, weights.Company, weights.NetworkingGoals, weights.JobTitle)

	return fmt.Sprintf("%d:%d:%s", pair.Low, pair.High, hex.EncodeToString(hasher.Sum(nil)[:8]))
}

// Get 获取缓存分数
func (c *ScoreCache) Get(user1, user2 uint, weights models.WeightConfig) (int, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	key := cacheKey(user1, user2, weights)
	entry, ok := c.data[key]
	if !ok {
		c.misses++
		return 0, false
	}

	if time.Now().After(entry.expiry) {
		delete(c.data, key)
		c.misses++
		return 0, false
	}

	entry.lastAccess = time.Now()
	c.data[key] = entry
	c.hits++
	return entry.score, true
}

// Set 写入缓存分数
func (c *ScoreCache) Set(user1, user2 uint, weights models.WeightConfig, score int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.data) >= c.maxEntries {
		c.evictOldest()
	}

	c.data[cacheKey(user1, user2, weights)] = cacheEntry{
		score:      score,
		expiry:     time.Now().Add(c.ttl),
		lastAccess: time.Now(),
	}
}

// evictOldest 淘汰最久未访问的条目，调用方需持有锁
func (c *ScoreCache) evictOldest() {
	var oldestKey string
	var oldestTime time.Time
	first := true

	for key, entry := range c.data {
		if first || entry.lastAccess.Before(oldestTime) {
			oldestKey = key
			oldestTime = entry.lastAccess
			first = false
		}
	}

	if oldestKey != "" {
		if c.evictionCallback != nil {
			c.evictionCallback(oldestKey, c.data[oldestKey].score)
		}
		delete(c.data, oldestKey)
		c.evictions++
	}
}

// Clear 清空缓存与统计
func (c *ScoreCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.data = make(map[string]cacheEntry)
	c.hits = 0
	c.misses = 0
	c.evictions = 0
}

// Stats 获取缓存统计信息
func (c *ScoreCache) Stats() CacheStats {
	c.mu.Lock()
	defer c.mu.Unlock()

	stats := CacheStats{
		Size:      len(c.data),
		Hits:      c.hits,
		Misses:    c.misses,
		Evictions: c.evictions,
	}

	total := c.hits + c.misses
	if total > 0 {
		stats.HitRate = float64(c.hits) / float64(total)
	}

	return stats
}
