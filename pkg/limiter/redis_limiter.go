package limiter

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
)

// acquireScript 未满时 INCR 并刷新过期时间，返回新计数；已满返回 max+1
var acquireScript = redis.NewScript(`
local current = tonumber(redis.call('GET', KEYS[1]) or '0')
if current >= tonumber(ARGV[1]) then
	return current + 1
end
local newCount = redis.call('INCR', KEYS[1])
redis.call('EXPIRE', KEYS[1], tonumber(ARGV[2]))
return newCount`)

// releaseScript 计数归零时删除 key
var releaseScript = redis.NewScript(`
local count = redis.call('DECR', KEYS[1])
if tonumber(count) <= 0 then
	redis.call('DEL', KEYS[1])
	return 0
end
redis.call('EXPIRE', KEYS[1], tonumber(ARGV[1]))
return count`)

// DefaultPollInterval 槽位已满时的重试间隔
const DefaultPollInterval = 200 * time.Millisecond

// RedisLimiter 基于Redis的跨实例并发限制器
type RedisLimiter struct {
	client        *redis.Client
	maxConcurrent int
	keyPrefix     string
	ttl           time.Duration
	maxWait       time.Duration
	pollInterval  time.Duration
	logger        *logrus.Logger
}

// NewRedisLimiter 创建基于Redis的并发限制器；maxWait 为 0 时只尝试一次
func NewRedisLimiter(client *redis.Client, maxConcurrent int, keyPrefix string, ttl, maxWait time.Duration, logger *logrus.Logger) *RedisLimiter {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &RedisLimiter{
		client:        client,
		maxConcurrent: maxConcurrent,
		keyPrefix:     keyPrefix,
		ttl:           ttl,
		maxWait:       maxWait,
		pollInterval:  DefaultPollInterval,
		logger:        logger,
	}
}

// tryAcquire 尝试获取一次，返回是否成功
func (rl *RedisLimiter) tryAcquire(ctx context.Context, redisKey string) (bool, int, error) {
	result, err := acquireScript.Run(ctx, rl.client, []string{redisKey}, rl.maxConcurrent, int(rl.ttl.Seconds())).Int()
	if err != nil {
		return false, 0, fmt.Errorf("执行Lua脚本失败: %w", err)
	}
	return result <= rl.maxConcurrent, result, nil
}

// Acquire 获取并发槽位，槽位已满时轮询直到 maxWait 或 ctx 结束
func (rl *RedisLimiter) Acquire(ctx context.Context, key string) error {
	redisKey := rl.keyPrefix + key
	deadline := time.Now().Add(rl.maxWait)

	for {
		ok, count, err := rl.tryAcquire(ctx, redisKey)
		if err != nil {
			return err
		}
		if ok {
			rl.logger.WithFields(logrus.Fields{
				"key":   key,
				"slots": count,
				"max":   rl.maxConcurrent,
			}).Debug("获取渲染槽位")
			return nil
		}

		if !time.Now().Before(deadline) {
			rl.logger.WithFields(logrus.Fields{
				"key": key,
				"max": rl.maxConcurrent,
			}).Warn("渲染槽位已满")
			return fmt.Errorf("%w: %d", ErrLimitReached, rl.maxConcurrent)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(rl.pollInterval):
		}
	}
}

// Release 释放并发槽位
func (rl *RedisLimiter) Release(ctx context.Context, key string) {
	redisKey := rl.keyPrefix + key

	count, err := releaseScript.Run(ctx, rl.client, []string{redisKey}, int(rl.ttl.Seconds())).Int()
	if err != nil {
		rl.logger.WithError(err).WithField("key", key).Error("释放渲染槽位失败")
		return
	}

	rl.logger.WithFields(logrus.Fields{
		"key":       key,
		"remaining": count,
	}).Debug("释放渲染槽位")
}

// GetCurrent 获取当前并发数
func (rl *RedisLimiter) GetCurrent(ctx context.Context, key string) (int, error) {
	current, err := rl.client.Get(ctx, rl.keyPrefix+key).Int()
	if err == redis.Nil {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("获取当前并发数失败: %w", err)
	}
	return current, nil
}

// GetMaxConcurrent 获取最大并发数
func (rl *RedisLimiter) GetMaxConcurrent() int {
	return rl.maxConcurrent
}

// Usage 当前占用情况，计数来自所有实例
func (rl *RedisLimiter) Usage(ctx context.Context, key string) (Usage, error) {
	current, err := rl.GetCurrent(ctx, key)
	if err != nil {
		return Usage{}, err
	}
	return Usage{InUse: current, Max: rl.GetMaxConcurrent()}, nil
}
