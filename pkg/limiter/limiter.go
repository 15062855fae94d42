package limiter

import (
	"context"
	"errors"
)

// ErrLimitReached 等待槽位超时
var ErrLimitReached = errors.New("concurrency limit reached")

// Limiter 并发槽位限制器
type Limiter interface {
	Acquire(ctx context.Context, key string) error
	Release(ctx context.Context, key string)
}

// Usage 槽位占用情况，Max 为 0 表示不限制
type Usage struct {
	InUse int `json:"in_use"`
	Max   int `json:"max"`
}

// Reporter 能报告槽位占用的限制器
type Reporter interface {
	Usage(ctx context.Context, key string) (Usage, error)
}

// LocalLimiter 进程内并发限制器
type LocalLimiter struct {
	maxConcurrent int
	semaphore     chan struct{}
}

// NewLocalLimiter 创建进程内并发限制器，maxConcurrent <= 0 时返回不限制的实现
func NewLocalLimiter(maxConcurrent int) Limiter {
	if maxConcurrent <= 0 {
		return Unlimited{}
	}
	return &LocalLimiter{
		maxConcurrent: maxConcurrent,
		semaphore:     make(chan struct{}, maxConcurrent),
	}
}

// Acquire 获取并发槽位，阻塞直到有空位或 ctx 结束
func (l *LocalLimiter) Acquire(ctx context.Context, key string) error {
	select {
	case l.semaphore <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Release 释放并发槽位
func (l *LocalLimiter) Release(ctx context.Context, key string) {
	select {
	case <-l.semaphore:
	default:
	}
}

// InUse 当前占用的槽位数
func (l *LocalLimiter) InUse() int {
	return len(l.semaphore)
}

// GetMaxConcurrent 获取最大并发数
func (l *LocalLimiter) GetMaxConcurrent() int {
	return l.maxConcurrent
}

// Usage 当前占用情况
func (l *LocalLimiter) Usage(ctx context.Context, key string) (Usage, error) {
	return Usage{InUse: l.InUse(), Max: l.GetMaxConcurrent()}, nil
}

// Unlimited 不做任何限制
type Unlimited struct{}

// Acquire 立即返回
func (Unlimited) Acquire(ctx context.Context, key string) error {
	return ctx.Err()
}

// Release 无操作
func (Unlimited) Release(ctx context.Context, key string) {}

// Usage 始终为空
func (Unlimited) Usage(ctx context.Context, key string) (Usage, error) {
	return Usage{}, nil
}
