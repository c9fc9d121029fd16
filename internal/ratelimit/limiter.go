package ratelimit

import (
	"context"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
)

const shardCount = 64

// Decision 一次准入判定的结果
type Decision struct {
	Allowed    bool
	Limit      int
	Remaining  int
	ResetAfter time.Duration // 当前窗口还剩多久
	RetryAfter time.Duration // 仅拒绝时有值
}

type window struct {
	expiresAt time.Time
	count     int
}

type shard struct {
	mu      sync.Mutex
	windows map[string]*window
}

// Limiter 进程内唯一实例，启动时创建后显式传给路由层
type Limiter struct {
	shards       [shardCount]shard
	now          func() time.Time
	cleanupEvery time.Duration
}

type Option func(*Limiter)

func WithClock(now func() time.Time) Option {
	return func(l *Limiter) { l.now = now }
}

func WithCleanupEvery(d time.Duration) Option {
	return func(l *Limiter) { l.cleanupEvery = d }
}

func New(opts ...Option) *Limiter {
	l := &Limiter{
		now:          time.Now,
		cleanupEvery: 2 * time.Minute,
	}
	for i := range l.shards {
		l.shards[i].windows = make(map[string]*window)
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *Limiter) shardFor(key string) *shard {
	return &l.shards[xxhash.Sum64String(key)%shardCount]
}

// Admit 判定 client 在 p 下是否放行；放行即占用一个名额
func (l *Limiter) Admit(p Policy, client string) Decision {
	if p.Unlimited() {
		return Decision{Allowed: true}
	}

	key := p.Name + "|" + client
	sh := l.shardFor(key)
	now := l.now()

	sh.mu.Lock()
	defer sh.mu.Unlock()

	w, ok := sh.windows[key]
	if !ok || !now.Before(w.expiresAt) {
		w = &window{expiresAt: now.Add(p.Window)}
		sh.windows[key] = w
	}
	reset := w.expiresAt.Sub(now)

	if w.count >= p.Limit {
		return Decision{
			Allowed:    false,
			Limit:      p.Limit,
			ResetAfter: reset,
			RetryAfter: reset,
		}
	}
	w.count++
	return Decision{
		Allowed:    true,
		Limit:      p.Limit,
		Remaining:  p.Limit - w.count,
		ResetAfter: reset,
	}
}

// Cleanup 删除已过期的窗口，逐个分片加锁
func (l *Limiter) Cleanup() int {
	now := l.now()
	removed := 0
	for i := range l.shards {
		sh := &l.shards[i]
		sh.mu.Lock()
		for k, w := range sh.windows {
			if !now.Before(w.expiresAt) {
				delete(sh.windows, k)
				removed++
			}
		}
		sh.mu.Unlock()
	}
	return removed
}

// Len 当前持有的窗口数（含已过期未回收的）
func (l *Limiter) Len() int {
	n := 0
	for i := range l.shards {
		sh := &l.shards[i]
		sh.mu.Lock()
		n += len(sh.windows)
		sh.mu.Unlock()
	}
	return n
}

// StartJanitor 周期性 Cleanup，ctx 结束即退出
func (l *Limiter) StartJanitor(ctx context.Context) {
	if l.cleanupEvery <= 0 {
		return
	}
	t := time.NewTicker(l.cleanupEvery)
	go func() {
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				l.Cleanup()
			}
		}
	}()
}
