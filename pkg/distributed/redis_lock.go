package distributed

import (
	"context"
	"fmt"
	"time"

	"github.com/fisker/itops-backend/pkg/logger"
	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
)

// RedisLock Redis 分布式锁
// 审批服务用它串行化同一个采购申请上的并发操作（多实例部署时）
type RedisLock struct {
	client   *redis.Client
	key      string
	value    string
	expiry   time.Duration
	ctx      context.Context
	cancelFn context.CancelFunc
}

// NewRedisLock 创建 Redis 分布式锁
// 如果client为nil（Redis未启用），返回的锁会立即失败，但不影响主流程
func NewRedisLock(client *redis.Client, key string, expiry time.Duration) *RedisLock {
	ctx, cancel := context.WithCancel(context.Background())
	return &RedisLock{
		client:   client,
		key:      key,
		value:    uuid.New().String(), // 使用 UUID 作为锁的值，防止误释放
		expiry:   expiry,
		ctx:      ctx,
		cancelFn: cancel,
	}
}

// TryLock 尝试获取锁（非阻塞）
// 如果Redis未启用（client为nil），返回false但不报错（优雅降级）
func (l *RedisLock) TryLock() (bool, error) {
	if l.client == nil {
		// Redis未启用，降级为单机模式（不获取锁，直接返回false）
		return false, nil
	}

	// 使用 SET NX EX 命令：如果 key 不存在则设置，并设置过期时间
	result, err := l.client.SetNX(l.ctx, l.key, l.value, l.expiry).Result()
	if err != nil {
		return false, fmt.Errorf("failed to acquire lock: %w", err)
	}

	// 如果获取到锁，启动自动续期
	if result {
		go l.autoRenew()
	}

	return result, nil
}

// Unlock 释放锁
// 如果Redis未启用（client为nil），直接返回nil（优雅降级）
func (l *RedisLock) Unlock() error {
	if l.client == nil {
		// Redis未启用，无需释放锁，但仍取消上下文避免资源泄漏
		l.cancelFn()
		return nil
	}

	// 使用 Lua 脚本保证原子性：只有持有锁的实例才能释放
	// 使用 context.Background() 而不是 l.ctx，解锁必须在取消上下文前完成
	script := `
		if redis.call("get", KEYS[1]) == ARGV[1] then
			return redis.call("del", KEYS[1])
		else
			return 0
		end
	`

	result, err := l.client.Eval(context.Background(), script, []string{l.key}, l.value).Result()
	l.cancelFn()
	if err != nil {
		return fmt.Errorf("failed to release lock: %w", err)
	}

	if result == int64(0) {
		logger.Warnf("[RedisLock] lock %s was not held by this instance (expired or taken over)", l.key)
	}

	return nil
}

// autoRenew 自动续期，防止业务未完成时锁过期
// 每 expiry/3 续期一次，Unlock 或上下文取消后停止
func (l *RedisLock) autoRenew() {
	interval := l.expiry / 3
	if interval <= 0 {
		interval = time.Second
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-l.ctx.Done():
			return
		case <-ticker.C:
			// 只有仍持有锁时才续期
			script := `
				if redis.call("get", KEYS[1]) == ARGV[1] then
					return redis.call("pexpire", KEYS[1], ARGV[2])
				else
					return 0
				end
			`
			result, err := l.client.Eval(l.ctx, script, []string{l.key}, l.value, l.expiry.Milliseconds()).Result()
			if err != nil || result == int64(0) {
				// 锁已丢失，停止续期
				return
			}
		}
	}
}
