// Package circuitbreaker 提供一个轻量熔断器
//
// 用途：保护对外部中间件（如RabbitMQ）的调用。依赖持续故障时快速失败，
// 避免每个请求都阻塞在故障依赖上；冷却期后放行探测请求，成功则恢复。
//
// 状态机：
//
//	Closed --连续失败达到阈值--> Open --冷却期结束--> HalfOpen
//	HalfOpen --探测成功--> Closed
//	HalfOpen --探测失败--> Open
package circuitbreaker

import (
	"errors"
	"sync"
	"time"
)

// State 熔断器状态
type State int

const (
	StateClosed   State = iota // 关闭（正常放行）
	StateOpen                  // 打开（快速失败）
	StateHalfOpen              // 半开（放行探测请求）
)

// String 实现Stringer接口（方便日志输出）
func (s State) String() string {
	switch s {
	case StateClosed:
		return "closed"
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half-open"
	default:
		return "unknown"
	}
}

// ErrOpenState 熔断器打开时的快速失败错误
var ErrOpenState = errors.New("circuit breaker is open")

// Config 熔断器配置
type Config struct {
	FailureThreshold int           // 连续失败多少次后熔断
	Cooldown         time.Duration // 熔断后多久进入半开状态
}

// Breaker 熔断器
// 并发安全：所有状态变更都在互斥锁内完成
type Breaker struct {
	name string
	cfg  Config

	mu           sync.Mutex
	state        State
	failures     int       // 连续失败次数
	openedAt     time.Time // 进入Open状态的时间
	halfOpenBusy bool      // 半开状态下是否已有探测请求在途
}

// New 创建熔断器
// 阈值/冷却期为零值时使用默认配置（5次、30秒）
func New(name string, cfg Config) *Breaker {
	if cfg.FailureThreshold <= 0 {
		cfg.FailureThreshold = 5
	}
	if cfg.Cooldown <= 0 {
		cfg.Cooldown = 30 * time.Second
	}
	return &Breaker{
		name:  name,
		cfg:   cfg,
		state: StateClosed,
	}
}

// Execute 执行受保护的调用
// 熔断器打开（且未到冷却期）时不调用fn，直接返回ErrOpenState
func (b *Breaker) Execute(fn func() error) error {
	if err := b.before(); err != nil {
		return err
	}

	err := fn()
	b.after(err == nil)
	return err
}

// State 返回当前状态（考虑冷却期自动迁移）
func (b *Breaker) State() State {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.refresh(time.Now())
	return b.state
}

// before 请求前检查，决定是否放行
func (b *Breaker) before() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.refresh(time.Now())

	switch b.state {
	case StateOpen:
		return ErrOpenState
	case StateHalfOpen:
		// 半开状态只放行一个探测请求
		if b.halfOpenBusy {
			return ErrOpenState
		}
		b.halfOpenBusy = true
	}
	return nil
}

// after 请求后更新状态
func (b *Breaker) after(success bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == StateHalfOpen {
		b.halfOpenBusy = false
		if success {
			// 探测成功，恢复正常
			b.state = StateClosed
			b.failures = 0
		} else {
			// 探测失败，重新熔断
			b.trip(time.Now())
		}
		return
	}

	if success {
		b.failures = 0
		return
	}

	b.failures++
	if b.failures >= b.cfg.FailureThreshold {
		b.trip(time.Now())
	}
}

// refresh 冷却期结束时从Open迁移到HalfOpen
// 调用方必须持有锁
func (b *Breaker) refresh(now time.Time) {
	if b.state == StateOpen && now.Sub(b.openedAt) >= b.cfg.Cooldown {
		b.state = StateHalfOpen
		b.halfOpenBusy = false
	}
}

// trip 进入熔断状态
// 调用方必须持有锁
func (b *Breaker) trip(now time.Time) {
	b.state = StateOpen
	b.openedAt = now
	b.failures = 0
}
