// Package watchx 提供"最新值"广播原语：单槽位 + 变更通知。
//
// 语义对照 tokio::sync::watch：
// - 发布端只保留最新值，慢消费者只会看到最新值，不会积压历史
// - 订阅端可等待"自上次读取以来是否有新值"
// 这是有意的背压策略：丢旧值，而不是阻塞发布端或无限缓冲。
package watchx

import (
	"context"
	"sync"
)

// Source 是最新值槽位的发布端。零值不可用，必须经 NewSource 创建。
type Source[T any] struct {
	mu      sync.Mutex
	value   T
	version uint64
	notify  chan struct{}
}

func NewSource[T any](initial T) *Source[T] {
	return &Source[T]{
		value:   initial,
		version: 1,
		notify:  make(chan struct{}),
	}
}

// Send 发布新值并唤醒所有等待者。
func (s *Source[T]) Send(v T) {
	s.mu.Lock()
	s.value = v
	s.version++
	// close-and-replace：唤醒当前所有等待者，后来者等待新的 notify。
	close(s.notify)
	s.notify = make(chan struct{})
	s.mu.Unlock()
}

// Load 读取当前值，不影响任何订阅者的已读标记。
func (s *Source[T]) Load() T {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.value
}

// Subscribe 创建一个订阅者。新订阅者视初始值为"未读"，
// 因此第一次 Next 总会立刻返回一个值（保证至少一次初始发射）。
func (s *Source[T]) Subscribe() *Receiver[T] {
	return &Receiver[T]{src: s}
}

// Receiver 是最新值槽位的订阅端。非并发安全，每个订阅者独享。
type Receiver[T any] struct {
	src  *Source[T]
	seen uint64
}

// Next 阻塞等待未读的新值并返回之（标记已读）。
// 中间值会被合并：连续多次 Send 之间只能读到最后一个。
func (r *Receiver[T]) Next(ctx context.Context) (T, error) {
	for {
		r.src.mu.Lock()
		if r.src.version > r.seen {
			v := r.src.value
			r.seen = r.src.version
			r.src.mu.Unlock()
			return v, nil
		}
		ch := r.src.notify
		r.src.mu.Unlock()

		select {
		case <-ctx.Done():
			var zero T
			return zero, ctx.Err()
		case <-ch:
		}
	}
}

// Load 立即读取当前值并标记已读。
func (r *Receiver[T]) Load() T {
	r.src.mu.Lock()
	defer r.src.mu.Unlock()
	r.seen = r.src.version
	return r.src.value
}
