// Package broadcastx 提供有界多消费者事件广播：每个订阅者按发布顺序
// 消费全量事件；缓冲区有界，跟不上的订阅者会收到带内的 Lagged 信号
// （告知丢了多少条），而不是悄悄丢失或阻塞发布端。
//
// 语义对照 tokio::sync::broadcast。
package broadcastx

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// ErrClosed 表示广播器已关闭且缓冲区内的事件已全部消费完。
var ErrClosed = errors.New("broadcastx: closed")

// LaggedError 表示订阅者落后太多，缓冲区已丢弃 Missed 条事件。
// 收到后订阅者应当重新获取一份全量快照再继续消费。
type LaggedError struct {
	Missed uint64
}

func (e *LaggedError) Error() string {
	return fmt.Sprintf("broadcastx: lagged, missed %d events", e.Missed)
}

// IsLagged 判断错误是否为 Lagged 信号。
func IsLagged(err error) bool {
	var le *LaggedError
	return errors.As(err, &le)
}

// Broadcaster 是发布端。capacity 为每个订阅者可落后的最大事件数。
type Broadcaster[T any] struct {
	mu      sync.Mutex
	cap     int
	entries []T
	base    uint64 // entries[0] 对应的绝对序号
	next    uint64 // 下一条事件的绝对序号
	notify  chan struct{}
	closed  bool
}

func NewBroadcaster[T any](capacity int) *Broadcaster[T] {
	if capacity < 1 {
		capacity = 1
	}
	return &Broadcaster[T]{
		cap:    capacity,
		notify: make(chan struct{}),
	}
}

// Send 发布一条事件。发布从不阻塞：缓冲满时丢最旧的一条。
func (b *Broadcaster[T]) Send(v T) {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}
	b.entries = append(b.entries, v)
	b.next++
	if len(b.entries) > b.cap {
		b.entries = b.entries[1:]
		b.base++
	}
	close(b.notify)
	b.notify = make(chan struct{})
	b.mu.Unlock()
}

// Close 关闭广播器。已订阅者消费完缓冲后收到 ErrClosed。
func (b *Broadcaster[T]) Close() {
	b.mu.Lock()
	if !b.closed {
		b.closed = true
		close(b.notify)
	}
	b.mu.Unlock()
}

// Subscribe 创建订阅者，从"当前之后"的事件开始消费。
func (b *Broadcaster[T]) Subscribe() *Receiver[T] {
	b.mu.Lock()
	defer b.mu.Unlock()
	return &Receiver[T]{b: b, cursor: b.next}
}

// Receiver 是订阅端。非并发安全，每个订阅者独享。
type Receiver[T any] struct {
	b      *Broadcaster[T]
	cursor uint64
}

// Recv 按序返回下一条事件。
// 订阅者落后超过缓冲容量时返回 *LaggedError 并把游标推进到
// 最旧的可用事件——下一次 Recv 从那里继续。
func (r *Receiver[T]) Recv(ctx context.Context) (T, error) {
	var zero T
	for {
		r.b.mu.Lock()
		if r.cursor < r.b.base {
			missed := r.b.base - r.cursor
			r.cursor = r.b.base
			r.b.mu.Unlock()
			return zero, &LaggedError{Missed: missed}
		}
		if r.cursor < r.b.next {
			v := r.b.entries[r.cursor-r.b.base]
			r.cursor++
			r.b.mu.Unlock()
			return v, nil
		}
		if r.b.closed {
			r.b.mu.Unlock()
			return zero, ErrClosed
		}
		ch := r.b.notify
		r.b.mu.Unlock()

		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		case <-ch:
		}
	}
}
