package xpool

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"sync"
)

const (
	maxWorkers   = 1 << 16
	maxQueueSize = 1 << 24
)

// Pool 是泛型 worker pool，所有方法可并发调用。
type Pool[T any] struct {
	handler func(T)
	opts    options
	log     *slog.Logger

	mu      sync.RWMutex
	stopped bool
	queue   chan T

	wg   sync.WaitGroup
	done chan struct{}
	once sync.Once
}

// New 创建并启动 pool。
func New[T any](workers, queueSize int, handler func(T), opts ...Option) (*Pool[T], error) {
	if handler == nil {
		return nil, ErrNilHandler
	}
	if workers < 1 || workers > maxWorkers {
		return nil, fmt.Errorf("%w: %d not in [1, %d]", ErrInvalidWorkers, workers, maxWorkers)
	}
	if queueSize < 1 || queueSize > maxQueueSize {
		return nil, fmt.Errorf("%w: %d not in [1, %d]", ErrInvalidQueueSize, queueSize, maxQueueSize)
	}

	o := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}
	log := o.logger
	if o.name != "" {
		log = log.With(slog.String("pool", o.name))
	}

	p := &Pool[T]{
		handler: handler,
		opts:    o,
		log:     log,
		queue:   make(chan T, queueSize),
		done:    make(chan struct{}),
	}
	p.wg.Add(workers)
	for range workers {
		go p.worker()
	}
	go func() {
		p.wg.Wait()
		close(p.done)
	}()
	return p, nil
}

func (p *Pool[T]) worker() {
	defer p.wg.Done()
	for task := range p.queue {
		p.run(task)
	}
}

func (p *Pool[T]) run(task T) {
	defer func() {
		if r := recover(); r != nil {
			attrs := []any{
				slog.Any("panic", r),
				slog.String("task_type", fmt.Sprintf("%T", task)),
				slog.String("stack", string(debug.Stack())),
			}
			if p.opts.logTaskValue {
				attrs = append(attrs, slog.Any("task", task))
			}
			p.log.Error("xpool: task panic recovered", attrs...)
		}
	}()
	p.handler(task)
}

// Submit 非阻塞地提交任务。
func (p *Pool[T]) Submit(task T) error {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.stopped {
		return ErrPoolStopped
	}
	select {
	case p.queue <- task:
		return nil
	default:
		return ErrQueueFull
	}
}

// stop 拒绝后续提交并关闭队列，worker 处理完剩余任务后退出。
func (p *Pool[T]) stop() {
	p.once.Do(func() {
		p.mu.Lock()
		p.stopped = true
		close(p.queue)
		p.mu.Unlock()
	})
}

// Close 停止接收任务并等待队列处理完成。可重复调用。
func (p *Pool[T]) Close() error {
	p.stop()
	<-p.done
	return nil
}

// Shutdown 与 Close 相同，但 ctx 结束时放弃等待并返回 ctx.Err()。
// 放弃等待后 worker 仍会继续处理剩余任务，可通过 Done 等待其结束。
func (p *Pool[T]) Shutdown(ctx context.Context) error {
	if ctx == nil {
		return ErrNilContext
	}
	p.stop()
	select {
	case <-p.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Done 在所有 worker 退出后关闭。
func (p *Pool[T]) Done() <-chan struct{} {
	return p.done
}
