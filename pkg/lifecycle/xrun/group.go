package xrun

import (
	"context"
	"errors"
	"log/slog"

	"golang.org/x/sync/errgroup"
)

// Group 并发运行一组服务，任一服务出错时取消其余服务。
//
// Go、GoWithName、Cancel 可并发调用；Wait 只应调用一次。
type Group struct {
	eg       *errgroup.Group
	ctx      context.Context
	causeCtx context.Context
	cancel   context.CancelCauseFunc
	opts     *groupOptions
}

// NewGroup 创建 Group，返回的 context 在任一服务出错或 Cancel 时被取消。
// nil ctx 视为 context.Background()。
func NewGroup(ctx context.Context, opts ...Option) (*Group, context.Context) {
	if ctx == nil {
		ctx = context.Background()
	}
	o := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(o)
		}
	}

	causeCtx, cancel := context.WithCancelCause(ctx)
	eg, egCtx := errgroup.WithContext(causeCtx)
	return &Group{eg: eg, ctx: egCtx, causeCtx: causeCtx, cancel: cancel, opts: o}, egCtx
}

// Go 在新 goroutine 中运行 fn。
func (g *Group) Go(fn func(ctx context.Context) error) {
	g.eg.Go(func() error {
		if fn == nil {
			return ErrNilFunc
		}
		return fn(g.ctx)
	})
}

// GoWithName 与 Go 相同，并记录服务的启动与退出。
func (g *Group) GoWithName(name string, fn func(ctx context.Context) error) {
	log := g.opts.logger.With(slog.String("group", g.opts.name), slog.String("service", name))
	g.Go(func(ctx context.Context) error {
		if fn == nil {
			return ErrNilFunc
		}
		log.Debug("service starting")
		err := fn(ctx)
		if err != nil && !errors.Is(err, context.Canceled) {
			log.Warn("service exited with error", slog.Any("error", err))
		} else {
			log.Debug("service stopped")
		}
		return err
	})
}

// Cancel 取消所有服务，cause 作为 Wait 的返回值。
// cause 不应包装 context.Canceled，否则会被当作普通取消过滤。
func (g *Group) Cancel(cause error) {
	g.cancel(cause)
}

// Context 返回 Group 的 context。
func (g *Group) Context() context.Context {
	return g.ctx
}

// Wait 等待所有服务退出，返回第一个错误。
//
// 由 Group 取消引起的 context.Canceled 被过滤：存在显式 cause（如 [*SignalError]）
// 时返回 cause，否则返回 nil。
func (g *Group) Wait() error {
	defer g.cancel(nil)

	err := g.eg.Wait()
	g.opts.logger.Debug("all services stopped", slog.String("group", g.opts.name))

	cancelled := g.causeCtx.Err() != nil
	switch {
	case err == nil && !cancelled:
		return nil
	case err != nil && !errors.Is(err, context.Canceled):
		return err
	case err != nil && !cancelled:
		// context.Canceled 来自服务自身
		return err
	}
	if cause := context.Cause(g.causeCtx); !errors.Is(cause, context.Canceled) {
		return cause
	}
	return nil
}
