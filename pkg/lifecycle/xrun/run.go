package xrun

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"sync"
)

var (
	notifySignals = signal.Notify
	stopSignals   = signal.Stop
)

// Run 监听终止信号并运行 services，直到全部退出。
// 收到信号时取消所有服务并返回 [*SignalError]；全部服务正常返回时信号监听随之结束。
func Run(ctx context.Context, services ...func(ctx context.Context) error) error {
	return RunWithOptions(ctx, nil, services...)
}

// RunWithOptions 与 Run 相同，但支持配置选项。
func RunWithOptions(ctx context.Context, opts []Option, services ...func(ctx context.Context) error) error {
	g, _ := NewGroup(ctx, opts...)
	if !g.opts.noSignals {
		g.Go(g.waitSignal)
	}
	var wg sync.WaitGroup
	for _, svc := range services {
		wg.Add(1)
		g.Go(func(ctx context.Context) error {
			defer wg.Done()
			if svc == nil {
				return ErrNilFunc
			}
			return svc(ctx)
		})
	}
	go func() {
		wg.Wait()
		g.cancel(nil)
	}()
	return g.Wait()
}

func (g *Group) waitSignal(ctx context.Context) error {
	signals := g.opts.signals
	if len(signals) == 0 {
		signals = DefaultSignals()
	}
	ch := make(chan os.Signal, 1)
	notifySignals(ch, signals...)
	defer stopSignals(ch)

	select {
	case sig := <-ch:
		g.opts.logger.Info("received signal",
			slog.String("group", g.opts.name),
			slog.String("signal", sig.String()),
		)
		g.cancel(&SignalError{Signal: sig})
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
