package xrun

import (
	"context"
	"errors"
)

// Serve 将阻塞式服务循环包装为服务函数。
//
// serve 在当前 goroutine 运行；ctx 取消时调用 stop（通常关闭监听描述符）使 serve 返回。
// 由 stop 引起的 serve 错误被视为正常退出，返回 stop 自身的错误。
// serve 先于 ctx 取消返回时，stop 不会被调用。
func Serve(serve func(ctx context.Context) error, stop func() error) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		if serve == nil || stop == nil {
			return ErrNilFunc
		}
		stopErr := make(chan error, 1)
		done := make(chan struct{})
		go func() {
			select {
			case <-ctx.Done():
				stopErr <- stop()
			case <-done:
				close(stopErr)
			}
		}()

		err := serve(ctx)
		close(done)
		if se, stopped := <-stopErr; stopped {
			return se
		}
		if errors.Is(err, context.Canceled) && ctx.Err() != nil {
			return nil
		}
		return err
	}
}
