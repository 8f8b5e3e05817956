// Package xrun 基于 errgroup + context 管理进程内多个服务的运行与协调关闭。
//
// 任一服务返回错误、收到终止信号或调用 [Group.Cancel] 时，共享 context 被取消，
// 各服务应监听 ctx.Done() 并退出。
//
//	srv, _ := xsock.NewTCPServer(8080)
//	err := xrun.Run(ctx,
//	    xrun.Serve(func(ctx context.Context) error { return acceptLoop(ctx, srv) }, srv.Close),
//	)
//	if errors.Is(err, xrun.ErrSignal) {
//	    // 正常的信号退出
//	}
//
// 阻塞在 accept / recv 上的循环无法直接感知 ctx，[Serve] 在 ctx 取消时调用 stop
// 关闭描述符以解除阻塞。
package xrun
