// Package xretry 是 [avast/retry-go/v5] 的薄包装，供调用方按需为操作加上重试。
//
// xsock 本身从不自动重试（EINTR 等错误原样返回），重试由调用方显式选择：
//
//	sock, err := xretry.DoWithData(ctx, func() (*xsock.Socket, error) {
//	    return dial(addr)
//	}, xretry.Attempts(5), xretry.Delay(50*time.Millisecond), xretry.OnlyFor(unix.ECONNREFUSED))
//
// # 错误分类
//
//   - NewPermanentError(err) / Unrecoverable(err)：立即停止重试
//   - NewTemporaryError(err)：总是可重试
//   - 其他错误：默认可重试；使用 [OnlyFor] 收窄为指定错误
//
// 传入自定义 RetryIf 会覆盖上述分类逻辑。
//
// [avast/retry-go/v5]: https://github.com/avast/retry-go
package xretry
