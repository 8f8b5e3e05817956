// Package xpool 提供泛型 worker pool。
//
// 特性：
//   - worker 数量 [1, 65536]，队列大小 [1, 16777216]，超出范围返回错误
//   - New 创建后自动启动 worker
//   - Submit 非阻塞，队列满返回 [ErrQueueFull]，关闭后返回 [ErrPoolStopped]，二者均匹配 [ErrRejected]
//   - Close 处理完队列中的任务后返回；Shutdown(ctx) 可按超时放弃等待
//   - 单个任务 panic 被恢复并记录日志（默认仅记录 task 类型）
//
// Close / Shutdown 不可在 handler 内调用，否则会死锁。
//
// 在 xsockctl 中，echo 服务的 accept 循环把每个已接受的 *xsock.Socket 提交到 pool，
// 由固定数量的 worker 处理，队列满时直接关闭连接。
package xpool
