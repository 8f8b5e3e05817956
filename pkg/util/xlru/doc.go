// Package xlru 提供有界的 TTL 缓存与固定窗口计数器。
//
// 两者都基于 github.com/hashicorp/golang-lru/v2/expirable，条目数达到上限时
// 淘汰最久未访问的键，因此按对端地址等不可控键计数时内存有界。
//
//   - [Cache]：泛型 TTL 缓存，Set 刷新 TTL，Get 过滤已过期条目
//   - [WindowCounter]：按键统计固定时间窗口内的事件次数，用于简单的准入限流
//
// 使用完毕后应调用 Close 停止底层清理 goroutine。
//
// # 已知限制
//
//   - TTL 使用系统时间；WindowCounter 可注入时钟（[WithClock]）用于测试
//   - 键被 LRU 淘汰后计数从零开始，窗口上限在键数超过容量时只是近似值
//   - Close 通过 reflect+unsafe 关闭底层未导出的 done 通道，升级 golang-lru 时需验证
package xlru
