// Package observability 提供可观测性相关的子包。
//
// 子包列表：
//   - xlog: slog logger 构建器，支持文本/JSON 输出与按大小轮转的日志文件
//   - xmetrics: 观测接口，基于 OpenTelemetry 的 trace 与指标实现
//
// 设计原则：
//   - 库代码只依赖接口，默认实现无开销
//   - 指标属性保持低基数，地址等信息只进入 span
package observability
