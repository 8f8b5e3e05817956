// Package xmetrics 定义套接字层使用的观测接口，并提供基于 OpenTelemetry 的实现。
//
// 调用方只依赖 [Observer] / [Span]；默认的 [NoopObserver] 不产生任何开销，
// [NewOTelObserver] 同时产生 trace span 与两个指标：
//   - xsock.operation.total（计数，单位 1）
//   - xsock.operation.duration（直方图，单位 s）
//
// 指标属性固定为 component / operation / status，避免高基数。
// 地址等高基数信息只写入 span 属性。
//
//	obs, err := xmetrics.NewOTelObserver(xmetrics.WithMeterProvider(mp))
//	_, span := xmetrics.Start(ctx, obs, xmetrics.SpanOptions{
//		Component: "xsock",
//		Operation: "connect",
//		Kind:      xmetrics.KindClient,
//	})
//	err := doConnect()
//	span.End(xmetrics.Result{Err: err})
package xmetrics
