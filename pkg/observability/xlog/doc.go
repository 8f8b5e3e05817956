// Package xlog 为命令行工具构建 *slog.Logger。
//
// 使用 Builder 模式（first-error-wins：遇到第一个配置错误后，后续 Set 操作不再生效），
// 可配置级别、格式（text / json）、输出目标与基于 lumberjack 的文件轮转：
//
//	b := xlog.New().SetLevelString("debug").SetFormat("json").SetRotation("/var/log/xsockctl.log")
//	logger, cleanup, err := b.Build()
//	if err != nil {
//	    return err
//	}
//	defer cleanup()
//	b.LevelVar().Set(slog.LevelWarn) // 运行时调整级别
//
// 库代码（xsock、xpool、xrun）只依赖 *slog.Logger，通过各自的 WithLogger 选项注入。
package xlog
