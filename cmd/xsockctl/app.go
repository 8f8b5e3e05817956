package main

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/omeyang/xsock/pkg/config/xconf"
	"github.com/omeyang/xsock/pkg/net/xsock"
	"github.com/omeyang/xsock/pkg/observability/xlog"
	"github.com/omeyang/xsock/pkg/observability/xmetrics"
)

// app 持有一次命令执行期间共享的依赖。
type app struct {
	out      io.Writer
	cfg      cliConfig
	logger   *slog.Logger
	observer xmetrics.Observer
	cleanups []func() error
}

func newApp(out io.Writer) *app {
	return &app{
		out:      out,
		cfg:      defaultConfig(),
		logger:   slog.New(slog.DiscardHandler),
		observer: xmetrics.NoopObserver{},
	}
}

// before 加载配置、构建 logger 与 observer，并初始化网络子系统。
func (a *app) before(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	cfg, err := loadConfig(cmd.String("config"))
	if err != nil {
		if errors.Is(err, xconf.ErrUnsupportedFormat) || errors.Is(err, xconf.ErrEmptyPath) {
			return ctx, usagef("%v", err)
		}
		return ctx, err
	}
	if cmd.IsSet("log-level") {
		cfg.Log.Level = cmd.String("log-level")
	}
	if cmd.IsSet("log-format") {
		cfg.Log.Format = cmd.String("log-format")
	}
	if cmd.IsSet("log-file") {
		cfg.Log.File = cmd.String("log-file")
	}
	a.cfg = cfg

	b := xlog.New().
		SetOutput(cmd.ErrWriter).
		SetLevelString(cfg.Log.Level).
		SetFormat(cfg.Log.Format).
		SetAttrs(xlog.Component("xsockctl"))
	if cfg.Log.File != "" {
		var opts []xlog.RotationOption
		if cfg.Log.MaxSizeMB > 0 {
			opts = append(opts, xlog.WithMaxSize(cfg.Log.MaxSizeMB))
		}
		if cfg.Log.MaxBackups > 0 {
			opts = append(opts, xlog.WithMaxBackups(cfg.Log.MaxBackups))
		}
		b.SetRotation(cfg.Log.File, opts...)
	}
	logger, closeLog, err := b.Build()
	if err != nil {
		return ctx, usagef("%v", err)
	}
	a.logger = logger
	a.cleanups = append(a.cleanups, closeLog)
	logger.Debug("config loaded", slog.String("path", cmd.String("config")), slog.String("level", cfg.Log.Level))

	observer, err := xmetrics.NewOTelObserver()
	if err != nil {
		return ctx, err
	}
	a.observer = observer

	var setupOpts []xsock.SetupOption
	if cfg.Net.FileLimit > 0 {
		setupOpts = append(setupOpts, xsock.WithFileLimit(cfg.Net.FileLimit))
	}
	if err := xsock.Setup(setupOpts...); err != nil {
		return ctx, err
	}
	a.cleanups = append(a.cleanups, xsock.Cleanup)
	return ctx, nil
}

// after 按注册的逆序释放资源。
func (a *app) after(context.Context, *cli.Command) error {
	var errs []error
	for i := len(a.cleanups) - 1; i >= 0; i-- {
		errs = append(errs, a.cleanups[i]())
	}
	a.cleanups = nil
	return errors.Join(errs...)
}

// sockOpts 返回带 logger 与 observer 的套接字选项。
func (a *app) sockOpts(extra ...xsock.Option) []xsock.Option {
	return append([]xsock.Option{
		xsock.WithLogger(a.logger),
		xsock.WithObserver(a.observer),
	}, extra...)
}

// intFlag 返回命令行值（已设置时）或配置值。
func intFlag(cmd *cli.Command, name string, fallback int) int {
	if cmd.IsSet(name) {
		return cmd.Int(name)
	}
	return fallback
}
