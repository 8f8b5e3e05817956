package xlog_test

import (
	"log/slog"
	"os"

	"github.com/omeyang/xsock/pkg/observability/xlog"
)

func ExampleBuilder() {
	logger, cleanup, err := xlog.New().
		SetOutput(os.Stdout).
		SetLevelString("debug").
		SetReplaceAttr(func(_ []string, a slog.Attr) slog.Attr {
			if a.Key == slog.TimeKey {
				return slog.Attr{}
			}
			return a
		}).
		Build()
	if err != nil {
		return
	}
	defer func() { _ = cleanup() }()

	logger.Debug("bound", xlog.Component("xsock"), slog.Int("port", 8080))
	// Output: level=DEBUG msg=bound component=xsock port=8080
}
