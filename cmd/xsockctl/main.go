// xsockctl 是 xsock 套接字库的命令行工具。
//
// 用法:
//
//	xsockctl [全局选项] <命令> [命令参数]
//
// 全局选项:
//
//	-c, --config      配置文件（.yaml / .yml / .json / .toml）
//	    --log-level   日志级别 debug|info|warn|error（默认 info）
//	    --log-format  日志格式 text|json（默认 text）
//	    --log-file    日志文件，按大小轮转；为空时输出到 stderr
//
// 命令:
//
//	resolve <host> [service]        解析主机名，--all 输出全部候选
//	head <host>                     发送 HEAD 请求并打印响应（--port、--path）
//	serve                           TCP echo 服务（--port、--backlog、--allow、--workers、--peer-rate）
//	send <host:port> <message>      TCP 连接、发送并打印回复（--retries）
//	udp-echo                        UDP echo 服务（--port）
//	udp-send <host:port> <message>  发送数据报并打印回复
//
// 退出码:
//
//	0: 成功（serve / udp-echo 收到终止信号同样视为成功）
//	1: 执行失败
//	2: 参数错误
//
// 示例:
//
//	xsockctl resolve example.com http
//	xsockctl head example.com --path /index.html
//	xsockctl --log-level debug serve --port 7000 --allow 127.0.0.0/8,::1
//	xsockctl send 127.0.0.1:7000 hello --retries 3
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/urfave/cli/v3"
)

// 版本信息，可通过 -ldflags "-X main.Version=..." 注入。
var (
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildTime = "unknown"
)

func main() {
	os.Exit(run(context.Background(), os.Args, os.Stdout, os.Stderr))
}

// run 执行命令并返回退出码。
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	a := newApp(stdout)
	cmd := a.command()
	cmd.Writer = stdout
	cmd.ErrWriter = stderr

	err := cmd.Run(ctx, args)
	if err == nil {
		return 0
	}
	var usageErr *usageError
	switch {
	case errors.As(err, &usageErr):
		fmt.Fprintf(stderr, "参数错误: %v\n", usageErr)
		return 2
	case isCLIUsageError(err):
		fmt.Fprintf(stderr, "参数错误: %v\n", err)
		return 2
	default:
		fmt.Fprintf(stderr, "错误: %v\n", err)
		return 1
	}
}

// usageError 表示参数错误，对应退出码 2。
type usageError struct {
	msg string
}

func (e *usageError) Error() string { return e.msg }

func usagef(format string, args ...any) error {
	return &usageError{msg: fmt.Sprintf(format, args...)}
}

// isCLIUsageError 识别 urfave/cli 产生的参数解析错误。
func isCLIUsageError(err error) bool {
	msg := err.Error()
	for _, s := range []string{
		"flag provided but not defined",
		"invalid value",
		"No help topic for",
		"Required flag",
	} {
		if strings.Contains(msg, s) {
			return true
		}
	}
	return false
}

func (a *app) command() *cli.Command {
	return &cli.Command{
		Name:    "xsockctl",
		Usage:   "xsock 套接字工具",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, GitCommit, BuildTime),
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: "配置文件路径"},
			&cli.StringFlag{Name: "log-level", Usage: "日志级别 debug|info|warn|error"},
			&cli.StringFlag{Name: "log-format", Usage: "日志格式 text|json"},
			&cli.StringFlag{Name: "log-file", Usage: "日志文件（按大小轮转）"},
		},
		Before:   a.before,
		After:    a.after,
		Commands: a.commands(),
		// 退出码由 run 统一映射
		ExitErrHandler: func(context.Context, *cli.Command, error) {},
	}
}
