package main

import (
	"context"
	"fmt"
	"net"
	"strconv"

	"github.com/urfave/cli/v3"

	"github.com/omeyang/xsock/pkg/net/xip"
	"github.com/omeyang/xsock/pkg/net/xsock"
)

func (a *app) commands() []*cli.Command {
	return []*cli.Command{
		a.resolveCommand(),
		a.headCommand(),
		a.serveCommand(),
		a.sendCommand(),
		a.udpEchoCommand(),
		a.udpSendCommand(),
	}
}

func (a *app) resolveCommand() *cli.Command {
	return &cli.Command{
		Name:      "resolve",
		Usage:     "解析主机名",
		ArgsUsage: "<host> [service]",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "all", Aliases: []string{"a"}, Usage: "输出全部候选"},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			args := cmd.Args()
			if args.Len() < 1 || args.Len() > 2 {
				return usagef("resolve 需要 <host> [service]")
			}
			host, service := args.Get(0), args.Get(1)
			if cmd.Bool("all") {
				ips, err := xsock.ResolveAll(host, service)
				if err != nil {
					return err
				}
				for _, ip := range ips {
					fmt.Fprintln(a.out, ip)
				}
				return nil
			}
			if service != "" {
				addr, err := xsock.ResolveSockAddr(host, service)
				if err != nil {
					return err
				}
				fmt.Fprintln(a.out, addr)
				return nil
			}
			ip, err := xsock.Resolve(host, "")
			if err != nil {
				return err
			}
			fmt.Fprintln(a.out, ip)
			return nil
		},
	}
}

func (a *app) headCommand() *cli.Command {
	return &cli.Command{
		Name:      "head",
		Usage:     "发送 HTTP HEAD 请求并打印响应",
		ArgsUsage: "<host>",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "port", Aliases: []string{"p"}, Value: 80, Usage: "目标端口"},
			&cli.StringFlag{Name: "path", Value: "/", Usage: "请求路径"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() != 1 {
				return usagef("head 需要 <host>")
			}
			port, err := portArg(cmd.Int("port"))
			if err != nil {
				return err
			}
			return a.head(ctx, cmd.Args().First(), port, cmd.String("path"))
		},
	}
}

func (a *app) serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "运行 TCP echo 服务",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "port", Aliases: []string{"p"}, Usage: "监听端口（0 表示系统分配）"},
			&cli.IntFlag{Name: "backlog", Usage: "listen 队列长度"},
			&cli.IntFlag{Name: "workers", Aliases: []string{"w"}, Usage: "连接处理 worker 数量"},
			&cli.StringFlag{Name: "allow", Usage: "允许的对端地址（逗号分隔的 IP、CIDR 或范围）"},
			&cli.IntFlag{Name: "peer-rate", Usage: "每个对端 IP 每个窗口内允许的连接数（0 不限制）"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg := a.cfg.Server
			port, err := portArg(intFlag(cmd, "port", cfg.Port))
			if err != nil {
				return err
			}
			backlog := intFlag(cmd, "backlog", cfg.Backlog)
			workers := intFlag(cmd, "workers", cfg.Workers)
			if backlog < 1 || workers < 1 {
				return usagef("backlog 与 workers 必须为正数")
			}
			if a.cfg.Server.PeerRate = intFlag(cmd, "peer-rate", cfg.PeerRate); a.cfg.Server.PeerRate < 0 {
				return usagef("--peer-rate 不能为负数")
			}
			allow := cfg.Allow
			if cmd.IsSet("allow") {
				allow = cmd.String("allow")
			}
			var extra []xsock.Option
			if allow != "" {
				set, err := xip.ParseSetString(allow)
				if err != nil {
					return usagef("--allow: %v", err)
				}
				extra = append(extra, xsock.WithPeerFilter(set))
			}
			return a.serve(ctx, port, backlog, workers, extra...)
		},
	}
}

func (a *app) sendCommand() *cli.Command {
	return &cli.Command{
		Name:      "send",
		Usage:     "TCP 连接、发送消息并打印回复",
		ArgsUsage: "<host:port> <message>",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "retries", Aliases: []string{"r"}, Usage: "连接被拒绝或超时时的重试次数"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() != 2 {
				return usagef("send 需要 <host:port> <message>")
			}
			host, service, err := splitTarget(cmd.Args().Get(0))
			if err != nil {
				return err
			}
			retries := intFlag(cmd, "retries", a.cfg.Client.Retries)
			if retries < 0 {
				return usagef("--retries 不能为负数")
			}
			return a.send(ctx, host, service, []byte(cmd.Args().Get(1)), retries)
		},
	}
}

func (a *app) udpEchoCommand() *cli.Command {
	return &cli.Command{
		Name:  "udp-echo",
		Usage: "运行 UDP echo 服务",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "port", Aliases: []string{"p"}, Usage: "监听端口"},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			port, err := portArg(intFlag(cmd, "port", a.cfg.Server.Port))
			if err != nil {
				return err
			}
			return a.udpEcho(ctx, port)
		},
	}
}

func (a *app) udpSendCommand() *cli.Command {
	return &cli.Command{
		Name:      "udp-send",
		Usage:     "发送数据报并打印回复",
		ArgsUsage: "<host:port> <message>",
		Action: func(_ context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() != 2 {
				return usagef("udp-send 需要 <host:port> <message>")
			}
			host, service, err := splitTarget(cmd.Args().Get(0))
			if err != nil {
				return err
			}
			return a.udpSend(host, service, []byte(cmd.Args().Get(1)))
		},
	}
}

func portArg(v int) (uint16, error) {
	if v < 0 || v > 65535 {
		return 0, usagef("端口 %d 超出范围 [0, 65535]", v)
	}
	return uint16(v), nil
}

// splitTarget 拆分 host:port，端口可以是数字或服务名。
func splitTarget(target string) (host, service string, err error) {
	host, service, err = net.SplitHostPort(target)
	if err != nil {
		return "", "", usagef("无效的目标地址 %q: %v", target, err)
	}
	if host == "" || service == "" {
		return "", "", usagef("无效的目标地址 %q", target)
	}
	if n, convErr := strconv.Atoi(service); convErr == nil && (n < 1 || n > 65535) {
		return "", "", usagef("无效的目标端口 %q", service)
	}
	return host, service, nil
}
