package main

import (
	"time"

	"github.com/omeyang/xsock/pkg/config/xconf"
)

// cliConfig 是配置文件结构，命令行参数优先于配置文件。
type cliConfig struct {
	Log    logConfig    `koanf:"log"`
	Net    netConfig    `koanf:"net"`
	Server serverConfig `koanf:"server"`
	Client clientConfig `koanf:"client"`
}

type logConfig struct {
	Level      string `koanf:"level"`
	Format     string `koanf:"format"`
	File       string `koanf:"file"`
	MaxSizeMB  int    `koanf:"max_size_mb"`
	MaxBackups int    `koanf:"max_backups"`
}

type netConfig struct {
	// FileLimit 为 0 时不调整 RLIMIT_NOFILE。
	FileLimit uint64 `koanf:"file_limit"`
}

type serverConfig struct {
	Port        int           `koanf:"port"`
	Backlog     int           `koanf:"backlog"`
	Workers     int           `koanf:"workers"`
	Allow       string        `koanf:"allow"`
	IdleTimeout time.Duration `koanf:"idle_timeout"`
	// PeerRate 为每个对端 IP 在 PeerWindow 内允许的连接数，0 表示不限制。
	PeerRate    int           `koanf:"peer_rate"`
	PeerWindow  time.Duration `koanf:"peer_window"`
}

type clientConfig struct {
	Retries    int           `koanf:"retries"`
	RetryDelay time.Duration `koanf:"retry_delay"`
	Timeout    time.Duration `koanf:"timeout"`
}

func defaultConfig() cliConfig {
	return cliConfig{
		Log: logConfig{Level: "info", Format: "text"},
		Server: serverConfig{
			Port:        7000,
			Backlog:     128,
			Workers:     8,
			IdleTimeout: 30 * time.Second,
			PeerWindow:  time.Minute,
		},
		Client: clientConfig{
			RetryDelay: 100 * time.Millisecond,
			Timeout:    5 * time.Second,
		},
	}
}

// loadConfig 在默认值之上叠加配置文件，path 为空时只返回默认值。
func loadConfig(path string) (cliConfig, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}
	if err := xconf.Load(path, &cfg); err != nil {
		return cliConfig{}, err
	}
	return cfg, nil
}
