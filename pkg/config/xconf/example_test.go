package xconf_test

import (
	"fmt"

	"github.com/omeyang/xsock/pkg/config/xconf"
)

func ExampleNewFromBytes() {
	data := []byte(`
[server]
port = 9000
allow = ["10.0.0.0/8"]
`)
	cfg, err := xconf.NewFromBytes(data, xconf.FormatTOML)
	if err != nil {
		fmt.Println("error:", err)
		return
	}

	var server struct {
		Port  int      `koanf:"port"`
		Allow []string `koanf:"allow"`
	}
	if err := cfg.Unmarshal("server", &server); err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println(server.Port, server.Allow)
	// Output: 9000 [10.0.0.0/8]
}
