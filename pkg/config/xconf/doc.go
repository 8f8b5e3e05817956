// Package xconf 基于 koanf 加载配置文件。
//
// 支持 YAML（.yaml / .yml）、JSON（.json）与 TOML（.toml），
// 文件格式由扩展名推断；[NewFromBytes] 需要显式指定格式。
//
//	cfg, err := xconf.New("xsockctl.yaml")
//	if err != nil {
//	    return err
//	}
//	var c CLIConfig
//	if err := cfg.Unmarshal("", &c); err != nil {
//	    return err
//	}
//
// 结构体字段使用 koanf 标签映射（可通过 [WithTag] 修改）。
// 基础读取操作请直接使用 [Config.Client] 返回的 koanf 实例。
package xconf
