package xconf

import (
	"bytes"

	"github.com/BurntSushi/toml"
	"github.com/knadh/koanf/v2"
)

// tomlParser 让 BurntSushi/toml 满足 koanf.Parser。
type tomlParser struct{}

// TOMLParser 返回 TOML 格式的 koanf.Parser。
func TOMLParser() koanf.Parser {
	return &tomlParser{}
}

// Unmarshal 将 TOML 文本解析为嵌套 map。
func (p *tomlParser) Unmarshal(data []byte) (map[string]any, error) {
	out := make(map[string]any)
	if err := toml.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Marshal 将嵌套 map 编码为 TOML 文本。
func (p *tomlParser) Marshal(m map[string]any) ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(m); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
