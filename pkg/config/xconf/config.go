package xconf

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/knadh/koanf/v2"
)

// Format 是配置文件格式，取值为小写格式名。
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
	FormatTOML Format = "toml"
)

// extensions 列出每种格式接受的文件扩展名（小写，带点）。
var extensions = map[Format][]string{
	FormatYAML: {".yaml", ".yml"},
	FormatJSON: {".json"},
	FormatTOML: {".toml"},
}

// Supported 报告 f 是否为可解析的格式。
func (f Format) Supported() bool {
	_, ok := extensions[f]
	return ok
}

// Extensions 返回 f 接受的扩展名副本，未知格式返回 nil。
func (f Format) Extensions() []string {
	return slices.Clone(extensions[f])
}

// FormatOf 按扩展名推断配置格式，扩展名不区分大小写。
func FormatOf(path string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(path))
	for f, exts := range extensions {
		if slices.Contains(exts, ext) {
			return f, nil
		}
	}
	return "", fmt.Errorf("%w: unknown extension %q", ErrUnsupportedFormat, ext)
}

// Config 是一份已加载的配置。
// 键的读取直接走 Client 返回的 koanf 实例，这里只补充结构体绑定与热重载。
type Config interface {
	Client() *koanf.Koanf

	// Unmarshal 把 path 子树绑定到 target；path 为空绑定整棵树。
	Unmarshal(path string, target any) error

	// Reload 从磁盘重新读取并整体替换配置树，可与读取并发调用。
	// 从字节创建的实例返回 [ErrNotReloadable]。
	Reload() error

	// Path 是来源文件路径，字节来源为空串。
	Path() string

	Format() Format
}
