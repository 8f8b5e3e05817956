package xip

import (
	"net/netip"

	"go4.org/netipx"
)

// documentationPrefixes 是 RFC 5737 / RFC 6676 / RFC 3849 保留的文档前缀。
var documentationPrefixes = []string{
	"192.0.2.0/24",
	"198.51.100.0/24",
	"203.0.113.0/24",
	"233.252.0.0/24",
	"2001:db8::/32",
}

var documentationSet = mustPrefixSet(documentationPrefixes...)

// mustPrefixSet 将前缀常量合并为 IPSet，仅用于包级初始化。
func mustPrefixSet(prefixes ...string) *netipx.IPSet {
	var b netipx.IPSetBuilder
	for _, p := range prefixes {
		b.AddPrefix(netip.MustParsePrefix(p))
	}
	set, err := b.IPSet()
	if err != nil {
		panic("xip: build prefix set: " + err.Error())
	}
	return set
}
