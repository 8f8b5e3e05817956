//go:build !unix

package xsock

func raiseFileLimit(uint64) error {
	return ErrUnsupportedPlatform
}
