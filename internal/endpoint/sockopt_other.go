//go:build !(linux || darwin || freebsd || netbsd || openbsd || dragonfly)

package endpoint

import "syscall"

func reuseAddrControl(network, address string, c syscall.RawConn) error {
	return nil
}
