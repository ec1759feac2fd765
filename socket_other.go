//go:build !linux

package logdw

import (
	"os"
	"syscall"
)

// dialSocket is unsupported off linux; the transport falls back to disabled
func dialSocket(path string) (Channel, error) {
	return nil, syscall.ENOSYS
}

func currentUID() int64 {
	return int64(os.Getuid())
}

func currentThreadID() uint16 {
	return uint16(os.Getpid())
}

func socketWritable(path string) bool {
	return false
}
