//go:build linux

package logdw

import (
	"os"
	"syscall"

	"golang.org/x/sys/unix"
)

// socketChannel is the production Channel on a connected AF_UNIX datagram socket
type socketChannel struct {
	file *os.File
	raw  syscall.RawConn
}

// dialSocket opens a non-blocking datagram socket connected to path
func dialSocket(path string) (Channel, error) {
	fd, err := unix.Socket(unix.AF_UNIX, unix.SOCK_DGRAM|unix.SOCK_CLOEXEC, 0)
	if err != nil {
		return nil, err
	}
	if err := unix.SetNonblock(fd, true); err != nil {
		_ = unix.Close(fd)
		return nil, err
	}
	if err := unix.Connect(fd, &unix.SockaddrUnix{Name: path}); err != nil {
		_ = unix.Close(fd)
		return nil, err
	}

	// The file keeps a reference on the descriptor for the duration of each
	// RawConn callback, so a concurrent Close cannot hand the number to a
	// different file mid-write.
	file := os.NewFile(uintptr(fd), path)
	raw, err := file.SyscallConn()
	if err != nil {
		_ = file.Close()
		return nil, syscall.EBADF
	}
	return &socketChannel{file: file, raw: raw}, nil
}

// Writev sends segs as one datagram. It never waits for the socket to drain.
func (c *socketChannel) Writev(segs [][]byte) (int, error) {
	var n int
	var werr error
	err := c.raw.Write(func(fd uintptr) bool {
		for {
			n, werr = unix.Writev(int(fd), segs)
			if werr != unix.EINTR {
				return true
			}
		}
	})
	if err != nil {
		return 0, syscall.EBADF
	}
	if werr != nil {
		return 0, werr
	}
	return n, nil
}

// Close releases the descriptor
func (c *socketChannel) Close() error {
	if err := c.file.Close(); err != nil {
		return syscall.EBADF
	}
	return nil
}

func currentUID() int64 {
	return int64(unix.Getuid())
}

func currentThreadID() uint16 {
	return uint16(unix.Gettid())
}

// socketWritable reports whether path exists and is writable by this process
func socketWritable(path string) bool {
	return unix.Access(path, unix.W_OK) == nil
}
