//go:build linux

package main

import (
	"bytes"
	"context"
	"net"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/logdw"
	"github.com/lixenwraith/logdw/formatter"
)

func TestWriteAndTail(t *testing.T) {
	socket := filepath.Join(t.TempDir(), "logdw")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var out bytes.Buffer
	done := make(chan error, 1)
	go func() {
		done <- tail(ctx, socket, 2, formatter.New(), &out)
	}()

	require.Eventually(t, func() bool {
		_, err := os.Stat(socket)
		return err == nil
	}, 5*time.Second, 10*time.Millisecond)

	run := func(args ...string) {
		cmd := newRootCmd()
		cmd.SetArgs(append(args, "--socket", socket, "-o", "suppress_self=false"))
		require.NoError(t, cmd.Execute())
	}
	run("write", "-p", "e", "-t", "disk", "sector", "lost")
	run("event", "--tag", "77", "--long", "9000000000")

	require.NoError(t, <-done)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "main E/disk: sector lost")
	assert.Contains(t, lines[1], "events [77] 9000000000")
}

func TestTailKeepsLiveCollector(t *testing.T) {
	socket := filepath.Join(t.TempDir(), "logdw")
	collector, err := net.ListenUnixgram("unixgram", &net.UnixAddr{Name: socket, Net: "unixgram"})
	require.NoError(t, err)
	defer collector.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var out bytes.Buffer
	err = tail(ctx, socket, 1, formatter.New(), &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already listening")
	assert.FileExists(t, socket)

	tr, err := logdw.NewBuilder().SocketPath(socket).SuppressSelf(false).Build()
	require.NoError(t, err)
	defer tr.Close()
	_, err = tr.Write(logdw.PriorityInfo, "live", "still here")
	require.NoError(t, err)

	require.NoError(t, collector.SetReadDeadline(time.Now().Add(5*time.Second)))
	buf := make([]byte, 4096)
	n, err := collector.Read(buf)
	require.NoError(t, err)
	frame, err := logdw.DecodeFrame(buf[:n])
	require.NoError(t, err)
	assert.Contains(t, string(formatter.New().Format(frame)), "I/live: still here")
}

func TestTailReplacesStaleSocket(t *testing.T) {
	socket := filepath.Join(t.TempDir(), "logdw")
	dead, err := net.ListenUnixgram("unixgram", &net.UnixAddr{Name: socket, Net: "unixgram"})
	require.NoError(t, err)
	require.NoError(t, dead.Close())
	require.FileExists(t, socket)

	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()

	var out bytes.Buffer
	assert.NoError(t, tail(ctx, socket, 1, formatter.New(), &out))
	assert.Empty(t, out.String())
	assert.NoFileExists(t, socket)
}
