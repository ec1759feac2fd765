package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/lixenwraith/logdw"
	"github.com/lixenwraith/logdw/formatter"
)

func newTailCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tail",
		Short: "Bind the collector socket and print arriving records",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			count, _ := cmd.Flags().GetInt("count")
			format, _ := cmd.Flags().GetString("format")
			if format != formatter.FormatTxt && format != formatter.FormatJSON {
				return fmt.Errorf("invalid format '%s' (use txt or json)", format)
			}
			f := formatter.New().Type(format)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return tail(ctx, cfg.SocketPath, count, f, cmd.OutOrStdout())
		},
	}
	cmd.Flags().IntP("count", "n", 0, "Exit after this many records (0 runs until interrupted)")
	cmd.Flags().StringP("format", "f", formatter.FormatTxt, "Output format (txt, json)")
	return cmd
}

// removeStaleSocket unlinks a socket file left behind by a dead collector.
// A socket that still accepts datagrams belongs to a running collector and is kept.
func removeStaleSocket(path string) error {
	fi, err := os.Lstat(path)
	if err != nil || fi.Mode()&os.ModeSocket == 0 {
		// missing, or not ours to remove; bind reports the conflict
		return nil
	}

	c, err := net.DialUnix("unixgram", nil, &net.UnixAddr{Name: path, Net: "unixgram"})
	if err == nil {
		c.Close()
		return fmt.Errorf("collector already listening on %s", path)
	}
	if !errors.Is(err, syscall.ECONNREFUSED) {
		return fmt.Errorf("failed to check %s: %w", path, err)
	}
	return os.Remove(path)
}

// tail receives datagrams on path until ctx ends or count records were printed
func tail(ctx context.Context, path string, count int, f *formatter.Formatter, out io.Writer) error {
	if err := removeStaleSocket(path); err != nil {
		return err
	}

	conn, err := net.ListenUnixgram("unixgram", &net.UnixAddr{Name: path, Net: "unixgram"})
	if err != nil {
		return fmt.Errorf("failed to bind %s: %w", path, err)
	}
	defer os.Remove(path)

	go func() {
		<-ctx.Done()
		conn.Close()
	}()

	buf := make([]byte, math.MaxUint16)
	for seen := 0; count == 0 || seen < count; seen++ {
		n, err := conn.Read(buf)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				return nil
			}
			return fmt.Errorf("receive failed: %w", err)
		}

		frame, err := logdw.DecodeFrame(buf[:n])
		if err != nil {
			fmt.Fprintf(out, "malformed datagram: %v\n", err)
			continue
		}
		if _, err := out.Write(f.Format(frame)); err != nil {
			return err
		}
	}
	conn.Close()
	return nil
}
