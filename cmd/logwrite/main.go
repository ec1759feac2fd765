package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/lixenwraith/logdw"
)

var (
	// Version information (set via ldflags during build)
	Version = "dev"
	Commit  = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "logwrite",
		Short: "Write records to the logdw collector socket",
		Long: `logwrite sends textual and binary event records to the collector
daemon over its datagram socket, the same way linked programs do.

The tail subcommand binds the socket itself and prints what arrives,
which is enough to develop against without a running daemon.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetVersionTemplate(fmt.Sprintf("logwrite version %s\nCommit: %s\n", Version, Commit))

	root.PersistentFlags().String("config", "", "TOML config file with a [logdw] table")
	root.PersistentFlags().String("socket", "", "Collector socket path (overrides config)")
	root.PersistentFlags().StringArrayP("set", "o", nil, "Config override key=value, repeatable")

	root.AddCommand(newWriteCmd())
	root.AddCommand(newEventCmd())
	root.AddCommand(newTailCmd())
	return root
}

// loadConfig resolves the config file, then applies --set and --socket on top
func loadConfig(cmd *cobra.Command) (*logdw.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	socket, _ := cmd.Flags().GetString("socket")
	overrides, _ := cmd.Flags().GetStringArray("set")

	cfg := logdw.DefaultConfig()
	if path != "" {
		var err error
		if cfg, err = logdw.NewConfigFromFile(path); err != nil {
			return nil, err
		}
	}

	if socket != "" {
		overrides = append(overrides, "socket_path="+socket)
	}
	if len(overrides) == 0 {
		return cfg, nil
	}

	t := logdw.NewTransport()
	if err := t.ApplyConfig(cfg); err != nil {
		return nil, err
	}
	if err := t.ApplyConfigString(overrides...); err != nil {
		return nil, err
	}
	return t.GetConfig(), nil
}

// newTransport builds a transport from the resolved config
func newTransport(cmd *cobra.Command) (*logdw.Transport, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	t := logdw.NewTransport()
	if err := t.ApplyConfig(cfg); err != nil {
		return nil, err
	}
	return t, nil
}
