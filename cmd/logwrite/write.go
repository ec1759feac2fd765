package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lixenwraith/logdw"
)

func newWriteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "write [message...]",
		Short: "Write a textual record",
		Long: `Write one textual record. The message is the arguments joined by
spaces, or standard input when no arguments are given.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			prioFlag, _ := cmd.Flags().GetString("priority")
			tag, _ := cmd.Flags().GetString("tag")
			buffer, _ := cmd.Flags().GetString("buffer")

			prio, err := logdw.ParsePriority(prioFlag)
			if err != nil {
				return err
			}
			id, err := logdw.ParseLogID(buffer)
			if err != nil {
				return err
			}

			msg := strings.Join(args, " ")
			if len(args) == 0 {
				in, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("failed to read message: %w", err)
				}
				msg = strings.TrimRight(string(in), "\n")
			}

			t, err := newTransport(cmd)
			if err != nil {
				return err
			}
			defer t.Close()

			n, err := t.BufWrite(id, prio, tag, msg)
			if err != nil {
				return fmt.Errorf("write failed (%d): %w", logdw.Code(err), err)
			}
			if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
				fmt.Fprintf(cmd.OutOrStdout(), "%d bytes to %s\n", n, id)
			}
			return nil
		},
	}

	cmd.Flags().StringP("priority", "p", "i", "Priority letter or name (v, d, i, w, e, f)")
	cmd.Flags().StringP("tag", "t", defaultTag(), "Record tag")
	cmd.Flags().StringP("buffer", "b", "main", "Target buffer (main, radio, events, system, crash)")
	cmd.Flags().BoolP("verbose", "v", false, "Print the number of payload bytes sent")
	return cmd
}

func defaultTag() string {
	if name, err := os.Hostname(); err == nil && name != "" {
		return "logwrite@" + name
	}
	return "logwrite"
}
