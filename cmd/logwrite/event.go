package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lixenwraith/logdw"
)

func newEventCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "event",
		Short: "Write a binary event record",
		Long: `Write one binary event record to the events buffer. Exactly one of
--int, --long or --string selects the value type.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			tag, _ := cmd.Flags().GetInt32("tag")

			t, err := newTransport(cmd)
			if err != nil {
				return err
			}
			defer t.Close()

			var n int
			flags := cmd.Flags()
			switch {
			case flags.Changed("int"):
				v, _ := flags.GetInt32("int")
				n, err = t.BWriteInt(tag, v)
			case flags.Changed("long"):
				v, _ := flags.GetInt64("long")
				n, err = t.BWriteLong(tag, v)
			default:
				v, _ := flags.GetString("string")
				n, err = t.BSWrite(tag, v)
			}
			if err != nil {
				return fmt.Errorf("event write failed (%d): %w", logdw.Code(err), err)
			}
			if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
				fmt.Fprintf(cmd.OutOrStdout(), "%d bytes to %s\n", n, logdw.LogEvents)
			}
			return nil
		},
	}

	cmd.Flags().Int32("tag", 0, "Numeric event tag")
	cmd.Flags().Int32("int", 0, "32-bit integer value")
	cmd.Flags().Int64("long", 0, "64-bit integer value")
	cmd.Flags().String("string", "", "String value")
	cmd.Flags().BoolP("verbose", "v", false, "Print the number of payload bytes sent")
	cmd.MarkFlagRequired("tag")
	cmd.MarkFlagsMutuallyExclusive("int", "long", "string")
	cmd.MarkFlagsOneRequired("int", "long", "string")
	return cmd
}
