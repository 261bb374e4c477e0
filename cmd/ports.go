package cmd

import (
	"fmt"

	"github.com/icco/beatglow/internal/midiout"
	"github.com/spf13/cobra"
)

var portsCmd = &cobra.Command{
	Use:   "ports",
	Short: "List MIDI output ports",
	Long:  `List MIDI output ports. Any substring of a name can be passed to play --midi-out.`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, _ []string) {
		names := midiout.Ports()
		if len(names) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No MIDI output ports found.")
			return
		}
		for i, name := range names {
			fmt.Fprintf(cmd.OutOrStdout(), "%d: %s\n", i, name)
		}
	},
}

func init() {
	rootCmd.AddCommand(portsCmd)
}
