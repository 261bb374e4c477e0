package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/icco/beatglow/internal/clicktrack"
	"github.com/icco/beatglow/internal/logger"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var exportOpts struct {
	bpm   int
	bars  int
	beats int
	out   string
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write a click track as a MIDI file",
	Long: `Write a Standard MIDI File with a click on every beat and an accent on every downbeat.

Only tempos the slider can reach (40 to 208 in steps of 4) are accepted.

Example:
  beatglow export --bpm 96 --bars 8 --out click.mid
`,
	Args: cobra.NoArgs,
	RunE: runExport,
}

func init() {
	exportCmd.Flags().IntVar(&exportOpts.bpm, "bpm", 120, "Tempo in beats per minute")
	exportCmd.Flags().IntVar(&exportOpts.bars, "bars", 4, "Number of bars")
	exportCmd.Flags().IntVar(&exportOpts.beats, "beats", 4, "Beats per bar")
	exportCmd.Flags().StringVarP(&exportOpts.out, "out", "o", "click.mid", "Output file")
	rootCmd.AddCommand(exportCmd)
}

// runExport never touches an existing --out unless the new file is complete.
func runExport(cmd *cobra.Command, _ []string) error {
	if err := clicktrack.Validate(exportOpts.bpm, exportOpts.bars, exportOpts.beats); err != nil {
		return err
	}

	f, err := os.CreateTemp(filepath.Dir(exportOpts.out), ".beatglow-*.mid")
	if err != nil {
		return fmt.Errorf("error creating %s: %w", exportOpts.out, err)
	}
	tmp := f.Name()

	if err := clicktrack.Write(f, exportOpts.bpm, exportOpts.bars, exportOpts.beats); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("error closing %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, exportOpts.out); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("error writing %s: %w", exportOpts.out, err)
	}

	logger.GetProjectLogger().WithFields(logrus.Fields{
		"file": exportOpts.out,
		"bpm":  exportOpts.bpm,
		"bars": exportOpts.bars,
	}).Info("click track written")
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d bars at %d BPM to %s\n", exportOpts.bars, exportOpts.bpm, exportOpts.out)
	return nil
}
