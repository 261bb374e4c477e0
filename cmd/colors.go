package cmd

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/icco/beatglow/internal/palette"
	"github.com/icco/beatglow/internal/tempo"
	"github.com/spf13/cobra"
)

var colorsCmd = &cobra.Command{
	Use:   "colors",
	Short: "Print the tempo color table",
	Long: `Print every slider position with its tempo, beat interval, base color and accent color.

The accent is shown composited over the terminal background.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		bg := palette.RGB{}
		if !lipgloss.HasDarkBackground() {
			bg = palette.RGB{R: 255, G: 255, B: 255}
		}
		return printColors(cmd.OutOrStdout(), palette.Default(), bg)
	},
}

func init() {
	rootCmd.AddCommand(colorsCmd)
}

func printColors(w io.Writer, g *palette.Gradient, bg palette.RGB) error {
	swatch := lipgloss.NewStyle().Width(4)

	if _, err := fmt.Fprintf(w, "%-4s %-4s %-10s %-8s %s\n", "pos", "bpm", "interval", "base", "accent"); err != nil {
		return err
	}
	for p := tempo.MinPosition; p <= tempo.MaxPosition; p++ {
		bpm, err := tempo.FromPosition(p)
		if err != nil {
			return err
		}
		sw, err := g.ColorFor(bpm)
		if err != nil {
			return err
		}
		accent := sw.Accent.Over(bg)

		_, err = fmt.Fprintf(w, "%-4d %-4d %-10v %s %s %s %s\n",
			p, bpm, tempo.Interval(bpm).Round(time.Microsecond),
			sw.Base.Hex(), swatch.Background(lipgloss.Color(sw.Base.Hex())).Render(""),
			sw.Accent, swatch.Background(lipgloss.Color(accent.Hex())).Render(""))
		if err != nil {
			return err
		}
	}
	return nil
}
