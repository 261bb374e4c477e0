package cmd

import (
	"fmt"
	"io"
	"os"

	goerrors "github.com/gruntwork-io/go-commons/errors"
	"github.com/icco/beatglow/internal/config"
	"github.com/icco/beatglow/internal/logger"
	"github.com/spf13/cobra"
)

var (
	cfg       config.Config
	logCloser io.Closer

	logFile  string
	logLevel string
)

var rootCmd = &cobra.Command{
	Use:   "beatglow",
	Short: "A terminal metronome with a tempo-colored pulse",
	Long: `beatglow is a Terminal User Interface (TUI) metronome built with Bubbletea.

Move the tempo slider between 40 and 208 BPM. Every beat plays a short synthesized
tick and flashes the play button, whose colors follow a gradient keyed to tempo.

Settings come from BEATGLOW_* environment variables and can be overridden by flags.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: teardown,
	RunE:              runPlay,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "beatglow.log", "File to write logs to (empty for stderr)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	addPlayFlags(rootCmd)
}

// setup loads the environment, applies persistent flags and opens the log.
// Commands validate cfg themselves once their own flags are applied.
func setup(cmd *cobra.Command, _ []string) error {
	var err error
	cfg, err = config.Parse()
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("log-file") {
		cfg.LogFile = logFile
	}
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel = logLevel
	}

	logCloser, err = logger.Configure(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		return err
	}
	logger.GetProjectLogger().WithField("command", cmd.Name()).Debug("starting")
	return nil
}

func teardown(*cobra.Command, []string) {
	if logCloser != nil {
		_ = logCloser.Close()
	}
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		err = goerrors.WithStackTrace(err)
		logger.GetProjectLogger().Error(goerrors.PrintErrorWithStackTrace(err))
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
