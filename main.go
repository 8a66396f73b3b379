package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/billlayne/mailcomposer/config"
)

var (
	// Global flags
	configPath string
	verbose    bool

	cfgManager *config.Manager
	logger     *zap.Logger
)

// rootCmd opens the interactive composer when run without a subcommand.
var rootCmd = &cobra.Command{
	Use:   "composer",
	Short: "Compose insurance agency emails with AI assistance",
	Long: `composer drafts branded client emails (quotes, renewals, welcome letters,
receipts, late notices and newsletters) and exports them as HTML, calendar
invites, campaign CSVs or Gmail drafts.

Run without arguments to start the interactive terminal composer.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfgManager, err = config.NewManager(configPath)
		if err != nil {
			return err
		}
		logger, err = newLogger(cfgManager.Settings().Log, verbose)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		logger.Debug("command starting", zap.String("command", cmd.CommandPath()))
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: runTUI,
}

// newLogger writes JSON lines to the configured file; the terminal is left
// to the UI.
func newLogger(cfg config.Log, debug bool) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	zc.OutputPaths = []string{cfg.File}
	zc.ErrorOutputPaths = []string{cfg.File}
	zc.EncoderConfig.TimeKey = "time"
	zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		level = zapcore.InfoLevel
	}
	if debug {
		level = zapcore.DebugLevel
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	return zc.Build()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "config/composer.yaml", "Settings file (created with defaults when missing)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(tuiCmd)
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(icsCmd)
	rootCmd.AddCommand(campaignCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(draftCmd)
	rootCmd.AddCommand(extractCmd)
	rootCmd.AddCommand(videoCmd)
	rootCmd.AddCommand(smsCmd)
	rootCmd.AddCommand(templatesCmd)
	rootCmd.AddCommand(listsCmd)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
