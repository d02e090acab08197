package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/yourusername/secplus-chat/internal/client/connection"
	"github.com/yourusername/secplus-chat/internal/client/ui"
	"github.com/yourusername/secplus-chat/internal/config"
	"github.com/yourusername/secplus-chat/internal/logging"
)

var (
	cfg    = &config.Config{}
	flags  config.Config // raw flag values; only the ones set on the command line are applied
	logger = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "secplus-chat",
	Short: "Security+ study chat: Azerbaijani translation and A2 vocabulary for English text",
	Long: `secplus-chat sends English Security+ text to the analysis backend and shows
the Azerbaijani translation, an A2-level vocabulary list, the unknown-word
count and a short exam note.

Run without arguments to start the interactive chat.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg = loadConfig(cmd)
		if err := cfg.Validate(); err != nil {
			return err
		}
		var err error
		logger, err = logging.New(cfg.LogFile, cfg.LogLevel)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runInteractiveChat()
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flags.Origin, "origin", config.DefaultOrigin, "backend origin (env SECPLUS_ORIGIN)")
	pf.StringVar(&flags.LogFile, "log-file", config.DefaultLogFile, "log file path (env SECPLUS_LOG_FILE)")
	pf.StringVar(&flags.LogLevel, "log-level", config.DefaultLogLevel, "log level: debug, info, warn, error (env SECPLUS_LOG_LEVEL)")
	pf.StringVar(&flags.ExportDir, "export-dir", config.DefaultExportDir, "directory for HTML transcript exports (env SECPLUS_EXPORT_DIR)")

	rootCmd.AddCommand(askCmd, healthCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig reads the environment (and .env), then applies the flags that
// were set explicitly on cmd
func loadConfig(cmd *cobra.Command) *config.Config {
	c := config.Load()
	set := cmd.Flags()
	if set.Changed("origin") {
		c.Origin = flags.Origin
	}
	if set.Changed("log-file") {
		c.LogFile = flags.LogFile
	}
	if set.Changed("log-level") {
		c.LogLevel = flags.LogLevel
	}
	if set.Changed("export-dir") {
		c.ExportDir = flags.ExportDir
	}
	return c
}

func newManager() *connection.Manager {
	return connection.NewManager(cfg.Origin, connection.WithLogger(logger))
}

// runInteractiveChat runs the Bubble Tea chat interface
func runInteractiveChat() error {
	model, err := ui.NewModel(ui.Config{
		Conn:      newManager(),
		ExportDir: cfg.ExportDir,
		Logger:    logger,
	})
	if err != nil {
		return err
	}
	defer model.Close()

	logger.Info("starting chat", zap.String("origin", cfg.Origin))
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("chat ui: %w", err)
	}
	return nil
}
