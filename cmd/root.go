package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/justcmsco/justcms-go/config"
	"github.com/justcmsco/justcms-go/justcms"
)

var (
	cfgFile string
	cfg     *config.Config
	logger  zerolog.Logger
	client  *justcms.Client

	version   = "dev"
	buildTime = "unknown"
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "justcms",
	Short: "A CLI for browsing JustCMS project content",
	Long: `justcms is a CLI for the JustCMS headless CMS. It lists categories,
pages, menus and layouts of a project, filters page listings with
expressions, and exports a full project snapshot.`,
	PersistentPreRunE: initializeApp,
}

// SetVersion sets the version information from build flags
func SetVersion(v, bt string) {
	version = v
	buildTime = bt
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")

	rootCmd.AddCommand(categoriesCmd)
	rootCmd.AddCommand(pagesCmd)
	rootCmd.AddCommand(pageCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(layoutCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(updateCmd)
	rootCmd.AddCommand(versionCmd)
}

// initializeApp initializes the configuration and the API client
func initializeApp(cmd *cobra.Command, args []string) error {
	// Version and self-update don't need credentials
	switch cmd.Name() {
	case "version", "update":
		return nil
	}

	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger = setupLogger(cfg.Logging)

	client, err = justcms.NewClient(cfg.API.Token, cfg.API.ProjectID, logger,
		justcms.WithBaseURL(cfg.API.BaseURL),
		justcms.WithTimeout(time.Duration(cfg.API.TimeoutS)*time.Second),
	)
	if err != nil {
		return fmt.Errorf("failed to create JustCMS client: %w", err)
	}

	return nil
}

// setupLogger configures the zerolog logger
func setupLogger(cfg config.LoggingConfig) zerolog.Logger {
	level := zerolog.InfoLevel
	switch strings.ToLower(cfg.Level) {
	case "trace":
		level = zerolog.TraceLevel
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	zerolog.SetGlobalLevel(level)

	if cfg.Format == "json" {
		return zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	// Console format; color only when writing to a terminal
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    !cfg.Color || !isatty.IsTerminal(os.Stderr.Fd()),
	}

	return zerolog.New(output).With().Timestamp().Logger()
}

// versionCmd prints build information
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("justcms %s (built %s)\n", version, buildTime)
	},
}
