package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"frankentokens/config"
	"frankentokens/storage"
	"frankentokens/theme"
)

var (
	configDir  string
	appVersion = "0.2.0"

	cfg    config.Config
	logger zerolog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "frankentokens",
	Short: "frankentokens – FrankenUI theme token extractor",
	Long: "frankentokens scrapes the FrankenUI CSS bundle for per-theme light and dark " +
		"variable blocks and writes them as JSON and CSV.",
	Args:              cobra.NoArgs,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	RunE:              runExtract,
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configuration management",
	Long:  "Manage frankentokens configuration files.",
}

var configGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate a default configuration file",
	Long:  "Generate a default frankentokens.config file in the config directory (or current directory if not specified).",
	Args:  cobra.NoArgs,
	RunE:  runConfigGenerate,
}

func init() {
	wd, _ := os.Getwd()
	rootCmd.Version = appVersion
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", wd, "Directory holding frankentokens.config (default: current directory)")

	configCmd.AddCommand(configGenerateCmd)
	rootCmd.AddCommand(configCmd)
}

// setup loads the configuration and builds the logger for every command.
func setup(cmd *cobra.Command, args []string) error {
	loaded, err := config.Load(configDir)
	if err != nil {
		return err
	}
	cfg = loaded
	logger = newLogger(cfg.LogLevel)
	return nil
}

func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || level == "" {
		lvl = zerolog.InfoLevel
	}
	out := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}
	return zerolog.New(out).Level(lvl).With().Timestamp().Logger()
}

func extractorOptions() theme.Options {
	return theme.Options{
		Prefix:         cfg.ThemePrefix,
		IncludeDefault: cfg.IncludeDefault,
	}
}

// runExtract reads the FrankenUI bundle and writes the JSON and CSV
// exports. I/O errors are returned unwrapped.
func runExtract(cmd *cobra.Command, args []string) error {
	css, err := os.ReadFile(cfg.CSSPath)
	if err != nil {
		return err
	}

	reg := theme.NewExtractor(extractorOptions()).Extract(string(css))
	logger.Debug().Str("path", cfg.CSSPath).Int("themes", reg.Len()).Msg("extracted themes")

	store := storage.New(cfg.OutputDir)
	jsonPath, err := store.WriteJSON(cfg.JSONOut, reg)
	if err != nil {
		return err
	}
	csvPath, err := store.WriteText(cfg.CSVOut, theme.CSV(reg))
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", jsonPath)
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", csvPath)
	return nil
}

func runConfigGenerate(cmd *cobra.Command, args []string) error {
	dirAbs, err := filepath.Abs(configDir)
	if err != nil {
		return fmt.Errorf("resolve config dir: %w", err)
	}

	// Check if config file already exists
	cfgPath := filepath.Join(dirAbs, config.FileName)
	if _, err := os.Stat(cfgPath); err == nil {
		return fmt.Errorf("config file already exists: %s", cfgPath)
	}

	if err := config.Save(dirAbs, config.Default()); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Generated default config file: %s\n", cfgPath)
	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
