package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/ternarybob/arbor"

	"github.com/ternarybob/ordino/internal/app"
	"github.com/ternarybob/ordino/internal/common"
)

// configPaths is a custom flag type that allows multiple -config flags
type configPaths []string

func (c *configPaths) String() string {
	return fmt.Sprintf("%v", *c)
}

func (c *configPaths) Set(value string) error {
	*c = append(*c, value)
	return nil
}

var (
	// Command-line flags
	configFiles  configPaths // Multiple -config flags supported
	worksheet    = flag.String("worksheet", "", "Worksheet CSV path (overrides config)")
	outDir       = flag.String("out", "", "Output directory for intermediate documents (overrides config)")
	reportPath   = flag.String("report", "", "HTML report path (overrides config)")
	showVersion  = flag.Bool("version", false, "Print version information")
	showVersionV = flag.Bool("v", false, "Print version information (shorthand)")

	// Global state
	config *common.Config
	logger arbor.ILogger
)

func init() {
	// Register custom flag for multiple config files
	flag.Var(&configFiles, "config", "Configuration file path (can be specified multiple times, later files override earlier ones)")
	flag.Var(&configFiles, "c", "Configuration file path (shorthand)")

	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: ordino [flags] <stage>\n\n")
		fmt.Fprintf(flag.CommandLine.Output(), "Stages:\n")
		fmt.Fprintf(flag.CommandLine.Output(), "  extract     Parse the worksheet into the current structure documents\n")
		fmt.Fprintf(flag.CommandLine.Output(), "  suggest     Re-bucket the current documents into the target taxonomy\n")
		fmt.Fprintf(flag.CommandLine.Output(), "  normalize   Map field names to canonical semantic keys\n")
		fmt.Fprintf(flag.CommandLine.Output(), "  report      Render the HTML comparison report\n")
		fmt.Fprintf(flag.CommandLine.Output(), "  run         Execute the full pipeline (default)\n\n")
		fmt.Fprintf(flag.CommandLine.Output(), "Flags:\n")
		flag.PrintDefaults()
	}
}

func main() {
	// Parse command-line flags
	flag.Parse()

	// Handle version flag
	if *showVersion || *showVersionV {
		fmt.Printf("Ordino version %s\n", common.GetVersion())
		os.Exit(0)
	}

	stage := app.StageRun
	if flag.NArg() > 0 {
		stage = flag.Arg(0)
	}

	// Startup sequence (REQUIRED ORDER):
	// 1. Load config (defaults -> file1 -> file2 -> ... -> env)
	// 2. Apply CLI overrides (highest priority)
	// 3. Initialize logger
	// 4. Print banner

	// Auto-discover config file if not specified
	if len(configFiles) == 0 {
		if _, err := os.Stat("ordino.toml"); err == nil {
			configFiles = append(configFiles, "ordino.toml")
		} else if _, err := os.Stat("deployments/local/ordino.toml"); err == nil {
			// Fallback: check deployments/local for users running from project root
			configFiles = append(configFiles, "deployments/local/ordino.toml")
		}
	}

	// 1. Load configuration (default -> file1 -> file2 -> ... -> env -> CLI)
	var err error
	config, err = common.LoadFromFiles(configFiles...)
	if err != nil {
		// Use temporary logger for startup errors
		tempLogger := arbor.NewLogger()
		tempLogger.Fatal().Strs("paths", configFiles).Err(err).Msg("Failed to load configuration files")
		os.Exit(1)
	}

	// 2. Apply command-line flag overrides (highest priority)
	common.ApplyFlagOverrides(config, *worksheet, *outDir, *reportPath)

	// 3. Initialize logger with final configuration
	logger = common.InitLogger(config)

	// 4. Print banner
	common.PrintBanner(common.GetVersion())

	logger.Info().
		Strs("config_files", configFiles).
		Str("stage", stage).
		Str("worksheet", config.Worksheet.Path).
		Str("output_dir", config.Output.Dir).
		Msg("Application configuration loaded")

	application, err := app.New(config, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("Failed to initialize application")
		os.Exit(1)
	}

	if err := application.RunStage(stage); err != nil {
		logger.Fatal().Err(err).Str("stage", stage).Msg("Pipeline stage failed")
		os.Exit(1)
	}

	logger.Info().Str("stage", stage).Msg("Pipeline stage completed")
}
