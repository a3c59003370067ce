// Package app contains the Cobra command tree for fskit.
package app

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/blackwell-systems/fskit/internal/config"
	"github.com/blackwell-systems/fskit/internal/output"
)

var appVersion = "dev"

// SetVersion sets the application version (called from main with ldflags value).
func SetVersion(v string) {
	appVersion = v
	rootCmd.Version = v
}

var (
	flagNoColor bool
	flagVerbose bool
	flagConfig  string
)

// appCfg is loaded once in PersistentPreRunE, before any subcommand runs.
var appCfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "fskit",
	Short: "Cross-platform filesystem convenience commands",
	Long: `fskit wraps everyday filesystem chores behind a path engine that
understands Unix roots, Windows drive letters, and UNC network locations,
so the same invocation works unmodified on Windows and Unix. All paths
are printed with forward slashes.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(flagConfig)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		appCfg = cfg
		output.DetectTTY()
		applyOutputConfig(cfg)
		if flagVerbose {
			log.SetLevel(log.DebugLevel)
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println(output.StyleBold.Render("fskit " + appVersion))
		fmt.Println()
		fmt.Println(output.StyleHeader.Render("Use a subcommand:"))
		fmt.Println("  rmd     " + output.StyleMuted.Render("Recursively delete empty directories"))
		fmt.Println("  uzd     " + output.StyleMuted.Render("Unpack every archive in a directory"))
		fmt.Println("  log     " + output.StyleMuted.Render("Append a timestamped line to a log file"))
		return nil
	},
}

// applyOutputConfig disables color when the config or the --no-color flag
// says so.
func applyOutputConfig(cfg *config.Config) {
	if flagNoColor || !cfg.Output.Color {
		output.SetNoColor(true)
	}
}

// Execute is the entry point called from main.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, output.StyleError.Render("error:"), err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file path (default: ~/.config/fskit/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Enable verbose output")
}
