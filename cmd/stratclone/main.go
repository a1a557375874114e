package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"stratclone-cli/internal/app"
	"stratclone-cli/internal/orchestrator"
	"stratclone-cli/pkg/models"
)

// Build-time variables injected via ldflags
var (
	version   = "dev"
	commit    = "unknown"
	date      = "unknown"
	goVersion = runtime.Version()
)

var rootCmd = &cobra.Command{
	Use:   "stratclone",
	Short: "Create a new strategy config from the previous one",
	Long: `stratclone offers to replicate the previously stored strategy configuration file.

On confirmation it asks for an optional note, copies the previous file to a new
timestamped file (conf_<YYYY-MM-DD:HH:MM:SS>[__<note>].yml), activates it and
saves it as the previous strategy for the next run.

The strategies directory and previous strategy come from the config file
(~/.config/stratclone/config.toml), STRATCLONE_* environment variables or flags.

Exit status is 2 when the new file was created but could not be activated or
saved as the previous strategy; 'stratclone import <file>' finishes the job.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		// Check if version flag is set
		if versionFlag, _ := cmd.Flags().GetBool("version"); versionFlag {
			versionCmd.Run(cmd, args)
			return nil
		}

		request, err := buildRequestFromFlags(cmd)
		if err != nil {
			return fmt.Errorf("invalid arguments: %w", err)
		}

		return app.Run(cmd.Context(), request)
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  "Print detailed version information including build version, commit, date, and platform details.",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("stratclone version %s\n", version)
		fmt.Printf("  commit: %s\n", commit)
		fmt.Printf("  built: %s\n", date)
		fmt.Printf("  go version: %s\n", goVersion)
		fmt.Printf("  platform: %s/%s\n", runtime.GOOS, runtime.GOARCH)
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved strategy files",
	Long:  "List the strategy files in the configured strategies directory. The previous strategy is marked with *.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		request, err := buildRequestFromFlags(cmd)
		if err != nil {
			return fmt.Errorf("invalid arguments: %w", err)
		}

		return app.ListStrategies(request, cmd.OutOrStdout())
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Activate a strategy file",
	Long:  "Activate an existing strategy file from the strategies directory and save it as the previous strategy.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		request, err := buildRequestFromFlags(cmd)
		if err != nil {
			return fmt.Errorf("invalid arguments: %w", err)
		}

		return app.ImportStrategy(cmd.Context(), request, args[0])
	},
}

func init() {
	// Add subcommands
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(importCmd)

	// Global flags
	rootCmd.PersistentFlags().StringP("config", "c", "", "config file path (default ~/.config/stratclone/config.toml)")
	rootCmd.PersistentFlags().StringP("dir", "d", "", "strategies directory (overrides config)")
	rootCmd.PersistentFlags().String("log-level", "", "log level: debug, info, warn or error (overrides config)")
	rootCmd.PersistentFlags().BoolP("version", "v", false, "print version information")

	// Main command flags
	rootCmd.Flags().StringP("previous", "p", "", "previous strategy file to replicate (overrides config)")
	rootCmd.Flags().StringP("answer", "a", "", "answer the replicate question without prompting (yes/no)")
	rootCmd.Flags().BoolP("clipboard", "b", false, "copy the new file name to the clipboard")
}

// buildRequestFromFlags constructs a Request from command flags
func buildRequestFromFlags(cmd *cobra.Command) (*models.Request, error) {
	request := models.NewRequest()
	flags := cmd.Flags()

	var err error

	if request.ConfigPath, err = flags.GetString("config"); err != nil {
		return nil, fmt.Errorf("invalid config flag: %w", err)
	}

	if request.StrategiesDir, err = flags.GetString("dir"); err != nil {
		return nil, fmt.Errorf("invalid dir flag: %w", err)
	}

	if request.LogLevel, err = flags.GetString("log-level"); err != nil {
		return nil, fmt.Errorf("invalid log-level flag: %w", err)
	}

	// The remaining flags only exist on the root command
	if flags.Lookup("previous") == nil {
		return request, nil
	}

	if request.Previous, err = flags.GetString("previous"); err != nil {
		return nil, fmt.Errorf("invalid previous flag: %w", err)
	}
	request.Previous = strings.TrimSpace(request.Previous)

	// Track if --answer was explicitly set; an empty answer is still an answer
	if flags.Changed("answer") {
		answer, err := flags.GetString("answer")
		if err != nil {
			return nil, fmt.Errorf("invalid answer flag: %w", err)
		}
		request.Answer = &answer
	}

	if request.CopyName, err = flags.GetBool("clipboard"); err != nil {
		return nil, fmt.Errorf("invalid clipboard flag: %w", err)
	}

	return request, nil
}

func main() {
	// Missing .env is fine; STRATCLONE_* variables may come from the shell
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	// Disable usage on error to show only our custom error messages
	rootCmd.SilenceUsage = true
	rootCmd.SilenceErrors = true

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(exitCode(err))
	}
}

// exitCode returns 2 when the strategy file exists and only activation or
// persistence failed, 1 for any other error
func exitCode(err error) int {
	if orchestrator.IsRecoverableError(err) {
		return 2
	}
	return 1
}
