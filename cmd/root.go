package cmd

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/wadespear/outlook-chatgpt-addin/internal/logging"
)

// rootCmd represents the base command for the add-in tooling
var rootCmd = &cobra.Command{
	Use:   "outlook-chatgpt-addin",
	Short: "Development tooling for the ChatGPT Outlook add-in",
	Long: `outlook-chatgpt-addin builds and serves the ChatGPT email assistant
add-in for Outlook.

It can:
  - Serve the add-in over HTTPS for sideloading (default)
  - Generate the add-in icons as PNG files`,
	SilenceUsage:      true,
	PersistentPreRunE: setupRuntime,
}

// version will be set by main
var version = "dev"

// Persistent flags shared by every command
var (
	debugLogging bool
	jsonLogs     bool
	envFile      string
)

// SetVersion sets the version for the root command
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// Execute is the main entry point for the CLI application
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "outlook-chatgpt-addin version %s\n" .Version}}`)

	// If no subcommand is provided, run the serve command by default
	if len(os.Args) == 1 {
		os.Args = append(os.Args, "serve")
	}

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

// setupRuntime loads .env files and installs the process logger before any
// command runs.
func setupRuntime(cmd *cobra.Command, _ []string) error {
	if err := loadEnvFiles(envFile); err != nil {
		return err
	}
	slog.SetDefault(logging.New(cmd.ErrOrStderr(), debugLogging, jsonLogs))
	return nil
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debugLogging, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&jsonLogs, "log-json", false, "Write logs as JSON")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", "", "Load environment variables from this file instead of .env.local and .env")

	rootCmd.AddCommand(newGenerateIconsCmd())
	rootCmd.AddCommand(newServeCmd())
	rootCmd.AddCommand(newVersionCmd())
}
