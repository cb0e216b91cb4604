// Package commands implements the tracetutor CLI commands.
package commands

import (
	"context"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"TraceTutor/internal/telemetry"
)

var versionInfo struct {
	version string
	commit  string
	date    string
}

// SetVersionInfo sets version information from main.
func SetVersionInfo(version, commit, date string) {
	versionInfo.version = version
	versionInfo.commit = commit
	versionInfo.date = date
	telemetry.Version = version
}

var (
	configPath string
	debugFlag  bool
)

var rootCmd = &cobra.Command{
	Use:   "tracetutor",
	Short: "Learn PCB design with projects, learning paths and an AI tutor",
	Long: `TraceTutor is an interactive guide to printed circuit board design.

Browse beginner to advanced projects, follow learning paths, and ask the
tutor questions. Runs as a terminal UI by default or as a web server.

Commands:
  tracetutor            - Start the terminal UI (same as 'tracetutor tui')
  tracetutor serve      - Start the web front end
  tracetutor projects   - List and filter catalog projects
  tracetutor version    - Print version information

Environment variables:
  GROQ_API_KEY                    - Chat backend key (VITE_GROQ_API_KEY also accepted)
  OPENAI_API_KEY, GROK_API_KEY    - Keys for the alternative chat backends
  ANTHROPIC_API_KEY               - Recommendation provider "anthropic"
  GEMINI_API_KEY                  - Recommendation provider "gemini"
  TRACETUTOR_*                    - Override tracetutor.yaml settings

A .env file in the working directory is loaded if present.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runTUI,
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to tracetutor.yaml (default ./tracetutor.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "enable debug logging")

	rootCmd.AddCommand(tuiCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(projectsCmd)
	rootCmd.AddCommand(versionCmd)
}

func loadDotenvBestEffort() {
	_ = godotenv.Load()
}

// Execute runs the root command.
func Execute() error {
	loadDotenvBestEffort()
	return rootCmd.ExecuteContext(context.Background())
}
