// cmd/codescope/main.go
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"codescope/internal/config"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"

	configPath string
	verbose    bool
)

func versionString() string {
	return fmt.Sprintf("codescope %s (commit: %s, built: %s)", version, commit, date)
}

// newLogger builds the process logger. Verbose mode switches to the
// human-readable development encoder with debug output; otherwise logs go
// to stderr as JSON at info level. Stdout stays clean for command output
// and the MCP transport.
func newLogger() (*zap.Logger, error) {
	if verbose {
		cfg := zap.NewDevelopmentConfig()
		cfg.OutputPaths = []string{"stderr"}
		return cfg.Build()
	}
	cfg := zap.NewProductionConfig()
	cfg.OutputPaths = []string{"stderr"}
	return cfg.Build()
}

// loadConfig reads the config file from --config, falling back to
// .codescope.toml in the working directory.
func loadConfig() (*config.Config, error) {
	path := configPath
	if path == "" {
		path = ".codescope.toml"
	}
	return config.Load(path)
}

func main() {
	rootCmd := &cobra.Command{
		Use:           "codescope",
		Short:         "Structural code analysis backed by a local LLM",
		Long:          "codescope — analyze source files into a structural cache and offload questions about them to a locally hosted Ollama model.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "enable debug logging")

	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Println(versionString())
		},
	}

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(analyzeCmd())
	rootCmd.AddCommand(askCmd())
	rootCmd.AddCommand(modelsCmd())
	rootCmd.AddCommand(serveCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
