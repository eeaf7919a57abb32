package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"codescope/internal/provider/ollama"
)

// modelsCmd returns the "models" command, listing the models installed on
// the configured Ollama server.
func modelsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "models",
		Short: "List models available on the Ollama server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			client := ollama.NewClient(cfg.Ollama.BaseURL)
			if !client.IsRunning(cmd.Context()) {
				return fmt.Errorf("no Ollama server at %s; start it with 'ollama serve'", cfg.Ollama.BaseURL)
			}

			models, err := client.ListModels(cmd.Context())
			if err != nil {
				return err
			}
			if len(models) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No models installed. Pull one with 'ollama pull <name>'.")
				return nil
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tSIZE\tDIGEST")
			for _, m := range models {
				digest := m.Digest
				if len(digest) > 12 {
					digest = digest[:12]
				}
				fmt.Fprintf(w, "%s\t%s\t%s\n", m.Name, formatBytes(m.Size), digest)
			}
			return w.Flush()
		},
	}
}

// formatBytes formats a byte count into a human-readable string
// (e.g., "4.0 GB", "512.0 MB").
func formatBytes(b int64) string {
	const (
		kb = 1024
		mb = kb * 1024
		gb = mb * 1024
	)
	switch {
	case b >= gb:
		return fmt.Sprintf("%.1f GB", float64(b)/float64(gb))
	case b >= mb:
		return fmt.Sprintf("%.1f MB", float64(b)/float64(mb))
	case b >= kb:
		return fmt.Sprintf("%.1f KB", float64(b)/float64(kb))
	default:
		return fmt.Sprintf("%d B", b)
	}
}
