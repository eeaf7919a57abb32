package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"codescope/internal/chunk"
	"codescope/internal/conversation"
	"codescope/internal/index"
	"codescope/internal/provider/ollama"
)

// askCmd returns the "ask" command, which sends one or more files to the
// local model with a question, chunking the joined content to fit the
// context budget.
func askCmd() *cobra.Command {
	var modelFlag string

	cmd := &cobra.Command{
		Use:   "ask <question> <path>...",
		Short: "Ask the local model a question about one or more files",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := newLogger()
			if err != nil {
				return err
			}
			defer log.Sync()

			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			model := modelFlag
			if model == "" {
				model = cfg.Ollama.Model
			}

			client := ollama.NewClient(cfg.Ollama.BaseURL,
				ollama.WithRequestsPerMinute(cfg.Ollama.RequestsPerMinute))
			if !client.IsRunning(cmd.Context()) {
				return fmt.Errorf("no Ollama server at %s; start it with 'ollama serve'", cfg.Ollama.BaseURL)
			}

			question := args[0]
			paths := args[1:]

			mgr := index.NewManager(index.WithLogger(log))
			var sections []string
			var names []string
			for _, p := range paths {
				rec, err := mgr.Analyze(p, false)
				if err != nil {
					return err
				}
				sections = append(sections, fmt.Sprintf("File: %s (%s)\n\n%s", rec.Path, rec.Language, rec.Content))
				names = append(names, rec.Path)
			}

			payload := chunk.JoinSections(sections)
			chunks := chunk.Split(payload, cfg.Context.ChunkTokens)
			conv := conversation.Build(conversation.Stages{
				Context: fmt.Sprintf(
					"You are a code analysis assistant. The user will send you the content of these files: %s. Answer questions about them precisely, citing file names and line numbers where possible.",
					strings.Join(names, ", ")),
				Instruction: question,
			}, chunks)

			reply, err := client.Chat(cmd.Context(), model, conv.Messages())
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), reply)
			return nil
		},
	}

	cmd.Flags().StringVar(&modelFlag, "model", "", "override the configured model name")

	return cmd
}
