// Package cli implements the notes command line tool.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"notes-assistant/internal/adapter"
	"notes-assistant/internal/adapter/extractor"
	"notes-assistant/internal/adapter/generation"
	"notes-assistant/internal/config"
	"notes-assistant/internal/domain"
	"notes-assistant/internal/logger"
	"notes-assistant/internal/service"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

// localSession names the single session of a command line run.
const localSession = "local"

// App holds what the commands need. Tests build it directly.
type App struct {
	Assistant service.AssistantService
	Extractor *extractor.TextExtractor
	Fs        afero.Fs
}

// NewApp wires the assistant for one process with in-memory session state.
func NewApp(ctx context.Context, cfg *config.Config, fs afero.Fs) (*App, error) {
	client, err := generation.NewClient(ctx, cfg.LLM)
	if err != nil {
		return nil, err
	}
	store := service.NewSessionStore(adapter.NewMemoryCacheAdapter(), cfg.Session.TTL)

	var writer service.ArtifactWriter
	if cfg.Artifacts.Enabled {
		writer = service.NewArtifactWriter(fs, cfg.Artifacts.OutputDir, false)
	}
	return &App{
		Assistant: service.NewAssistantService(client, store, writer),
		Extractor: extractor.New(),
		Fs:        fs,
	}, nil
}

// NewRootCmd builds the command tree. app is resolved lazily so that --help
// works without any configuration.
func NewRootCmd(app func(cmd *cobra.Command) (*App, error)) *cobra.Command {
	root := &cobra.Command{
		Use:           "notes",
		Short:         "Study notes assistant",
		Long:          "Generate study notes, summarize notes and quiz yourself with multiple-choice questions.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().String("provider", "", "Generation backend: gemini, openai, anthropic, ollama or mock (overrides llm.provider)")
	root.PersistentFlags().String("model", "", "Model name (overrides llm.model)")
	root.PersistentFlags().String("output-dir", "", "Directory for notes.txt and summary.txt (overrides artifacts.output_dir)")

	root.AddCommand(newNotesCmd(app), newSummarizeCmd(app), newQuizCmd(app))
	return root
}

// Execute runs the tool with configuration from file, environment and flags.
func Execute() error {
	root := NewRootCmd(func(cmd *cobra.Command) (*App, error) {
		applyFlagOverrides(cmd)
		cfg, err := config.LoadCLIConfig()
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
		if err := logger.Initialize(cfg.Logger); err != nil {
			return nil, fmt.Errorf("init logger: %w", err)
		}
		return NewApp(cmd.Context(), cfg, afero.NewOsFs())
	})
	err := root.ExecuteContext(context.Background())
	_ = logger.Sync()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", userMessage(err))
	}
	return err
}

// applyFlagOverrides routes flags through the environment that config reads.
func applyFlagOverrides(cmd *cobra.Command) {
	for flag, env := range map[string]string{
		"provider":   "LLM_PROVIDER",
		"model":      "LLM_MODEL",
		"output-dir": "ARTIFACTS_OUTPUT_DIR",
	} {
		if v, _ := cmd.Flags().GetString(flag); v != "" {
			_ = os.Setenv(env, v)
		}
	}
}

// userMessage prefers the domain message, which is written for people.
func userMessage(err error) string {
	var de *domain.DomainError
	if errors.As(err, &de) {
		return de.Message
	}
	return err.Error()
}

func newNotesCmd(app func(*cobra.Command) (*App, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "notes <topic>",
		Short: "Generate detailed, structured notes on a topic",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := app(cmd)
			if err != nil {
				return err
			}
			text, err := a.Assistant.GenerateNotes(cmd.Context(), localSession, strings.Join(args, " "))
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), text)
			return nil
		},
	}
}

func newSummarizeCmd(app func(*cobra.Command) (*App, error)) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "summarize",
		Short: "Summarize notes from a PDF/DOCX file or pasted text",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := app(cmd)
			if err != nil {
				return err
			}
			notes, err := a.sourceText(cmd)
			if err != nil {
				return err
			}
			text, err := a.Assistant.Summarize(cmd.Context(), localSession, notes)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), text)
			return nil
		},
	}
	addSourceFlags(cmd)
	return cmd
}

func addSourceFlags(cmd *cobra.Command) {
	cmd.Flags().String("file", "", "PDF or DOCX document with the notes")
	cmd.Flags().String("text", "", "Notes as plain text; use - to read standard input")
}

// sourceText reads --file, falling back to --text when the file format
// yields no text.
func (a *App) sourceText(cmd *cobra.Command) (string, error) {
	path, _ := cmd.Flags().GetString("file")
	pasted, _ := cmd.Flags().GetString("text")
	if pasted == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
		pasted = string(data)
	}
	if path == "" {
		return pasted, nil
	}
	if !a.Extractor.Supports(path) {
		if pasted == "" {
			fmt.Fprintf(cmd.ErrOrStderr(), "No text could be read from %s; supported formats are PDF and DOCX.\n", path)
		}
		return pasted, nil
	}

	data, err := afero.ReadFile(a.Fs, path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	text, err := a.Extractor.Extract(cmd.Context(), path, data)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(text) == "" {
		if pasted == "" {
			fmt.Fprintf(cmd.ErrOrStderr(), "No text could be read from %s; supported formats are PDF and DOCX.\n", path)
		}
		return pasted, nil
	}
	return text, nil
}
