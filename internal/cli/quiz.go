package cli

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"notes-assistant/internal/domain"

	"github.com/spf13/cobra"
)

func newQuizCmd(app func(*cobra.Command) (*App, error)) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quiz",
		Short: "Generate a multiple-choice quiz from notes and answer it",
		Long: "Generate a multiple-choice quiz from notes, then answer each question " +
			"with its letter (A-D) or number (1-4). An empty line skips a question.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if textFlag, _ := cmd.Flags().GetString("text"); textFlag == "-" {
				return fmt.Errorf("standard input is needed for answers; pass the notes with --file or --text")
			}
			a, err := app(cmd)
			if err != nil {
				return err
			}
			notes, err := a.sourceText(cmd)
			if err != nil {
				return err
			}
			quiz, err := a.Assistant.GenerateQuiz(cmd.Context(), localSession, notes)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if quiz.State() == domain.QuizStateEmpty {
				fmt.Fprintln(out, "The generated text contained no usable questions. Try again.")
				return nil
			}

			if err := a.askAll(cmd, quiz, bufio.NewReader(cmd.InOrStdin())); err != nil {
				return err
			}

			_, result, err := a.Assistant.SubmitQuiz(cmd.Context(), localSession)
			if err != nil {
				return err
			}
			printResult(out, result)
			return nil
		},
	}
	addSourceFlags(cmd)
	return cmd
}

func (a *App) askAll(cmd *cobra.Command, quiz *domain.QuizSession, in *bufio.Reader) error {
	out := cmd.OutOrStdout()
	for i, item := range quiz.Items {
		fmt.Fprintf(out, "\nQ%d. %s\n", i+1, item.Question)
		for _, opt := range item.Options {
			fmt.Fprintf(out, "   %s\n", opt)
		}
		for {
			fmt.Fprint(out, "Your answer: ")
			line, err := in.ReadString('\n')
			choice := strings.TrimSpace(line)
			if choice == "" {
				if err == io.EOF {
					return nil
				}
				if err != nil {
					return fmt.Errorf("read answer: %w", err)
				}
				break
			}
			option, ok := pickOption(item.Options, choice)
			if !ok {
				fmt.Fprintln(out, "Please answer with A-D or 1-4.")
				if err == io.EOF {
					return nil
				}
				continue
			}
			if _, selErr := a.Assistant.SelectAnswer(cmd.Context(), localSession, i, option); selErr != nil {
				return selErr
			}
			if err == io.EOF {
				return nil
			}
			break
		}
	}
	return nil
}

// pickOption resolves a letter or 1-based number to one of options.
func pickOption(options []string, choice string) (string, bool) {
	if n, err := strconv.Atoi(choice); err == nil {
		if n >= 1 && n <= len(options) {
			return options[n-1], true
		}
		return "", false
	}
	letter := strings.ToUpper(choice[:1])
	for _, opt := range options {
		if strings.HasPrefix(strings.ToUpper(opt), letter) && (len(choice) == 1 || strings.EqualFold(opt, choice)) {
			return opt, true
		}
	}
	return "", false
}

func printResult(out io.Writer, result *domain.QuizResult) {
	fmt.Fprintln(out)
	for _, item := range result.Items {
		mark := "✗"
		if item.Correct {
			mark = "✓"
		}
		selected := item.Selected
		if selected == "" {
			selected = "(no answer)"
		}
		fmt.Fprintf(out, "%s Q%d. %s\n   yours: %s, correct: %s\n", mark, item.Index+1, item.Question, selected, item.Answer)
	}
	fmt.Fprintf(out, "\nScore: %d/%d\n", result.Score, result.Total)
}
