package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/leofalp/webscout/patterns"
	"github.com/leofalp/webscout/patterns/react"
	"github.com/leofalp/webscout/providers/observability"
)

func newAskCommand(flags *globalFlags) *cobra.Command {
	var maxIterations int

	cmd := &cobra.Command{
		Use:   "ask [question]",
		Short: "Answer a question, or start an interactive session when none is given",
		Example: `  webscout ask "Who maintains the Go x/net module?"
  webscout ask --max-iterations 5`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, observer, err := flags.load(cmd)
			if err != nil {
				return err
			}
			if maxIterations > 0 {
				cfg.Agent.MaxIterations = maxIterations
			}

			a, err := newAgent(cfg, observer)
			if err != nil {
				return err
			}

			if len(args) > 0 {
				answer, err := a.loop.Execute(cmd.Context(), strings.Join(args, " "))
				if err != nil {
					return err
				}
				printAnswer(cmd.OutOrStdout(), answer)
				return nil
			}
			return a.session(cmd.Context(), cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr(), observer)
		},
	}

	cmd.Flags().IntVar(&maxIterations, "max-iterations", 0, "reasoning iterations before a forced answer (default from config)")
	return cmd
}

// session reads one question per line until EOF, "exit" or "quit". History
// carries over between questions; "/reset" clears it. Failed turns are
// reported and the session goes on.
func (a *agent) session(ctx context.Context, in io.Reader, out, prompt io.Writer, observer observability.Provider) error {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)

	for {
		fmt.Fprint(prompt, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(prompt)
			return scanner.Err()
		}

		line := strings.TrimSpace(scanner.Text())
		switch line {
		case "":
			continue
		case "exit", "quit":
			return nil
		case "/reset":
			a.client.Memory().ClearMessages(ctx)
			fmt.Fprintln(prompt, "conversation cleared")
			continue
		}

		answer, err := a.loop.Execute(ctx, line)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if errors.Is(err, react.ErrToolNotFound) {
				observer.Warn(ctx, "model requested an unknown tool", observability.Error(err))
			}
			fmt.Fprintln(prompt, "Error:", err)
			continue
		}
		printAnswer(out, answer)
	}
}

func printAnswer(w io.Writer, answer *patterns.Answer) {
	fmt.Fprintln(w, strings.TrimSpace(answer.Content))
	if answer.IterationLimitReached {
		fmt.Fprintf(w, "\n(answered after reaching the limit of %d iterations)\n", answer.Iterations-1)
	}
}
