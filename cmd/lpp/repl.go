package main

import (
	"bufio"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/leofalp/lpp/core/session"
)

const (
	replPrompt  = ">>> "
	clearScreen = "\033[H\033[2J"
)

func newReplCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "repl",
		Aliases: []string{"rpl"},
		Short:   "Start an interactive session",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, logger, err := opts.newClient(cmd)
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			out := cmd.OutOrStdout()
			errOut := cmd.ErrOrStderr()
			sess := session.New(c, session.WithLogger(logger))

			fmt.Fprintln(out, "Bienvenido a LPP")
			fmt.Fprintln(out, "escribe un comando para comenzar, salir() para terminar")

			scanner := bufio.NewScanner(cmd.InOrStdin())
			for {
				fmt.Fprint(out, replPrompt)
				if !scanner.Scan() {
					fmt.Fprintln(out)
					break
				}
				line := scanner.Text()

				if session.IsExit(line) {
					break
				}
				if session.IsClear(line) {
					fmt.Fprint(out, clearScreen)
					continue
				}

				result, err := sess.Eval(ctx, line)
				if err != nil {
					fmt.Fprintln(errOut, describeError(err))
					continue
				}
				if text := result.Output(); text != "" {
					fmt.Fprintln(out, text)
				}
			}

			return scanner.Err()
		},
	}
}
