package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/leofalp/lpp/core/client"
)

func newFileCmd(opts *rootOptions) *cobra.Command {
	var path string
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "file [path]",
		Short: "Evaluate a source file on the parse service",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if path == "" && len(args) == 1 {
				path = args[0]
			}
			if path == "" {
				return fmt.Errorf("a file path is required (--path or argument)")
			}

			c, logger, err := opts.newClient(cmd)
			if err != nil {
				return err
			}

			response, err := c.ParseFile(cmd.Context(), path)
			if errors.Is(err, client.ErrEmptySource) {
				logger.Debug("empty source file, nothing to evaluate", "path", path)
				return nil
			}
			if err != nil {
				if client.ErrorKind(err) == client.KindOther {
					return err
				}
				return errors.New(describeError(err))
			}

			return printResponse(cmd.OutOrStdout(), cmd.ErrOrStderr(), response, jsonOutput)
		},
	}

	cmd.Flags().StringVar(&path, "path", "", "the path to your file")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "emit the whole response as JSON")
	return cmd
}
