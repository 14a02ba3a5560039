package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/leofalp/lpp/core/client"
)

func newWatchCmd(opts *rootOptions) *cobra.Command {
	var path string
	var debounce time.Duration
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "watch [path]",
		Short: "Re-evaluate a source file every time it changes",
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

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			out := cmd.OutOrStdout()
			errOut := cmd.ErrOrStderr()
			evaluate := func() {
				response, err := c.ParseFile(ctx, path)
				switch {
				case errors.Is(err, client.ErrEmptySource):
					return
				case err != nil:
					if ctx.Err() == nil {
						fmt.Fprintln(errOut, describeError(err))
					}
					return
				}
				reportWatchResult(logger, printResponse(out, errOut, response, jsonOutput))
			}

			evaluate()
			logger.Info("watching for changes", "path", path, "debounce", debounce)
			return watchFile(ctx, path, debounce, evaluate)
		},
	}

	cmd.Flags().StringVar(&path, "path", "", "the path to your file")
	cmd.Flags().DurationVar(&debounce, "debounce", 250*time.Millisecond, "quiet period before re-evaluating")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "emit each response as JSON")
	return cmd
}

// reportWatchResult keeps watch running after a printed response. Server
// errors were already shown by printResponse; anything else, such as a failed
// write, is logged.
func reportWatchResult(logger *slog.Logger, err error) {
	if err == nil || errors.Is(err, errServerReported) {
		return
	}
	logger.Error("cannot print response", slog.String("error", err.Error()))
}

// watchFile calls onChange after target was written, created, renamed or
// removed and then stayed quiet for debounce. The parent directory is
// watched so editors that save by renaming are still followed. It returns
// nil once ctx is done.
func watchFile(ctx context.Context, target string, debounce time.Duration, onChange func()) error {
	absTarget, err := filepath.Abs(target)
	if err != nil {
		return err
	}
	absTarget = filepath.Clean(absTarget)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(absTarget)); err != nil {
		return err
	}

	if debounce <= 0 {
		debounce = 250 * time.Millisecond
	}

	timer := time.NewTimer(time.Hour)
	if !timer.Stop() {
		select {
		case <-timer.C:
		default:
		}
	}
	pending := false

	resetDebounce := func() {
		if pending {
			if !timer.Stop() {
				select {
				case <-timer.C:
				default:
				}
			}
		}
		timer.Reset(debounce)
		pending = true
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != absTarget {
				continue
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			resetDebounce()
		case <-timer.C:
			if pending {
				pending = false
				onChange()
			}
		case watchErr, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return watchErr
		}
	}
}
