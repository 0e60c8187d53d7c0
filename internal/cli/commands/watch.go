package commands

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/dbtune-labs/connlint/internal/cli/output"
	"github.com/dbtune-labs/connlint/pkg/lint"
)

// debounceInterval coalesces editor save bursts into one re-lint.
const debounceInterval = 250 * time.Millisecond

// watchAndLint lints once, then re-lints whenever a declaration file
// under the watched paths changes. It runs until the command context
// is cancelled.
func watchAndLint(cmd *cobra.Command, paths []string, analyzer *lint.Analyzer, r *output.Renderer, opts *LintOptions, verbose bool) error {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: watchLogLevel(verbose),
	}))

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	if err := addWatchPaths(watcher, paths); err != nil {
		return err
	}

	relint := func() {
		result, err := lintOnce(paths, analyzer, r, opts)
		switch {
		case err != nil:
			r.Errorf("lint failed: %v\n", err)
		case result.rendered == 0:
			r.Printf("no issues found\n")
		}
	}

	relint()
	logger.Info("watching for changes", "paths", strings.Join(paths, ", "))

	var debounce *time.Timer
	pending := make(chan struct{}, 1)

	for {
		select {
		case <-cmd.Context().Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !relevantEvent(event) {
				continue
			}
			logger.Debug("change detected", "file", event.Name, "op", event.Op.String())

			// New directories need to be watched too.
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					_ = watcher.Add(event.Name)
				}
			}

			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(debounceInterval, func() {
				select {
				case pending <- struct{}{}:
				default:
				}
			})

		case <-pending:
			relint()

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error", "error", err)
		}
	}
}

// addWatchPaths registers every directory under the given paths.
func addWatchPaths(watcher *fsnotify.Watcher, paths []string) error {
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return fmt.Errorf("cannot watch %s: %w", path, err)
		}

		if !info.IsDir() {
			if err := watcher.Add(filepath.Dir(path)); err != nil {
				return fmt.Errorf("cannot watch %s: %w", path, err)
			}
			continue
		}

		err = filepath.WalkDir(path, func(p string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return watcher.Add(p)
			}
			return nil
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// relevantEvent reports whether an fsnotify event should trigger a
// re-lint: writes, creates, renames and removals of declaration files,
// plus directory creation (handled by the caller).
func relevantEvent(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
		!event.Has(fsnotify.Rename) && !event.Has(fsnotify.Remove) {
		return false
	}
	if strings.HasSuffix(event.Name, declFileExt) {
		return true
	}
	info, err := os.Stat(event.Name)
	return err == nil && info.IsDir()
}

func watchLogLevel(verbose bool) slog.Level {
	if verbose {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}
