package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/matzehuels/pixmesh/pkg/pipeline"
)

// defaultDebounce groups the bursts of events editors emit on save.
const defaultDebounce = 200 * time.Millisecond

// watchCommand creates the watch command.
func (c *CLI) watchCommand() *cobra.Command {
	var (
		flags    meshFlags
		useTUI   bool
		debounce time.Duration
	)

	cmd := &cobra.Command{
		Use:   "watch <image>",
		Short: "Re-mesh an image whenever it changes",
		Long: `Mesh an image, then mesh it again every time the file is written.

Takes the same flags as "pixmesh mesh". With --tui the latest statistics are
shown in an interactive view; press r to re-mesh and q to quit.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if flags.output == stdoutPath {
				return fmt.Errorf("watch cannot write to stdout")
			}
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			runner, err := c.newRunner(cfg, flags.cacheLoc, flags.noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			ctx := cmd.Context()
			input := args[0]
			opts := flags.options(cmd, cfg)

			if useTUI {
				runner.Logger = log.NewWithOptions(io.Discard, log.Options{})
				return runWatchTUI(ctx, runner, input, flags.output, opts, debounce)
			}

			logger := loggerFromContext(ctx)
			remesh := func() {
				if err := c.runMesh(ctx, runner, input, flags.output, opts); err != nil {
					logger.Error("mesh failed", "err", err)
				}
			}
			remesh()
			logger.Info("watching for changes", "file", input)
			return watchFile(ctx, input, debounce, nil, remesh)
		},
	}

	flags.registerMeshFlags(cmd)
	flags.registerOutputFlags(cmd)
	cmd.Flags().BoolVar(&useTUI, "tui", false, "show an interactive status view")
	cmd.Flags().DurationVar(&debounce, "debounce", defaultDebounce, "wait this long after the last change before re-meshing")
	return cmd
}

// watchFile calls onChange once the file at path has been quiet for
// debounce after a write, and immediately for every value on rerun. It
// watches the parent directory so editors that replace the file are seen.
// It returns when ctx is done.
func watchFile(ctx context.Context, path string, debounce time.Duration, rerun <-chan struct{}, onChange func()) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer w.Close()

	target := filepath.Clean(path)
	if err := w.Add(filepath.Dir(target)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(target), err)
	}

	logger := loggerFromContext(ctx)
	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target || !(ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create)) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(debounce)
			} else {
				timer.Reset(debounce)
			}
			fire = timer.C
		case <-fire:
			fire = nil
			onChange()
		case <-rerun:
			onChange()
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch error", "err", err)
		}
	}
}

// runWatchTUI drives the watch loop behind a bubbletea status view.
func runWatchTUI(ctx context.Context, runner *pipeline.Runner, input, output string, opts pipeline.Options, debounce time.Duration) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	rerun := make(chan struct{}, 1)
	p := tea.NewProgram(newWatchModel(input, rerun), tea.WithContext(ctx))

	go func() {
		remesh := func() {
			p.Send(meshStartedMsg{})
			start := time.Now()
			res, paths, err := meshOnce(ctx, runner, input, output, opts)
			p.Send(meshFinishedMsg{res: res, paths: paths, err: err, elapsed: time.Since(start)})
		}
		remesh()
		if err := watchFile(ctx, input, debounce, rerun, remesh); err != nil {
			p.Send(watchErrMsg{err: err})
		}
	}()

	_, err := p.Run()
	if errors.Is(err, tea.ErrProgramKilled) {
		return nil
	}
	return err
}
