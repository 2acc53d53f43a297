package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/turtacn/qsphere/internal/application/visualization"
	"github.com/turtacn/qsphere/internal/config"
	"github.com/turtacn/qsphere/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/qsphere/pkg/errors"
)

// NewWatchCmd creates the watch command.
func NewWatchCmd() *cobra.Command {
	var (
		flags    renderFlags
		debounce time.Duration
	)

	cmd := &cobra.Command{
		Use:   "watch <state-file>",
		Short: "Re-render a state file whenever it changes",
		Long: "watch renders the state file once, then again after every write.\n" +
			"The browser opens only after the first successful render; reload the\n" +
			"page to see later revisions.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			if args[0] == stdinPath {
				return errors.New(errors.ErrCodeBadRequest, "watch needs a file path, not stdin")
			}
			cfg := cliCtx.Config
			if !cmd.Flags().Changed("debounce") {
				debounce = cfg.Watch.Debounce
			}

			svc, _, err := cliCtx.renderService(cmd.Context(), cfg, false)
			if err != nil {
				return err
			}

			w := &stateWatcher{
				path:     args[0],
				opts:     flags.options(cfg, visualization.SourceWatch),
				debounce: debounce,
				logger:   cliCtx.Logger.Named("watch"),
				onRender: func(res *visualization.RenderResult, err error) {
					if err != nil {
						PrintError(cmd, err)
						return
					}
					_ = PrintResult(cmd, newRenderReport(res))
				},
			}
			w.SetService(svc)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			if cliCtx.ConfigPath != "" {
				err := config.Watch(cliCtx.ConfigPath, func(next *config.Config) {
					svc, _, err := cliCtx.renderService(ctx, next, false)
					if err != nil {
						cliCtx.Logger.WithError(err).Warn("config reload ignored")
						return
					}
					cliCtx.Logger.Info("configuration reloaded", logging.String("path", cliCtx.ConfigPath))
					w.SetService(svc)
					w.Trigger()
				}, func(err error) {
					cliCtx.Logger.WithError(err).Warn("invalid configuration revision")
				})
				if err != nil {
					return err
				}
			}

			fmt.Fprintf(cmd.OutOrStdout(), "watching %s (ctrl-c to stop)\n", args[0])
			return w.Run(ctx)
		},
	}

	flags.register(cmd)
	cmd.Flags().DurationVar(&debounce, "debounce", config.DefaultWatchDebounce, "quiet period before re-rendering (default: watch.debounce)")
	return cmd
}

// stateWatcher re-renders a state file on change.  Editors often replace
// files instead of writing them in place, so the parent directory is watched
// and events are filtered by name.
type stateWatcher struct {
	path     string
	opts     visualization.RenderOptions
	debounce time.Duration
	logger   logging.Logger
	onRender func(*visualization.RenderResult, error)

	mu      sync.Mutex
	svc     visualization.Service
	opened  bool
	trigger chan struct{}
	once    sync.Once
}

// SetService swaps the render pipeline used by later renders.
func (w *stateWatcher) SetService(svc visualization.Service) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.svc = svc
}

// Trigger schedules a render as if the file had changed.
func (w *stateWatcher) Trigger() {
	select {
	case w.triggerCh() <- struct{}{}:
	default:
	}
}

func (w *stateWatcher) triggerCh() chan struct{} {
	w.once.Do(func() { w.trigger = make(chan struct{}, 1) })
	return w.trigger
}

// Run renders once and then on every debounced change until ctx is done.
func (w *stateWatcher) Run(ctx context.Context) error {
	abs, err := filepath.Abs(w.path)
	if err != nil {
		return err
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create file watcher: %w", err)
	}
	defer fw.Close()
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}

	w.render(ctx, abs)

	var (
		timer   *time.Timer
		timerC  <-chan time.Time
		trigger = w.triggerCh()
	)
	schedule := func() {
		if timer != nil {
			timer.Stop()
		}
		timer = time.NewTimer(w.debounce)
		timerC = timer.C
	}
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != abs || !ev.Has(fsnotify.Write|fsnotify.Create|fsnotify.Rename) {
				continue
			}
			w.logger.Debug("state file changed", logging.String("op", ev.Op.String()))
			schedule()
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.WithError(err).Warn("file watcher error")
		case <-trigger:
			schedule()
		case <-timerC:
			timerC = nil
			w.render(ctx, abs)
		}
	}
}

func (w *stateWatcher) render(ctx context.Context, path string) {
	w.mu.Lock()
	svc := w.svc
	opts := w.opts
	opts.AutoOpen = opts.AutoOpen && !w.opened
	w.mu.Unlock()

	res, err := w.doRender(ctx, svc, path, opts)
	if err == nil {
		w.mu.Lock()
		w.opened = true
		w.mu.Unlock()
	} else {
		w.logger.WithError(err).Warn("render skipped", logging.String("path", path))
	}
	if w.onRender != nil {
		w.onRender(res, err)
	}
}

func (w *stateWatcher) doRender(ctx context.Context, svc visualization.Service, path string, opts visualization.RenderOptions) (*visualization.RenderResult, error) {
	sv, err := readStateFile(path, nil)
	if err != nil {
		return nil, err
	}
	return svc.Render(ctx, sv, opts)
}

//Personal.AI order the ending
