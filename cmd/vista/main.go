// Command vista runs the demo application: a title screen, a game screen
// with overlay effects and dialogs, and an options screen.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/odvcencio/vista/pkg/config"
	"github.com/odvcencio/vista/pkg/logging"
	"github.com/odvcencio/vista/pkg/telemetry"
	"github.com/odvcencio/vista/pkg/ui/backend/tcell"
	"github.com/odvcencio/vista/pkg/ui/runtime"
	"github.com/odvcencio/vista/pkg/ui/screen"
)

// Version information - set via ldflags during build
var (
	version = "0.1.0-dev"
	commit  = "unknown"
)

type startupOptions struct {
	configPath  string
	firstScreen string
	showVersion bool
}

func parseStartupOptions(args []string) (startupOptions, error) {
	var opts startupOptions
	fs := flag.NewFlagSet("vista", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&opts.configPath, "config", "", "path to a config file (default: ~/.vista and ./.vista)")
	fs.StringVar(&opts.firstScreen, "screen", string(screenTitle), "screen to start on")
	fs.BoolVar(&opts.showVersion, "version", false, "print the version and exit")
	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if fs.NArg() > 0 {
		return opts, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	return opts, nil
}

func main() {
	opts, err := parseStartupOptions(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}
	if opts.showVersion {
		fmt.Printf("vista %s (%s)\n", version, commit)
		return
	}
	if err := run(opts); err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFromPath(path)
	}
	return config.Load()
}

func newLogger(cfg config.LoggingConfig) (*logging.Logger, io.Closer, error) {
	level, err := logging.ParseLevel(cfg.Level)
	if err != nil {
		return nil, nil, err
	}
	opts := logging.Options{Level: level, Format: logging.Format(cfg.Format), Component: "vista"}
	switch {
	case cfg.File != "":
		return logging.NewFile(cfg.File, opts)
	case cfg.Dir != "":
		return logging.NewDaily(cfg.Dir, opts)
	}
	return logging.New(os.Stderr, opts), io.NopCloser(nil), nil
}

func run(opts startupOptions) error {
	cfg, err := loadConfig(opts.configPath)
	if err != nil {
		return err
	}
	logger, closer, err := newLogger(cfg.Logging)
	if err != nil {
		return err
	}
	defer closer.Close()

	var metrics *telemetry.Metrics
	if cfg.Metrics.Enabled {
		metrics = telemetry.New()
	}

	be, err := tcell.New(cfg.Display.Width, cfg.Display.Height)
	if err != nil {
		return fmt.Errorf("create terminal backend: %w", err)
	}
	app, err := runtime.NewApp(runtime.AppConfig{
		Backend: be,
		Config:  cfg,
		Logger:  logger,
		Metrics: metrics,
	})
	if err != nil {
		return err
	}
	if err := registerScreens(app); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return serve(ctx, app, cfg, logger, metrics, screen.ID(opts.firstScreen))
}

// serve runs the UI and, when enabled, the metrics server. Whichever ends
// first stops the other.
func serve(ctx context.Context, app *runtime.App, cfg *config.Config, logger *logging.Logger, metrics *telemetry.Metrics, first screen.ID) error {
	g, gctx := errgroup.WithContext(ctx)
	uiDone := make(chan struct{})

	g.Go(func() error {
		defer close(uiDone)
		return app.Run(gctx, first)
	})

	if cfg.Metrics.Enabled {
		srv := &http.Server{
			Addr:              cfg.Metrics.Addr,
			Handler:           newRouter(app.Manager(), metrics),
			ReadHeaderTimeout: 5 * time.Second,
		}
		g.Go(func() error {
			logger.Info("metrics server listening", "addr", srv.Addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("metrics server: %w", err)
			}
			return nil
		})
		g.Go(func() error {
			select {
			case <-gctx.Done():
			case <-uiDone:
			}
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		})
	}

	return g.Wait()
}
