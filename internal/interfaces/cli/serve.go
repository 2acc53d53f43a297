package cli

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/turtacn/qsphere/internal/infrastructure/browser"
	"github.com/turtacn/qsphere/internal/infrastructure/monitoring/logging"
	"github.com/turtacn/qsphere/internal/infrastructure/monitoring/prometheus"
	"github.com/turtacn/qsphere/internal/infrastructure/render/plotly"
	httpapi "github.com/turtacn/qsphere/internal/interfaces/http"
	"github.com/turtacn/qsphere/internal/interfaces/http/handlers"
	"github.com/turtacn/qsphere/internal/interfaces/http/middleware"
)

// NewServeCmd creates the serve command.
func NewServeCmd() *cobra.Command {
	var (
		host string
		port int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve Q-Sphere renders over HTTP",
		Long: "serve starts a preview server:\n" +
			"  POST /api/v1/qsphere                  state JSON -> HTML document\n" +
			"  POST /api/v1/qsphere/scene            state JSON -> scene (?format=json|msgpack)\n" +
			"  GET  /api/v1/qsphere/presets[/{name}] preset list or rendered preset\n" +
			"  GET  /healthz, /readyz, /metrics",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cliCtx, err := GetCLIContext(cmd)
			if err != nil {
				return err
			}
			cfg := cliCtx.Config
			if cmd.Flags().Changed("host") {
				cfg.Server.Host = host
			}
			if cmd.Flags().Changed("port") {
				cfg.Server.Port = port
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			ln, err := net.Listen("tcp", cfg.Server.Addr())
			if err != nil {
				return fmt.Errorf("listen %s: %w", cfg.Server.Addr(), err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "serving on http://%s\n", ln.Addr())
			return runServer(ctx, cliCtx, ln)
		},
	}

	cmd.Flags().StringVar(&host, "host", "", "listen host (default: server.host)")
	cmd.Flags().IntVarP(&port, "port", "p", 0, "listen port (default: server.port)")
	return cmd
}

// runServer serves on ln until ctx is done.
func runServer(ctx context.Context, cliCtx *CLIContext, ln net.Listener) error {
	cfg := cliCtx.Config

	// The preview server never opens a browser on the host.
	noBrowser := *cliCtx
	noBrowser.deps.Launcher = browser.Noop{}

	svc, client, err := noBrowser.renderService(ctx, cfg, cfg.Publish.Enabled)
	if err != nil {
		return err
	}

	var checkers []handlers.HealthChecker
	if client != nil {
		defer client.Close()
		checkers = append(checkers, handlers.NewChecker("storage", func(ctx context.Context) error {
			_, err := client.HealthCheck(ctx)
			return err
		}))
	}

	var limiter middleware.RateLimiter
	if cfg.Server.RateLimit > 0 {
		tb := middleware.NewTokenBucketLimiter(cfg.Server.RateLimit, cfg.Server.RateBurst, 5*time.Minute)
		defer tb.Stop()
		limiter = tb
	}

	router := httpapi.NewRouter(httpapi.RouterConfig{
		QSphereHandler:   handlers.NewQSphereHandler(svc, plotly.ContentType, cliCtx.Metrics, cliCtx.Logger, cfg.Server.MaxBodySize),
		HealthHandler:    handlers.NewHealthHandler(Version, checkers...),
		Logger:           cliCtx.Logger,
		MetricsCollector: metricsCollector(cliCtx),
		Metrics:          cliCtx.Metrics,
		MetricsPath:      cfg.Metrics.Path,
		CORS:             middleware.CORSConfig{AllowedOrigins: cfg.Server.AllowedOrigins, MaxAge: 300},
		RateLimiter:      limiter,
	})

	srv := httpapi.NewServer(httpapi.ServerConfig{
		Addr:            cfg.Server.Addr(),
		ReadTimeout:     cfg.Server.ReadTimeout,
		WriteTimeout:    cfg.Server.WriteTimeout,
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	}, router, cliCtx.Logger)

	cliCtx.Logger.Info("preview server starting",
		logging.String("addr", ln.Addr().String()),
		logging.Bool("metrics", cfg.Metrics.Enabled),
		logging.Bool("publish", client != nil),
		logging.Float64("rate_limit", cfg.Server.RateLimit))
	return srv.Run(ctx, ln)
}

func metricsCollector(cliCtx *CLIContext) prometheus.MetricsCollector {
	if !cliCtx.Config.Metrics.Enabled {
		return nil
	}
	return cliCtx.Collector
}

//Personal.AI order the ending
