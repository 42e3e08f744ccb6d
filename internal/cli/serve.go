package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/matzehuels/treeoflife/internal/server"
	"github.com/matzehuels/treeoflife/pkg/observability/prom"
	"github.com/matzehuels/treeoflife/pkg/pipeline"
)

const shutdownTimeout = 5 * time.Second

type serveOpts struct {
	layoutFlags
	addr    string
	src     string
	metrics bool
	noCache bool
}

// serveCommand creates the serve command for the HTTP server.
func (c *CLI) serveCommand() *cobra.Command {
	var opts serveOpts

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve a tree of life over HTTP",
		Long: `Serve a tree of life over HTTP.

Routes:
  GET  /tree.svg   the configured tree (?mode=constant|variable&legend=true)
  GET  /tree.json  its layout document
  POST /render     render a Newick body (?format=svg|json|dot|...)
  GET  /healthz    liveness probe
  GET  /metrics    Prometheus metrics

The tree is loaded once at startup from --source or server.source in the
config file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), opts)
		},
	}

	opts.layoutFlags.register(cmd)
	cmd.Flags().StringVar(&opts.addr, "addr", "", "listen address (default :8080)")
	cmd.Flags().StringVar(&opts.src, "source", "", "Newick file or URL served at /tree.svg")
	cmd.Flags().BoolVar(&opts.metrics, "metrics", true, "expose Prometheus metrics at /metrics")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, opts serveOpts) error {
	logger := loggerFromContext(ctx)

	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}
	if opts.addr != "" {
		cfg.Server.Addr = opts.addr
	}
	if opts.src != "" {
		cfg.Server.Source = opts.src
	}

	runner, err := c.newRunner(ctx, cfg, opts.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	defaults := pipeline.FromConfig(cfg)
	opts.layoutFlags.apply(&defaults)
	defaults.Logger = logger
	if err := defaults.ValidateForLayout(); err != nil {
		return err
	}

	var metrics *prom.Metrics
	if opts.metrics {
		metrics = prom.New(prometheus.NewRegistry())
		metrics.Install()
	}

	srv := server.New(server.Config{
		Addr:           cfg.Server.Addr,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		Timeout:        cfg.Server.Timeout,
		Logger:         logger,
		Metrics:        metrics,
	}, runner, defaults)

	if cfg.Server.Source != "" {
		if err := srv.Load(ctx, cfg.Server.Source); err != nil {
			return err
		}
	} else {
		printWarning("No source configured; /tree.svg returns 404 until one is set")
	}

	printSuccess("Serving on %s", StyleLink.Render(serverURL(cfg.Server.Addr)))
	if cfg.Server.Source != "" {
		printKeyValue("source", cfg.Server.Source)
	}
	if metrics != nil {
		printKeyValue("metrics", "/metrics")
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	printInfo("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// serverURL turns a listen address into a browsable URL.
func serverURL(addr string) string {
	if strings.HasPrefix(addr, ":") {
		addr = "localhost" + addr
	}
	return "http://" + addr + "/tree.svg"
}
