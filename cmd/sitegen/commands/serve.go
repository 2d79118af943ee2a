package commands

import (
	"context"

	prom "github.com/prometheus/client_golang/prometheus"

	"github.com/wayfarer-games/sitegen/internal/devserver"
	"github.com/wayfarer-games/sitegen/internal/metrics"
	"github.com/wayfarer-games/sitegen/internal/pipeline"
)

// ServeCmd implements the 'serve' command.
type ServeCmd struct {
	Addr      string `help:"Listen address (overrides serve.addr)"`
	NoMetrics bool   `name:"no-metrics" help:"Disable the /metrics endpoint"`
}

func (s *ServeCmd) Run(g *Global, root *CLI) error {
	cfg, err := loadConfig(g, root)
	if err != nil {
		return err
	}
	addr := cfg.Serve.Addr
	if s.Addr != "" {
		addr = s.Addr
	}

	var (
		reg      *prom.Registry
		recorder metrics.Recorder = metrics.NoopRecorder{}
	)
	if cfg.Serve.Metrics && !s.NoMetrics {
		reg = prom.NewRegistry()
		recorder = metrics.NewPrometheusRecorder(reg)
	}

	logger := g.logger()
	opts := pipeline.Options{Logger: logger, Recorder: recorder}

	ctx, cancel := signalContext()
	defer cancel()

	srv := devserver.New(devserver.Options{
		Root:      cfg.PublicDir(),
		Addr:      addr,
		WatchDirs: []string{cfg.PostsDir()},
		Ignore:    []string{cfg.ReportPath()},
		Build: func(ctx context.Context) error {
			_, err := pipeline.Run(ctx, cfg, opts)
			return err
		},
		Logger:   logger,
		Recorder: recorder,
		Registry: reg,
	})
	return srv.Run(ctx)
}
