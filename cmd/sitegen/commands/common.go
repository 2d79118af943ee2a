// Package commands implements the sitegen command-line interface.
package commands

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/wayfarer-games/sitegen/internal/config"
)

// DefaultConfigFile is loaded when --config is not given and the file exists.
const DefaultConfigFile = "sitegen.yaml"

// Global context passed to subcommands.
type Global struct {
	Logger *slog.Logger
	level  *slog.LevelVar
}

// CLI definition & global flags.
type CLI struct {
	Config  string           `short:"c" help:"Configuration file path (default: sitegen.yaml when present)" type:"path"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Build  BuildCmd  `cmd:"" default:"withargs" help:"Generate the feed, sitemap, robots.txt and post pages"`
	Serve  ServeCmd  `cmd:"" help:"Serve the public directory and rebuild on post changes"`
	Nav    NavCmd    `cmd:"" help:"Inject the global sidebar navigation into the built docs site"`
	Verify VerifyCmd `cmd:"" help:"Check emitted post pages for canonical URLs and broken same-site links"`
	Init   InitCmd   `cmd:"" help:"Write a configuration file populated with the defaults"`
}

// AfterApply runs after flag parsing; set up logging once.
func (c *CLI) AfterApply(g *Global) error {
	g.level = new(slog.LevelVar)
	g.level.Set(config.ResolveLogLevel(c.Verbose, "info"))
	g.Logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: g.level}))
	slog.SetDefault(g.Logger)
	return nil
}

// configPath returns the explicit --config value, or the default file when it exists.
func (c *CLI) configPath() string {
	if c.Config != "" {
		return c.Config
	}
	if _, err := os.Stat(DefaultConfigFile); err == nil {
		return DefaultConfigFile
	}
	return ""
}

// loadConfig loads configuration and applies its log level unless --verbose or the
// environment already chose one.
func loadConfig(g *Global, root *CLI) (*config.Config, error) {
	cfg, err := config.Load(root.configPath())
	if err != nil {
		return nil, err
	}
	if g.level != nil {
		g.level.Set(config.ResolveLogLevel(root.Verbose, cfg.Logging.Level))
	}
	return cfg, nil
}

func (g *Global) logger() *slog.Logger {
	if g == nil || g.Logger == nil {
		return slog.Default()
	}
	return g.Logger
}

// signalContext is canceled on SIGINT or SIGTERM.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}
