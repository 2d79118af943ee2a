package main

import (
	"log/slog"

	"github.com/alecthomas/kong"

	"github.com/wayfarer-games/sitegen/cmd/sitegen/commands"
	"github.com/wayfarer-games/sitegen/internal/foundation/errors"
	"github.com/wayfarer-games/sitegen/internal/version"
)

func main() {
	var cli commands.CLI
	global := &commands.Global{}
	ctx := kong.Parse(&cli,
		kong.Name("sitegen"),
		kong.Description("Static asset generator for the Wayfarer Games site."),
		kong.UsageOnError(),
		kong.Vars{"version": version.String()},
		kong.Bind(global),
	)
	if err := ctx.Run(global, &cli); err != nil {
		errors.NewCLIErrorAdapter(cli.Verbose, slog.Default()).HandleError(err)
	}
}
