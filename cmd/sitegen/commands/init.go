package commands

import (
	"fmt"

	"github.com/wayfarer-games/sitegen/internal/config"
)

// InitCmd implements the 'init' command.
type InitCmd struct {
	Force bool `help:"Overwrite existing configuration file"`
}

func (i *InitCmd) Run(_ *Global, root *CLI) error {
	path := root.Config
	if path == "" {
		path = DefaultConfigFile
	}
	fmt.Printf("Writing configuration to %s\n", path)
	return config.Init(path, i.Force)
}
