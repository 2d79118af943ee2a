package commands

import (
	"fmt"

	"github.com/wayfarer-games/sitegen/internal/docsnav"
)

// NavCmd implements the 'nav' command.
type NavCmd struct {
	SiteDir  string `name:"site-dir" help:"Built docs directory (overrides docs.site_dir)"`
	BasePath string `name:"base-path" help:"URL path the docs are served under (overrides docs.base_path)"`
}

func (n *NavCmd) Run(g *Global, root *CLI) error {
	cfg, err := loadConfig(g, root)
	if err != nil {
		return err
	}
	siteDir := cfg.Docs.SiteDir
	if n.SiteDir != "" {
		siteDir = n.SiteDir
	}
	basePath := cfg.Docs.BasePath
	if n.BasePath != "" {
		basePath = n.BasePath
	}

	count, err := docsnav.InjectDir(siteDir, basePath, docsnav.Groups, g.logger())
	if err != nil {
		return err
	}
	fmt.Printf("Injected navigation into %d pages.\n", count)
	return nil
}
