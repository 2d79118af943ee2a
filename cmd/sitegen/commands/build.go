package commands

import (
	"fmt"

	"github.com/wayfarer-games/sitegen/internal/config"
	"github.com/wayfarer-games/sitegen/internal/foundation/errors"
	"github.com/wayfarer-games/sitegen/internal/pipeline"
	"github.com/wayfarer-games/sitegen/internal/verify"
)

// BuildCmd implements the 'build' command.
type BuildCmd struct {
	PublicDir string `name:"public-dir" help:"Override paths.public_dir"`
	BaseURL   string `name:"base-url" help:"Override the site base URL (takes precedence over SITE_URL)"`
	Verify    bool   `help:"Verify the emitted pages after building"`
}

func (b *BuildCmd) Run(g *Global, root *CLI) error {
	cfg, err := loadConfig(g, root)
	if err != nil {
		return err
	}
	if b.PublicDir != "" {
		cfg.Paths.PublicDir = b.PublicDir
	}
	if b.BaseURL != "" {
		cfg.Site.BaseURL = config.NormalizeBaseURL(b.BaseURL)
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	ctx, cancel := signalContext()
	defer cancel()

	res, err := pipeline.Run(ctx, cfg, pipeline.Options{Logger: g.logger()})
	if err != nil {
		return err
	}
	fmt.Printf("Generated SEO assets for %d posts.\n", len(res.Posts))

	if !b.Verify {
		return nil
	}
	vr, err := verify.Site(cfg, g.logger())
	if err != nil {
		return err
	}
	if !vr.OK() {
		return errors.ValidationError("site verification failed").
			WithContext("issues", len(vr.Issues)).
			Build()
	}
	return nil
}
