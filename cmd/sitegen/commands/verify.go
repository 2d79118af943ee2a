package commands

import (
	"fmt"

	"github.com/wayfarer-games/sitegen/internal/foundation/errors"
	"github.com/wayfarer-games/sitegen/internal/verify"
)

// VerifyCmd implements the 'verify' command.
type VerifyCmd struct {
	PublicDir string `name:"public-dir" help:"Override paths.public_dir"`
}

func (v *VerifyCmd) Run(g *Global, root *CLI) error {
	cfg, err := loadConfig(g, root)
	if err != nil {
		return err
	}
	if v.PublicDir != "" {
		cfg.Paths.PublicDir = v.PublicDir
	}

	res, err := verify.Site(cfg, g.logger())
	if err != nil {
		return err
	}
	for _, issue := range res.Issues {
		fmt.Println(issue.String())
	}
	if !res.OK() {
		return errors.ValidationError("site verification failed").
			WithContext("issues", len(res.Issues)).
			Build()
	}
	fmt.Printf("Verified %d pages and %d links.\n", res.Pages, res.Links)
	return nil
}
