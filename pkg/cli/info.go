package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/anrid/ny-mortality/pkg/cli/config"
	"github.com/urfave/cli/v3"
)

func cmdInfo(optionsCfg *config.Options) *cli.Command {
	var dataCfg config.Data

	return &cli.Command{
		Name:  "info",
		Usage: "Summarize the deaths table and list the selection choices",
		Flags: dataCfg.Flags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			opts, err := optionsCfg.Configure()
			if err != nil {
				return err
			}
			ds, err := dataCfg.Configure(ctx, opts)
			if err != nil {
				return err
			}

			w := c.Root().Writer
			ds.Info(w)

			fmt.Fprintf(w, "Genders: %s\n", strings.Join(ds.Genders(), ", "))
			fmt.Fprintf(w, "Races:   %s\n", strings.Join(ds.Races(), ", "))
			fmt.Fprintln(w, "Causes:")
			for _, cause := range ds.Causes() {
				fmt.Fprintf(w, "  - %s\n", cause)
			}
			return nil
		},
	}
}
