package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "Error: ", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "snailmail",
		Usage: "Utility for matching snail mail exchange participants",
		Commands: []*cli.Command{
			matchCmd,
		},
	}
}

var matchCmd = &cli.Command{
	Name:    "match",
	Usage:   "Match senders with receivers and write the participant emails",
	Aliases: []string{"m"},
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "specify the config.yaml",
		},
		&cli.StringFlag{
			Name:    "input",
			Aliases: []string{"i"},
			Usage:   "specify the input sign-up sheet (csv)",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "specify the output emails file",
		},
		&cli.StringFlag{
			Name:  "assignment",
			Usage: "also write the assignment to this json file",
		},
		&cli.Uint64Flag{
			Name:  "seed",
			Usage: "seed the first attempt, later attempts use seed+n",
		},
		&cli.IntFlag{
			Name:  "attempts",
			Usage: "retry an infeasible matching with fresh randomness up to this many times",
		},
		&cli.BoolFlag{
			Name:  "strict",
			Usage: "fail when an option is not recognized instead of skipping that participant",
		},
		&cli.StringFlag{
			Name:  "contact-by",
			Usage: `when receivers should report missing mail, e.g. "Saturday, July 8, 2023"`,
		},
		&cli.StringFlag{
			Name:  "mail-by",
			Usage: `when mail should be sent out by, e.g. "Saturday, July 8, 2023"`,
		},
		&cli.StringFlag{
			Name:  "log-level",
			Usage: "specify the log level (debug, info, warn, error)",
		},
		&cli.StringFlag{
			Name:  "env",
			Usage: "specify the logging environment (production, development, local)",
		},
	},
	Action: func(ctx *cli.Context) error {
		cfg, err := loadConfig(ctx)
		if err != nil {
			return err
		}
		return doMatch(ctx, cfg)
	},
}
