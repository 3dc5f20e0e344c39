// Command busy draws terminal busy animations and lap timings.
//
// Usage:
//
//	busy spin --freq 10 --duration 5s
//	busy dots --freq 4
//	busy laps --count 5 --every 500ms
//	busy --config busy.toml run
package main

import (
	"log/slog"
	"os"

	"github.com/urfave/cli"

	"github.com/randomizedcoder/pollgate/internal/config"
)

func main() {
	app := cli.NewApp()
	app.Name = "busy"
	app.Usage = "frequency-gated terminal busy animations"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.StringFlag{
			Name:  "config, c",
			Usage: "Path to a TOML configuration file",
		},
		cli.BoolFlag{
			Name:  "debug",
			Usage: "Enable debug logging",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:   "run",
			Usage:  "Draw the animation selected by the configuration",
			Flags:  animationFlags(),
			Action: func(c *cli.Context) error { return runAnimation(c, "") },
		},
		{
			Name:   "spin",
			Usage:  "Draw a spinner",
			Flags:  animationFlags(),
			Action: func(c *cli.Context) error { return runAnimation(c, config.StyleSpinner) },
		},
		{
			Name:   "dots",
			Usage:  "Draw a dot animation",
			Flags:  animationFlags(),
			Action: func(c *cli.Context) error { return runAnimation(c, config.StyleDotter) },
		},
		{
			Name:  "laps",
			Usage: "Record laps at a fixed interval while spinning",
			Flags: append(animationFlags(),
				cli.IntFlag{
					Name:  "count, n",
					Usage: "Number of laps to record",
					Value: 5,
				},
				cli.DurationFlag{
					Name:  "every",
					Usage: "Time between laps",
					Value: defaultLapInterval,
				},
			),
			Action: runLaps,
		},
	}

	if err := app.Run(os.Args); err != nil {
		slog.Error("Error running busy", "error", err)
		os.Exit(1)
	}
}

func animationFlags() []cli.Flag {
	return []cli.Flag{
		cli.Float64Flag{
			Name:  "freq, f",
			Usage: "Frames per second",
		},
		cli.DurationFlag{
			Name:  "duration, d",
			Usage: "Stop after this long (0 = until interrupted)",
		},
		cli.StringFlag{
			Name:  "glyphs",
			Usage: "Spinner glyphs, one per character",
		},
		cli.StringFlag{
			Name:  "template",
			Usage: "Dotter template, read as a ring",
		},
		cli.StringFlag{
			Name:  "color",
			Usage: "Frame colour: ANSI index or #rrggbb",
		},
		cli.StringFlag{
			Name:  "sink",
			Usage: "Output path: direct, async or shared",
		},
		cli.StringFlag{
			Name:  "clock",
			Usage: "Clock source: mono, wall or tsc",
		},
	}
}
