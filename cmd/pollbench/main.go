// Command pollbench measures the per-poll cost of gates, stop checks and
// frame sinks.
//
// Usage:
//
//	go run ./cmd/pollbench -n 10000000 gate
//	go run ./cmd/pollbench -n 10000000 loop
//	go run ./cmd/pollbench -n 1000000 sink -size 1024
package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/urfave/cli"
)

func main() {
	app := cli.NewApp()
	app.Name = "pollbench"
	app.Usage = "benchmark poll-loop building blocks"
	app.Flags = []cli.Flag{
		cli.IntFlag{
			Name:  "n",
			Usage: "Number of iterations",
			Value: 10_000_000,
		},
	}
	app.Commands = []cli.Command{
		{
			Name:   "gate",
			Usage:  "Cost of a non-firing Poll per gate type and clock source",
			Action: runGate,
		},
		{
			Name:   "loop",
			Usage:  "Cost of stop check + Poll, the body of every busy loop",
			Action: runLoop,
		},
		{
			Name:  "sink",
			Usage: "Cost of handing a frame to each sink",
			Flags: []cli.Flag{
				cli.IntFlag{
					Name:  "size",
					Usage: "Queue size in frames",
					Value: 1024,
				},
			},
			Action: runSink,
		},
	}

	if err := app.Run(os.Args); err != nil {
		slog.Error("Error running pollbench", "error", err)
		os.Exit(1)
	}
}

// iterations reads the global -n flag.
func iterations(c *cli.Context) (int, error) {
	n := c.GlobalInt("n")
	if n < 1 {
		return 0, fmt.Errorf("-n must be positive, got %d", n)
	}
	return n, nil
}

// result is one timed run.
type result struct {
	name string
	dur  time.Duration
}

// printResults prints per-op cost and speedup relative to the first row.
func printResults(results []result, n int) {
	fmt.Printf("\nResults:\n")
	baseline := float64(results[0].dur.Nanoseconds()) / float64(n)

	for _, r := range results {
		perOp := float64(r.dur.Nanoseconds()) / float64(n)
		speedup := baseline / perOp
		throughput := 1000 / perOp // M ops/sec

		fmt.Printf("  %-28s %12v  %8.2f ns/op  %6.2fx  %8.2f M/s\n",
			r.name, r.dur, perOp, speedup, throughput)
	}
}
