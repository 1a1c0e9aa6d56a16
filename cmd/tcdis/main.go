// Command tcdis is a minimal demonstration harness: load a flat binary,
// run the seeded analyzer from one or more --seed addresses, and write
// the JSON projection of the resulting Report to stdout or a file. It
// intentionally does not grow into an interactive viewer or a text
// renderer; those remain out of scope.
package main

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"strings"

	cli "github.com/urfave/cli/v2"

	"github.com/brackenfield/tc162core/addr"
	"github.com/brackenfield/tc162core/analyzer"
	"github.com/brackenfield/tc162core/loader"
	"github.com/brackenfield/tc162core/report"
)

func run(c *cli.Context) error {
	file := c.String("file")
	if file == "" {
		return cli.Exit("missing required --file", 1)
	}

	var length *uint32
	if c.IsSet("length") {
		l := uint32(c.Uint("length"))
		length = &l
	}

	img, err := loader.LoadRaw(file, uint32(c.Uint("base")), uint32(c.Uint("skip")), length)
	if err != nil {
		log.Printf("load failed: %+v", err)
		return cli.Exit("could not load image", 1)
	}

	seeds, err := parseSeeds(c.StringSlice("seed"))
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}

	limits := analyzer.Limits{
		MaxInstructions: c.Int("max-instructions"),
		MaxBytes:        c.Int("max-bytes"),
	}
	a := analyzer.New(img, limits)

	ctx := context.Background()
	if d := c.Duration("timeout"); d > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d)
		defer cancel()
	}

	res := a.Run(ctx, seeds)
	rep := report.Assemble(img, res, nil)
	doc := report.ToJSONDoc(rep)

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if out := c.String("out"); out != "" {
		f, err := os.Create(out)
		if err != nil {
			return cli.Exit(err.Error(), 1)
		}
		defer f.Close()
		enc = json.NewEncoder(f)
		enc.SetIndent("", "  ")
	}
	return enc.Encode(doc)
}

func parseSeeds(raw []string) ([]uint32, error) {
	seeds := make([]uint32, 0, len(raw))
	for _, s := range raw {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		v, err := addr.Parse(s)
		if err != nil {
			return nil, err
		}
		seeds = append(seeds, v)
	}
	return seeds, nil
}

func main() {
	app := &cli.App{
		Name:  "tcdis",
		Usage: "seeded recursive-descent disassembler for TC1.6.2 flat binaries",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "file", Usage: "flat binary to load", Required: true},
			&cli.UintFlag{Name: "base", Usage: "address the file's first byte maps to"},
			&cli.UintFlag{Name: "skip", Usage: "bytes to skip from the start of the file"},
			&cli.UintFlag{Name: "length", Usage: "bytes to map (default: rest of file)"},
			&cli.StringSliceFlag{Name: "seed", Usage: "seed address to start disassembly from (repeatable)", Required: true},
			&cli.IntFlag{Name: "max-instructions", Usage: "instructions per block before a limit diagnostic (0 = unlimited)"},
			&cli.IntFlag{Name: "max-bytes", Usage: "bytes per block before a limit diagnostic (0 = unlimited)"},
			&cli.DurationFlag{Name: "timeout", Usage: "wall-clock budget for the run (0 = unlimited)"},
			&cli.StringFlag{Name: "out", Usage: "write JSON to this path instead of stdout"},
		},
		Action: run,
	}
	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
