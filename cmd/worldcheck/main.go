// Package main checks a world document and optionally converts it between
// JSON and YAML.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/cory-johannsen/focalpoint/internal/game/world"
)

var errWarnings = errors.New("world has warnings")

func main() {
	convert := flag.String("convert", "", "write the world to this .json, .yaml or .yml path")
	strict := flag.Bool("strict", false, "exit non-zero when the world has warnings")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: worldcheck [-strict] [-convert out.yaml] <world.json|world.yaml>")
		os.Exit(2)
	}

	if err := run(os.Stdout, flag.Arg(0), *convert, *strict); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// run loads path, writes a report to out, and converts it when convertTo is set.
func run(out io.Writer, path, convertTo string, strict bool) error {
	start := time.Now()
	w, err := world.LoadFromFile(path)
	if err != nil {
		return err
	}

	var locations, focalPoints, aliases int
	for _, m := range w.Maps {
		locations += len(m.Locations)
		for _, l := range m.Locations {
			focalPoints += len(l.FocalPoints)
			for _, fp := range l.FocalPoints {
				aliases += len(fp.Aliases)
			}
		}
	}
	fmt.Fprintf(out, "%s: %d maps, %d locations, %d focal points, %d custom verbs, %d items\n",
		path, len(w.Maps), locations, focalPoints, aliases, len(w.Items))

	warnings := w.Lint()
	for _, warning := range warnings {
		fmt.Fprintf(out, "warning: %s\n", warning)
	}

	if convertTo != "" {
		format, err := world.FormatForPath(convertTo)
		if err != nil {
			return err
		}
		data, err := world.Encode(w, format)
		if err != nil {
			return fmt.Errorf("encoding world: %w", err)
		}
		if err := os.WriteFile(convertTo, data, 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", convertTo, err)
		}
		fmt.Fprintf(out, "wrote %s\n", convertTo)
	}

	fmt.Fprintf(out, "checked in %s\n", time.Since(start).Round(time.Millisecond))
	if strict && len(warnings) > 0 {
		return fmt.Errorf("%w: %d", errWarnings, len(warnings))
	}
	return nil
}
