package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"

	implenuminternal "github.com/Heliozoa/impl-enum/internal/implenum"
)

// Version is stamped with -ldflags on release builds. Generated file headers
// carry it so stale output is easy to spot.
var Version = ""

var (
	bFlag = flag.String("b", "", "comma-separated build tags")
	tFlag = flag.Bool("t", false, "include tests")
	oFlag = flag.String("o", "implenum_gen.go", "output file name")
	cFlag = flag.String("c", "auto", "colorize (auto|always|never)")
)

func init() {
	implenuminternal.Version = Version
}

func main() {
	flag.Parse()

	wd, err := os.Getwd()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	switch *cFlag {
	case "auto":
		// color detects non-terminals by itself.
	case "always":
		color.NoColor = false
	case "never":
		color.NoColor = true
	default:
		fmt.Fprintln(os.Stderr, "invalid -c value:", *cFlag)
		os.Exit(1)
	}

	outs, err := implenuminternal.Main(context.Background(), wd, os.Environ(), *bFlag, *tFlag, *oFlag, flag.Args())
	if err != nil {
		for _, line := range strings.Split(err.Error(), "\n") {
			fmt.Fprintln(os.Stderr, colorize(line))
		}
		os.Exit(1)
	}

	for out, code := range outs {
		if err := os.WriteFile(out, code, 0o644); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		if relOut, err := filepath.Rel(wd, out); err == nil {
			out = relOut
		}
		fmt.Println("Generated:", out)
	}
}

var dim = color.New(color.Faint)

// colorize dims the "file:line:col:" prefix of a diagnostic so the message
// itself stands out.
func colorize(line string) string {
	// file:line:col: message
	colon := strings.Index(line, ": ")
	if colon < 0 || strings.Count(line[:colon], ":") < 2 {
		return line
	}
	return dim.Sprint(line[:colon+1]) + line[colon+1:]
}
