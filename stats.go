package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/nikomatsakis/mozilla-assertion-analyzer/lib/analyzer"
	"github.com/urfave/cli/v2"
)

func init() {
	commands = append(commands, &cli.Command{
		Name:      "stats",
		Usage:     "Summarize assertion usage across C/C++ files",
		Category:  "analyze",
		ArgsUsage: "<files...>",
		Flags:     append(scanFlags(), outputFlags()...),
		Action:    stats,
	})
}

func stats(c *cli.Context) error {
	files := c.Args().Slice()
	if len(files) == 0 {
		return cli.Exit(color.RedString("Error: No files specified"), 1)
	}

	opts, _, err := scanOptions(c)
	if err != nil {
		return cli.Exit(color.RedString("Error: %s", err), 1)
	}

	assertions, err := scanFiles(files, opts, c.Bool("keep-going"))
	if err != nil {
		return cli.Exit(color.RedString("Error: %s", err), 1)
	}

	return printReport(analyzer.Summarize(assertions), len(files), c.Bool("json"))
}

func printReport(r analyzer.Report, scanned int, asJSON bool) error {
	if asJSON {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(r); err != nil {
			return cli.Exit(color.RedString("Error encoding report: %s", err), 1)
		}
		return nil
	}

	fmt.Println("--------------------------------------------------")
	fmt.Println("                Assertion Summary                 ")
	fmt.Println("--------------------------------------------------")
	fmt.Printf("Files scanned       : %d\n", scanned)
	fmt.Printf("Files with records  : %d\n", r.Files)
	fmt.Printf("Assertions          : %d\n", r.Assertions)
	fmt.Printf("In prelude          : %d (%.1f%%)\n", r.Prelude, 100*r.PreludeRatio())
	fmt.Printf("At body start       : %d\n", r.AtBodyStart)
	fmt.Printf("With message        : %d\n", r.WithMessage)
	fmt.Printf("Mean statement index: %.2f\n", r.MeanStatements)
	fmt.Println("--------------------------------------------------")
	for _, f := range r.PerFile {
		fmt.Printf("%-40s %5d assertions, %d in prelude\n", f.File, f.Assertions, f.Prelude)
	}
	return nil
}
