package main

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/fatih/color"
	"github.com/nikomatsakis/mozilla-assertion-analyzer/lib/project"
	"github.com/nikomatsakis/mozilla-assertion-analyzer/lib/scanner"
	"github.com/urfave/cli/v2"
)

func init() {
	commands = append(commands, &cli.Command{
		Name:      "scan",
		Usage:     "Scan C/C++ files for assertion macro calls",
		Category:  "analyze",
		ArgsUsage: "<files...>",
		Flags:     append(scanFlags(), outputFlags()...),
		Action:    scan,
	})
}

func scanFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "The path to the project config file",
		},
		&cli.StringSliceFlag{
			Name:    "macro",
			Aliases: []string{"m"},
			Usage:   "Recognize an additional assertion macro name",
		},
		&cli.BoolFlag{
			Name:  "strict",
			Usage: "Treat an unterminated class or function body as an error",
		},
	}
}

func outputFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:    "keep-going",
			Aliases: []string{"k"},
			Usage:   "Report per-file errors and continue instead of aborting",
		},
		&cli.BoolFlag{
			Name:    "json",
			Aliases: []string{"j"},
			Usage:   "Print records as JSON",
		},
	}
}

func scan(c *cli.Context) error {
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

	return printAssertions(assertions, c.Bool("json"))
}

// scanOptions merges the project config and command line flags into
// scanner options. The returned config carries settings the core does
// not know about, like file extensions for repository walks.
func scanOptions(c *cli.Context) ([]scanner.Option, project.Config, error) {
	conf := project.Default()
	if path := c.String("config"); path != "" {
		loaded, err := project.Load(path)
		if err != nil {
			return nil, project.Config{}, err
		}
		conf = loaded
	} else if loaded, err := project.Load(project.DefaultFile); err == nil {
		conf = loaded
	}
	if len(conf.Extensions) == 0 {
		conf.Extensions = project.Default().Extensions
	}

	macros := append([]string{}, scanner.DefaultMacros...)
	macros = append(macros, conf.Macros...)
	macros = append(macros, c.StringSlice("macro")...)

	opts := []scanner.Option{scanner.WithMacros(macros...)}
	if c.Bool("strict") || conf.Strict {
		opts = append(opts, scanner.Strict())
	}
	return opts, conf, nil
}

// scanFiles scans every file on its own goroutine and merges the
// results in argument order, keeping output reproducible regardless of
// scheduling. With keepGoing set, a failing file is reported and
// skipped; otherwise the first failure aborts the run.
func scanFiles(files []string, opts []scanner.Option, keepGoing bool) ([]scanner.Assertion, error) {
	type result struct {
		assertions []scanner.Assertion
		err        error
	}

	results := make([]result, len(files))
	var wg sync.WaitGroup
	for i, file := range files {
		wg.Add(1)
		go func(i int, file string) {
			defer wg.Done()
			src, err := os.ReadFile(file)
			if err != nil {
				results[i].err = err
				return
			}
			assertions, err := scanner.Scan(file, string(src), opts...)
			if err != nil {
				results[i].err = fmt.Errorf("%s: %w", file, err)
				return
			}
			results[i].assertions = assertions
		}(i, file)
	}
	wg.Wait()

	var assertions []scanner.Assertion
	for _, res := range results {
		if res.err != nil {
			if keepGoing {
				color.Red("%s", res.err)
				continue
			}
			return nil, res.err
		}
		assertions = append(assertions, res.assertions...)
	}
	return assertions, nil
}

func printAssertions(assertions []scanner.Assertion, asJSON bool) error {
	if asJSON {
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(assertions); err != nil {
			return cli.Exit(color.RedString("Error encoding records: %s", err), 1)
		}
		return nil
	}

	for _, a := range assertions {
		fmt.Println(a)
	}
	return nil
}
