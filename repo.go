package main

import (
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/nikomatsakis/mozilla-assertion-analyzer/lib/analyzer"
	"github.com/nikomatsakis/mozilla-assertion-analyzer/lib/cache"
	"github.com/urfave/cli/v2"
)

func init() {
	commands = append(commands, &cli.Command{
		Name:  "scan-repo",
		Usage: "Clone a git repository and scan its C/C++ sources",
		Description: "Clones the repository into the clone cache and scans every file " +
			"matching the configured extensions. The url may carry a branch as " +
			"'url@branch' (default 'main'); a bare 'owner/name' defaults to github.com. " +
			"Subsequent runs reuse the cached clone unless --update is given.",
		Category:  "analyze",
		ArgsUsage: "<url>",
		Flags: append(scanFlags(),
			&cli.BoolFlag{
				Name:    "update",
				Aliases: []string{"u"},
				Usage:   "Discard the cached clone and fetch a fresh one",
			},
			&cli.BoolFlag{
				Name:    "stats",
				Aliases: []string{"s"},
				Usage:   "Print a summary instead of individual records",
			},
			&cli.BoolFlag{
				Name:    "json",
				Aliases: []string{"j"},
				Usage:   "Print output as JSON",
			},
		),
		Action: scanRepo,
	})
}

func scanRepo(c *cli.Context) error {
	arg := c.Args().First()
	if arg == "" {
		return cli.Exit(color.RedString("Error: No repository specified"), 1)
	}

	opts, conf, err := scanOptions(c)
	if err != nil {
		return cli.Exit(color.RedString("Error: %s", err), 1)
	}

	repoURL, branch, err := prepURL(arg)
	if err != nil {
		return cli.Exit(color.RedString("Error: %s", err), 1)
	}

	clones := cache.Cache{}
	if err := clones.Init(); err != nil {
		return cli.Exit(color.RedString("Error: %s", err), 1)
	}

	repo, ok := clones.Lookup(repoURL, branch)
	if ok && c.Bool("update") {
		if err := clones.Remove(repoURL, branch); err != nil {
			return cli.Exit(color.RedString("Error: %s", err), 1)
		}
		ok = false
	}
	if !ok {
		color.Green("Cloning %s@%s...", repoURL, branch)
		dir := clones.CloneDir(repoURL, branch)
		if err := os.MkdirAll(dir, 0700); err != nil {
			return cli.Exit(color.RedString("Error: %s", err), 1)
		}
		_, err = git.PlainClone(dir, false, &git.CloneOptions{
			URL:           repoURL,
			SingleBranch:  true,
			Depth:         1,
			ReferenceName: plumbing.NewBranchReferenceName(branch),
		})
		if err != nil {
			return cli.Exit(color.RedString("Error cloning: %s", err), 1)
		}
		repo = cache.Repo{URL: repoURL, Branch: branch, Path: dir}
		if err := clones.Add(repo); err != nil {
			return cli.Exit(color.RedString("Error: %s", err), 1)
		}
	}

	files, err := collectSources(repo.Path, conf.Extensions)
	if err != nil {
		return cli.Exit(color.RedString("Error: %s", err), 1)
	}

	// A cloned tree routinely contains files the coarse lexer chokes on,
	// so per-file errors never abort the walk.
	assertions, err := scanFiles(files, opts, true)
	if err != nil {
		return cli.Exit(color.RedString("Error: %s", err), 1)
	}

	if c.Bool("stats") {
		return printReport(analyzer.Summarize(assertions), len(files), c.Bool("json"))
	}
	return printAssertions(assertions, c.Bool("json"))
}

func prepURL(arg string) (repoURL, branch string, err error) {
	branch = "main"
	if strings.Contains(arg, "@") {
		split := strings.Split(arg, "@")
		arg = split[0]
		branch = split[1]
	} else {
		color.Yellow("Branch name not specified, defaulting to 'main'")
	}

	parsed, err := url.Parse(arg)
	if err != nil {
		return "", "", err
	}
	if parsed.Hostname() == "" {
		arg = "https://github.com/" + arg
	}
	if !strings.HasPrefix(arg, "http://") && !strings.HasPrefix(arg, "https://") {
		arg = "https://" + arg
	}
	return arg, branch, nil
}

// collectSources walks root for files with one of the given extensions.
// filepath.WalkDir visits in lexical order, so the file list and with it
// the record order is deterministic.
func collectSources(root string, extensions []string) ([]string, error) {
	match := make(map[string]bool, len(extensions))
	for _, ext := range extensions {
		match[ext] = true
	}

	var files []string
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if d.Name() == ".git" {
				return filepath.SkipDir
			}
			return nil
		}
		if match[filepath.Ext(path)] {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}
