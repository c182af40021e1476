package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/nikomatsakis/mozilla-assertion-analyzer/lib/project"
	"github.com/urfave/cli/v2"
)

func init() {
	commands = append(commands, &cli.Command{
		Name:      "init",
		Usage:     "Write a default project config file",
		Category:  "project",
		ArgsUsage: "[path]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "force",
				Aliases: []string{"f"},
				Usage:   "Overwrite an existing config file without asking",
			},
		},
		Action: initConfig,
	})
}

func initConfig(c *cli.Context) error {
	path := c.Args().First()
	if path == "" {
		path = project.DefaultFile
	}

	overwrite := c.Bool("force")
	if _, err := os.Stat(path); err == nil && !overwrite {
		if !promptYN(path+" already exists. Overwrite?", false) {
			return nil
		}
		overwrite = true
	}

	conf := project.Default()
	if err := conf.Save(path, overwrite); err != nil {
		return cli.Exit(color.RedString("Error: %s", err), 1)
	}

	fmt.Println("Created file:", path)
	return nil
}

func promptYN(prompt string, def bool) bool {
	reader := bufio.NewReader(os.Stdin)

	if def {
		fmt.Printf("%s (Y/n): ", prompt)
	} else {
		fmt.Printf("%s (y/N): ", prompt)
	}

	response, err := reader.ReadString('\n')
	if err != nil {
		return def
	}

	response = strings.TrimSpace(response)
	if response == "" {
		return def
	}
	return strings.ToLower(response) == "y"
}
