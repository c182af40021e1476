package main

import (
	"fmt"
	"os"

	plexer "github.com/alecthomas/participle/v2/lexer"
	"github.com/fatih/color"
	"github.com/nikomatsakis/mozilla-assertion-analyzer/lib/lexer"
	"github.com/urfave/cli/v2"
)

func init() {
	commands = append(commands, &cli.Command{
		Name:  "tokens",
		Usage: "Dump the token stream for a file",
		Description: "Prints every token the structural scanner would see, with byte " +
			"offset and line:column. Useful for checking why a macro call is not " +
			"being picked up.",
		Category:  "debug",
		ArgsUsage: "<file>",
		Action:    dumpTokens,
	})
}

func dumpTokens(c *cli.Context) error {
	filename := c.Args().First()
	if filename == "" {
		return cli.Exit(color.RedString("Error: No file specified"), 1)
	}

	file, err := os.Open(filename)
	if err != nil {
		return cli.Exit(color.RedString("Error: %s", err), 1)
	}
	defer file.Close()

	stream, err := lexer.CLexer.Lex(filename, file)
	if err != nil {
		return cli.Exit(color.RedString("Error: %s", err), 1)
	}

	names := make(map[plexer.TokenType]string)
	for name, typ := range lexer.CLexer.Symbols() {
		names[typ] = name
	}

	for {
		tok, err := stream.Next()
		if err != nil {
			return cli.Exit(color.RedString("Error: %s", err), 1)
		}
		fmt.Printf("%6d %4d:%-4d %-10s %q\n",
			tok.Pos.Offset, tok.Pos.Line, tok.Pos.Column, names[tok.Type], tok.Value)
		if tok.EOF() {
			return nil
		}
	}
}
