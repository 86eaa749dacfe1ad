package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/urfave/cli/v3"
)

var (
	headingColor = color.New(color.Bold)
	currentColor = color.New(color.FgGreen, color.Bold)
	warnColor    = color.New(color.FgYellow)
	dimColor     = color.New(color.Faint)
)

// warn shows an error the user has to know about without failing the command
func warn(err error) {
	_, _ = warnColor.Fprintf(os.Stderr, "⚠️  %v\n", err)
}

// confirm asks a yes/no question on stdin; anything but y/yes is no
func confirm(in io.Reader, out io.Writer) func(prompt string) bool {
	reader := bufio.NewReader(in)
	return func(prompt string) bool {
		_, _ = fmt.Fprintf(out, "%s [y/N]: ", prompt)
		answer, _ := reader.ReadString('\n')
		answer = strings.TrimSpace(strings.ToLower(answer))
		return answer == "y" || answer == "yes"
	}
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func stdout(c *cli.Command) io.Writer {
	if w := c.Root().Writer; w != nil {
		return w
	}
	return os.Stdout
}

func stdin(c *cli.Command) io.Reader {
	if r := c.Root().Reader; r != nil {
		return r
	}
	return os.Stdin
}
