// Command stegtool hides encrypted text or a whole image inside a cover
// image, and recovers it again.
//
//	stegtool hide-text   -cover in.png -message "hi" [-out stego_image.png]
//	stegtool reveal-text -in stego_image.png
//	stegtool hide-image  -cover in.png -secret s.png [-out hidden_image.png]
//	stegtool reveal-image -in hidden_image.png [-out extracted_image.png]
//	stegtool capacity    -cover in.png
//	stegtool version
//
// The password is taken from $STEGTOOL_PASSWORD (or the variable named by
// password_env in the config file) and otherwise prompted for on the
// terminal.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
)

const Version = "1.0.0"

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, stdout, stderr io.Writer) error {
	return newApp(stdout, stderr, promptPassword).run(args)
}

type command struct {
	usage string
	run   func(a *app, args []string) error
}

var commands = map[string]command{
	"hide-text":    {"encrypt a message and hide it in a cover image", (*app).hideText},
	"reveal-text":  {"extract and decrypt a hidden message", (*app).revealText},
	"hide-image":   {"hide a secret image in the low bits of a cover image", (*app).hideImage},
	"reveal-image": {"recover an image hidden with hide-image", (*app).revealImage},
	"capacity":     {"report how much a cover image can carry", (*app).capacity},
	"version":      {"print the version", (*app).version},
}

var errNoCommand = errors.New("no command specified")

func (a *app) run(args []string) error {
	if len(args) == 0 {
		a.printUsage()
		return errNoCommand
	}
	switch args[0] {
	case "help", "-h", "-help", "--help":
		a.printUsage()
		return nil
	}
	cmd, ok := commands[args[0]]
	if !ok {
		a.printUsage()
		return fmt.Errorf("unknown command %q", args[0])
	}
	err := cmd.run(a, args[1:])
	if errors.Is(err, flag.ErrHelp) {
		return nil
	}
	return err
}

func (a *app) printUsage() {
	fmt.Fprintln(a.stderr, "Usage: stegtool <command> [flags]")
	fmt.Fprintln(a.stderr)
	fmt.Fprintln(a.stderr, "Commands:")
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(a.stderr, "  %-13s %s\n", name, commands[name].usage)
	}
	fmt.Fprintln(a.stderr)
	fmt.Fprintln(a.stderr, "Run 'stegtool <command> -h' for command flags.")
}
