package main

import (
	"fmt"
	"os"
	"runtime"

	"golang.org/x/term"

	"github.com/hasbyte1/go-stego-utils/config"
)

// promptPassword reads a password without echo.  When stdin is piped it
// falls back to /dev/tty.
func promptPassword(prompt string) (string, error) {
	fmt.Fprint(os.Stderr, prompt)
	defer fmt.Fprintln(os.Stderr)

	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		tty, err := os.Open("/dev/tty")
		if err != nil {
			if runtime.GOOS == "windows" {
				return "", fmt.Errorf("stdin is not a terminal; set %s", config.DefaultPasswordEnv)
			}
			return "", fmt.Errorf("stdin is piped and /dev/tty is not available; set %s", config.DefaultPasswordEnv)
		}
		defer tty.Close()
		fd = int(tty.Fd())
	}

	pw, err := term.ReadPassword(fd)
	if err != nil {
		return "", err
	}
	return string(pw), nil
}
