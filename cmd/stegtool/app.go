package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/hasbyte1/go-stego-utils/config"
	"github.com/hasbyte1/go-stego-utils/encryption"
	"github.com/hasbyte1/go-stego-utils/imageio"
	"github.com/hasbyte1/go-stego-utils/stego"
	"github.com/hasbyte1/go-stego-utils/toolkit"
)

// Default output names, matching the files the web version offered for
// download.
const (
	defaultStegoOut     = "stego_image.png"
	defaultHiddenOut    = "hidden_image.png"
	defaultExtractedOut = "extracted_image.png"
)

type app struct {
	stdout io.Writer
	stderr io.Writer

	// readPassword prompts for a password when none is set in the
	// environment.
	readPassword func(prompt string) (string, error)

	cfg config.Config
	log *logrus.Logger
	tk  *toolkit.Toolkit
}

func newApp(stdout, stderr io.Writer, readPassword func(string) (string, error)) *app {
	return &app{stdout: stdout, stderr: stderr, readPassword: readPassword}
}

// flags returns a FlagSet carrying the -config flag every command accepts.
func (a *app) flags(name string) (*flag.FlagSet, *string) {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	path := fs.String("config", os.Getenv("STEGTOOL_CONFIG"), "path to a YAML config file")
	return fs, path
}

// setup loads configuration and builds the logger and toolkit.
func (a *app) setup(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	log, err := cfg.NewLogger(a.stderr)
	if err != nil {
		return err
	}
	deriver, err := cfg.Deriver()
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.log = log
	a.tk = toolkit.New(
		toolkit.WithLogger(log),
		toolkit.WithCipher(encryption.NewPasswordCipher(encryption.WithDeriver(deriver))),
	)
	log.WithField("kdf", cfg.KDF).Debug("Configuration loaded")
	return nil
}

func (a *app) password() (string, error) {
	if pw, ok := a.cfg.Password(); ok {
		return pw, nil
	}
	a.log.WithField("env", a.cfg.PasswordEnv).Debug("Password not set in environment, prompting")
	pw, err := a.readPassword("Password: ")
	if err != nil {
		return "", fmt.Errorf("read password: %w", err)
	}
	if pw == "" {
		return "", toolkit.ErrEmptyPassword
	}
	return pw, nil
}

// save writes buf to path, adding the configured extension when path has
// none.  It returns the path actually written.
func (a *app) save(path string, buf *stego.PixelBuffer) (string, error) {
	if filepath.Ext(path) == "" {
		path += "." + string(a.cfg.Format())
	}
	if err := imageio.Save(path, buf); err != nil {
		return "", err
	}
	a.log.WithFields(logrus.Fields{
		"path":   path,
		"width":  buf.Width,
		"height": buf.Height,
	}).Debug("Image written")
	return path, nil
}

func requireFlag(name, value string) error {
	if value == "" {
		return fmt.Errorf("-%s is required", name)
	}
	return nil
}
