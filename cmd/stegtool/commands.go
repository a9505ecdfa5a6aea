package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/hasbyte1/go-stego-utils/encryption"
	"github.com/hasbyte1/go-stego-utils/imageio"
	"github.com/hasbyte1/go-stego-utils/toolkit"
)

func (a *app) hideText(args []string) error {
	fs, configPath := a.flags("hide-text")
	coverPath := fs.String("cover", "", "cover image `path`")
	message := fs.String("message", "", "message to hide")
	messageFile := fs.String("message-file", "", "read the message from `path` instead")
	out := fs.String("out", defaultStegoOut, "output image `path`")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := requireFlag("cover", *coverPath); err != nil {
		return err
	}
	if *messageFile != "" {
		data, err := os.ReadFile(*messageFile)
		if err != nil {
			return err
		}
		*message = string(data)
	}
	if *message == "" {
		return toolkit.ErrEmptyMessage
	}
	if err := a.setup(*configPath); err != nil {
		return err
	}

	cover, err := imageio.Load(*coverPath)
	if err != nil {
		return err
	}
	pw, err := a.password()
	if err != nil {
		return err
	}
	img, err := a.tk.HideText(cover, *message, pw)
	if err != nil {
		return err
	}
	written, err := a.save(*out, img)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "Message hidden in %s\n", written)
	return nil
}

func (a *app) revealText(args []string) error {
	fs, configPath := a.flags("reveal-text")
	in := fs.String("in", "", "stego image `path`")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := requireFlag("in", *in); err != nil {
		return err
	}
	if err := a.setup(*configPath); err != nil {
		return err
	}

	img, err := imageio.Load(*in)
	if err != nil {
		return err
	}
	pw, err := a.password()
	if err != nil {
		return err
	}
	msg, err := a.tk.RevealText(img, pw)
	if err != nil {
		if errors.Is(err, encryption.ErrAuthentication) || errors.Is(err, encryption.ErrMalformedToken) {
			return fmt.Errorf("no message could be decrypted (wrong password or no hidden data): %w", err)
		}
		return err
	}
	fmt.Fprintln(a.stdout, msg)
	return nil
}

func (a *app) hideImage(args []string) error {
	fs, configPath := a.flags("hide-image")
	coverPath := fs.String("cover", "", "cover image `path`")
	secretPath := fs.String("secret", "", "secret image `path`")
	out := fs.String("out", defaultHiddenOut, "output image `path`")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := requireFlag("cover", *coverPath); err != nil {
		return err
	}
	if err := requireFlag("secret", *secretPath); err != nil {
		return err
	}
	if err := a.setup(*configPath); err != nil {
		return err
	}

	cover, err := imageio.Load(*coverPath)
	if err != nil {
		return err
	}
	secret, err := imageio.Load(*secretPath)
	if err != nil {
		return err
	}
	img, err := a.tk.HideImage(cover, secret)
	if err != nil {
		return err
	}
	written, err := a.save(*out, img)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "Image hidden in %s\n", written)
	return nil
}

func (a *app) revealImage(args []string) error {
	fs, configPath := a.flags("reveal-image")
	in := fs.String("in", "", "stego image `path`")
	out := fs.String("out", defaultExtractedOut, "output image `path`")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := requireFlag("in", *in); err != nil {
		return err
	}
	if err := a.setup(*configPath); err != nil {
		return err
	}

	img, err := imageio.Load(*in)
	if err != nil {
		return err
	}
	secret, err := a.tk.RevealImage(img)
	if err != nil {
		return err
	}
	written, err := a.save(*out, secret)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "Extracted image written to %s\n", written)
	return nil
}

func (a *app) capacity(args []string) error {
	fs, configPath := a.flags("capacity")
	coverPath := fs.String("cover", "", "cover image `path`")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := requireFlag("cover", *coverPath); err != nil {
		return err
	}
	if err := a.setup(*configPath); err != nil {
		return err
	}

	cover, err := imageio.Load(*coverPath)
	if err != nil {
		return err
	}
	r, err := a.tk.Capacity(cover)
	if err != nil {
		return err
	}
	var b strings.Builder
	fmt.Fprintf(&b, "dimensions:    %dx%d\n", r.Width, r.Height)
	fmt.Fprintf(&b, "samples:       %d\n", r.Samples)
	fmt.Fprintf(&b, "raw payload:   %d bytes\n", r.FrameBytes)
	fmt.Fprintf(&b, "text message:  %d bytes\n", r.MessageBytes)
	_, err = fmt.Fprint(a.stdout, b.String())
	return err
}

func (a *app) version(args []string) error {
	fs, _ := a.flags("version")
	if err := fs.Parse(args); err != nil {
		return err
	}
	fmt.Fprintf(a.stdout, "stegtool %s\n", Version)
	return nil
}
