// Package toolkit ties the cipher and the stego codecs together into the
// four user-facing flows: hide and reveal an encrypted text message, and
// hide and reveal an image.
//
// A Toolkit holds no per-call state and is safe for concurrent use.
package toolkit

import (
	"errors"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/sirupsen/logrus"
	"golang.org/x/image/draw"

	"github.com/hasbyte1/go-stego-utils/encryption"
	"github.com/hasbyte1/go-stego-utils/stego"
)

var (
	// ErrEmptyPassword is returned before any work is done when the password
	// is empty.
	ErrEmptyPassword = errors.New("toolkit: password is required")

	// ErrEmptyMessage is returned by HideText for an empty message.
	ErrEmptyMessage = errors.New("toolkit: message is required")

	// ErrInvalidUTF8 is returned by RevealText when the decrypted payload is
	// not valid UTF-8.
	ErrInvalidUTF8 = errors.New("toolkit: revealed message is not valid UTF-8")
)

// Option configures a [Toolkit].
type Option func(*Toolkit)

// WithLogger sets the logger.  Only sizes and dimensions are logged, never
// passwords or payload contents.
func WithLogger(l logrus.FieldLogger) Option {
	return func(t *Toolkit) { t.log = l }
}

// WithCipher replaces the password cipher used by the text flows.
func WithCipher(c encryption.PasswordEncrypter) Option {
	return func(t *Toolkit) { t.cipher = c }
}

// WithScaler sets the filter used to resample secret images.
func WithScaler(s draw.Scaler) Option {
	return func(t *Toolkit) { t.planes.Scaler = s }
}

// Toolkit runs the hide and reveal flows.
type Toolkit struct {
	cipher encryption.PasswordEncrypter
	bits   stego.BitPlaneCodec
	planes stego.ImagePlaneCodec
	log    logrus.FieldLogger
}

// New returns a Toolkit using the default password cipher and a logger
// that discards everything.
func New(opts ...Option) *Toolkit {
	t := &Toolkit{
		cipher: encryption.NewPasswordCipher(),
		log:    discardLogger(),
	}
	for _, o := range opts {
		o(t)
	}
	return t
}

func discardLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

// HideText encrypts message under password and embeds the token in cover.
func (t *Toolkit) HideText(cover *stego.PixelBuffer, message, password string) (*stego.PixelBuffer, error) {
	if message == "" {
		return nil, ErrEmptyMessage
	}
	if password == "" {
		return nil, ErrEmptyPassword
	}
	if err := cover.Validate(); err != nil {
		return nil, err
	}

	fields := logrus.Fields{
		"operation":      "hide_text",
		"width":          cover.Width,
		"height":         cover.Height,
		"payload_bytes":  len(message),
		"capacity_bytes": t.bits.Capacity(cover),
	}
	t.log.WithFields(fields).Debug("Encrypting message")

	token, err := t.cipher.Encrypt([]byte(message), password)
	if err != nil {
		return nil, fmt.Errorf("encrypt message: %w", err)
	}
	fields["token_bytes"] = len(token)

	out, err := t.bits.Embed(cover, token)
	if err != nil {
		t.log.WithFields(fields).WithError(err).Warn("Message does not fit cover")
		return nil, err
	}
	t.log.WithFields(fields).Info("Message hidden")
	return out, nil
}

// RevealText extracts the token from img and decrypts it with password.
func (t *Toolkit) RevealText(img *stego.PixelBuffer, password string) (string, error) {
	if password == "" {
		return "", ErrEmptyPassword
	}

	token, err := t.bits.Extract(img)
	if err != nil {
		return "", err
	}
	fields := logrus.Fields{
		"operation":   "reveal_text",
		"width":       img.Width,
		"height":      img.Height,
		"token_bytes": len(token),
	}

	plaintext, err := t.cipher.Decrypt(token, password)
	if err != nil {
		t.log.WithFields(fields).Debug("Decryption failed")
		return "", err
	}
	if !utf8.Valid(plaintext) {
		return "", ErrInvalidUTF8
	}
	fields["payload_bytes"] = len(plaintext)
	t.log.WithFields(fields).Info("Message revealed")
	return string(plaintext), nil
}

// HideImage embeds secret in the low bits of cover.  The secret is resampled
// to the cover's size.  No password is involved and the result carries no
// integrity check.
func (t *Toolkit) HideImage(cover, secret *stego.PixelBuffer) (*stego.PixelBuffer, error) {
	out, err := t.planes.Embed(cover, secret)
	if err != nil {
		return nil, err
	}
	t.log.WithFields(logrus.Fields{
		"operation":     "hide_image",
		"width":         cover.Width,
		"height":        cover.Height,
		"secret_width":  secret.Width,
		"secret_height": secret.Height,
		"resampled":     secret.Width != cover.Width || secret.Height != cover.Height,
	}).Info("Image hidden")
	return out, nil
}

// RevealImage recovers the approximate secret image from img.
func (t *Toolkit) RevealImage(img *stego.PixelBuffer) (*stego.PixelBuffer, error) {
	out, err := t.planes.Extract(img)
	if err != nil {
		return nil, err
	}
	t.log.WithFields(logrus.Fields{
		"operation": "reveal_image",
		"width":     img.Width,
		"height":    img.Height,
	}).Info("Image revealed")
	return out, nil
}
