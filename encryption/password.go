package encryption

import (
	"crypto/rand"

	"github.com/hasbyte1/go-stego-utils/kdf"
)

// PasswordOption configures a [PasswordCipher].
type PasswordOption func(*PasswordCipher)

// WithDeriver replaces the key-derivation driver.  The deriver's KeySize
// must be [KeySize]; tokens made with a non-default deriver only decrypt
// with the same deriver.
func WithDeriver(d kdf.Deriver) PasswordOption {
	return func(c *PasswordCipher) { c.deriver = d }
}

// WithFernetOptions passes options through to the per-call [Fernet].
// Useful for a TTL or a deterministic IV source in tests.
func WithFernetOptions(opts ...Option) PasswordOption {
	return func(c *PasswordCipher) { c.fernetOpts = append(c.fernetOpts, opts...) }
}

// PasswordCipher encrypts payloads under a key derived from a password.
//
// Every Encrypt draws a fresh salt from crypto/rand and derives a new key;
// nothing is cached between calls.  The zero value is not usable; call
// [NewPasswordCipher].
type PasswordCipher struct {
	deriver    kdf.Deriver
	fernetOpts []Option
}

var _ PasswordEncrypter = (*PasswordCipher)(nil)

// NewPasswordCipher returns a PasswordCipher using PBKDF2-HMAC-SHA256 with
// the wire-format defaults unless overridden.
func NewPasswordCipher(opts ...PasswordOption) *PasswordCipher {
	c := &PasswordCipher{deriver: kdf.Default()}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Encrypt returns salt || fernet token for plaintext.
func (c *PasswordCipher) Encrypt(plaintext []byte, password string) ([]byte, error) {
	salt, err := randomBytes(rand.Reader, c.deriver.SaltSize())
	if err != nil {
		return nil, err
	}
	f, key, err := c.fernet(password, salt)
	if err != nil {
		return nil, err
	}
	defer zeroBytes(key)

	tok, err := f.Encrypt(plaintext)
	if err != nil {
		return nil, err
	}
	out := make([]byte, 0, len(salt)+len(tok))
	out = append(out, salt...)
	return append(out, tok...), nil
}

// Decrypt splits token into salt and fernet token and decrypts it.
//
// A token shorter than the salt returns [ErrMalformedToken] without deriving
// a key.  Every other failure returns [ErrAuthentication].
func (c *PasswordCipher) Decrypt(token []byte, password string) ([]byte, error) {
	n := c.deriver.SaltSize()
	if len(token) < n {
		return nil, ErrMalformedToken
	}
	f, key, err := c.fernet(password, token[:n])
	if err != nil {
		return nil, err
	}
	defer zeroBytes(key)

	return f.Decrypt(token[n:])
}

// TokenSize returns the exact length of Encrypt's output for n plaintext bytes.
func (c *PasswordCipher) TokenSize(n int) int {
	return c.deriver.SaltSize() + encodedTokenSize(n)
}

func (c *PasswordCipher) fernet(password string, salt []byte) (*Fernet, []byte, error) {
	key, err := c.deriver.Derive(password, salt)
	if err != nil {
		return nil, nil, err
	}
	f, err := NewFernet(key, c.fernetOpts...)
	if err != nil {
		zeroBytes(key)
		return nil, nil, err
	}
	return f, key, nil
}

var defaultPasswordCipher = NewPasswordCipher()

// EncryptWithPassword encrypts plaintext with a key derived from password and
// a fresh random salt, returning salt || fernet token.
func EncryptWithPassword(plaintext []byte, password string) ([]byte, error) {
	return defaultPasswordCipher.Encrypt(plaintext, password)
}

// DecryptWithPassword reverses [EncryptWithPassword].
func DecryptWithPassword(token []byte, password string) ([]byte, error) {
	return defaultPasswordCipher.Decrypt(token, password)
}

// TokenSize returns the length of [EncryptWithPassword]'s output for n
// plaintext bytes.
func TokenSize(n int) int {
	return defaultPasswordCipher.TokenSize(n)
}
