package encryption

// Encrypter is satisfied by key-based token ciphers such as [Fernet].
type Encrypter interface {
	// Encrypt returns a self-describing authenticated token for value.
	Encrypt(value []byte) ([]byte, error)

	// Decrypt verifies token and returns the original plaintext.
	Decrypt(token []byte) ([]byte, error)
}

// PasswordEncrypter is satisfied by ciphers that derive a fresh key from a
// password for every call and carry the salt inside the token.
//
// Implementations must be safe for concurrent use.
type PasswordEncrypter interface {
	// Encrypt returns salt || authenticated ciphertext.
	Encrypt(plaintext []byte, password string) ([]byte, error)

	// Decrypt splits the salt off token, re-derives the key and verifies the
	// ciphertext.
	Decrypt(token []byte, password string) ([]byte, error)

	// TokenSize returns the exact token length Encrypt produces for a
	// plaintext of n bytes.
	TokenSize(n int) int
}
