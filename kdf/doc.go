// Package kdf derives symmetric keys from passwords.
//
// # Architecture
//
// The central abstraction is the [Deriver] interface.  Two drivers ship with
// this package:
//
//   - [PBKDF2Deriver]: PBKDF2-HMAC-SHA256.  Its default parameters (100,000
//     iterations, 16-byte salt, 32-byte key) are part of the token wire format
//     produced by package encryption and must not change.
//   - [Argon2idDeriver]: Argon2id.  Opt-in; tokens it protects can only be
//     opened with the same driver and options.
//
// # Quick start
//
//	salt, err := kdf.NewSalt()
//	if err != nil { log.Fatal(err) }
//
//	key, _ := kdf.Derive("correct horse", salt)        // 32 raw bytes
//	enc, _ := kdf.DeriveEncoded("correct horse", salt) // URL-safe base64 of key
//
// The encoded form is exactly the key string a Fernet implementation expects,
// so a key derived here can be handed to Python's cryptography.fernet and
// vice versa.
package kdf
