package encryption_test

import (
	"bytes"
	"encoding/base64"
	"errors"
	"testing"
	"time"

	"github.com/hasbyte1/go-stego-utils/encryption"
)

// Published Fernet specification vector (generate.json / verify.json).
const (
	specSecret = "cw_0x689RpI-jtRR7oE8h_eQsKImvJapLeSbXpwF4e4="
	specToken  = "gAAAAAAdwJ6wAAECAwQFBgcICQoLDA0ODy021cpGVWKZ_eEwCGM4BLLF_5CV9dOPmrhuVUPgJobwOz7JcbmrR64jVmpU4IwqDA=="
	specUnix   = 499162800 // 1985-10-26T01:20:00-07:00
)

func specIV() []byte {
	iv := make([]byte, 16)
	for i := range iv {
		iv[i] = byte(i)
	}
	return iv
}

func newTestFernet(t *testing.T, opts ...encryption.Option) *encryption.Fernet {
	t.Helper()
	key, err := encryption.GenerateKey()
	if err != nil {
		t.Fatalf("GenerateKey: %v", err)
	}
	f, err := encryption.NewFernet(key, opts...)
	if err != nil {
		t.Fatalf("NewFernet: %v", err)
	}
	return f
}

// ──────────────────────────────────────────────────────────────────────────────
// Specification vectors
// ──────────────────────────────────────────────────────────────────────────────

func TestFernet_SpecGenerateVector(t *testing.T) {
	f, err := encryption.NewFernetFromString(specSecret, encryption.WithRandom(bytes.NewReader(specIV())))
	if err != nil {
		t.Fatal(err)
	}
	tok, err := f.EncryptAtTime([]byte("hello"), time.Unix(specUnix, 0))
	if err != nil {
		t.Fatal(err)
	}
	if string(tok) != specToken {
		t.Fatalf("token mismatch:\n got %s\nwant %s", tok, specToken)
	}
}

func TestFernet_SpecVerifyVector(t *testing.T) {
	f, err := encryption.NewFernetFromString(specSecret, encryption.WithTTL(60*time.Second))
	if err != nil {
		t.Fatal(err)
	}
	got, err := f.DecryptAtTime([]byte(specToken), time.Unix(specUnix+1, 0))
	if err != nil {
		t.Fatalf("DecryptAtTime: %v", err)
	}
	if string(got) != "hello" {
		t.Fatalf("got %q, want %q", got, "hello")
	}
}

func TestFernet_SpecVectorWithoutTTL(t *testing.T) {
	f, _ := encryption.NewFernetFromString(specSecret)
	got, err := f.Decrypt([]byte(specToken))
	if err != nil {
		t.Fatalf("Decrypt: %v", err)
	}
	if string(got) != "hello" {
		t.Fatalf("got %q", got)
	}
}

func TestFernet_ExtractTimestamp(t *testing.T) {
	f, _ := encryption.NewFernetFromString(specSecret)
	ts, err := f.ExtractTimestamp([]byte(specToken))
	if err != nil {
		t.Fatal(err)
	}
	if ts.Unix() != specUnix {
		t.Fatalf("timestamp = %d, want %d", ts.Unix(), specUnix)
	}

	other := newTestFernet(t)
	if _, err := other.ExtractTimestamp([]byte(specToken)); !errors.Is(err, encryption.ErrAuthentication) {
		t.Fatalf("expected ErrAuthentication for foreign key, got %v", err)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Constructor tests
// ──────────────────────────────────────────────────────────────────────────────

func TestNewFernet_RejectsInvalidKeys(t *testing.T) {
	tests := []struct {
		name    string
		key     []byte
		wantErr error
	}{
		{"nil key", nil, encryption.ErrEmptyKey},
		{"empty key", []byte{}, encryption.ErrEmptyKey},
		{"16-byte key", make([]byte, 16), encryption.ErrInvalidKeyLength},
		{"33-byte key", make([]byte, 33), encryption.ErrInvalidKeyLength},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := encryption.NewFernet(tt.key)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("errors.Is(%v, %v) = false", err, tt.wantErr)
			}
		})
	}
}

func TestNewFernet_RejectsInvalidPreviousKey(t *testing.T) {
	key, _ := encryption.GenerateKey()
	_, err := encryption.NewFernet(key, encryption.WithPreviousKeys(make([]byte, 8)))
	if !errors.Is(err, encryption.ErrInvalidKeyLength) {
		t.Fatalf("expected ErrInvalidKeyLength, got %v", err)
	}
}

func TestNewFernetFromString_InvalidEncoding(t *testing.T) {
	_, err := encryption.NewFernetFromString("not base64 at all!!")
	if !errors.Is(err, encryption.ErrInvalidKey) {
		t.Fatalf("expected ErrInvalidKey, got %v", err)
	}
}

func TestKeyEncoding_RoundTrip(t *testing.T) {
	key, _ := encryption.GenerateKey()
	encoded := encryption.EncodeKey(key)
	if len(encoded) != 44 {
		t.Fatalf("encoded key length = %d, want 44", len(encoded))
	}
	decoded, err := encryption.DecodeKey(encoded)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(decoded, key) {
		t.Fatal("key round-trip mismatch")
	}

	// Standard alphabet is accepted too.
	std := base64.StdEncoding.EncodeToString(key)
	decoded, err = encryption.DecodeKey(std)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(decoded, key) {
		t.Fatal("standard-alphabet key mismatch")
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Round-trip tests
// ──────────────────────────────────────────────────────────────────────────────

func TestFernet_RoundTrip(t *testing.T) {
	f := newTestFernet(t)
	for _, pt := range [][]byte{
		{},
		[]byte("x"),
		bytes.Repeat([]byte("A"), 16),
		[]byte("a message that spans several AES blocks of sixteen bytes"),
	} {
		tok, err := f.Encrypt(pt)
		if err != nil {
			t.Fatal(err)
		}
		got, err := f.Decrypt(tok)
		if err != nil {
			t.Fatalf("Decrypt(len=%d): %v", len(pt), err)
		}
		if !bytes.Equal(got, pt) {
			t.Fatalf("round-trip mismatch for len=%d", len(pt))
		}
	}
}

func TestFernet_UniqueTokens(t *testing.T) {
	f := newTestFernet(t)
	t1, _ := f.Encrypt([]byte("same"))
	t2, _ := f.Encrypt([]byte("same"))
	if bytes.Equal(t1, t2) {
		t.Fatal("two encryptions must use different IVs")
	}
}

func TestFernet_WrongKey(t *testing.T) {
	f1 := newTestFernet(t)
	f2 := newTestFernet(t)
	tok, _ := f1.Encrypt([]byte("secret"))
	if _, err := f2.Decrypt(tok); !errors.Is(err, encryption.ErrAuthentication) {
		t.Fatalf("expected ErrAuthentication, got %v", err)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Key rotation
// ──────────────────────────────────────────────────────────────────────────────

func TestFernet_PreviousKeys(t *testing.T) {
	oldKey, _ := encryption.GenerateKey()
	newKey, _ := encryption.GenerateKey()

	oldF, _ := encryption.NewFernet(oldKey)
	tok, _ := oldF.Encrypt([]byte("rotate me"))

	rotated, err := encryption.NewFernet(newKey, encryption.WithPreviousKeys(oldKey))
	if err != nil {
		t.Fatal(err)
	}
	got, err := rotated.Decrypt(tok)
	if err != nil {
		t.Fatalf("previous key should decrypt: %v", err)
	}
	if string(got) != "rotate me" {
		t.Fatalf("got %q", got)
	}

	// New tokens are made with the primary key only.
	fresh, _ := rotated.Encrypt([]byte("new"))
	if _, err := oldF.Decrypt(fresh); !errors.Is(err, encryption.ErrAuthentication) {
		t.Fatalf("old key must not decrypt new tokens, got %v", err)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// TTL
// ──────────────────────────────────────────────────────────────────────────────

func TestFernet_TTL(t *testing.T) {
	issued := time.Unix(1_700_000_000, 0)
	f := newTestFernet(t, encryption.WithTTL(time.Minute))
	tok, err := f.EncryptAtTime([]byte("ttl"), issued)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		now  time.Time
		ok   bool
	}{
		{"just issued", issued, true},
		{"at ttl", issued.Add(time.Minute), true},
		{"past ttl", issued.Add(time.Minute + time.Second), false},
		{"within clock skew", issued.Add(-59 * time.Second), true},
		{"beyond clock skew", issued.Add(-61 * time.Second), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.DecryptAtTime(tok, tt.now)
			if tt.ok && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !tt.ok && !errors.Is(err, encryption.ErrAuthentication) {
				t.Fatalf("expected ErrAuthentication, got %v", err)
			}
		})
	}
}

func TestFernet_WithClock(t *testing.T) {
	now := time.Unix(1_600_000_000, 0)
	f := newTestFernet(t, encryption.WithClock(func() time.Time { return now }))
	tok, _ := f.Encrypt([]byte("clock"))
	ts, err := f.ExtractTimestamp(tok)
	if err != nil {
		t.Fatal(err)
	}
	if !ts.Equal(now) {
		t.Fatalf("timestamp = %v, want %v", ts, now)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tamper detection
// ──────────────────────────────────────────────────────────────────────────────

func TestFernet_TamperedTokens(t *testing.T) {
	f := newTestFernet(t)
	tok, _ := f.Encrypt([]byte("tamper me please"))
	raw, err := base64.URLEncoding.DecodeString(string(tok))
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name   string
		mutate func([]byte) []byte
	}{
		{"version byte", func(b []byte) []byte { b[0] = 0x81; return b }},
		{"timestamp", func(b []byte) []byte { b[3] ^= 0x01; return b }},
		{"iv", func(b []byte) []byte { b[12] ^= 0x01; return b }},
		{"ciphertext", func(b []byte) []byte { b[30] ^= 0x01; return b }},
		{"mac", func(b []byte) []byte { b[len(b)-1] ^= 0x01; return b }},
		{"truncated", func(b []byte) []byte { return b[:len(b)-1] }},
		{"header only", func(b []byte) []byte { return b[:25] }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mutated := tt.mutate(append([]byte(nil), raw...))
			enc := base64.URLEncoding.EncodeToString(mutated)
			if _, err := f.Decrypt([]byte(enc)); !errors.Is(err, encryption.ErrAuthentication) {
				t.Fatalf("expected ErrAuthentication, got %v", err)
			}
		})
	}
}

func TestFernet_InvalidInputs(t *testing.T) {
	f := newTestFernet(t)
	for _, in := range []string{"", "   ", "not-valid-base64!!!", "gAAA"} {
		if _, err := f.Decrypt([]byte(in)); !errors.Is(err, encryption.ErrAuthentication) {
			t.Errorf("Decrypt(%q): expected ErrAuthentication, got %v", in, err)
		}
	}
}
