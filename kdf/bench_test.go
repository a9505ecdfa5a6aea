package kdf_test

import (
	"testing"

	"github.com/hasbyte1/go-stego-utils/kdf"
)

func BenchmarkDerive(b *testing.B) {
	salt, _ := kdf.NewSalt()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = kdf.Derive("benchmark password", salt)
	}
}
