package randname

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// baseIDBytes is the amount of raw entropy behind every base id:
// 10 random bytes hex-encode to the 20-character identifier.
const baseIDBytes = 10

// maxAttempts bounds the allocation retry loop. With 80 bits of entropy
// hitting it means the storage namespace is near-full or misbehaving.
const maxAttempts = 10

// Prober answers whether any stored object's name starts with the given
// prefix. Storage backends implement it over their namespace; tests can
// plug in a fake to force collisions deterministically.
type Prober interface {
	ExistsWithPrefix(ctx context.Context, prefix string) bool
}

// Generate returns a 20-character lowercase hexadecimal identifier
// derived from a cryptographically secure random source.
func Generate() string {
	b := make([]byte, baseIDBytes)
	if _, err := rand.Read(b); err != nil {
		// crypto/rand failure means the platform entropy source is
		// broken; there is no safe way to hand out names without it.
		panic(fmt.Errorf("randname: entropy source unavailable: %w", err))
	}
	return hex.EncodeToString(b)
}

// Allocate returns a base id for which no object named "<id>.<anything>"
// exists in the probed namespace at call time. The prefix check spans
// every extension at once, so two assets can never share a base id even
// with different extensions. It retries up to 10 times before giving up
// with ErrExhaustedAttempts.
func Allocate(ctx context.Context, prober Prober) (string, error) {
	for range maxAttempts {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		candidate := Generate()
		if prober.ExistsWithPrefix(ctx, candidate+".") {
			continue
		}
		return candidate, nil
	}
	return "", ErrExhaustedAttempts
}
