package digest

import (
	"crypto/sha256"
	"errors"
	"fmt"

	sha256simd "github.com/minio/sha256-simd"
	"github.com/zeebo/blake3"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/sha3"
)

// Size is the length of every digest in bytes
const Size = 32

const (
	SHA256     = "sha256"
	SHA256SIMD = "sha256-simd"
	BLAKE2b256 = "blake2b-256"
	SHA3256    = "sha3-256"
	BLAKE3     = "blake3"
)

var ErrUnknownHash = errors.New("unknown hash")

type Digest [Size]byte

// Hasher computes a cryptographic digest of a page.
type Hasher interface {
	Name() string
	Sum(p []byte) Digest
}

type hasher struct {
	name string
	sum  func(p []byte) Digest
}

func (h hasher) Name() string {
	return h.name
}

func (h hasher) Sum(p []byte) Digest {
	return h.sum(p)
}

var hashers = []hasher{
	{SHA256, func(p []byte) Digest { return sha256.Sum256(p) }},
	{SHA256SIMD, func(p []byte) Digest { return sha256simd.Sum256(p) }},
	{BLAKE2b256, func(p []byte) Digest { return blake2b.Sum256(p) }},
	{SHA3256, func(p []byte) Digest { return sha3.Sum256(p) }},
	{BLAKE3, func(p []byte) Digest { return blake3.Sum256(p) }},
}

func Names() []string {
	names := make([]string, len(hashers))
	for i, h := range hashers {
		names[i] = h.name
	}

	return names
}

func Parse(name string) (Hasher, error) {
	for _, h := range hashers {
		if h.name == name {
			return h, nil
		}
	}

	return nil, fmt.Errorf("%w: %q, expected one of %v", ErrUnknownHash, name, Names())
}
