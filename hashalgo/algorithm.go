// Copyright 2018 The go-ethereum Authors
// This file is part of the go-ethereum library.
//
// The go-ethereum library is free software: you can redistribute it and/or modify
// it under the terms of the GNU Lesser General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// The go-ethereum library is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Lesser General Public License for more details.
//
// You should have received a copy of the GNU Lesser General Public License
// along with the go-ethereum library. If not, see <http://www.gnu.org/licenses/>.

// Package hashalgo is the tagged-variant hasher abstraction at the base of
// the Merkle tree: each Algorithm dispatches to a hash.Hash constructor
// (standard library, golang.org/x/crypto, or lukechampine.com/blake3), the
// same BaseHasherFunc shape bmt.TreePool builds on.
package hashalgo

import (
	"crypto/sha256"
	"crypto/sha512"
	"fmt"
	"hash"
	"hash/crc32"

	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/blake2s"
	"golang.org/x/crypto/sha3"
	"lukechampine.com/blake3"
)

// Algorithm identifies one of the supported digest variants. The zero value
// is not a valid algorithm; always obtain one through Parse or the named
// constants below.
type Algorithm uint8

const (
	CRC32 Algorithm = iota + 1
	SHA224
	SHA256
	SHA384
	SHA512
	SHA512_224
	SHA512_256
	SHA3_224
	SHA3_256
	SHA3_384
	SHA3_512
	BLAKE2b512
	BLAKE2s256
	BLAKE3
)

const blake3DefaultSize = 32

// names maps the CLI/ledger spelling of each algorithm to its Algorithm
// value. The default for generate-hash is SHA256.
var names = map[string]Algorithm{
	"crc32":      CRC32,
	"sha224":     SHA224,
	"sha256":     SHA256,
	"sha384":     SHA384,
	"sha512":     SHA512,
	"sha512_224": SHA512_224,
	"sha512_256": SHA512_256,
	"sha3_224":   SHA3_224,
	"sha3_256":   SHA3_256,
	"sha3_384":   SHA3_384,
	"sha3_512":   SHA3_512,
	"blake2b512": BLAKE2b512,
	"blake2s256": BLAKE2s256,
	"blake3":     BLAKE3,
}

// Parse resolves the CLI/ledger spelling of an algorithm name. An unknown
// name is a BadParams condition for the caller to surface.
func Parse(name string) (Algorithm, error) {
	if a, ok := names[name]; ok {
		return a, nil
	}
	return 0, fmt.Errorf("hashalgo: unknown algorithm %q", name)
}

// String returns the canonical CLI/ledger spelling of a.
func (a Algorithm) String() string {
	for name, v := range names {
		if v == a {
			return name
		}
	}
	return fmt.Sprintf("hashalgo.Algorithm(%d)", uint8(a))
}

// Size returns H, the fixed output length in bytes for a.
func (a Algorithm) Size() int {
	switch a {
	case CRC32:
		return crc32.Size
	case SHA224:
		return sha256.Size224
	case SHA256:
		return sha256.Size
	case SHA384:
		return sha512.Size384
	case SHA512:
		return sha512.Size
	case SHA512_224:
		return sha512.Size224
	case SHA512_256:
		return sha512.Size256
	case SHA3_224:
		return 28
	case SHA3_256:
		return 32
	case SHA3_384:
		return 48
	case SHA3_512:
		return 64
	case BLAKE2b512:
		return blake2b.Size
	case BLAKE2s256:
		return blake2s.Size
	case BLAKE3:
		return blake3DefaultSize
	default:
		return 0
	}
}

// New constructs a fresh hash.Hash for a. Absorb is hash.Hash.Write;
// finalize is hash.Hash.Sum(nil). Each call returns an independent instance
// with no shared state, so every pipeline worker can safely own one per
// block without coordination.
func New(a Algorithm) (hash.Hash, error) {
	switch a {
	case CRC32:
		return crc32.NewIEEE(), nil
	case SHA224:
		return sha256.New224(), nil
	case SHA256:
		return sha256.New(), nil
	case SHA384:
		return sha512.New384(), nil
	case SHA512:
		return sha512.New(), nil
	case SHA512_224:
		return sha512.New512_224(), nil
	case SHA512_256:
		return sha512.New512_256(), nil
	case SHA3_224:
		return sha3.New224(), nil
	case SHA3_256:
		return sha3.New256(), nil
	case SHA3_384:
		return sha3.New384(), nil
	case SHA3_512:
		return sha3.New512(), nil
	case BLAKE2b512:
		return blake2b.New512(nil)
	case BLAKE2s256:
		return blake2s.New256(nil)
	case BLAKE3:
		return blake3.New(blake3DefaultSize, nil), nil
	default:
		return nil, fmt.Errorf("hashalgo: unsupported algorithm %v", a)
	}
}

// Names returns every recognized CLI spelling, used to build the
// "valid: ..." hint in usage text.
func Names() []string {
	out := make([]string, 0, len(names))
	for n := range names {
		out = append(out, n)
	}
	return out
}
