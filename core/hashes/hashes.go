// Copyright (c) 2024 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package hashes provides the hash functions every address and transaction
// engine is built on.  All functions are pure.
package hashes

import (
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/crypto/sha3"
)

const (
	// SHA256Size is the size of a SHA-256 digest.
	SHA256Size = chainhash.HashSize

	// ChecksumSize is the number of bytes of a Base58Check checksum.
	ChecksumSize = 4

	// Blake2b160Size is the size of a Blake2b-160 digest.
	Blake2b160Size = 20

	// Blake2b32Size is the size of a Blake2b-32 digest.
	Blake2b32Size = 4
)

// SHA256 returns the SHA-256 digest of b.
func SHA256(b []byte) []byte {
	return chainhash.HashB(b)
}

// DoubleSHA256 returns SHA-256(SHA-256(b)).
func DoubleSHA256(b []byte) []byte {
	return chainhash.DoubleHashB(b)
}

// Checksum returns the first four bytes of DoubleSHA256(b).
func Checksum(b []byte) []byte {
	return DoubleSHA256(b)[:ChecksumSize]
}

// Hash160 returns RIPEMD-160(SHA-256(b)).
func Hash160(b []byte) []byte {
	return btcutil.Hash160(b)
}

// Keccak256 returns the legacy Keccak-256 digest of b, as used by Ethereum
// and Tron.  This is not the standardized SHA3-256.
func Keccak256(b []byte) []byte {
	h := sha3.NewLegacyKeccak256()
	h.Write(b)
	return h.Sum(nil)
}

// Blake2b256 returns the Blake2b-256 digest of b.
func Blake2b256(b []byte) []byte {
	sum := blake2b.Sum256(b)
	return sum[:]
}

// Blake2b160 returns the Blake2b digest of b truncated by parameter to 20
// bytes.
func Blake2b160(b []byte) []byte {
	return blake2bSum(b, Blake2b160Size)
}

// Blake2b32 returns the Blake2b digest of b truncated by parameter to 4
// bytes.
func Blake2b32(b []byte) []byte {
	return blake2bSum(b, Blake2b32Size)
}

func blake2bSum(b []byte, size int) []byte {
	// New only fails for sizes outside 1..64 or oversized keys, neither
	// of which can happen here.
	h, _ := blake2b.New(size, nil)
	h.Write(b)
	return h.Sum(nil)
}
