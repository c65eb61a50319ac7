// Copyright (c) 2024 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package tron

import (
	"crypto/ecdsa"
	"encoding/hex"
	"io"

	"github.com/btcsuite/chainwallet/core"
	"github.com/btcsuite/chainwallet/core/hashes"
	"github.com/btcsuite/chainwallet/internal/zero"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/ethereum/go-ethereum/crypto"
)

const (
	// PrivateKeySize is the size of a secp256k1 private scalar.
	PrivateKeySize = 32

	// PublicKeySize is the size of an uncompressed public key.
	PublicKeySize = 65
)

// Format is a Tron address encoding.  Tron has a single one.
type Format uint8

// Standard is the Base58Check encoding of an address starting with T.
const Standard Format = 0

// String returns the name of the format.
func (f Format) String() string {
	if f == Standard {
		return "standard"
	}
	return "unknown"
}

// PrivateKey is a Tron secp256k1 private key.
type PrivateKey struct {
	scalar [PrivateKeySize]byte
}

// NewPrivateKey returns a new private key read from rng, which is consumed
// until it yields a valid scalar.
func NewPrivateKey(rng io.Reader) (PrivateKey, error) {
	var k PrivateKey
	for {
		if _, err := io.ReadFull(rng, k.scalar[:]); err != nil {
			return PrivateKey{}, core.NewError(core.ErrKeyLibrary,
				"failed to read key material", err)
		}
		var s secp256k1.ModNScalar
		overflow := s.SetBytes(&k.scalar)
		valid := overflow == 0 && !s.IsZero()
		s.Zero()
		if valid {
			break
		}
	}

	log.Debugf("Generated new private key")
	return k, nil
}

// ParsePrivateKey decodes a private key from its 64 character hex
// encoding.
func ParsePrivateKey(s string) (PrivateKey, error) {
	if len(s) != 2*PrivateKeySize {
		return PrivateKey{}, core.Errorf(core.ErrInvalidCharacterLength,
			"private key must be %d characters, got %d",
			2*PrivateKeySize, len(s))
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return PrivateKey{}, core.NewError(core.ErrInvalidEncoding,
			"private key is not valid hex", err)
	}
	defer zero.Bytes(b)

	return PrivateKeyFromBytes(b)
}

// PrivateKeyFromBytes returns the private key with the given scalar.
func PrivateKeyFromBytes(b []byte) (PrivateKey, error) {
	if len(b) != PrivateKeySize {
		return PrivateKey{}, core.Errorf(core.ErrInvalidByteLength,
			"private key must be %d bytes, got %d", PrivateKeySize,
			len(b))
	}
	if _, err := crypto.ToECDSA(b); err != nil {
		return PrivateKey{}, core.NewError(core.ErrKeyLibrary,
			"invalid private key", err)
	}

	var k PrivateKey
	copy(k.scalar[:], b)
	return k, nil
}

// errZeroKey is returned when the zero PrivateKey or PublicKey is used.
var errZeroKey = core.Errorf(core.ErrKeyLibrary, "uninitialized key")

// ecdsaKey returns nil for the zero PrivateKey.
func (k PrivateKey) ecdsaKey() *ecdsa.PrivateKey {
	// The scalar was validated when the key was created.
	priv, _ := crypto.ToECDSA(k.scalar[:])
	return priv
}

// String returns the hex encoding of the scalar.
func (k PrivateKey) String() string {
	return hex.EncodeToString(k.scalar[:])
}

// PublicKey returns the public key of the private key. The zero
// PrivateKey yields the zero PublicKey.
func (k PrivateKey) PublicKey() PublicKey {
	var pub PublicKey
	priv := k.ecdsaKey()
	if priv == nil {
		return pub
	}
	copy(pub.point[:], crypto.FromECDSAPub(&priv.PublicKey))
	return pub
}

// Address returns the address of the private key.
func (k PrivateKey) Address(format Format) (Address, error) {
	return k.PublicKey().Address(format)
}

// PublicKey is an uncompressed Tron secp256k1 public key.
type PublicKey struct {
	point [PublicKeySize]byte
}

// PublicKeyFromBytes decodes a 65 byte uncompressed public key.
func PublicKeyFromBytes(b []byte) (PublicKey, error) {
	if len(b) != PublicKeySize {
		return PublicKey{}, core.Errorf(core.ErrInvalidByteLength,
			"public key must be %d bytes, got %d", PublicKeySize,
			len(b))
	}
	if _, err := crypto.UnmarshalPubkey(b); err != nil {
		return PublicKey{}, core.NewError(core.ErrKeyLibrary,
			"invalid public key", err)
	}
	var pub PublicKey
	copy(pub.point[:], b)
	return pub, nil
}

// Serialize returns the uncompressed encoding of the key.
func (k PublicKey) Serialize() []byte {
	return append([]byte(nil), k.point[:]...)
}

// String returns the hex encoding of the key.
func (k PublicKey) String() string {
	return hex.EncodeToString(k.point[:])
}

// Address returns the address of the public key: the address prefix
// followed by the last 20 bytes of the Keccak-256 hash of the key's
// coordinates.
func (k PublicKey) Address(format Format) (Address, error) {
	if format != Standard {
		return Address{}, core.Errorf(core.ErrUnsupportedFormat,
			"unsupported address format %v", format)
	}
	if k.point[0] == 0 {
		return Address{}, errZeroKey
	}

	var a Address
	a.payload[0] = AddressPrefix
	copy(a.payload[1:], hashes.Keccak256(k.point[1:])[12:])
	return a, nil
}
