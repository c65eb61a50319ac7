// Copyright (c) 2024 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ethereum

import (
	"crypto/ecdsa"
	"encoding/hex"
	"io"
	"strings"

	"github.com/btcsuite/chainwallet/core"
	"github.com/btcsuite/chainwallet/core/hashes"
	"github.com/btcsuite/chainwallet/internal/zero"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

const (
	// PrivateKeySize is the size of a secp256k1 private scalar.
	PrivateKeySize = 32

	// PublicKeySize is the size of an uncompressed public key.
	PublicKeySize = 65
)

// Format is an Ethereum address encoding.
type Format uint8

// Standard is the EIP-55 mixed-case checksummed hex encoding.
const Standard Format = 0

// String returns the name of the format.
func (f Format) String() string {
	if f == Standard {
		return "standard"
	}
	return "unknown"
}

// PrivateKey is an Ethereum secp256k1 private key.
type PrivateKey struct {
	scalar [PrivateKeySize]byte
}

// NewPrivateKey returns a new private key read from rng, which is consumed
// until it yields a valid scalar.
func NewPrivateKey(rng io.Reader) (PrivateKey, error) {
	var buf [PrivateKeySize]byte
	defer zero.Bytea32(&buf)

	for {
		if _, err := io.ReadFull(rng, buf[:]); err != nil {
			return PrivateKey{}, core.NewError(core.ErrKeyLibrary,
				"failed to read key material", err)
		}
		if k, err := PrivateKeyFromBytes(buf[:]); err == nil {
			log.Debugf("Generated new private key")
			return k, nil
		}
	}
}

// ParsePrivateKey decodes a private key from its hex encoding, with or
// without a 0x prefix.
func ParsePrivateKey(s string) (PrivateKey, error) {
	s = strings.TrimPrefix(s, "0x")
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

// PublicKey is an uncompressed secp256k1 public key.
type PublicKey struct {
	point [PublicKeySize]byte
}

// String returns the hex encoding of the key.
func (k PublicKey) String() string {
	return hex.EncodeToString(k.point[:])
}

// Address returns the address of the public key.
func (k PublicKey) Address(format Format) (Address, error) {
	if format != Standard {
		return Address{}, core.Errorf(core.ErrUnsupportedFormat,
			"unsupported address format %v", format)
	}
	if k.point[0] == 0 {
		return Address{}, errZeroKey
	}
	return Address{addr: common.BytesToAddress(
		hashes.Keccak256(k.point[1:])[12:])}, nil
}

// Address is an Ethereum account address.
type Address struct {
	addr common.Address
}

// ParseAddress decodes a 0x prefixed hex address.  Mixed-case input must
// carry a valid EIP-55 checksum.
func ParseAddress(s string) (Address, error) {
	if !strings.HasPrefix(s, "0x") && !strings.HasPrefix(s, "0X") {
		return Address{}, core.Errorf(core.ErrInvalidPrefix,
			"address %q does not start with 0x", s)
	}
	body := s[2:]
	if len(body) != 2*common.AddressLength {
		return Address{}, core.Errorf(core.ErrInvalidCharacterLength,
			"address must be %d hex characters, got %d",
			2*common.AddressLength, len(body))
	}
	b, err := hex.DecodeString(body)
	if err != nil {
		return Address{}, core.NewError(core.ErrInvalidEncoding,
			"address is not valid hex", err)
	}

	a := Address{addr: common.BytesToAddress(b)}
	mixed := strings.ToLower(body) != body && strings.ToUpper(body) != body
	if mixed && a.addr.Hex()[2:] != body {
		return Address{}, core.Errorf(core.ErrInvalidChecksum,
			"invalid checksum: { expected: %s, found: %s }",
			a.addr.Hex(), s)
	}
	return a, nil
}

// String returns the EIP-55 encoding of the address.
func (a Address) String() string {
	return a.addr.Hex()
}

// Common returns the address as a go-ethereum address.
func (a Address) Common() common.Address {
	return a.addr
}
