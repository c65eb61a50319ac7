// Copyright (c) 2013-2024 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package bitcoin

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"io"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil/base58"
	"github.com/btcsuite/chainwallet/core"
	"github.com/btcsuite/chainwallet/core/hashes"
	"github.com/btcsuite/chainwallet/internal/zero"
	"github.com/btcsuite/chainwallet/netparams"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
)

const (
	// PrivateKeySize is the size of a secp256k1 private scalar.
	PrivateKeySize = 32

	// compressMagic is the byte appended to the scalar of a WIF key whose
	// public key is serialized compressed.
	compressMagic byte = 0x01

	// wifUncompressedLen and wifCompressedLen are the decoded lengths of a
	// WIF string: version byte, scalar, optional compression flag and
	// checksum.
	wifUncompressedLen = 1 + PrivateKeySize + hashes.ChecksumSize
	wifCompressedLen   = wifUncompressedLen + 1
)

var (
	errNoNetwork = core.Errorf(core.ErrInvalidNetwork, "no network given")

	// errZeroKey is returned when the zero PrivateKey or PublicKey is
	// used.
	errZeroKey = core.Errorf(core.ErrKeyLibrary, "uninitialized key")
)

// PrivateKey is a secp256k1 private key bound to a network.  The compressed
// flag selects the public key serialization addresses are derived from.
// The zero PrivateKey is not a key: it encodes to the empty string and
// signing with it fails.
type PrivateKey struct {
	scalar     [PrivateKeySize]byte
	compressed bool
	net        *netparams.Params
}

// NewPrivateKey returns a new private key for net whose public key is
// serialized compressed.  The scalar is read from rng, which is consumed
// until it yields a value in the range [1, N-1].
func NewPrivateKey(rng io.Reader, net *netparams.Params) (PrivateKey, error) {
	if net == nil {
		return PrivateKey{}, errNoNetwork
	}

	var buf [PrivateKeySize]byte
	defer zero.Bytea32(&buf)

	for {
		if _, err := io.ReadFull(rng, buf[:]); err != nil {
			return PrivateKey{}, core.NewError(core.ErrKeyLibrary,
				"failed to read key material", err)
		}
		var s secp256k1.ModNScalar
		overflow := s.SetByteSlice(buf[:])
		valid := !overflow && !s.IsZero()
		s.Zero()
		if valid {
			break
		}
	}

	log.Debugf("Generated new %v private key", net)
	return PrivateKey{scalar: buf, compressed: true, net: net}, nil
}

// KeyGenerator returns a generator of private keys for net.
func KeyGenerator(net *netparams.Params) core.KeyGenerator[PrivateKey] {
	return func(rng io.Reader) (PrivateKey, error) {
		return NewPrivateKey(rng, net)
	}
}

// PrivateKeyFromBytes returns the private key with the given 32-byte
// scalar.
func PrivateKeyFromBytes(b []byte, compressed bool,
	net *netparams.Params) (PrivateKey, error) {

	if len(b) != PrivateKeySize {
		return PrivateKey{}, core.Errorf(core.ErrInvalidByteLength,
			"private key must be %d bytes, got %d", PrivateKeySize,
			len(b))
	}
	if net == nil {
		return PrivateKey{}, errNoNetwork
	}

	var s secp256k1.ModNScalar
	overflow := s.SetByteSlice(b)
	defer s.Zero()
	if overflow || s.IsZero() {
		return PrivateKey{}, core.Errorf(core.ErrKeyLibrary,
			"private key scalar is out of range")
	}

	k := PrivateKey{compressed: compressed, net: net}
	copy(k.scalar[:], b)
	return k, nil
}

// ParsePrivateKey decodes a private key from its WIF encoding.  The network
// is taken from the version byte.
func ParsePrivateKey(wif string) (PrivateKey, error) {
	if wif == "" {
		return PrivateKey{}, core.Errorf(core.ErrInvalidCharacterLength,
			"empty private key")
	}

	decoded := base58.Decode(wif)
	defer zero.Bytes(decoded)
	if len(decoded) == 0 {
		return PrivateKey{}, core.Errorf(core.ErrInvalidEncoding,
			"private key is not valid base58")
	}

	var compressed bool
	switch len(decoded) {
	case wifCompressedLen:
		if decoded[1+PrivateKeySize] != compressMagic {
			return PrivateKey{}, core.Errorf(core.ErrInvalidByteLength,
				"malformed compression flag %#02x",
				decoded[1+PrivateKeySize])
		}
		compressed = true
	case wifUncompressedLen:
	default:
		return PrivateKey{}, core.Errorf(core.ErrInvalidByteLength,
			"decoded private key must be %d or %d bytes, got %d",
			wifUncompressedLen, wifCompressedLen, len(decoded))
	}

	payload := decoded[:len(decoded)-hashes.ChecksumSize]
	found := decoded[len(decoded)-hashes.ChecksumSize:]
	expected := hashes.Checksum(payload)
	if !bytes.Equal(expected, found) {
		return PrivateKey{}, core.ChecksumError(expected, found)
	}

	net, err := netparams.ParamsForPrivateKeyPrefix(decoded[0])
	if err != nil {
		return PrivateKey{}, err
	}

	return PrivateKeyFromBytes(decoded[1:1+PrivateKeySize], compressed, net)
}

// String returns the WIF encoding of the key.
func (k PrivateKey) String() string {
	if k.net == nil {
		return ""
	}

	payload := make([]byte, 0, PrivateKeySize+1)
	payload = append(payload, k.scalar[:]...)
	if k.compressed {
		payload = append(payload, compressMagic)
	}
	defer zero.Bytes(payload)

	return base58.CheckEncode(payload, k.net.PrivateKeyID)
}

// Serialize returns a copy of the 32-byte scalar.
func (k PrivateKey) Serialize() []byte {
	b := make([]byte, PrivateKeySize)
	copy(b, k.scalar[:])
	return b
}

// Network returns the network the key is encoded for.
func (k PrivateKey) Network() *netparams.Params {
	return k.net
}

// Compressed returns whether the public key is serialized compressed.
func (k PrivateKey) Compressed() bool {
	return k.compressed
}

// ecKey returns the key as a btcec private key.
func (k PrivateKey) ecKey() *btcec.PrivateKey {
	priv, _ := btcec.PrivKeyFromBytes(k.scalar[:])
	return priv
}

// PublicKey returns the public key of the private key, or the zero
// PublicKey for the zero PrivateKey.
func (k PrivateKey) PublicKey() PublicKey {
	if k.net == nil {
		return PublicKey{}
	}

	priv := k.ecKey()
	defer priv.Zero()

	return newPublicKey(priv.PubKey(), k.compressed, k.net)
}

// Address returns the address of the key's public key under format.
func (k PrivateKey) Address(format Format) (Address, error) {
	return k.PublicKey().Address(format)
}

// PublicKey is a secp256k1 public key bound to a network.
type PublicKey struct {
	point      [secp256k1.PubKeyBytesLenUncompressed]byte
	compressed bool
	net        *netparams.Params
}

func newPublicKey(pub *btcec.PublicKey, compressed bool,
	net *netparams.Params) PublicKey {

	k := PublicKey{compressed: compressed, net: net}
	copy(k.point[:], pub.SerializeUncompressed())
	return k
}

// ParsePublicKey decodes a hex encoded public key in compressed or
// uncompressed form.
func ParsePublicKey(s string, net *netparams.Params) (PublicKey, error) {
	b, err := hex.DecodeString(s)
	if err != nil {
		return PublicKey{}, core.NewError(core.ErrInvalidEncoding,
			"public key is not valid hex", err)
	}
	return PublicKeyFromBytes(b, net)
}

// PublicKeyFromBytes decodes a serialized public key.  The serialization,
// compressed or uncompressed, is remembered.
func PublicKeyFromBytes(b []byte, net *netparams.Params) (PublicKey, error) {
	if net == nil {
		return PublicKey{}, errNoNetwork
	}

	var compressed bool
	switch len(b) {
	case secp256k1.PubKeyBytesLenCompressed:
		compressed = true
	case secp256k1.PubKeyBytesLenUncompressed:
	default:
		return PublicKey{}, core.Errorf(core.ErrInvalidByteLength,
			"public key must be %d or %d bytes, got %d",
			secp256k1.PubKeyBytesLenCompressed,
			secp256k1.PubKeyBytesLenUncompressed, len(b))
	}

	pub, err := btcec.ParsePubKey(b)
	if err != nil {
		return PublicKey{}, core.NewError(core.ErrKeyLibrary,
			"invalid public key", err)
	}
	return newPublicKey(pub, compressed, net), nil
}

// Serialize returns the public key in its compressed or uncompressed
// serialization.
func (k PublicKey) Serialize() []byte {
	if !k.compressed {
		b := make([]byte, len(k.point))
		copy(b, k.point[:])
		return b
	}
	return k.ecKey().SerializeCompressed()
}

// String returns the hex encoding of the serialized public key.
func (k PublicKey) String() string {
	if k.net == nil {
		return ""
	}
	return hex.EncodeToString(k.Serialize())
}

// Network returns the network the key is bound to.
func (k PublicKey) Network() *netparams.Params {
	return k.net
}

// Compressed returns whether the key is serialized compressed.
func (k PublicKey) Compressed() bool {
	return k.compressed
}

func (k PublicKey) ecKey() *btcec.PublicKey {
	// The point was validated when the key was created.
	pub, err := btcec.ParsePubKey(k.point[:])
	if err != nil {
		panic(fmt.Sprintf("invalid stored public key: %v", err))
	}
	return pub
}

// keyHash returns hash160 of the serialized key.
func (k PublicKey) keyHash() []byte {
	return hashes.Hash160(k.Serialize())
}

// Address returns the address of the public key under format.  The segwit
// formats require a compressed key.  A P2WSH address commits to a script
// and can not be derived from a key; use NewAddressFromScript.
func (k PublicKey) Address(format Format) (Address, error) {
	if k.net == nil {
		return Address{}, errZeroKey
	}
	if format.segwit() && !k.compressed {
		return Address{}, core.Errorf(core.ErrUnsupportedFormat,
			"%v addresses require a compressed public key", format)
	}

	var payload []byte
	switch format {
	case P2PKH, Bech32:
		payload = k.keyHash()
	case P2SHP2WPKH:
		payload = hashes.Hash160(witnessKeyHashScript(k.keyHash()))
	case P2WSH:
		return Address{}, core.Errorf(core.ErrUnsupportedDerivationPath,
			"p2wsh addresses are derived from a witness script, "+
				"not a public key")
	default:
		return Address{}, core.Errorf(core.ErrUnsupportedFormat,
			"unsupported address format %v", format)
	}

	addr := newAddress(format, k.net, payload)
	log.Tracef("Derived %v address %v", format, addr)
	return addr, nil
}

// witnessKeyHashScript returns the version 0 witness program paying to
// keyHash, which is also the redeem script of a P2SH-P2WPKH address.
func witnessKeyHashScript(keyHash []byte) []byte {
	script := make([]byte, 0, 2+len(keyHash))
	script = append(script, 0x00, byte(len(keyHash)))
	return append(script, keyHash...)
}
