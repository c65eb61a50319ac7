// Copyright (c) 2024 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package filecoin

import (
	"bytes"
	"encoding/hex"
	"io"
	"strings"

	"github.com/btcsuite/chainwallet/core"
	"github.com/btcsuite/chainwallet/core/hashes"
	"github.com/btcsuite/chainwallet/internal/zero"
	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	blst "github.com/supranational/blst/bindings/go"
)

const (
	// PrivateKeySize is the size of a secp256k1 or BLS private scalar.
	PrivateKeySize = 32

	// SECP256K1PublicKeySize is the size of an uncompressed secp256k1
	// public key.
	SECP256K1PublicKeySize = 65

	// BLSPublicKeySize is the size of a compressed BLS12-381 G1 public
	// key.
	BLSPublicKeySize = 48
)

// Key string tags.
const (
	secpPrivateTag = "secp256k1_priv_"
	blsPrivateTag  = "bls_priv_"
	secpPublicTag  = "secp256k1_pub_"
	blsPublicTag   = "bls_pub_"
)

// PrivateKey is a Filecoin private key of either signature scheme.  BLS
// scalars are held in the little-endian order Filecoin serializes them in.
type PrivateKey struct {
	typ    SignatureType
	scalar [PrivateKeySize]byte
	net    Network
}

// NewPrivateKey returns a new secp256k1 private key read from rng, which
// is consumed until it yields a valid scalar.
func NewPrivateKey(rng io.Reader, net Network) (PrivateKey, error) {
	k := PrivateKey{typ: SigTypeSECP256K1, net: net}
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

	log.Debugf("Generated new secp256k1 private key")
	return k, nil
}

// NewBLSPrivateKey returns a new BLS private key derived from 32 bytes of
// input keying material read from rng.
func NewBLSPrivateKey(rng io.Reader, net Network) (PrivateKey, error) {
	var ikm [32]byte
	defer zero.Bytea32(&ikm)

	if _, err := io.ReadFull(rng, ikm[:]); err != nil {
		return PrivateKey{}, core.NewError(core.ErrKeyLibrary,
			"failed to read key material", err)
	}
	sk := blst.KeyGen(ikm[:])
	if sk == nil {
		return PrivateKey{}, core.Errorf(core.ErrKeyLibrary,
			"failed to derive BLS key")
	}
	defer sk.Zeroize()

	k := PrivateKey{typ: SigTypeBLS, net: net}
	copy(k.scalar[:], sk.ToLEndian())

	log.Debugf("Generated new BLS private key")
	return k, nil
}

// KeyGenerator returns a generator of secp256k1 keys for net.
func KeyGenerator(net Network) core.KeyGenerator[PrivateKey] {
	return func(rng io.Reader) (PrivateKey, error) {
		return NewPrivateKey(rng, net)
	}
}

// BLSKeyGenerator returns a generator of BLS keys for net.
func BLSKeyGenerator(net Network) core.KeyGenerator[PrivateKey] {
	return func(rng io.Reader) (PrivateKey, error) {
		return NewBLSPrivateKey(rng, net)
	}
}

// ParsePrivateKey decodes a tagged private key string, secp256k1_priv_ or
// bls_priv_ followed by the hex encoded scalar.
func ParsePrivateKey(s string, net Network) (PrivateKey, error) {
	var (
		typ  SignatureType
		body string
	)
	switch {
	case strings.HasPrefix(s, secpPrivateTag):
		typ, body = SigTypeSECP256K1, s[len(secpPrivateTag):]
	case strings.HasPrefix(s, blsPrivateTag):
		typ, body = SigTypeBLS, s[len(blsPrivateTag):]
	default:
		return PrivateKey{}, core.Errorf(core.ErrInvalidPrefix,
			"unknown private key tag")
	}

	if len(body) != 2*PrivateKeySize {
		return PrivateKey{}, core.Errorf(core.ErrInvalidCharacterLength,
			"private key must be %d characters, got %d",
			2*PrivateKeySize, len(body))
	}
	b, err := hex.DecodeString(body)
	if err != nil {
		return PrivateKey{}, core.NewError(core.ErrInvalidEncoding,
			"private key is not valid hex", err)
	}
	defer zero.Bytes(b)

	return PrivateKeyFromBytes(typ, b, net)
}

// PrivateKeyFromBytes returns the private key of scheme typ with the given
// serialized scalar.
func PrivateKeyFromBytes(typ SignatureType, b []byte,
	net Network) (PrivateKey, error) {

	if len(b) != PrivateKeySize {
		return PrivateKey{}, core.Errorf(core.ErrInvalidByteLength,
			"private key must be %d bytes, got %d", PrivateKeySize,
			len(b))
	}

	k := PrivateKey{typ: typ, net: net}
	copy(k.scalar[:], b)

	switch typ {
	case SigTypeSECP256K1:
		var s secp256k1.ModNScalar
		overflow := s.SetBytes(&k.scalar)
		valid := overflow == 0 && !s.IsZero()
		s.Zero()
		if !valid {
			return PrivateKey{}, core.Errorf(core.ErrKeyLibrary,
				"secp256k1 scalar out of range")
		}
	case SigTypeBLS:
		sk := blsSecretKey(&k.scalar)
		if sk == nil {
			return PrivateKey{}, core.Errorf(core.ErrKeyLibrary,
				"BLS scalar out of range")
		}
		sk.Zeroize()
	default:
		return PrivateKey{}, core.Errorf(core.ErrInvalidSignatureType,
			"unknown signature type %d", typ)
	}
	return k, nil
}

// blsSecretKey returns the BLS secret key of a little-endian scalar, or nil
// when the scalar is zero or not below the group order.  FromLEndian reduces
// its input, so a scalar that does not survive the round trip is rejected.
func blsSecretKey(scalar *[PrivateKeySize]byte) *blst.SecretKey {
	sk := new(blst.SecretKey).FromLEndian(scalar[:])
	if sk == nil {
		return nil
	}
	if !sk.Valid() || !bytes.Equal(sk.ToLEndian(), scalar[:]) {
		sk.Zeroize()
		return nil
	}
	return sk
}

// Type returns the signature scheme of the key.
func (k PrivateKey) Type() SignatureType {
	return k.typ
}

// Network returns the network of the addresses derived from the key.
func (k PrivateKey) Network() Network {
	return k.net
}

// Serialize returns a copy of the serialized scalar.
func (k PrivateKey) Serialize() []byte {
	return append([]byte(nil), k.scalar[:]...)
}

// SECP256K1 returns the key as a secp256k1 private key.
func (k PrivateKey) SECP256K1() (*secp256k1.PrivateKey, error) {
	if k.typ != SigTypeSECP256K1 {
		return nil, core.Errorf(core.ErrKeyMismatch,
			"%v key is not a secp256k1 key", k.typ)
	}
	return secp256k1.PrivKeyFromBytes(k.scalar[:]), nil
}

// BLS returns the key as a BLS secret key.  The caller should zero it
// once done.
func (k PrivateKey) BLS() (*blst.SecretKey, error) {
	if k.typ != SigTypeBLS {
		return nil, core.Errorf(core.ErrKeyMismatch,
			"%v key is not a BLS key", k.typ)
	}
	sk := blsSecretKey(&k.scalar)
	if sk == nil {
		return nil, core.Errorf(core.ErrKeyLibrary,
			"BLS scalar out of range")
	}
	return sk, nil
}

// String returns the tagged hex encoding of the key.
func (k PrivateKey) String() string {
	tag := secpPrivateTag
	if k.typ == SigTypeBLS {
		tag = blsPrivateTag
	}
	return tag + hex.EncodeToString(k.scalar[:])
}

// PublicKey returns the public key of the private key.  The zero PrivateKey
// has no public key and yields the zero PublicKey, whose Address fails.
func (k PrivateKey) PublicKey() PublicKey {
	switch k.typ {
	case SigTypeSECP256K1:
		priv := secp256k1.PrivKeyFromBytes(k.scalar[:])
		defer priv.Zero()
		return PublicKey{
			typ: k.typ,
			key: string(priv.PubKey().SerializeUncompressed()),
			net: k.net,
		}

	case SigTypeBLS:
		sk := blsSecretKey(&k.scalar)
		if sk == nil {
			return PublicKey{}
		}
		defer sk.Zeroize()
		return PublicKey{
			typ: k.typ,
			key: string(new(blst.P1Affine).From(sk).Compress()),
			net: k.net,
		}

	default:
		return PublicKey{}
	}
}

// Address returns the address of the private key.
func (k PrivateKey) Address(format Format) (Address, error) {
	return k.PublicKey().Address(format)
}

// PublicKey is a Filecoin public key: an uncompressed secp256k1 point or a
// compressed BLS12-381 G1 point.
type PublicKey struct {
	typ SignatureType
	key string
	net Network
}

// PublicKeyFromBytes decodes a public key of scheme typ.
func PublicKeyFromBytes(typ SignatureType, b []byte,
	net Network) (PublicKey, error) {

	switch typ {
	case SigTypeSECP256K1:
		if len(b) != SECP256K1PublicKeySize {
			return PublicKey{}, core.Errorf(core.ErrInvalidByteLength,
				"secp256k1 public key must be %d bytes, got %d",
				SECP256K1PublicKeySize, len(b))
		}
		if _, err := secp256k1.ParsePubKey(b); err != nil {
			return PublicKey{}, core.NewError(core.ErrKeyLibrary,
				"invalid secp256k1 public key", err)
		}

	case SigTypeBLS:
		if len(b) != BLSPublicKeySize {
			return PublicKey{}, core.Errorf(core.ErrInvalidByteLength,
				"BLS public key must be %d bytes, got %d",
				BLSPublicKeySize, len(b))
		}
		pk := new(blst.P1Affine).Uncompress(b)
		if pk == nil || !pk.KeyValidate() {
			return PublicKey{}, core.Errorf(core.ErrKeyLibrary,
				"invalid BLS public key")
		}

	default:
		return PublicKey{}, core.Errorf(core.ErrInvalidSignatureType,
			"unknown signature type %d", typ)
	}
	return PublicKey{typ: typ, key: string(b), net: net}, nil
}

// ParsePublicKey decodes a tagged public key string, secp256k1_pub_ or
// bls_pub_ followed by the hex encoded key.
func ParsePublicKey(s string, net Network) (PublicKey, error) {
	var (
		typ  SignatureType
		body string
	)
	switch {
	case strings.HasPrefix(s, secpPublicTag):
		typ, body = SigTypeSECP256K1, s[len(secpPublicTag):]
	case strings.HasPrefix(s, blsPublicTag):
		typ, body = SigTypeBLS, s[len(blsPublicTag):]
	default:
		return PublicKey{}, core.Errorf(core.ErrInvalidPrefix,
			"unknown public key tag")
	}
	b, err := hex.DecodeString(body)
	if err != nil {
		return PublicKey{}, core.NewError(core.ErrInvalidEncoding,
			"public key is not valid hex", err)
	}
	return PublicKeyFromBytes(typ, b, net)
}

// Type returns the signature scheme of the key.
func (k PublicKey) Type() SignatureType {
	return k.typ
}

// Serialize returns a copy of the serialized key.
func (k PublicKey) Serialize() []byte {
	return []byte(k.key)
}

// String returns the tagged hex encoding of the key.
func (k PublicKey) String() string {
	tag := secpPublicTag
	if k.typ == SigTypeBLS {
		tag = blsPublicTag
	}
	return tag + hex.EncodeToString([]byte(k.key))
}

// Address returns the address of the public key.  secp256k1 addresses
// commit to the Blake2b-160 hash of the uncompressed key, BLS addresses
// carry the key itself.
func (k PublicKey) Address(format Format) (Address, error) {
	if format != Standard {
		return Address{}, core.Errorf(core.ErrUnsupportedFormat,
			"unsupported address format %v", format)
	}

	switch k.typ {
	case SigTypeSECP256K1:
		return newAddress(k.net, SECP256K1,
			hashes.Blake2b160([]byte(k.key))), nil
	case SigTypeBLS:
		return newAddress(k.net, BLS, []byte(k.key)), nil
	default:
		return Address{}, core.Errorf(core.ErrInvalidSignatureType,
			"unknown signature type %d", k.typ)
	}
}
