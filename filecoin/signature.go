// Copyright (c) 2024 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package filecoin

import (
	"bytes"
	"fmt"

	"github.com/btcsuite/chainwallet/core"
	"github.com/btcsuite/chainwallet/core/hashes"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
	blst "github.com/supranational/blst/bindings/go"
)

// SignatureType is the discriminant of a signature scheme.
type SignatureType byte

// Signature schemes.
const (
	SigTypeSECP256K1 SignatureType = 1
	SigTypeBLS       SignatureType = 2
)

// String returns the name of the scheme.
func (t SignatureType) String() string {
	switch t {
	case SigTypeSECP256K1:
		return "secp256k1"
	case SigTypeBLS:
		return "bls"
	default:
		return fmt.Sprintf("Unknown SignatureType (%d)", byte(t))
	}
}

const (
	// SECP256K1SignatureSize is the size of an r || s || v signature.
	SECP256K1SignatureSize = 65

	// BLSSignatureSize is the size of a compressed BLS12-381 G2 point.
	BLSSignatureSize = 96

	// compactSigMagicOffset is the value added to the recovery id in the
	// header byte of a compact signature.
	compactSigMagicOffset = 27
)

// blsDST is the domain separation tag of Filecoin BLS signatures.
var blsDST = []byte("BLS_SIG_BLS12381G2_XMD:SHA-256_SSWU_RO_NUL_")

// Signature is a Filecoin signature.
type Signature struct {
	Type SignatureType
	Data []byte
}

// ParseSignature decodes the wire form of a signature: the type byte
// followed by the signature data.
func ParseSignature(b []byte) (Signature, error) {
	if len(b) == 0 {
		return Signature{}, core.Errorf(core.ErrInvalidByteLength,
			"empty signature")
	}
	sig := Signature{Type: SignatureType(b[0]), Data: b[1:]}
	if err := sig.check(); err != nil {
		return Signature{}, err
	}
	sig.Data = append([]byte(nil), sig.Data...)
	return sig, nil
}

func (s Signature) check() error {
	var size int
	switch s.Type {
	case SigTypeSECP256K1:
		size = SECP256K1SignatureSize
	case SigTypeBLS:
		size = BLSSignatureSize
	default:
		return core.Errorf(core.ErrInvalidSignatureType,
			"unknown signature type %d", byte(s.Type))
	}
	if len(s.Data) != size {
		return core.Errorf(core.ErrInvalidByteLength,
			"%v signature must be %d bytes, got %d", s.Type, size,
			len(s.Data))
	}
	return nil
}

// Bytes returns the wire form of the signature.
func (s Signature) Bytes() []byte {
	return append([]byte{byte(s.Type)}, s.Data...)
}

// Sign signs msg with key.  secp256k1 keys sign the Blake2b-256 hash of
// msg and produce r || s || recovery id.  BLS keys sign msg itself.
func Sign(key PrivateKey, msg []byte) (Signature, error) {
	switch key.typ {
	case SigTypeSECP256K1:
		priv, err := key.SECP256K1()
		if err != nil {
			return Signature{}, err
		}
		defer priv.Zero()

		compact := ecdsa.SignCompact(priv, hashes.Blake2b256(msg), false)
		data := make([]byte, SECP256K1SignatureSize)
		copy(data, compact[1:])
		data[64] = compact[0] - compactSigMagicOffset
		return Signature{Type: SigTypeSECP256K1, Data: data}, nil

	case SigTypeBLS:
		sk, err := key.BLS()
		if err != nil {
			return Signature{}, err
		}
		defer sk.Zeroize()

		sig := new(blst.P2Affine).Sign(sk, msg, blsDST)
		return Signature{Type: SigTypeBLS, Data: sig.Compress()}, nil

	default:
		return Signature{}, core.Errorf(core.ErrInvalidSignatureType,
			"unknown signature type %d", byte(key.typ))
	}
}

// recoverKey returns the uncompressed secp256k1 key that produced the
// signature over msg.
func (s Signature) recoverKey(msg []byte) ([]byte, error) {
	if s.Data[64] > 3 {
		return nil, core.Errorf(core.ErrKeyLibrary,
			"invalid recovery id %d", s.Data[64])
	}
	compact := make([]byte, SECP256K1SignatureSize)
	compact[0] = s.Data[64] + compactSigMagicOffset
	copy(compact[1:], s.Data[:64])

	pub, _, err := ecdsa.RecoverCompact(compact, hashes.Blake2b256(msg))
	if err != nil {
		return nil, core.NewError(core.ErrKeyLibrary,
			"failed to recover public key", err)
	}
	return pub.SerializeUncompressed(), nil
}

// Verify checks that the signature over msg was made by the key of pub.
func (s Signature) Verify(pub PublicKey, msg []byte) error {
	if err := s.check(); err != nil {
		return err
	}
	if s.Type != pub.typ {
		return core.Errorf(core.ErrKeyMismatch,
			"%v signature can not be verified with %v key", s.Type,
			pub.typ)
	}

	switch s.Type {
	case SigTypeSECP256K1:
		recovered, err := s.recoverKey(msg)
		if err != nil {
			return err
		}
		if !bytes.Equal(recovered, []byte(pub.key)) {
			return core.Errorf(core.ErrKeyMismatch,
				"signature was not made by %v", pub)
		}
	default:
		sig := new(blst.P2Affine).Uncompress(s.Data)
		pk := new(blst.P1Affine).Uncompress([]byte(pub.key))
		if sig == nil || pk == nil {
			return core.Errorf(core.ErrKeyLibrary,
				"malformed BLS signature or key")
		}
		if !sig.Verify(true, pk, true, msg, blsDST) {
			return core.Errorf(core.ErrKeyMismatch,
				"signature was not made by %v", pub)
		}
	}
	return nil
}

// VerifyAddress checks that the signature over msg was made by the key
// behind addr, which must be a secp256k1 or BLS address.
func (s Signature) VerifyAddress(addr Address, msg []byte) error {
	if err := s.check(); err != nil {
		return err
	}

	switch {
	case addr.protocol == SECP256K1 && s.Type == SigTypeSECP256K1:
		recovered, err := s.recoverKey(msg)
		if err != nil {
			return err
		}
		if !bytes.Equal(hashes.Blake2b160(recovered),
			[]byte(addr.payload)) {

			return core.Errorf(core.ErrKeyMismatch,
				"signature was not made by %v", addr)
		}
		return nil

	case addr.protocol == BLS && s.Type == SigTypeBLS:
		pub, err := PublicKeyFromBytes(SigTypeBLS, []byte(addr.payload),
			addr.net)
		if err != nil {
			return err
		}
		return s.Verify(pub, msg)

	default:
		return core.Errorf(core.ErrKeyMismatch,
			"%v signature can not be verified against protocol %d "+
				"address", s.Type, addr.protocol)
	}
}
