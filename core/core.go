// Copyright (c) 2024 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package core defines the capabilities every chain implementation must
// provide: amounts, address formats, networks, addresses, keys and
// transactions.
//
// The interfaces are used as type constraints.  Code that works across
// chains is written generically against them, so the concrete chain is
// fixed at the call site and keys of one chain can never be handed to the
// transaction engine of another.
package core

import (
	"fmt"
	"io"
)

// Amount is an integer quantity of a chain's base unit.
type Amount interface {
	comparable
	fmt.Stringer
}

// Format is one member of a chain's closed set of address encodings.
type Format interface {
	comparable
	fmt.Stringer
}

// Network identifies a chain environment such as a main or test network.
// String returns the network name.
type Network interface {
	fmt.Stringer

	// ID returns the numeric identity of the network.
	ID() uint64
}

// Address is the canonical encoding of a public key, or of a script, under
// a format and network.
type Address interface {
	comparable
	fmt.Stringer
}

// PublicKey is a curve point derived from a private key.
type PublicKey[F Format, A Address] interface {
	comparable
	fmt.Stringer

	// Address returns the address of the public key under format.
	Address(format F) (A, error)
}

// PrivateKey is a secret scalar.  String returns the chain's canonical
// textual encoding, which its parse function accepts back.
type PrivateKey[F Format, A Address, P PublicKey[F, A]] interface {
	comparable
	fmt.Stringer

	// PublicKey returns the public key of the private key.
	PublicKey() P

	// Address returns the address of the private key under format.
	Address(format F) (A, error)
}

// KeyGenerator creates a new private key from the supplied randomness
// source.  Implementations never fall back to a global generator.
type KeyGenerator[K any] func(rng io.Reader) (K, error)

// TransactionID is the content hash of a serialized transaction.
type TransactionID interface {
	comparable
	fmt.Stringer
}

// Transaction is a transaction that is built unsigned, signed with a
// private key of type K and then serialized.
type Transaction[K any, I TransactionID] interface {
	// SignWithPrivateKey signs the transaction with key and returns the
	// serialized transaction.
	SignWithPrivateKey(key K) ([]byte, error)

	// Bytes returns the serialized transaction.
	Bytes() ([]byte, error)

	// TransactionID returns the identifier of the serialized transaction.
	TransactionID() (I, error)
}

// DeriveAddress returns the address of key under format.  The address and
// public key types can not be inferred from the arguments and are given
// explicitly, for example:
//
//	addr, err := core.DeriveAddress[bitcoin.Address, bitcoin.PublicKey](
//		key, bitcoin.P2PKH)
func DeriveAddress[A Address, P PublicKey[F, A], F Format,
	K PrivateKey[F, A, P]](key K, format F) (A, error) {

	return key.PublicKey().Address(format)
}

// SignTransaction signs tx with key and returns the serialized transaction
// along with its identifier.  The identifier type is given explicitly.
func SignTransaction[I TransactionID, K any, T Transaction[K, I]](tx T,
	key K) ([]byte, I, error) {

	var id I
	serialized, err := tx.SignWithPrivateKey(key)
	if err != nil {
		return nil, id, err
	}
	id, err = tx.TransactionID()
	if err != nil {
		return nil, id, err
	}
	return serialized, id, nil
}
