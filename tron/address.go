// Copyright (c) 2024 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package tron

import (
	"bytes"
	"encoding/hex"
	"strings"

	"github.com/btcsuite/btcd/btcutil/base58"
	"github.com/btcsuite/chainwallet/core"
	"github.com/btcsuite/chainwallet/core/hashes"
	"github.com/ethereum/go-ethereum/common"
)

const (
	// AddressPrefix is the first byte of every Tron address.
	AddressPrefix byte = 0x41

	// AddressSize is the size of an address including its prefix.
	AddressSize = 1 + common.AddressLength

	base58AddressLen = 34
	hexAddressLen    = 2 * AddressSize
)

// Network is a Tron network.  Addresses are the same on every network.
type Network struct {
	Name    string
	ChainID uint64
}

// Known Tron networks.
var (
	Mainnet = Network{Name: "mainnet", ChainID: 0x2b6653dc}
	Shasta  = Network{Name: "shasta", ChainID: 0x94a9059e}
	Nile    = Network{Name: "nile", ChainID: 0xcd8690dc}
)

// String returns the name of the network.
func (n Network) String() string {
	return n.Name
}

// ID returns the chain id of the network.
func (n Network) ID() uint64 {
	return n.ChainID
}

// Address is a Tron address.
type Address struct {
	payload [AddressSize]byte
}

// ParseAddress decodes an address from its Base58Check form or its 42
// character hex form.
func ParseAddress(s string) (Address, error) {
	switch len(s) {
	case base58AddressLen:
		return decodeBase58Address(s)
	case hexAddressLen:
		b, err := hex.DecodeString(s)
		if err != nil {
			return Address{}, core.NewError(core.ErrInvalidEncoding,
				"address is not valid hex", err)
		}
		return AddressFromBytes(b)
	default:
		return Address{}, core.Errorf(core.ErrInvalidCharacterLength,
			"address must be %d or %d characters, got %d",
			base58AddressLen, hexAddressLen, len(s))
	}
}

func decodeBase58Address(s string) (Address, error) {
	decoded := base58.Decode(s)
	if len(decoded) == 0 {
		return Address{}, core.Errorf(core.ErrInvalidEncoding,
			"address %q is not valid base58", s)
	}
	if len(decoded) != AddressSize+hashes.ChecksumSize {
		return Address{}, core.Errorf(core.ErrInvalidByteLength,
			"decoded address must be %d bytes, got %d",
			AddressSize+hashes.ChecksumSize, len(decoded))
	}

	payload, found := decoded[:AddressSize], decoded[AddressSize:]
	expected := hashes.Checksum(payload)
	if !bytes.Equal(expected, found) {
		return Address{}, core.ChecksumError(expected, found)
	}
	return AddressFromBytes(payload)
}

// AddressFromBytes returns the address with the given 21 byte payload.
func AddressFromBytes(b []byte) (Address, error) {
	if len(b) != AddressSize {
		return Address{}, core.Errorf(core.ErrInvalidByteLength,
			"address must be %d bytes, got %d", AddressSize, len(b))
	}
	if b[0] != AddressPrefix {
		return Address{}, core.Errorf(core.ErrInvalidAddressPrefix,
			"invalid address prefix %#02x", b[0])
	}
	var a Address
	copy(a.payload[:], b)
	return a, nil
}

// String returns the Base58Check encoding of the address.
func (a Address) String() string {
	return base58.CheckEncode(a.payload[1:], a.payload[0])
}

// Hex returns the hex encoding of the address, starting with 41.
func (a Address) Hex() string {
	return hex.EncodeToString(a.payload[:])
}

// Bytes returns the 21 byte payload of the address.
func (a Address) Bytes() []byte {
	return append([]byte(nil), a.payload[:]...)
}

// EVMAddress returns the address without its prefix, as contracts see it.
func (a Address) EVMAddress() common.Address {
	return common.BytesToAddress(a.payload[1:])
}

// IsAddress returns whether s decodes as an address.
func IsAddress(s string) bool {
	_, err := ParseAddress(strings.TrimSpace(s))
	return err == nil
}
