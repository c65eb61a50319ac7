// Copyright (c) 2024 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package filecoin

import (
	"bytes"
	"encoding/base32"
	"encoding/binary"
	"fmt"
	"strconv"

	"github.com/btcsuite/chainwallet/core"
	"github.com/btcsuite/chainwallet/core/hashes"
)

// Network is a Filecoin network, identified by the first character of its
// addresses.
type Network byte

// Filecoin networks.
const (
	Mainnet Network = 'f'
	Testnet Network = 't'
)

// String returns the name of the network.
func (n Network) String() string {
	switch n {
	case Mainnet:
		return "mainnet"
	case Testnet:
		return "testnet"
	default:
		return fmt.Sprintf("Unknown Network (%q)", byte(n))
	}
}

// ID returns the EVM chain id of the network: 314 for mainnet and 314159
// for the calibration testnet.
func (n Network) ID() uint64 {
	switch n {
	case Mainnet:
		return 314
	case Testnet:
		return 314159
	default:
		return 0
	}
}

func (n Network) valid() bool {
	return n == Mainnet || n == Testnet
}

// NetworkForName returns the network with the given name.
func NetworkForName(name string) (Network, error) {
	for _, n := range []Network{Mainnet, Testnet} {
		if n.String() == name {
			return n, nil
		}
	}
	return 0, core.Errorf(core.ErrInvalidNetwork, "unknown network %q", name)
}

// Protocol identifies how an address is derived.
type Protocol byte

// Address protocols.
const (
	ID        Protocol = 0
	SECP256K1 Protocol = 1
	Actor     Protocol = 2
	BLS       Protocol = 3
)

// Payload sizes of the hash and key protocols.
const (
	hashPayloadSize = hashes.Blake2b160Size
	blsPayloadSize  = BLSPublicKeySize

	// maxIDLength is the number of decimal digits of the largest id.
	maxIDLength = 20
)

// payloadSize returns the payload size of a key or hash protocol.
func (p Protocol) payloadSize() int {
	switch p {
	case SECP256K1, Actor:
		return hashPayloadSize
	case BLS:
		return blsPayloadSize
	default:
		return 0
	}
}

// Format is a Filecoin address encoding.  Filecoin has a single one.
type Format uint8

// Standard is the textual address encoding.
const Standard Format = 0

// String returns the name of the format.
func (f Format) String() string {
	if f == Standard {
		return "standard"
	}
	return "unknown"
}

// addressEncoding is the lower case, unpadded base32 alphabet of
// addresses.
var addressEncoding = base32.NewEncoding(
	"abcdefghijklmnopqrstuvwxyz234567").WithPadding(base32.NoPadding)

// Address is a Filecoin address.
type Address struct {
	net      Network
	protocol Protocol
	payload  string
}

func newAddress(net Network, protocol Protocol, payload []byte) Address {
	return Address{net: net, protocol: protocol, payload: string(payload)}
}

// NewIDAddress returns the address of actor id.
func NewIDAddress(id uint64, net Network) Address {
	return newAddress(net, ID, binary.AppendUvarint(nil, id))
}

// NewActorAddress returns the address of an actor whose creation data
// hashes to data.
func NewActorAddress(data []byte, net Network) Address {
	return newAddress(net, Actor, hashes.Blake2b160(data))
}

// ParseAddress decodes the textual form of an address.
func ParseAddress(s string) (Address, error) {
	if len(s) < 3 {
		return Address{}, core.Errorf(core.ErrInvalidCharacterLength,
			"address %q too short", s)
	}

	net := Network(s[0])
	if !net.valid() {
		return Address{}, core.Errorf(core.ErrInvalidNetwork,
			"unknown network prefix %q", s[0])
	}
	if s[1] < '0' || s[1] > '3' {
		return Address{}, core.Errorf(core.ErrInvalidAddressPrefix,
			"unknown address protocol %q", s[1])
	}
	protocol := Protocol(s[1] - '0')
	body := s[2:]

	if protocol == ID {
		if len(body) > maxIDLength {
			return Address{}, core.Errorf(core.ErrInvalidCharacterLength,
				"id %q too long", body)
		}
		if len(body) > 1 && body[0] == '0' {
			return Address{}, core.Errorf(core.ErrInvalidEncoding,
				"id %q has leading zeros", body)
		}
		id, err := strconv.ParseUint(body, 10, 64)
		if err != nil {
			return Address{}, core.NewError(core.ErrInvalidEncoding,
				fmt.Sprintf("invalid id %q", body), err)
		}
		return NewIDAddress(id, net), nil
	}

	raw, err := addressEncoding.DecodeString(body)
	if err != nil {
		return Address{}, core.NewError(core.ErrInvalidEncoding,
			"address is not valid base32", err)
	}
	size := protocol.payloadSize()
	if len(raw) != size+hashes.Blake2b32Size {
		return Address{}, core.Errorf(core.ErrInvalidByteLength,
			"protocol %d address must decode to %d bytes, got %d",
			protocol, size+hashes.Blake2b32Size, len(raw))
	}

	payload, found := raw[:size], raw[size:]
	expected := checksum(protocol, payload)
	if !bytes.Equal(expected, found) {
		return Address{}, core.ChecksumError(expected, found)
	}
	return newAddress(net, protocol, payload), nil
}

// AddressFromBytes decodes the binary form of an address: the protocol
// byte followed by the payload.
func AddressFromBytes(b []byte, net Network) (Address, error) {
	if len(b) == 0 {
		return Address{}, core.Errorf(core.ErrInvalidByteLength,
			"empty address")
	}
	protocol, payload := Protocol(b[0]), b[1:]

	switch protocol {
	case ID:
		id, n := binary.Uvarint(payload)
		if n <= 0 || n != len(payload) ||
			!bytes.Equal(binary.AppendUvarint(nil, id), payload) {

			return Address{}, core.Errorf(core.ErrInvalidEncoding,
				"malformed id payload %x", payload)
		}
	case SECP256K1, Actor, BLS:
		if len(payload) != protocol.payloadSize() {
			return Address{}, core.Errorf(core.ErrInvalidByteLength,
				"protocol %d payload must be %d bytes, got %d",
				protocol, protocol.payloadSize(), len(payload))
		}
	default:
		return Address{}, core.Errorf(core.ErrInvalidAddressPrefix,
			"unknown address protocol %d", protocol)
	}
	return newAddress(net, protocol, payload), nil
}

func checksum(protocol Protocol, payload []byte) []byte {
	return hashes.Blake2b32(append([]byte{byte(protocol)}, payload...))
}

// String returns the textual form of the address.
func (a Address) String() string {
	if !a.net.valid() {
		return ""
	}
	prefix := string([]byte{byte(a.net), '0' + byte(a.protocol)})
	if a.protocol == ID {
		id, _ := binary.Uvarint([]byte(a.payload))
		return prefix + strconv.FormatUint(id, 10)
	}
	payload := []byte(a.payload)
	return prefix + addressEncoding.EncodeToString(
		append(payload, checksum(a.protocol, payload)...))
}

// Bytes returns the binary form of the address.
func (a Address) Bytes() []byte {
	return append([]byte{byte(a.protocol)}, a.payload...)
}

// Protocol returns the address protocol.
func (a Address) Protocol() Protocol {
	return a.protocol
}

// Network returns the network of the address.
func (a Address) Network() Network {
	return a.net
}

// Payload returns a copy of the address payload.
func (a Address) Payload() []byte {
	return []byte(a.payload)
}

// IsZero returns whether a is the zero Address.
func (a Address) IsZero() bool {
	return a == Address{}
}
