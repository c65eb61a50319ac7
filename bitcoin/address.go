// Copyright (c) 2013-2024 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package bitcoin

import (
	"bytes"
	"errors"
	"strings"

	"github.com/btcsuite/btcd/btcutil/base58"
	"github.com/btcsuite/btcd/btcutil/bech32"
	"github.com/btcsuite/btcd/txscript"
	"github.com/btcsuite/chainwallet/core"
	"github.com/btcsuite/chainwallet/core/hashes"
	"github.com/btcsuite/chainwallet/netparams"
)

const (
	// hashSize is the size of the hash160 payload of P2PKH, P2SH-P2WPKH
	// and P2WPKH addresses.
	hashSize = 20

	// scriptHashSize is the size of the sha256 payload of P2WSH
	// addresses.
	scriptHashSize = 32

	// base58AddressLen is the decoded length of a Base58Check address.
	base58AddressLen = 1 + hashSize + hashes.ChecksumSize

	// witnessVersion is the only witness version addresses are encoded
	// for.
	witnessVersion = 0
)

// Address is a Bitcoin address.  Two addresses are equal when they carry
// the same payload under the same format and network, whatever the case of
// the string they were decoded from.
type Address struct {
	format  Format
	net     *netparams.Params
	payload string
}

func newAddress(format Format, net *netparams.Params, payload []byte) Address {
	return Address{format: format, net: net, payload: string(payload)}
}

// NewAddressFromScript returns the address paying to script.  P2WSH commits
// to sha256(script) and P2SHP2WPKH, as any P2SH address, to hash160(script).
func NewAddressFromScript(script []byte, format Format,
	net *netparams.Params) (Address, error) {

	switch format {
	case P2WSH:
		return newAddress(format, net, hashes.SHA256(script)), nil
	case P2SHP2WPKH:
		return newAddress(format, net, hashes.Hash160(script)), nil
	case P2PKH, Bech32:
		return Address{}, core.Errorf(core.ErrUnsupportedDerivationPath,
			"%v addresses are derived from a public key, not a script",
			format)
	default:
		return Address{}, core.Errorf(core.ErrUnsupportedFormat,
			"unsupported address format %v", format)
	}
}

// DecodeAddress decodes the string encoding of an address.  A string that
// starts with the human-readable part of a known network is decoded as
// Bech32, any other as Base58Check.  The network is determined by the
// address prefix.
func DecodeAddress(addr string) (Address, error) {
	lower := strings.ToLower(addr)
	for _, net := range netparams.Networks() {
		if strings.HasPrefix(lower, net.Bech32HRPSegwit+"1") {
			return decodeSegWitAddress(addr)
		}
	}
	return decodeBase58Address(addr)
}

// DecodeAddressForNetwork decodes addr and checks that it belongs to net.
func DecodeAddressForNetwork(addr string, net *netparams.Params) (Address, error) {
	a, err := DecodeAddress(addr)
	if err != nil {
		return Address{}, err
	}
	if a.net != net {
		return Address{}, core.Errorf(core.ErrInvalidNetwork,
			"address %v is for %v, not %v", addr, a.net, net)
	}
	return a, nil
}

func decodeBase58Address(addr string) (Address, error) {
	decoded := base58.Decode(addr)
	if len(decoded) == 0 {
		return Address{}, core.Errorf(core.ErrInvalidEncoding,
			"address %q is not valid base58", addr)
	}
	if len(decoded) != base58AddressLen {
		return Address{}, core.Errorf(core.ErrInvalidByteLength,
			"decoded address must be %d bytes, got %d",
			base58AddressLen, len(decoded))
	}

	versioned := decoded[:1+hashSize]
	found := decoded[1+hashSize:]
	expected := hashes.Checksum(versioned)
	if !bytes.Equal(expected, found) {
		return Address{}, core.ChecksumError(expected, found)
	}

	version, payload := versioned[0], versioned[1:]
	if net, ok := netparams.ParamsForPubKeyHashID(version); ok {
		return newAddress(P2PKH, net, payload), nil
	}
	if net, ok := netparams.ParamsForScriptHashID(version); ok {
		return newAddress(P2SHP2WPKH, net, payload), nil
	}
	return Address{}, core.Errorf(core.ErrInvalidAddressPrefix,
		"unknown address version %#02x", version)
}

func decodeSegWitAddress(addr string) (Address, error) {
	hrp, data, checksumVersion, err := bech32.DecodeGeneric(addr)
	if err != nil {
		var checksumErr bech32.ErrInvalidChecksum
		if errors.As(err, &checksumErr) {
			return Address{}, core.Errorf(core.ErrInvalidChecksum,
				"invalid checksum: { expected: %s, found: %s }",
				checksumErr.Expected, checksumErr.Actual)
		}
		return Address{}, core.NewError(core.ErrInvalidEncoding,
			"invalid bech32 address", err)
	}

	net, ok := netparams.ParamsForBech32HRP(hrp)
	if !ok {
		return Address{}, core.Errorf(core.ErrInvalidAddressPrefix,
			"unknown human-readable part %q", hrp)
	}
	if len(data) == 0 {
		return Address{}, core.Errorf(core.ErrInvalidByteLength,
			"address has no witness version")
	}
	if data[0] != witnessVersion {
		return Address{}, core.Errorf(core.ErrInvalidVersionBytes,
			"unsupported witness version %d", data[0])
	}
	if checksumVersion != bech32.Version0 {
		return Address{}, core.Errorf(core.ErrInvalidChecksum,
			"witness version 0 address must use a bech32 checksum, "+
				"found bech32m")
	}

	program, err := bech32.ConvertBits(data[1:], 5, 8, false)
	if err != nil {
		return Address{}, core.NewError(core.ErrInvalidEncoding,
			"invalid witness program", err)
	}

	switch len(program) {
	case hashSize:
		return newAddress(Bech32, net, program), nil
	case scriptHashSize:
		return newAddress(P2WSH, net, program), nil
	default:
		return Address{}, core.Errorf(core.ErrInvalidByteLength,
			"witness program must be %d or %d bytes, got %d",
			hashSize, scriptHashSize, len(program))
	}
}

// String returns the canonical encoding of the address.  Bech32 addresses
// are lower case.
func (a Address) String() string {
	if a.net == nil {
		return ""
	}

	switch a.format {
	case P2PKH:
		return base58.CheckEncode([]byte(a.payload), a.net.PubKeyHashAddrID)
	case P2SHP2WPKH:
		return base58.CheckEncode([]byte(a.payload), a.net.ScriptHashAddrID)
	case P2WSH, Bech32:
		conv, err := bech32.ConvertBits([]byte(a.payload), 8, 5, true)
		if err != nil {
			return ""
		}
		data := append([]byte{witnessVersion}, conv...)
		s, err := bech32.Encode(a.net.Bech32HRPSegwit, data)
		if err != nil {
			return ""
		}
		return s
	default:
		return ""
	}
}

// Format returns the format of the address.
func (a Address) Format() Format {
	return a.format
}

// Network returns the network of the address.
func (a Address) Network() *netparams.Params {
	return a.net
}

// Payload returns a copy of the hash the address commits to.
func (a Address) Payload() []byte {
	return []byte(a.payload)
}

// ScriptPubKey returns the locking script paying to the address.
func (a Address) ScriptPubKey() ([]byte, error) {
	payload := []byte(a.payload)

	switch a.format {
	case P2PKH:
		return txscript.NewScriptBuilder().
			AddOp(txscript.OP_DUP).
			AddOp(txscript.OP_HASH160).
			AddData(payload).
			AddOp(txscript.OP_EQUALVERIFY).
			AddOp(txscript.OP_CHECKSIG).
			Script()
	case P2SHP2WPKH:
		return txscript.NewScriptBuilder().
			AddOp(txscript.OP_HASH160).
			AddData(payload).
			AddOp(txscript.OP_EQUAL).
			Script()
	case P2WSH, Bech32:
		return txscript.NewScriptBuilder().
			AddOp(txscript.OP_0).
			AddData(payload).
			Script()
	default:
		return nil, core.Errorf(core.ErrUnsupportedFormat,
			"unsupported address format %v", a.format)
	}
}
