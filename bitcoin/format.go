// Copyright (c) 2024 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package bitcoin

import (
	"fmt"
	"strings"

	"github.com/btcsuite/chainwallet/core"
	"github.com/btcsuite/chainwallet/netparams"
)

// Format is an address encoding supported by Bitcoin.
type Format uint8

// These constants define the supported address formats.
const (
	// P2PKH is a pay-to-pubkey-hash address, Base58Check encoded.
	P2PKH Format = iota

	// P2SHP2WPKH is a pay-to-witness-pubkey-hash program nested in a
	// pay-to-script-hash address, Base58Check encoded.
	P2SHP2WPKH

	// P2WSH is a native version 0 pay-to-witness-script-hash address,
	// Bech32 encoded.
	P2WSH

	// Bech32 is a native version 0 pay-to-witness-pubkey-hash address,
	// Bech32 encoded.
	Bech32
)

var formatStrings = map[Format]string{
	P2PKH:      "p2pkh",
	P2SHP2WPKH: "p2sh_p2wpkh",
	P2WSH:      "p2wsh",
	Bech32:     "bech32",
}

// String returns the name of the format.
func (f Format) String() string {
	if s, ok := formatStrings[f]; ok {
		return s
	}
	return fmt.Sprintf("Unknown Format (%d)", uint8(f))
}

// ParseFormat returns the format named s.  Names are case-insensitive.
func ParseFormat(s string) (Format, error) {
	for f, name := range formatStrings {
		if strings.EqualFold(name, s) {
			return f, nil
		}
	}
	return 0, core.Errorf(core.ErrUnsupportedFormat,
		"unsupported address format %q", s)
}

// segwit returns whether addresses of the format carry a witness program.
func (f Format) segwit() bool {
	return f != P2PKH
}

// AddressPrefix returns the prefix every address of format f on network
// net starts with: the Base58 version byte for P2PKH and P2SHP2WPKH, and the
// human-readable part for the Bech32 formats.
func AddressPrefix(net *netparams.Params, f Format) ([]byte, error) {
	switch f {
	case P2PKH:
		return []byte{net.PubKeyHashAddrID}, nil
	case P2SHP2WPKH:
		return []byte{net.ScriptHashAddrID}, nil
	case P2WSH, Bech32:
		return []byte(net.Bech32HRPSegwit), nil
	default:
		return nil, core.Errorf(core.ErrUnsupportedFormat,
			"unsupported address format %v", f)
	}
}
