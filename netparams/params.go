// Copyright (c) 2013-2024 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package netparams groups the parameters of the Bitcoin-family networks
// that keys and addresses may be encoded for, and resolves encoded prefixes
// back to exactly one of them.
package netparams

import (
	"strings"

	"github.com/btcsuite/btcd/chaincfg"
	"github.com/btcsuite/chainwallet/core"
)

// Params is used to group parameters for various networks such as the main
// network and test networks.  Values are immutable once declared.
type Params struct {
	*chaincfg.Params
}

// MainNetParams contains parameters specific to the main network
// (wire.MainNet).
var MainNetParams = Params{
	Params: &chaincfg.MainNetParams,
}

// TestNet3Params contains parameters specific to the test network (version
// 3) (wire.TestNet3).
var TestNet3Params = Params{
	Params: &chaincfg.TestNet3Params,
}

// SimNetParams contains parameters specific to the simulation test network
// (wire.SimNet).
var SimNetParams = Params{
	Params: &chaincfg.SimNetParams,
}

// registered lists every network prefixes are resolved against.  The
// regression test network and testnet4 are absent on purpose: they reuse
// testnet3's Base58 prefixes, so registering them would make decoding
// ambiguous.
var registered = []*Params{
	&MainNetParams,
	&TestNet3Params,
	&SimNetParams,
}

// String returns the name of the network.
func (p *Params) String() string {
	return p.Name
}

// ID returns the network's wire magic as its numeric identity.
func (p *Params) ID() uint64 {
	return uint64(p.Net)
}

// Networks returns every registered network.
func Networks() []*Params {
	nets := make([]*Params, len(registered))
	copy(nets, registered)
	return nets
}

// ParamsForName returns the registered network with the given name.
func ParamsForName(name string) (*Params, error) {
	for _, p := range registered {
		if p.Name == name {
			return p, nil
		}
	}
	return nil, core.Errorf(core.ErrInvalidNetwork,
		"unknown network %q", name)
}

// ParamsForPrivateKeyPrefix returns the network whose WIF version byte is
// prefix.
func ParamsForPrivateKeyPrefix(prefix byte) (*Params, error) {
	for _, p := range registered {
		if p.PrivateKeyID == prefix {
			return p, nil
		}
	}
	return nil, core.Errorf(core.ErrInvalidNetwork,
		"no network for private key prefix %#02x", prefix)
}

// ParamsForPubKeyHashID returns the network whose pay-to-pubkey-hash
// version byte is id.
func ParamsForPubKeyHashID(id byte) (*Params, bool) {
	for _, p := range registered {
		if p.PubKeyHashAddrID == id {
			return p, true
		}
	}
	return nil, false
}

// ParamsForScriptHashID returns the network whose pay-to-script-hash
// version byte is id.
func ParamsForScriptHashID(id byte) (*Params, bool) {
	for _, p := range registered {
		if p.ScriptHashAddrID == id {
			return p, true
		}
	}
	return nil, false
}

// ParamsForBech32HRP returns the network whose segwit human-readable part
// is hrp.  The comparison is case-insensitive as Bech32 is.
func ParamsForBech32HRP(hrp string) (*Params, bool) {
	hrp = strings.ToLower(hrp)
	for _, p := range registered {
		if p.Bech32HRPSegwit == hrp {
			return p, true
		}
	}
	return nil, false
}
