// Copyright (c) 2024 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/hex"
	"fmt"
	"io"

	"github.com/btcsuite/chainwallet/bitcoin"
	"github.com/btcsuite/chainwallet/core"
	"github.com/btcsuite/chainwallet/ethereum"
	"github.com/btcsuite/chainwallet/filecoin"
	"github.com/btcsuite/chainwallet/netparams"
	"github.com/btcsuite/chainwallet/omni"
	"github.com/btcsuite/chainwallet/tron"
)

// keyInfo is what the key commands print.
type keyInfo struct {
	PrivateKey string
	PublicKey  string
	Address    string
	Format     string
}

// field is one line of a decoded address.
type field struct {
	Name  string
	Value string
}

// keyOptions select the kind of key to generate.
type keyOptions struct {
	BLS          bool
	Uncompressed bool
}

// chain is the command line view of one chain implementation.
type chain interface {
	// generate creates a new key from rng.
	generate(rng io.Reader, opts keyOptions, format string) (keyInfo, error)

	// derive parses key and derives its address.
	derive(key string, format string) (keyInfo, error)

	// decode validates addr and describes it.
	decode(addr string) ([]field, error)
}

// chainForName returns the chain named name on the network selected by cfg.
func chainForName(name string, cfg *config) (chain, error) {
	if cfg.SimNet && name != "bitcoin" && name != "omni" {
		return nil, fmt.Errorf("%s has no simulation network", name)
	}

	switch name {
	case "bitcoin":
		return bitcoinChain{net: cfg.bitcoinParams()}, nil
	case "omni":
		return omniChain{bitcoinChain{net: cfg.bitcoinParams()}}, nil
	case "tron":
		if cfg.TestNet3 {
			return tronChain{net: tron.Shasta}, nil
		}
		return tronChain{net: tron.Mainnet}, nil
	case "ethereum":
		if cfg.TestNet3 {
			return ethereumChain{net: ethereum.Sepolia}, nil
		}
		return ethereumChain{net: ethereum.Mainnet}, nil
	case "filecoin":
		if cfg.TestNet3 {
			return filecoinChain{net: filecoin.Testnet}, nil
		}
		return filecoinChain{net: filecoin.Mainnet}, nil
	default:
		return nil, fmt.Errorf("unknown chain %q", name)
	}
}

// describe derives the address of key under format.
func describe[A core.Address, P core.PublicKey[F, A], F core.Format,
	K core.PrivateKey[F, A, P]](key K, format F) (keyInfo, error) {

	addr, err := core.DeriveAddress[A, P](key, format)
	if err != nil {
		return keyInfo{}, err
	}
	return keyInfo{
		PrivateKey: key.String(),
		PublicKey:  key.PublicKey().String(),
		Address:    addr.String(),
		Format:     format.String(),
	}, nil
}

// parseStandard accepts the single format of chains that have one.
func parseStandard(format string) error {
	if format != "" && format != "standard" {
		return core.Errorf(core.ErrUnsupportedFormat,
			"unsupported address format %q", format)
	}
	return nil
}

type bitcoinChain struct {
	net *netparams.Params
}

func (c bitcoinChain) format(s string) (bitcoin.Format, error) {
	if s == "" {
		return bitcoin.P2PKH, nil
	}
	return bitcoin.ParseFormat(s)
}

func (c bitcoinChain) generate(rng io.Reader, opts keyOptions,
	format string) (keyInfo, error) {

	f, err := c.format(format)
	if err != nil {
		return keyInfo{}, err
	}
	key, err := bitcoin.NewPrivateKey(rng, c.net)
	if err != nil {
		return keyInfo{}, err
	}
	if opts.Uncompressed {
		key, err = bitcoin.PrivateKeyFromBytes(key.Serialize(), false,
			c.net)
		if err != nil {
			return keyInfo{}, err
		}
	}
	return describe[bitcoin.Address, bitcoin.PublicKey](key, f)
}

func (c bitcoinChain) derive(s string, format string) (keyInfo, error) {
	f, err := c.format(format)
	if err != nil {
		return keyInfo{}, err
	}
	key, err := bitcoin.ParsePrivateKey(s)
	if err != nil {
		return keyInfo{}, err
	}
	if key.Network() != c.net {
		return keyInfo{}, core.Errorf(core.ErrInvalidNetwork,
			"key is for %v, not %v", key.Network(), c.net)
	}
	return describe[bitcoin.Address, bitcoin.PublicKey](key, f)
}

func (c bitcoinChain) decode(s string) ([]field, error) {
	addr, err := bitcoin.DecodeAddressForNetwork(s, c.net)
	if err != nil {
		return nil, err
	}
	script, err := addr.ScriptPubKey()
	if err != nil {
		return nil, err
	}
	return []field{
		{"network", addr.Network().String()},
		{"format", addr.Format().String()},
		{"payload", hex.EncodeToString(addr.Payload())},
		{"script", hex.EncodeToString(script)},
	}, nil
}

// omniChain shares keys and addresses with bitcoin and additionally
// decodes simple send payloads.
type omniChain struct {
	bitcoinChain
}

func (c omniChain) decode(s string) ([]field, error) {
	fields, err := c.bitcoinChain.decode(s)
	if err == nil {
		return fields, nil
	}
	b, hexErr := hex.DecodeString(s)
	if hexErr != nil {
		return nil, err
	}
	send, err := omni.ParseSimpleSend(b, true)
	if err != nil {
		return nil, err
	}
	return []field{
		{"version", fmt.Sprint(send.Version)},
		{"property", fmt.Sprint(send.PropertyID)},
		{"amount", send.Amount.String()},
		{"units", fmt.Sprint(send.Amount.Units())},
	}, nil
}

type tronChain struct {
	net tron.Network
}

func (c tronChain) generate(rng io.Reader, _ keyOptions,
	format string) (keyInfo, error) {

	if err := parseStandard(format); err != nil {
		return keyInfo{}, err
	}
	key, err := tron.NewPrivateKey(rng)
	if err != nil {
		return keyInfo{}, err
	}
	return describe[tron.Address, tron.PublicKey](key, tron.Standard)
}

func (c tronChain) derive(s string, format string) (keyInfo, error) {
	if err := parseStandard(format); err != nil {
		return keyInfo{}, err
	}
	key, err := tron.ParsePrivateKey(s)
	if err != nil {
		return keyInfo{}, err
	}
	return describe[tron.Address, tron.PublicKey](key, tron.Standard)
}

func (c tronChain) decode(s string) ([]field, error) {
	addr, err := tron.ParseAddress(s)
	if err != nil {
		return nil, err
	}
	return []field{
		{"network", c.net.String()},
		{"address", addr.String()},
		{"hex", addr.Hex()},
		{"evm", addr.EVMAddress().Hex()},
	}, nil
}

type ethereumChain struct {
	net ethereum.Network
}

func (c ethereumChain) generate(rng io.Reader, _ keyOptions,
	format string) (keyInfo, error) {

	if err := parseStandard(format); err != nil {
		return keyInfo{}, err
	}
	key, err := ethereum.NewPrivateKey(rng)
	if err != nil {
		return keyInfo{}, err
	}
	return describe[ethereum.Address, ethereum.PublicKey](key,
		ethereum.Standard)
}

func (c ethereumChain) derive(s string, format string) (keyInfo, error) {
	if err := parseStandard(format); err != nil {
		return keyInfo{}, err
	}
	key, err := ethereum.ParsePrivateKey(s)
	if err != nil {
		return keyInfo{}, err
	}
	return describe[ethereum.Address, ethereum.PublicKey](key,
		ethereum.Standard)
}

func (c ethereumChain) decode(s string) ([]field, error) {
	addr, err := ethereum.ParseAddress(s)
	if err != nil {
		return nil, err
	}
	return []field{
		{"network", c.net.String()},
		{"chainid", fmt.Sprint(c.net.ID())},
		{"address", addr.String()},
	}, nil
}

type filecoinChain struct {
	net filecoin.Network
}

func (c filecoinChain) generate(rng io.Reader, opts keyOptions,
	format string) (keyInfo, error) {

	if err := parseStandard(format); err != nil {
		return keyInfo{}, err
	}
	newKey := filecoin.KeyGenerator(c.net)
	if opts.BLS {
		newKey = filecoin.BLSKeyGenerator(c.net)
	}
	key, err := newKey(rng)
	if err != nil {
		return keyInfo{}, err
	}
	return describe[filecoin.Address, filecoin.PublicKey](key,
		filecoin.Standard)
}

func (c filecoinChain) derive(s string, format string) (keyInfo, error) {
	if err := parseStandard(format); err != nil {
		return keyInfo{}, err
	}
	key, err := filecoin.ParsePrivateKey(s, c.net)
	if err != nil {
		return keyInfo{}, err
	}
	return describe[filecoin.Address, filecoin.PublicKey](key,
		filecoin.Standard)
}

func (c filecoinChain) decode(s string) ([]field, error) {
	addr, err := filecoin.ParseAddress(s)
	if err != nil {
		return nil, err
	}
	if addr.Network() != c.net {
		return nil, core.Errorf(core.ErrInvalidNetwork,
			"address is for %v, not %v", addr.Network(), c.net)
	}
	return []field{
		{"network", addr.Network().String()},
		{"protocol", fmt.Sprint(addr.Protocol())},
		{"payload", hex.EncodeToString(addr.Payload())},
	}, nil
}
