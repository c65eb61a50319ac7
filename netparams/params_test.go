// Copyright (c) 2024 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package netparams

import (
	"testing"

	"github.com/btcsuite/chainwallet/core"
	"github.com/stretchr/testify/require"
)

// TestPrefixExclusivity asserts that no two registered networks share a
// prefix, so every prefix resolves to exactly one network.
func TestPrefixExclusivity(t *testing.T) {
	base58IDs := make(map[byte]string)
	hrps := make(map[string]string)
	wifs := make(map[byte]string)

	for _, p := range Networks() {
		for _, id := range []byte{p.PubKeyHashAddrID, p.ScriptHashAddrID} {
			other, ok := base58IDs[id]
			require.False(t, ok, "%s and %s share address prefix %#02x",
				p, other, id)
			base58IDs[id] = p.Name
		}

		other, ok := hrps[p.Bech32HRPSegwit]
		require.False(t, ok, "%s and %s share hrp", p, other)
		hrps[p.Bech32HRPSegwit] = p.Name

		other, ok = wifs[p.PrivateKeyID]
		require.False(t, ok, "%s and %s share wif prefix", p, other)
		wifs[p.PrivateKeyID] = p.Name
	}
}

// TestPrefixRoundTrip checks that every prefix of a network resolves back
// to the same network.
func TestPrefixRoundTrip(t *testing.T) {
	for _, p := range Networks() {
		byName, err := ParamsForName(p.String())
		require.NoError(t, err)
		require.Same(t, p, byName)

		byWIF, err := ParamsForPrivateKeyPrefix(p.PrivateKeyID)
		require.NoError(t, err)
		require.Same(t, p, byWIF)

		byPKH, ok := ParamsForPubKeyHashID(p.PubKeyHashAddrID)
		require.True(t, ok)
		require.Same(t, p, byPKH)

		bySH, ok := ParamsForScriptHashID(p.ScriptHashAddrID)
		require.True(t, ok)
		require.Same(t, p, bySH)

		byHRP, ok := ParamsForBech32HRP(p.Bech32HRPSegwit)
		require.True(t, ok)
		require.Same(t, p, byHRP)
	}
}

// TestTestNetPrefixes pins the testnet prefix bytes keys and addresses are
// encoded with.
func TestTestNetPrefixes(t *testing.T) {
	p := &TestNet3Params
	require.Equal(t, byte(0x6f), p.PubKeyHashAddrID)
	require.Equal(t, byte(0xc4), p.ScriptHashAddrID)
	require.Equal(t, byte(0xef), p.PrivateKeyID)
	require.Equal(t, "tb", p.Bech32HRPSegwit)

	byHRP, ok := ParamsForBech32HRP("TB")
	require.True(t, ok)
	require.Same(t, p, byHRP)
}

// TestUnknownPrefixes checks that unknown prefixes are reported rather than
// mapped to a default network.
func TestUnknownPrefixes(t *testing.T) {
	_, err := ParamsForName("regtest")
	require.True(t, core.IsError(err, core.ErrInvalidNetwork))

	_, err = ParamsForPrivateKeyPrefix(0x01)
	require.True(t, core.IsError(err, core.ErrInvalidNetwork))

	_, ok := ParamsForPubKeyHashID(0x30)
	require.False(t, ok)

	_, ok = ParamsForBech32HRP("ltc")
	require.False(t, ok)
}
