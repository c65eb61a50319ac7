// Copyright (c) 2013-2024 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package bitcoin

import (
	"bytes"
	"math/rand"
	"testing"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/btcutil/base58"
	"github.com/btcsuite/chainwallet/core"
	"github.com/btcsuite/chainwallet/netparams"
	"github.com/stretchr/testify/require"
)

func TestWIFVectors(t *testing.T) {
	tests := []struct {
		wif        string
		compressed bool
		addr       string
	}{
		{"5HueCGU8rMjxEXxiPuD5BDku4MkFqeZyd4dZ1jvhTVqvbTLvyTJ", false,
			"1GAehh7TsJAHuUAeKZcXf5CnwuGuGgyX2S"},
		{"KwdMAjGmerYanjeui5SHS7JkmpZvVipYvB2LJGU1ZxJwYvP98617", true,
			"1LoVGDgRs9hTfTNJNuXKSpywcbdvwRXpmK"},
	}
	for _, tc := range tests {
		key, err := ParsePrivateKey(tc.wif)
		require.NoError(t, err)
		require.Equal(t, tc.compressed, key.Compressed())
		require.Same(t, &netparams.MainNetParams, key.Network())
		require.Equal(t, tc.wif, key.String())

		addr, err := key.Address(P2PKH)
		require.NoError(t, err)
		require.Equal(t, tc.addr, addr.String())
	}
}

// TestWIFParity checks the WIF encoding against btcutil.
func TestWIFParity(t *testing.T) {
	rng := rand.New(rand.NewSource(3))

	for _, net := range netparams.Networks() {
		for _, compressed := range []bool{true, false} {
			key, err := NewPrivateKey(rng, net)
			require.NoError(t, err)
			key, err = PrivateKeyFromBytes(key.Serialize(), compressed, net)
			require.NoError(t, err)

			priv, _ := btcec.PrivKeyFromBytes(key.Serialize())
			wif, err := btcutil.NewWIF(priv, net.Params, compressed)
			require.NoError(t, err)
			require.Equal(t, wif.String(), key.String())

			parsed, err := ParsePrivateKey(wif.String())
			require.NoError(t, err)
			require.Equal(t, key, parsed)
			require.Equal(t, key.PublicKey(), parsed.PublicKey())
			require.Equal(t, wif.SerializePubKey(),
				parsed.PublicKey().Serialize())
		}
	}
}

func TestNewPrivateKeyDeterministic(t *testing.T) {
	a, err := NewPrivateKey(rand.New(rand.NewSource(7)),
		&netparams.TestNet3Params)
	require.NoError(t, err)
	b, err := KeyGenerator(&netparams.TestNet3Params)(
		rand.New(rand.NewSource(7)))
	require.NoError(t, err)
	require.Equal(t, a, b)
	require.True(t, a == b)
}

func TestNewPrivateKeySkipsInvalidScalars(t *testing.T) {
	// An all-ones scalar exceeds the group order and is skipped.
	var src bytes.Buffer
	src.Write(bytes.Repeat([]byte{0xff}, PrivateKeySize))
	src.Write(bytes.Repeat([]byte{0x00}, PrivateKeySize))
	want := bytes.Repeat([]byte{0x42}, PrivateKeySize)
	src.Write(want)

	key, err := NewPrivateKey(&src, &netparams.MainNetParams)
	require.NoError(t, err)
	require.Equal(t, want, key.Serialize())

	_, err = NewPrivateKey(&src, &netparams.MainNetParams)
	require.True(t, core.IsError(err, core.ErrKeyLibrary))
}

func TestParsePrivateKeyErrors(t *testing.T) {
	valid := testAccounts[0].wif
	decoded := base58.Decode(valid)

	badChecksum := append([]byte(nil), decoded...)
	badChecksum[len(badChecksum)-1] ^= 0xff

	badFlag, version, err := base58.CheckDecode(valid)
	require.NoError(t, err)
	badFlag = append([]byte(nil), badFlag...)
	badFlag[len(badFlag)-1] = 0x02

	scalar := append([]byte(nil), decoded[1:1+PrivateKeySize]...)
	unknownNet := base58.CheckEncode(append(scalar, compressMagic), 0x01)

	tests := []struct {
		name string
		wif  string
		code core.ErrorCode
	}{
		{"empty", "", core.ErrInvalidCharacterLength},
		{"alphabet", "0OIl", core.ErrInvalidEncoding},
		{"length", base58.CheckEncode([]byte{1, 2, 3}, 0xef),
			core.ErrInvalidByteLength},
		{"checksum", base58.Encode(badChecksum), core.ErrInvalidChecksum},
		{"compression flag", base58.CheckEncode(badFlag, version),
			core.ErrInvalidByteLength},
		{"network", unknownNet, core.ErrInvalidNetwork},
		{"out of range", base58.CheckEncode(
			bytes.Repeat([]byte{0xff}, PrivateKeySize), 0x80),
			core.ErrKeyLibrary},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParsePrivateKey(tc.wif)
			require.Error(t, err)
			require.True(t, core.IsError(err, tc.code),
				"got %v, want %v", err, tc.code)
		})
	}
}

func TestChecksumErrorReportsBothValues(t *testing.T) {
	decoded := base58.Decode(testAccounts[0].wif)
	decoded[len(decoded)-1] ^= 0x01

	_, err := ParsePrivateKey(base58.Encode(decoded))
	require.ErrorContains(t, err, "expected")
	require.ErrorContains(t, err, "found")
}

func TestPublicKeyRoundTrip(t *testing.T) {
	key, err := ParsePrivateKey(testAccounts[0].wif)
	require.NoError(t, err)
	pub := key.PublicKey()

	parsed, err := ParsePublicKey(pub.String(), key.Network())
	require.NoError(t, err)
	require.Equal(t, pub, parsed)

	_, err = ParsePublicKey("zz", key.Network())
	require.True(t, core.IsError(err, core.ErrInvalidEncoding))

	_, err = PublicKeyFromBytes(make([]byte, 32), key.Network())
	require.True(t, core.IsError(err, core.ErrInvalidByteLength))

	bad := bytes.Repeat([]byte{0x05}, btcec.PubKeyBytesLenCompressed)
	_, err = PublicKeyFromBytes(bad, key.Network())
	require.True(t, core.IsError(err, core.ErrKeyLibrary))
}

func TestZeroKeys(t *testing.T) {
	var key PrivateKey
	require.Empty(t, key.String())
	require.Equal(t, PublicKey{}, key.PublicKey())
	require.Empty(t, key.PublicKey().String())

	_, err := key.Address(P2PKH)
	require.True(t, core.IsError(err, core.ErrKeyLibrary))
	_, _, err = SignDigest(key, make([]byte, 32))
	require.True(t, core.IsError(err, core.ErrKeyLibrary))

	valid := testKeys(t, 4, 1)[0]
	tx, err := NewTransaction(TransactionParameters{
		Version: 2,
		Inputs: []Input{
			testInput(t, valid, P2PKH, 0, 70000, SigHashAll),
		},
		Outputs: []Output{testOutput(t, testAccounts[0].addr, 60000)},
	})
	require.NoError(t, err)
	_, err = tx.SignWithPrivateKey(key)
	require.True(t, core.IsError(err, core.ErrKeyLibrary))

	_, err = PrivateKeyFromBytes(valid.Serialize(), true, nil)
	require.True(t, core.IsError(err, core.ErrInvalidNetwork))
	_, err = NewPrivateKey(rand.New(rand.NewSource(1)), nil)
	require.True(t, core.IsError(err, core.ErrInvalidNetwork))
}
