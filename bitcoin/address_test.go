// Copyright (c) 2013-2024 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package bitcoin

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/btcutil/base58"
	"github.com/btcsuite/btcd/btcutil/bech32"
	"github.com/btcsuite/btcd/txscript"
	"github.com/btcsuite/chainwallet/core"
	"github.com/btcsuite/chainwallet/core/hashes"
	"github.com/btcsuite/chainwallet/netparams"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

// testAccounts are testnet keys with their P2PKH addresses.
var testAccounts = []struct {
	wif  string
	addr string
}{
	{"cTt14Wpo6gKBSjuf9PjrbYc1Jz9hN4wepeJLm1DANsE6v5szQn4h",
		"mhSWVCZ7GtrYeDavBbZCUKownLPSAnxMyD"},
	{"cRfuiTAEpcEdgjXHLkYK3mFZWARjgMDRYGdka2G5hGpQdGKVATqN",
		"miByfZ8aBt8xQwUW9DXJw4ockykf2P42MZ"},
}

func TestDeriveTestNetAccounts(t *testing.T) {
	for _, acct := range testAccounts {
		key, err := ParsePrivateKey(acct.wif)
		require.NoError(t, err)
		require.Same(t, &netparams.TestNet3Params, key.Network())

		addr, err := core.DeriveAddress[Address, PublicKey](key, P2PKH)
		require.NoError(t, err)
		require.Equal(t, acct.addr, addr.String())

		decoded, err := DecodeAddress(acct.addr)
		require.NoError(t, err)
		require.Equal(t, addr, decoded)
	}
}

func TestGeneratorPointAddresses(t *testing.T) {
	// The private key 1, whose public key is the curve generator.
	one := make([]byte, PrivateKeySize)
	one[PrivateKeySize-1] = 1
	key, err := PrivateKeyFromBytes(one, true, &netparams.MainNetParams)
	require.NoError(t, err)

	tests := []struct {
		format Format
		want   string
	}{
		{P2PKH, "1BgGZ9tcN4rm9KBzDn7KprQz87SZ26SAMH"},
		{Bech32, "bc1qw508d6qejxtdg4y5r3zarvary0c5xw7kv8f3t4"},
	}
	for _, tc := range tests {
		addr, err := key.Address(tc.format)
		require.NoError(t, err)
		require.Equal(t, tc.want, addr.String())
	}

	// Pay to the generator in a witness script.
	script := append([]byte{txscript.OP_DATA_33},
		key.PublicKey().Serialize()...)
	script = append(script, txscript.OP_CHECKSIG)
	addr, err := NewAddressFromScript(script, P2WSH,
		&netparams.TestNet3Params)
	require.NoError(t, err)
	require.Equal(t, "tb1qrp33g0q5c5txsp9arysrx4k6zdkfs4nce4xj0gdcccefvpysxf3q0sl5k7",
		addr.String())
}

// TestAddressParity checks every format against the btcutil encoders.
func TestAddressParity(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	for _, net := range netparams.Networks() {
		for i := 0; i < 8; i++ {
			key, err := NewPrivateKey(rng, net)
			require.NoError(t, err)
			pub := key.PublicKey()
			keyHash := hashes.Hash160(pub.Serialize())

			pkh, err := btcutil.NewAddressPubKeyHash(keyHash, net.Params)
			require.NoError(t, err)
			wpkh, err := btcutil.NewAddressWitnessPubKeyHash(keyHash,
				net.Params)
			require.NoError(t, err)
			program, err := txscript.PayToAddrScript(wpkh)
			require.NoError(t, err)
			nested, err := btcutil.NewAddressScriptHash(program,
				net.Params)
			require.NoError(t, err)

			want := map[Format]btcutil.Address{
				P2PKH:      pkh,
				Bech32:     wpkh,
				P2SHP2WPKH: nested,
			}
			for format, ref := range want {
				addr, err := pub.Address(format)
				require.NoError(t, err)
				require.Equal(t, ref.EncodeAddress(), addr.String())

				script, err := addr.ScriptPubKey()
				require.NoError(t, err)
				refScript, err := txscript.PayToAddrScript(ref)
				require.NoError(t, err)
				require.Equal(t, refScript, script)

				decoded, err := DecodeAddress(addr.String())
				require.NoError(t, err)
				require.Equal(t, addr, decoded)
			}

			wsh, err := btcutil.NewAddressWitnessScriptHash(
				hashes.SHA256(program), net.Params)
			require.NoError(t, err)
			addr, err := NewAddressFromScript(program, P2WSH, net)
			require.NoError(t, err)
			require.Equal(t, wsh.EncodeAddress(), addr.String())
		}
	}
}

func TestDecodeAddressErrors(t *testing.T) {
	valid := testAccounts[0].addr
	flipped := valid[:len(valid)-1] + "E"

	program := make([]byte, 20)
	conv, err := bech32.ConvertBits(program, 8, 5, true)
	require.NoError(t, err)
	v1, err := bech32.Encode("bc", append([]byte{1}, conv...))
	require.NoError(t, err)
	short, err := bech32.Encode("bc", append([]byte{0}, conv[:10]...))
	require.NoError(t, err)
	v0m, err := bech32.EncodeM("bc", append([]byte{0}, conv...))
	require.NoError(t, err)

	// A well formed Base58Check string with an unregistered version.
	unknown := base58.CheckEncode(program, 0x30)

	tests := []struct {
		name string
		addr string
		code core.ErrorCode
	}{
		{"checksum", flipped, core.ErrInvalidChecksum},
		{"base58 alphabet", "mhSWVCZ7GtrYeDavBbZCUKownLPSAnxMy0",
			core.ErrInvalidEncoding},
		{"short base58", "1111", core.ErrInvalidByteLength},
		{"unknown version", unknown, core.ErrInvalidAddressPrefix},
		{"witness version", v1, core.ErrInvalidVersionBytes},
		{"witness program length", short, core.ErrInvalidByteLength},
		{"mixed case", "tb1qrp33g0q5c5txsp9arysrx4k6zdkfs4nce4xj0gdcccefvpysxf3q0sL5k7",
			core.ErrInvalidEncoding},
		{"bech32 checksum", "bc1qw508d6qejxtdg4y5r3zarvary0c5xw7kv8f3t5",
			core.ErrInvalidChecksum},
		{"bech32m witness version 0", v0m, core.ErrInvalidChecksum},
		{"bech32m witness version 0 vector",
			"bc1qw46h2at4w46h2at4w46h2at4w46h2at4l7prpt",
			core.ErrInvalidChecksum},
	}
	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			_, err := DecodeAddress(tc.addr)
			require.Error(t, err)
			require.True(t, core.IsError(err, tc.code),
				"got %v, want %v", err, tc.code)
		})
	}
}

func TestBech32CaseInsensitive(t *testing.T) {
	const lower = "bc1qw508d6qejxtdg4y5r3zarvary0c5xw7kv8f3t4"

	a, err := DecodeAddress(lower)
	require.NoError(t, err)
	b, err := DecodeAddress(strings.ToUpper(lower))
	require.NoError(t, err)
	require.Equal(t, a, b)
	require.Equal(t, lower, b.String())
}

func TestDecodeAddressForNetwork(t *testing.T) {
	_, err := DecodeAddressForNetwork(testAccounts[0].addr,
		&netparams.TestNet3Params)
	require.NoError(t, err)

	_, err = DecodeAddressForNetwork(testAccounts[0].addr,
		&netparams.MainNetParams)
	require.True(t, core.IsError(err, core.ErrInvalidNetwork))
}

func TestUnsupportedDerivations(t *testing.T) {
	rng := rand.New(rand.NewSource(2))
	key, err := NewPrivateKey(rng, &netparams.TestNet3Params)
	require.NoError(t, err)

	_, err = key.Address(P2WSH)
	require.True(t, core.IsError(err, core.ErrUnsupportedDerivationPath))

	_, err = NewAddressFromScript([]byte{txscript.OP_TRUE}, P2PKH,
		&netparams.TestNet3Params)
	require.True(t, core.IsError(err, core.ErrUnsupportedDerivationPath))

	uncompressed, err := PrivateKeyFromBytes(key.Serialize(), false,
		&netparams.TestNet3Params)
	require.NoError(t, err)
	_, err = uncompressed.Address(Bech32)
	require.True(t, core.IsError(err, core.ErrUnsupportedFormat))
	_, err = uncompressed.Address(P2PKH)
	require.NoError(t, err)
}

// TestConcurrentDerivation derives the same addresses from many goroutines.
func TestConcurrentDerivation(t *testing.T) {
	key, err := ParsePrivateKey(testAccounts[1].wif)
	require.NoError(t, err)

	var g errgroup.Group
	for i := 0; i < 16; i++ {
		g.Go(func() error {
			addr, err := key.Address(P2PKH)
			if err != nil {
				return err
			}
			if addr.String() != testAccounts[1].addr {
				return core.Errorf(core.ErrKeyMismatch,
					"derived %v", addr)
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())
}

func TestFormatNames(t *testing.T) {
	for _, f := range []Format{P2PKH, P2SHP2WPKH, P2WSH, Bech32} {
		parsed, err := ParseFormat(strings.ToUpper(f.String()))
		require.NoError(t, err)
		require.Equal(t, f, parsed)
	}
	_, err := ParseFormat("p2tr")
	require.True(t, core.IsError(err, core.ErrUnsupportedFormat))
}

// TestAddressPrefix checks that every prefix resolves back to its network
// and starts the addresses derived on it.
func TestAddressPrefix(t *testing.T) {
	rng := rand.New(rand.NewSource(3))

	for _, net := range netparams.Networks() {
		key, err := NewPrivateKey(rng, net)
		require.NoError(t, err)

		for _, format := range []Format{P2PKH, P2SHP2WPKH, Bech32} {
			prefix, err := AddressPrefix(net, format)
			require.NoError(t, err)

			addr, err := key.Address(format)
			require.NoError(t, err)

			var got *netparams.Params
			var ok bool
			switch format {
			case P2PKH:
				got, ok = netparams.ParamsForPubKeyHashID(prefix[0])
			case P2SHP2WPKH:
				got, ok = netparams.ParamsForScriptHashID(prefix[0])
			default:
				got, ok = netparams.ParamsForBech32HRP(string(prefix))
			}
			require.True(t, ok, "%v %v", net, format)
			require.Same(t, net, got)

			if format == Bech32 {
				require.True(t, strings.HasPrefix(addr.String(),
					string(prefix)+"1"))
				continue
			}
			_, version, err := base58.CheckDecode(addr.String())
			require.NoError(t, err)
			require.Equal(t, prefix[0], version)
		}

		wsh, err := AddressPrefix(net, P2WSH)
		require.NoError(t, err)
		require.Equal(t, net.Bech32HRPSegwit, string(wsh))
	}

	_, err := AddressPrefix(&netparams.MainNetParams, Format(99))
	require.True(t, core.IsError(err, core.ErrUnsupportedFormat))
}
