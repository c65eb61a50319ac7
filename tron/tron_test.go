// Copyright (c) 2024 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package tron

import (
	"encoding/hex"
	"math/big"
	"math/rand"
	"strings"
	"testing"

	"github.com/btcsuite/chainwallet/core"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/encoding/protowire"
)

const (
	goldenKey     = "0838b9c472def15e82fed31208944a683b37dfb09f5a04febc45416bd8a00161"
	goldenAddress = "TG7jQ7eGsns6nmQNfcKNgZKyKBFkx7CvXr"
)

func TestGoldenAddress(t *testing.T) {
	key, err := ParsePrivateKey(goldenKey)
	require.NoError(t, err)
	require.Equal(t, goldenKey, key.String())

	addr, err := core.DeriveAddress[Address, PublicKey](key, Standard)
	require.NoError(t, err)
	require.Equal(t, goldenAddress, addr.String())
	require.True(t, strings.HasPrefix(addr.Hex(), "41"))

	fromBase58, err := ParseAddress(goldenAddress)
	require.NoError(t, err)
	fromHex, err := ParseAddress(addr.Hex())
	require.NoError(t, err)
	require.Equal(t, addr, fromBase58)
	require.Equal(t, addr, fromHex)
}

func TestParsePrivateKeyErrors(t *testing.T) {
	tests := []struct {
		name string
		key  string
		code core.ErrorCode
	}{
		{"short", goldenKey[:62], core.ErrInvalidCharacterLength},
		{"hex", "zz" + goldenKey[2:], core.ErrInvalidEncoding},
		{"zero", strings.Repeat("0", 64), core.ErrKeyLibrary},
	}
	for _, tc := range tests {
		_, err := ParsePrivateKey(tc.key)
		require.True(t, core.IsError(err, tc.code), tc.name)
	}
}

func TestParseAddressErrors(t *testing.T) {
	flipped := goldenAddress[:33] + "s"
	wrongPrefix := "42" + strings.Repeat("00", 20)

	tests := []struct {
		name string
		addr string
		code core.ErrorCode
	}{
		{"length", "T123", core.ErrInvalidCharacterLength},
		{"checksum", flipped, core.ErrInvalidChecksum},
		{"prefix", wrongPrefix, core.ErrInvalidAddressPrefix},
		{"hex", strings.Repeat("zz", 21), core.ErrInvalidEncoding},
	}
	for _, tc := range tests {
		_, err := ParseAddress(tc.addr)
		require.True(t, core.IsError(err, tc.code), "%s: %v", tc.name, err)
	}
	require.False(t, IsAddress(flipped))
	require.True(t, IsAddress(goldenAddress))
}

func TestAmount(t *testing.T) {
	a, err := NewAmount("1.5", TRX)
	require.NoError(t, err)
	require.Equal(t, Amount(1500000), a)
	require.Equal(t, "1.5 TRX", a.String())

	_, err = NewAmount("0.0000001", TRX)
	require.True(t, core.IsError(err, core.ErrInvalidAmount))
}

func TestTRC20TransferData(t *testing.T) {
	to, err := ParseAddress(goldenAddress)
	require.NoError(t, err)

	data, err := TRC20TransferData(to, big.NewInt(1000000))
	require.NoError(t, err)
	require.Len(t, data, 4+32+32)
	require.Equal(t, "a9059cbb", hex.EncodeToString(data[:4]))
	require.Equal(t, to.EVMAddress().Bytes(), data[4+12:4+32])
	require.Equal(t, int64(1000000), new(big.Int).SetBytes(data[36:]).Int64())

	_, err = TRC20TransferData(to, big.NewInt(-1))
	require.True(t, core.IsError(err, core.ErrInvalidAmount))
}

func testTransaction(t *testing.T, owner Address) *Transaction {
	t.Helper()

	to, err := ParseAddress(goldenAddress)
	require.NoError(t, err)
	tx, err := NewTransaction(TransactionParameters{
		RefBlockBytes: []byte{0x12, 0x34},
		RefBlockHash:  []byte{1, 2, 3, 4, 5, 6, 7, 8},
		Expiration:    1700000060000,
		Timestamp:     1700000000000,
		Contract: &TransferContract{
			Owner:  owner,
			To:     to,
			Amount: 1000000,
		},
	})
	require.NoError(t, err)
	return tx
}

func TestSignTransaction(t *testing.T) {
	key, err := NewPrivateKey(rand.New(rand.NewSource(31)))
	require.NoError(t, err)
	owner, err := key.Address(Standard)
	require.NoError(t, err)

	tx := testTransaction(t, owner)
	serialized, id, err := core.SignTransaction[TransactionID](tx, key)
	require.NoError(t, err)
	require.Len(t, tx.Signature(), SignatureSize)

	signer, err := tx.Signer()
	require.NoError(t, err)
	require.Equal(t, owner, signer)

	// The envelope holds the raw data and the signature.
	num, typ, n := protowire.ConsumeTag(serialized)
	require.Equal(t, protowire.Number(1), num)
	require.Equal(t, protowire.BytesType, typ)
	raw, m := protowire.ConsumeBytes(serialized[n:])
	require.Equal(t, tx.RawData(), raw)
	rest := serialized[n+m:]
	num, _, n = protowire.ConsumeTag(rest)
	require.Equal(t, protowire.Number(2), num)
	sig, _ := protowire.ConsumeBytes(rest[n:])
	require.Equal(t, tx.Signature(), sig)

	// The id covers the raw data only, so it is stable across signing.
	require.Equal(t, id, mustID(t, testTransaction(t, owner)))

	_, err = tx.SignWithPrivateKey(key)
	require.True(t, core.IsError(err, core.ErrAlreadySigned))
}

func mustID(t *testing.T, tx *Transaction) TransactionID {
	t.Helper()
	id, err := tx.TransactionID()
	require.NoError(t, err)
	return id
}

func TestNewTransactionErrors(t *testing.T) {
	owner, err := ParseAddress(goldenAddress)
	require.NoError(t, err)

	_, err = NewTransaction(TransactionParameters{})
	require.True(t, core.IsError(err, core.ErrInvalidInput))

	_, err = NewTransaction(TransactionParameters{
		Contract: &TransferContract{Owner: owner, To: owner},
	})
	require.True(t, core.IsError(err, core.ErrInvalidAmount))

	data, err := TRC20TransferData(owner, big.NewInt(5))
	require.NoError(t, err)
	_, err = NewTransaction(TransactionParameters{
		FeeLimit: -1,
		Contract: &TriggerSmartContract{
			Owner: owner, Contract: owner, Data: data,
		},
	})
	require.True(t, core.IsError(err, core.ErrInvalidGas))

	_, err = NewTransactionFromRawData(nil)
	require.True(t, core.IsError(err, core.ErrInvalidInput))
}

func TestZeroPrivateKey(t *testing.T) {
	var key PrivateKey
	require.Equal(t, PublicKey{}, key.PublicKey())

	_, err := key.Address(Standard)
	require.True(t, core.IsError(err, core.ErrKeyLibrary))

	to, err := ParseAddress(goldenAddress)
	require.NoError(t, err)
	tx := testTransaction(t, to)
	_, err = tx.SignWithPrivateKey(key)
	require.True(t, core.IsError(err, core.ErrKeyLibrary))
	require.Nil(t, tx.Signature())
}
