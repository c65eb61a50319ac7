// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package bitcoin

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSizeConversion(t *testing.T) {
	t.Parallel()

	require.Equal(t, VByte(250), WeightUnit(1000).ToVB())
	require.Equal(t, VByte(251), WeightUnit(1001).ToVB())
	require.Equal(t, "1000 wu", WeightUnit(1000).String())
	require.Equal(t, "250 vb", VByte(250).String())
}

func TestFeeRate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		fee       Amount
		vb        VByte
		str       string
		perKVByte Amount
		feeFor100 Amount
		relay     bool
	}{
		{"whole", 1000, 250, "4.00 sat/vb", 4000, 400, true},
		{"fraction", 10, 3, "3.33 sat/vb", 3333, 334, true},
		{"below relay", 50, 100, "0.50 sat/vb", 500, 50, false},
		{"zero size", 1000, 0, "0.00 sat/vb", 0, 0, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rate := NewFeeRate(tc.fee, tc.vb)
			require.Equal(t, tc.str, rate.String())
			require.Equal(t, tc.perKVByte, rate.PerKVByte())
			require.Equal(t, tc.feeFor100, rate.FeeForVSize(100))
			require.Equal(t, tc.relay, rate.MeetsRelayFee())
		})
	}
}

func TestTransactionSize(t *testing.T) {
	keys := testKeys(t, 21, 1)

	legacy, err := NewTransaction(TransactionParameters{
		Version: 1,
		Inputs: []Input{
			testInput(t, keys[0], P2PKH, 0, 100000, SigHashAll),
		},
		Outputs: []Output{testOutput(t, testAccounts[1].addr, 90000)},
	})
	require.NoError(t, err)
	serialized, err := legacy.SignWithPrivateKey(keys[0])
	require.NoError(t, err)

	// Without witness data every byte weighs four units.
	require.Equal(t, WeightUnit(4*len(serialized)), legacy.Weight())
	require.Equal(t, VByte(len(serialized)), legacy.VSize())
	rate, err := legacy.FeeRate()
	require.NoError(t, err)
	want := NewFeeRate(10000, VByte(len(serialized)))
	require.Zero(t, want.Cmp(rate.Rat), rate.String())

	segwit, err := NewTransaction(TransactionParameters{
		Version: 2,
		Inputs: []Input{
			testInput(t, keys[0], Bech32, 0, 100000, SigHashAll),
		},
		Outputs: []Output{testOutput(t, testAccounts[1].addr, 90000)},
	})
	require.NoError(t, err)
	serialized, err = segwit.SignWithPrivateKey(keys[0])
	require.NoError(t, err)

	// Witness bytes are discounted.
	require.Less(t, uint64(segwit.VSize()), uint64(len(serialized)))
	require.Less(t, uint64(segwit.Weight()), uint64(4*len(serialized)))
}
