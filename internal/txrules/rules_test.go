// Copyright (c) 2024 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package txrules

import (
	"bytes"
	"testing"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/txscript"
	"github.com/btcsuite/btcd/wire"
	"github.com/stretchr/testify/require"
)

func p2pkhScript(t *testing.T) []byte {
	t.Helper()

	script, err := txscript.NewScriptBuilder().
		AddOp(txscript.OP_DUP).AddOp(txscript.OP_HASH160).
		AddData(bytes.Repeat([]byte{0x11}, 20)).
		AddOp(txscript.OP_EQUALVERIFY).AddOp(txscript.OP_CHECKSIG).
		Script()
	require.NoError(t, err)
	return script
}

func TestCheckOutput(t *testing.T) {
	script := p2pkhScript(t)
	dataScript, err := txscript.NullDataScript([]byte("omni"))
	require.NoError(t, err)

	tests := []struct {
		name   string
		output *wire.TxOut
		want   error
	}{{
		name:   "standard",
		output: wire.NewTxOut(50000, script),
	}, {
		name:   "negative",
		output: wire.NewTxOut(-1, script),
		want:   ErrAmountNegative,
	}, {
		name:   "above max",
		output: wire.NewTxOut(btcutil.MaxSatoshi+1, script),
		want:   ErrAmountExceedsMax,
	}, {
		name:   "dust",
		output: wire.NewTxOut(1, script),
		want:   ErrOutputIsDust,
	}, {
		name:   "null data is never dust",
		output: wire.NewTxOut(0, dataScript),
	}}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			err := CheckOutput(tc.output, DefaultRelayFeePerKb)
			require.ErrorIs(t, err, tc.want)
		})
	}
}

func TestDustThreshold(t *testing.T) {
	script := p2pkhScript(t)
	threshold := DustThreshold(len(script), DefaultRelayFeePerKb)

	require.False(t, IsDustAmount(threshold, len(script),
		DefaultRelayFeePerKb))
	require.True(t, IsDustAmount(threshold-1, len(script),
		DefaultRelayFeePerKb))
}
