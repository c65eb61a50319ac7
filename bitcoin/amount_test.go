// Copyright (c) 2024 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package bitcoin

import (
	"testing"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/chainwallet/core"
	"github.com/stretchr/testify/require"
)

func TestNewAmount(t *testing.T) {
	tests := []struct {
		name  string
		value string
		unit  btcutil.AmountUnit
		want  Amount
		code  core.ErrorCode
		fails bool
	}{
		{name: "one btc", value: "1", unit: btcutil.AmountBTC,
			want: 1e8},
		{name: "fractional btc", value: "0.0005", unit: btcutil.AmountBTC,
			want: 50000},
		{name: "millibtc", value: "1.5", unit: btcutil.AmountMilliBTC,
			want: 150000},
		{name: "satoshi", value: "50000", unit: btcutil.AmountSatoshi,
			want: 50000},
		{name: "max", value: "21000000", unit: btcutil.AmountBTC,
			want: btcutil.MaxSatoshi},
		{name: "negative", value: "-0.1", unit: btcutil.AmountBTC,
			want: -1e7},
		{name: "sub-satoshi", value: "0.000000001",
			unit: btcutil.AmountBTC, code: core.ErrInvalidAmount,
			fails: true},
		{name: "above max", value: "21000000.00000001",
			unit: btcutil.AmountBTC, code: core.ErrAmountOutOfBounds,
			fails: true},
		{name: "garbage", value: "1btc", unit: btcutil.AmountBTC,
			code: core.ErrInvalidAmount, fails: true},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			got, err := NewAmount(tc.value, tc.unit)
			if tc.fails {
				require.True(t, core.IsError(err, tc.code),
					"got %v, want %v", err, tc.code)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestAddAmounts(t *testing.T) {
	total, err := AddAmounts(1, 2, 3)
	require.NoError(t, err)
	require.Equal(t, Amount(6), total)

	_, err = AddAmounts(btcutil.MaxSatoshi, 1)
	require.True(t, core.IsError(err, core.ErrAmountOutOfBounds))

	_, err = AddAmounts(-1)
	require.True(t, core.IsError(err, core.ErrAmountOutOfBounds))
}
