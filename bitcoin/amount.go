// Copyright (c) 2024 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package bitcoin

import (
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/chainwallet/core"
)

// Amount is a quantity of satoshi.
type Amount = btcutil.Amount

// NewAmount parses value, a decimal quantity of unit, into satoshi.  The
// conversion is exact: a value finer than one satoshi is rejected, as is
// one outside [-MaxSatoshi, MaxSatoshi].
func NewAmount(value string, unit btcutil.AmountUnit) (Amount, error) {
	// AmountUnit is the power of ten relative to one bitcoin, and one
	// bitcoin is 1e8 satoshi.
	sat, err := core.ToBaseUnits(value, int32(unit)+8)
	if err != nil {
		return 0, err
	}
	if !sat.IsInt64() || sat.Int64() > btcutil.MaxSatoshi ||
		sat.Int64() < -btcutil.MaxSatoshi {

		return 0, core.Errorf(core.ErrAmountOutOfBounds,
			"amount %s %v exceeds the maximum of %v", value, unit,
			Amount(btcutil.MaxSatoshi))
	}
	return Amount(sat.Int64()), nil
}

// AddAmounts returns the sum of amounts, failing with ErrAmountOutOfBounds
// when the sum exceeds the supply.
func AddAmounts(amounts ...Amount) (Amount, error) {
	var total Amount
	for _, a := range amounts {
		if a < 0 || a > btcutil.MaxSatoshi {
			return 0, core.Errorf(core.ErrAmountOutOfBounds,
				"amount %v out of range", a)
		}
		total += a
		if total > btcutil.MaxSatoshi {
			return 0, core.Errorf(core.ErrAmountOutOfBounds,
				"total %v exceeds the maximum of %v", total,
				Amount(btcutil.MaxSatoshi))
		}
	}
	return total, nil
}
