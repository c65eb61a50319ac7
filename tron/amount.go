// Copyright (c) 2024 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package tron

import (
	"math/big"

	"github.com/btcsuite/chainwallet/core"
)

// Denomination is the power of ten a unit is above one sun.
type Denomination int32

// These constants define the TRX denominations.
const (
	Sun Denomination = 0
	TRX Denomination = 6
)

// Amount is a quantity of sun.
type Amount int64

// NewAmount parses value, a decimal quantity of unit, into sun.
func NewAmount(value string, unit Denomination) (Amount, error) {
	v, err := core.ToBaseUnits(value, int32(unit))
	if err != nil {
		return 0, err
	}
	if !v.IsInt64() {
		return 0, core.Errorf(core.ErrAmountOutOfBounds,
			"amount %s out of range", value)
	}
	return Amount(v.Int64()), nil
}

// String returns the amount in TRX.
func (a Amount) String() string {
	return core.FromBaseUnits(big.NewInt(int64(a)), int32(TRX)) + " TRX"
}
