// Copyright (c) 2024 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package omni

import (
	"math"
	"math/big"
	"strconv"

	"github.com/btcsuite/chainwallet/core"
)

// divisibleDecimals is the number of decimal places of a divisible
// property.
const divisibleDecimals = 8

// Amount is a quantity of an Omni property in its base unit.  Divisible
// properties are denominated like bitcoin with eight decimal places;
// indivisible ones count whole tokens.
type Amount struct {
	value     int64
	divisible bool
}

// NewAmount parses value as a quantity of a divisible or indivisible
// property.  Only positive amounts up to the Omni maximum are valid.
func NewAmount(value string, divisible bool) (Amount, error) {
	var decimals int32
	if divisible {
		decimals = divisibleDecimals
	}
	v, err := core.ToBaseUnits(value, decimals)
	if err != nil {
		return Amount{}, err
	}
	if v.Sign() <= 0 || !v.IsInt64() {
		return Amount{}, core.Errorf(core.ErrAmountOutOfBounds,
			"amount %s out of range (0, %d]", value, int64(math.MaxInt64))
	}
	return Amount{value: v.Int64(), divisible: divisible}, nil
}

// NewAmountFromUnits returns the amount of units base units.
func NewAmountFromUnits(units int64, divisible bool) (Amount, error) {
	if units <= 0 {
		return Amount{}, core.Errorf(core.ErrAmountOutOfBounds,
			"amount %d must be positive", units)
	}
	return Amount{value: units, divisible: divisible}, nil
}

// Units returns the amount in base units.
func (a Amount) Units() int64 {
	return a.value
}

// Divisible returns whether the amount belongs to a divisible property.
func (a Amount) Divisible() bool {
	return a.divisible
}

// String returns the amount in whole tokens.
func (a Amount) String() string {
	if !a.divisible {
		return strconv.FormatInt(a.value, 10)
	}
	return core.FromBaseUnits(big.NewInt(a.value), divisibleDecimals)
}
