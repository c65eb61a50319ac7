// Copyright (c) 2024 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package core

import (
	"fmt"
	"math/big"
	"strings"

	"github.com/shopspring/decimal"
)

// maxBaseUnitDigits is the number of decimal digits of 2^256, the widest
// base unit quantity any chain represents.
const maxBaseUnitDigits = 78

// ToBaseUnits converts value, a decimal quantity of a denomination that is
// decimals powers of ten above the base unit, to an integer number of base
// units.  The scaling is exact: a value that does not amount to a whole
// number of base units is rejected rather than rounded.
func ToBaseUnits(value string, decimals int32) (*big.Int, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(value))
	if err != nil {
		return nil, NewError(ErrInvalidAmount,
			fmt.Sprintf("invalid amount %q", value), err)
	}

	if d.IsZero() {
		return new(big.Int), nil
	}

	// The coefficient has no leading zeros, so the scaled value has
	// digits+exp integer digits.  Both bounds are checked before any
	// arithmetic that grows with the exponent.
	exp := int64(d.Exponent()) + int64(decimals)
	digits := int64(d.NumDigits())
	if -exp >= digits {
		return nil, Errorf(ErrInvalidAmount, "invalid amount %q: "+
			"precision exceeds %d decimal places", value, decimals)
	}
	if digits+exp > maxBaseUnitDigits {
		return nil, Errorf(ErrAmountOutOfBounds, "amount %q exceeds "+
			"%d digits of base units", value, maxBaseUnitDigits)
	}

	d = d.Shift(decimals)
	if !d.IsInteger() {
		return nil, Errorf(ErrInvalidAmount, "invalid amount %q: "+
			"precision exceeds %d decimal places", value, decimals)
	}

	return d.BigInt(), nil
}

// FromBaseUnits formats an integer number of base units as a decimal
// quantity of the denomination that is decimals powers of ten above the
// base unit.  Trailing zeros are omitted.
func FromBaseUnits(v *big.Int, decimals int32) string {
	return decimal.NewFromBigInt(v, -decimals).String()
}
