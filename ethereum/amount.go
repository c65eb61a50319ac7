// Copyright (c) 2024 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ethereum

import (
	"math/big"

	"github.com/btcsuite/chainwallet/core"
	"github.com/holiman/uint256"
)

// Denomination is the power of ten a unit is above one wei.
type Denomination int32

// These constants define the ether denominations.
const (
	Wei    Denomination = 0
	Kwei   Denomination = 3
	Mwei   Denomination = 6
	Gwei   Denomination = 9
	Szabo  Denomination = 12
	Finney Denomination = 15
	Ether  Denomination = 18
)

// Amount is a non-negative quantity of wei below 2^256.
type Amount struct {
	wei uint256.Int
}

// NewAmount parses value, a decimal quantity of unit, into wei.
func NewAmount(value string, unit Denomination) (Amount, error) {
	v, err := core.ToBaseUnits(value, int32(unit))
	if err != nil {
		return Amount{}, err
	}
	return AmountFromBig(v)
}

// AmountFromBig returns the amount of v wei.
func AmountFromBig(v *big.Int) (Amount, error) {
	if v.Sign() < 0 {
		return Amount{}, core.Errorf(core.ErrAmountOutOfBounds,
			"negative amount %v", v)
	}
	wei, overflow := uint256.FromBig(v)
	if overflow {
		return Amount{}, core.Errorf(core.ErrAmountOutOfBounds,
			"amount %v exceeds 256 bits", v)
	}
	return Amount{wei: *wei}, nil
}

// AmountFromWei returns the amount of wei wei.
func AmountFromWei(wei uint64) Amount {
	var a Amount
	a.wei.SetUint64(wei)
	return a
}

// Add returns a + b.
func (a Amount) Add(b Amount) (Amount, error) {
	var sum Amount
	if _, overflow := sum.wei.AddOverflow(&a.wei, &b.wei); overflow {
		return Amount{}, core.Errorf(core.ErrAmountOutOfBounds,
			"%v + %v overflows", a, b)
	}
	return sum, nil
}

// Sub returns a - b.
func (a Amount) Sub(b Amount) (Amount, error) {
	var diff Amount
	if _, underflow := diff.wei.SubOverflow(&a.wei, &b.wei); underflow {
		return Amount{}, core.Errorf(core.ErrAmountOutOfBounds,
			"%v - %v underflows", a, b)
	}
	return diff, nil
}

// IsZero returns whether the amount is zero.
func (a Amount) IsZero() bool {
	return a.wei.IsZero()
}

// Big returns the amount in wei.
func (a Amount) Big() *big.Int {
	return a.wei.ToBig()
}

// String returns the amount in ether.
func (a Amount) String() string {
	return core.FromBaseUnits(a.Big(), int32(Ether)) + " ETH"
}
