// Copyright (c) 2024 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package filecoin

import (
	"math/big"

	"github.com/btcsuite/chainwallet/core"
	"github.com/holiman/uint256"
)

// Denomination is the power of ten a unit is above one attoFIL.
type Denomination int32

// These constants define the FIL denominations.
const (
	AttoFIL  Denomination = 0
	FemtoFIL Denomination = 3
	PicoFIL  Denomination = 6
	NanoFIL  Denomination = 9
	MicroFIL Denomination = 12
	MilliFIL Denomination = 15
	FIL      Denomination = 18
)

// Amount is a non-negative quantity of attoFIL below 2^256.
type Amount struct {
	atto uint256.Int
}

// NewAmount parses value, a decimal quantity of unit, into attoFIL.
func NewAmount(value string, unit Denomination) (Amount, error) {
	v, err := core.ToBaseUnits(value, int32(unit))
	if err != nil {
		return Amount{}, err
	}
	return AmountFromBig(v)
}

// AmountFromBig returns the amount of v attoFIL.
func AmountFromBig(v *big.Int) (Amount, error) {
	if v.Sign() < 0 {
		return Amount{}, core.Errorf(core.ErrAmountOutOfBounds,
			"negative amount %v", v)
	}
	atto, overflow := uint256.FromBig(v)
	if overflow {
		return Amount{}, core.Errorf(core.ErrAmountOutOfBounds,
			"amount %v exceeds 256 bits", v)
	}
	return Amount{atto: *atto}, nil
}

// AmountFromAtto returns the amount of atto attoFIL.
func AmountFromAtto(atto uint64) Amount {
	var a Amount
	a.atto.SetUint64(atto)
	return a
}

// Add returns a + b.
func (a Amount) Add(b Amount) (Amount, error) {
	var sum Amount
	if _, overflow := sum.atto.AddOverflow(&a.atto, &b.atto); overflow {
		return Amount{}, core.Errorf(core.ErrAmountOutOfBounds,
			"%v + %v overflows", a, b)
	}
	return sum, nil
}

// Sub returns a - b.
func (a Amount) Sub(b Amount) (Amount, error) {
	var diff Amount
	if _, underflow := diff.atto.SubOverflow(&a.atto, &b.atto); underflow {
		return Amount{}, core.Errorf(core.ErrAmountOutOfBounds,
			"%v - %v underflows", a, b)
	}
	return diff, nil
}

// Mul returns a * n.
func (a Amount) Mul(n uint64) (Amount, error) {
	var prod Amount
	if _, overflow := prod.atto.MulOverflow(&a.atto,
		uint256.NewInt(n)); overflow {

		return Amount{}, core.Errorf(core.ErrAmountOutOfBounds,
			"%v * %d overflows", a, n)
	}
	return prod, nil
}

// IsZero returns whether the amount is zero.
func (a Amount) IsZero() bool {
	return a.atto.IsZero()
}

// Big returns the amount in attoFIL.
func (a Amount) Big() *big.Int {
	return a.atto.ToBig()
}

// String returns the amount in FIL.
func (a Amount) String() string {
	return core.FromBaseUnits(a.Big(), int32(FIL)) + " FIL"
}

// bigintBytes returns the serialized form of the amount: empty for zero,
// otherwise a zero sign byte followed by the big-endian magnitude.
func (a Amount) bigintBytes() []byte {
	if a.atto.IsZero() {
		return []byte{}
	}
	return append([]byte{0}, a.atto.Bytes()...)
}

// amountFromBigintBytes is the inverse of bigintBytes.  Negative values
// are rejected.
func amountFromBigintBytes(b []byte) (Amount, error) {
	if len(b) == 0 {
		return Amount{}, nil
	}
	if b[0] != 0 {
		return Amount{}, core.Errorf(core.ErrAmountOutOfBounds,
			"negative or malformed amount %x", b)
	}
	if len(b) > 33 {
		return Amount{}, core.Errorf(core.ErrAmountOutOfBounds,
			"amount %x exceeds 256 bits", b)
	}
	var a Amount
	a.atto.SetBytes(b[1:])
	return a, nil
}
