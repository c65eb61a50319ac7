// Copyright (c) 2025 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package bitcoin

import (
	"fmt"
	"math/big"

	"github.com/btcsuite/btcd/blockchain"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/chainwallet/internal/txrules"
)

// floatStringPrecision is the number of decimal places used when a fee
// rate is printed.
const floatStringPrecision = 2

// WeightUnit is a transaction size in weight units: the size without
// witness data times three plus the full size.
type WeightUnit uint64

// ToVB converts the weight to virtual bytes, rounding up as BIP-141
// requires.
func (wu WeightUnit) ToVB() VByte {
	const scale = blockchain.WitnessScaleFactor
	return VByte((uint64(wu) + scale - 1) / scale)
}

// String returns the weight with its unit.
func (wu WeightUnit) String() string {
	return fmt.Sprintf("%d wu", uint64(wu))
}

// VByte is a transaction size in virtual bytes, a quarter weight unit.
type VByte uint64

// String returns the size with its unit.
func (vb VByte) String() string {
	return fmt.Sprintf("%d vb", uint64(vb))
}

// FeeRate is a fee rate in satoshi per virtual byte.  It is held as an
// exact fraction so sub-satoshi rates survive.
type FeeRate struct {
	*big.Rat
}

// NewFeeRate returns the rate of paying fee for vb virtual bytes.  A zero
// size yields a zero rate.
func NewFeeRate(fee Amount, vb VByte) FeeRate {
	if vb == 0 {
		return FeeRate{big.NewRat(0, 1)}
	}
	return FeeRate{new(big.Rat).SetFrac(big.NewInt(int64(fee)),
		new(big.Int).SetUint64(uint64(vb)))}
}

// FeeForVSize returns the fee this rate charges for vb virtual bytes,
// rounded up to the next satoshi.
func (r FeeRate) FeeForVSize(vb VByte) Amount {
	fee := new(big.Rat).Mul(r.Rat,
		new(big.Rat).SetInt(new(big.Int).SetUint64(uint64(vb))))

	num, den := fee.Num(), fee.Denom()
	ceil := new(big.Int).Add(num, den)
	ceil.Sub(ceil, big.NewInt(1))
	ceil.Div(ceil, den)
	return Amount(ceil.Int64())
}

// PerKVByte returns the rate in satoshi per thousand virtual bytes,
// rounded down.
func (r FeeRate) PerKVByte() Amount {
	kvb := new(big.Rat).Mul(r.Rat, big.NewRat(1000, 1))
	return Amount(new(big.Int).Div(kvb.Num(), kvb.Denom()).Int64())
}

// MeetsRelayFee returns whether the rate reaches the default minimum relay
// fee.
func (r FeeRate) MeetsRelayFee() bool {
	relay := big.NewRat(int64(txrules.DefaultRelayFeePerKb), 1000)
	return r.Cmp(relay) >= 0
}

// String returns the rate with two decimals and its unit.
func (r FeeRate) String() string {
	return r.FloatString(floatStringPrecision) + " sat/vb"
}

// Weight returns the weight of the transaction in its current state.
// Unsigned inputs count with empty scripts.
func (t *Transaction) Weight() WeightUnit {
	return WeightUnit(blockchain.GetTransactionWeight(btcutil.NewTx(t.tx)))
}

// VSize returns the virtual size of the transaction in its current state.
func (t *Transaction) VSize() VByte {
	return t.Weight().ToVB()
}

// FeeRate returns the fee paid per virtual byte of the transaction in its
// current state.
func (t *Transaction) FeeRate() (FeeRate, error) {
	fee, err := t.Fee()
	if err != nil {
		return FeeRate{}, err
	}
	return NewFeeRate(fee, t.VSize()), nil
}
