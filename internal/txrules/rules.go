// Copyright (c) 2016 The btcsuite developers
// Copyright (c) 2016 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package txrules provides the policy checks applied to transaction outputs
// before they are added to a transaction.
package txrules

import (
	"errors"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/txscript"
	"github.com/btcsuite/btcd/wire"
)

// DefaultRelayFeePerKb is the default minimum relay fee policy for a mempool.
const DefaultRelayFeePerKb btcutil.Amount = 1e3

// redeemP2PKHInputSize is the average size of a compressed P2PKH redeem
// input, used as the cost of eventually spending an output.
const redeemP2PKHInputSize = 165

// spendCost returns the serialized size of an output with a script of
// scriptSize bytes plus that of an input redeeming it.
func spendCost(scriptSize int) int64 {
	return int64(8 + wire.VarIntSerializeSize(uint64(scriptSize)) +
		scriptSize + redeemP2PKHInputSize)
}

// IsDustAmount determines whether a transaction output value and script length would
// cause the output to be considered dust.  Transactions with dust outputs are
// not standard and are rejected by mempools with default policies.
func IsDustAmount(amount btcutil.Amount, scriptSize int, relayFeePerKb btcutil.Amount) bool {
	// Dust is defined as an output value where the total cost to the network
	// (output size + input size) is greater than 1/3 of the relay fee.
	return int64(amount)*1000/(3*spendCost(scriptSize)) < int64(relayFeePerKb)
}

// DustThreshold returns the smallest amount an output with a script of
// scriptSize bytes may carry without being dust.
func DustThreshold(scriptSize int, relayFeePerKb btcutil.Amount) btcutil.Amount {
	threshold := 3 * spendCost(scriptSize) * int64(relayFeePerKb) / 1000
	for IsDustAmount(btcutil.Amount(threshold), scriptSize, relayFeePerKb) {
		threshold++
	}
	return btcutil.Amount(threshold)
}

// IsDustOutput determines whether a transaction output is considered dust.
// Transactions with dust outputs are not standard and are rejected by mempools
// with default policies.
func IsDustOutput(output *wire.TxOut, relayFeePerKb btcutil.Amount) bool {
	// Unspendable outputs which solely carry data are not checked for dust.
	if txscript.GetScriptClass(output.PkScript) == txscript.NullDataTy {
		return false
	}

	// All other unspendable outputs are considered dust.
	if txscript.IsUnspendable(output.PkScript) {
		return true
	}

	return IsDustAmount(btcutil.Amount(output.Value), len(output.PkScript),
		relayFeePerKb)
}

// Transaction rule violations
var (
	ErrAmountNegative   = errors.New("transaction output amount is negative")
	ErrAmountExceedsMax = errors.New("transaction output amount exceeds maximum value")
	ErrOutputIsDust     = errors.New("transaction output is dust")
)

// CheckOutput performs simple consensus and policy tests on a transaction
// output.
func CheckOutput(output *wire.TxOut, relayFeePerKb btcutil.Amount) error {
	if output.Value < 0 {
		return ErrAmountNegative
	}
	if output.Value > btcutil.MaxSatoshi {
		return ErrAmountExceedsMax
	}
	if IsDustOutput(output, relayFeePerKb) {
		return ErrOutputIsDust
	}
	return nil
}
