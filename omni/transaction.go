// Copyright (c) 2024 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package omni

import (
	"github.com/btcsuite/chainwallet/bitcoin"
	"github.com/btcsuite/chainwallet/core"
	"github.com/btcsuite/chainwallet/internal/txrules"
)

// Omni Layer transactions are Bitcoin transactions; keys and addresses are
// shared with the bitcoin package.
type (
	Address       = bitcoin.Address
	PrivateKey    = bitcoin.PrivateKey
	PublicKey     = bitcoin.PublicKey
	TransactionID = bitcoin.TransactionID
)

// TransactionParameters describe a simple send.
type TransactionParameters struct {
	Version int32

	// Inputs fund the transaction.  The first input's address is the
	// sender of the tokens.
	Inputs []bitcoin.Input

	// Send is the token transfer.
	Send SimpleSend

	// Reference is the token receiver.
	Reference Address

	// ReferenceAmount is the bitcoin paid to the receiver.  Zero selects
	// the smallest amount that is not dust.
	ReferenceAmount bitcoin.Amount

	// Change outputs return the remaining bitcoin.
	Change []bitcoin.Output

	LockTime uint32
}

// Transaction is a Bitcoin transaction carrying a simple send.
type Transaction struct {
	*bitcoin.Transaction
	send SimpleSend
}

var _ core.Transaction[PrivateKey, TransactionID] = (*Transaction)(nil)

// NewTransaction builds an unsigned class C transaction.  Its outputs are
// the payload carrier, then the change outputs, then the reference output,
// which must come last for the receiver to be found.
func NewTransaction(params TransactionParameters) (*Transaction, error) {
	if params.Send.Amount.Units() <= 0 {
		return nil, core.Errorf(core.ErrAmountOutOfBounds,
			"simple send amount must be positive")
	}

	data, err := bitcoin.NewDataOutput(params.Send.Payload())
	if err != nil {
		return nil, err
	}

	refScript, err := params.Reference.ScriptPubKey()
	if err != nil {
		return nil, err
	}
	refAmount := params.ReferenceAmount
	if refAmount == 0 {
		refAmount = txrules.DustThreshold(len(refScript),
			txrules.DefaultRelayFeePerKb)
	}
	reference, err := bitcoin.NewOutput(params.Reference, refAmount)
	if err != nil {
		return nil, err
	}

	outputs := make([]bitcoin.Output, 0, len(params.Change)+2)
	outputs = append(outputs, data)
	outputs = append(outputs, params.Change...)
	outputs = append(outputs, reference)

	tx, err := bitcoin.NewTransaction(bitcoin.TransactionParameters{
		Version:  params.Version,
		Inputs:   params.Inputs,
		Outputs:  outputs,
		LockTime: params.LockTime,
	})
	if err != nil {
		return nil, err
	}

	log.Debugf("Built simple send of %v of property %d to %v",
		params.Send.Amount, params.Send.PropertyID, params.Reference)

	return &Transaction{Transaction: tx, send: params.Send}, nil
}

// Send returns the token transfer the transaction carries.
func (t *Transaction) Send() SimpleSend {
	return t.send
}
