// Copyright (c) 2024 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package ethereum

import (
	"math/big"

	"github.com/btcsuite/chainwallet/core"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// TransactionID is the hash of a signed transaction.
type TransactionID = common.Hash

// TransactionParameters describe a transaction.  A non-zero GasFeeCap
// selects a dynamic fee (EIP-1559) transaction, otherwise a legacy one
// priced by GasPrice is built.
type TransactionParameters struct {
	Network Network
	Nonce   uint64

	// To is nil for contract creation.
	To       *Address
	Value    Amount
	GasLimit uint64
	Data     []byte

	GasPrice  Amount
	GasFeeCap Amount
	GasTipCap Amount
}

// Transaction is an Ethereum transaction, signed once.
type Transaction struct {
	network Network
	tx      *types.Transaction
	signed  bool
}

var _ core.Transaction[PrivateKey, TransactionID] = (*Transaction)(nil)

// NewTransaction validates params and returns the unsigned transaction.
func NewTransaction(params TransactionParameters) (*Transaction, error) {
	if params.GasLimit == 0 {
		return nil, core.Errorf(core.ErrInvalidGas,
			"gas limit must be positive")
	}
	if params.To == nil && len(params.Data) == 0 {
		return nil, core.Errorf(core.ErrInvalidOutput,
			"contract creation without code")
	}

	var to *common.Address
	if params.To != nil {
		addr := params.To.addr
		to = &addr
	}

	var inner types.TxData
	if !params.GasFeeCap.IsZero() {
		if params.GasTipCap.Big().Cmp(params.GasFeeCap.Big()) > 0 {
			return nil, core.Errorf(core.ErrInvalidGas,
				"tip cap %v exceeds fee cap %v", params.GasTipCap,
				params.GasFeeCap)
		}
		inner = &types.DynamicFeeTx{
			ChainID:   params.Network.chainID(),
			Nonce:     params.Nonce,
			GasTipCap: params.GasTipCap.Big(),
			GasFeeCap: params.GasFeeCap.Big(),
			Gas:       params.GasLimit,
			To:        to,
			Value:     params.Value.Big(),
			Data:      params.Data,
		}
	} else {
		inner = &types.LegacyTx{
			Nonce:    params.Nonce,
			GasPrice: params.GasPrice.Big(),
			Gas:      params.GasLimit,
			To:       to,
			Value:    params.Value.Big(),
			Data:     params.Data,
		}
	}

	return &Transaction{network: params.Network, tx: types.NewTx(inner)}, nil
}

func (t *Transaction) signer() types.Signer {
	return types.LatestSignerForChainID(t.network.chainID())
}

// SignWithPrivateKey signs the transaction for its network and returns
// the serialized transaction.
func (t *Transaction) SignWithPrivateKey(key PrivateKey) ([]byte, error) {
	if t.signed {
		return nil, core.Errorf(core.ErrAlreadySigned,
			"transaction is already signed")
	}

	priv := key.ecdsaKey()
	if priv == nil {
		return nil, errZeroKey
	}

	signed, err := types.SignTx(t.tx, t.signer(), priv)
	if err != nil {
		return nil, core.NewError(core.ErrKeyLibrary,
			"failed to sign transaction", err)
	}
	t.tx = signed
	t.signed = true

	log.Debugf("Signed transaction %v on %v", signed.Hash(), t.network)
	return t.Bytes()
}

// Sender recovers the address that signed the transaction.
func (t *Transaction) Sender() (Address, error) {
	if !t.signed {
		return Address{}, core.Errorf(core.ErrInvalidInput,
			"transaction is not signed")
	}
	from, err := types.Sender(t.signer(), t.tx)
	if err != nil {
		return Address{}, core.NewError(core.ErrKeyLibrary,
			"failed to recover sender", err)
	}
	return Address{addr: from}, nil
}

// Bytes returns the consensus encoding of the transaction: RLP for legacy
// transactions, the typed envelope otherwise.
func (t *Transaction) Bytes() ([]byte, error) {
	b, err := t.tx.MarshalBinary()
	if err != nil {
		return nil, core.NewError(core.ErrSerialization,
			"failed to encode transaction", err)
	}
	return b, nil
}

// TransactionID returns the transaction hash.
func (t *Transaction) TransactionID() (TransactionID, error) {
	return t.tx.Hash(), nil
}

// Fee returns the most the transaction can pay for gas.
func (t *Transaction) Fee() (Amount, error) {
	gas := new(big.Int).SetUint64(t.tx.Gas())
	return AmountFromBig(gas.Mul(gas, t.tx.GasFeeCap()))
}
