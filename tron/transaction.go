// Copyright (c) 2024 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package tron

import (
	"encoding/hex"
	"fmt"

	"github.com/btcsuite/chainwallet/core"
	"github.com/btcsuite/chainwallet/core/hashes"
	"github.com/ethereum/go-ethereum/crypto"
	"google.golang.org/protobuf/encoding/protowire"
)

// SignatureSize is the size of a recoverable signature: r, s and the
// recovery identifier.
const SignatureSize = crypto.SignatureLength

// ContractType identifies the contract a transaction invokes.
type ContractType int32

// Supported contract types.
const (
	TransferContractType     ContractType = 1
	TriggerSmartContractType ContractType = 31
)

const typeURLPrefix = "type.googleapis.com/protocol."

// Contract is a contract invocation carried by a transaction.
type Contract interface {
	// Type returns the contract type.
	Type() ContractType

	// typeName is the protocol message name of the contract.
	typeName() string

	// marshal returns the protocol buffer encoding of the contract.
	marshal() []byte
}

// TransferContract transfers TRX.
type TransferContract struct {
	Owner  Address
	To     Address
	Amount Amount
}

// Type returns TransferContractType.
func (c *TransferContract) Type() ContractType { return TransferContractType }

func (c *TransferContract) typeName() string { return "TransferContract" }

func (c *TransferContract) marshal() []byte {
	var b []byte
	b = appendBytesField(b, 1, c.Owner.payload[:])
	b = appendBytesField(b, 2, c.To.payload[:])
	return appendVarintField(b, 3, uint64(c.Amount))
}

// TriggerSmartContract calls a contract, such as a TRC-20 token.
type TriggerSmartContract struct {
	Owner     Address
	Contract  Address
	CallValue Amount
	Data      []byte
}

// Type returns TriggerSmartContractType.
func (c *TriggerSmartContract) Type() ContractType { return TriggerSmartContractType }

func (c *TriggerSmartContract) typeName() string { return "TriggerSmartContract" }

func (c *TriggerSmartContract) marshal() []byte {
	var b []byte
	b = appendBytesField(b, 1, c.Owner.payload[:])
	b = appendBytesField(b, 2, c.Contract.payload[:])
	b = appendVarintField(b, 3, uint64(c.CallValue))
	return appendBytesField(b, 4, c.Data)
}

// TransactionParameters describe the raw data of a transaction.  The
// reference block fields are taken from a recent block.
type TransactionParameters struct {
	RefBlockBytes []byte
	RefBlockNum   int64
	RefBlockHash  []byte
	Expiration    int64
	Timestamp     int64
	FeeLimit      int64
	Contract      Contract
}

// TransactionID is the SHA-256 hash of a transaction's raw data.
type TransactionID [hashes.SHA256Size]byte

// String returns the hex encoding of the id.
func (id TransactionID) String() string {
	return hex.EncodeToString(id[:])
}

// Transaction is a Tron transaction, signed once.
type Transaction struct {
	raw       []byte
	signature []byte
}

var _ core.Transaction[PrivateKey, TransactionID] = (*Transaction)(nil)

// NewTransaction validates params and encodes the raw data they describe.
func NewTransaction(params TransactionParameters) (*Transaction, error) {
	if params.Contract == nil {
		return nil, core.Errorf(core.ErrInvalidInput,
			"transaction has no contract")
	}
	if params.FeeLimit < 0 {
		return nil, core.Errorf(core.ErrInvalidGas,
			"negative fee limit %d", params.FeeLimit)
	}
	switch c := params.Contract.(type) {
	case *TransferContract:
		if c.Amount <= 0 {
			return nil, core.Errorf(core.ErrInvalidAmount,
				"transfer amount must be positive")
		}
	case *TriggerSmartContract:
		if c.CallValue < 0 {
			return nil, core.Errorf(core.ErrInvalidAmount,
				"negative call value")
		}
	}

	var param []byte
	param = appendBytesField(param, 1,
		[]byte(typeURLPrefix+params.Contract.typeName()))
	param = appendBytesField(param, 2, params.Contract.marshal())

	var contract []byte
	contract = appendVarintField(contract, 1,
		uint64(params.Contract.Type()))
	contract = appendBytesField(contract, 2, param)

	var raw []byte
	raw = appendBytesField(raw, 1, params.RefBlockBytes)
	raw = appendVarintField(raw, 3, uint64(params.RefBlockNum))
	raw = appendBytesField(raw, 4, params.RefBlockHash)
	raw = appendVarintField(raw, 8, uint64(params.Expiration))
	raw = appendBytesField(raw, 11, contract)
	raw = appendVarintField(raw, 14, uint64(params.Timestamp))
	raw = appendVarintField(raw, 18, uint64(params.FeeLimit))

	return &Transaction{raw: raw}, nil
}

// NewTransactionFromRawData returns an unsigned transaction over raw data
// encoded elsewhere, such as by a node.
func NewTransactionFromRawData(raw []byte) (*Transaction, error) {
	if len(raw) == 0 {
		return nil, core.Errorf(core.ErrInvalidInput, "empty raw data")
	}
	return &Transaction{raw: append([]byte(nil), raw...)}, nil
}

// RawData returns a copy of the encoded raw data.
func (t *Transaction) RawData() []byte {
	return append([]byte(nil), t.raw...)
}

// SignWithPrivateKey signs the hash of the raw data and returns the
// serialized transaction.
func (t *Transaction) SignWithPrivateKey(key PrivateKey) ([]byte, error) {
	if t.signature != nil {
		return nil, core.Errorf(core.ErrAlreadySigned,
			"transaction is already signed")
	}

	priv := key.ecdsaKey()
	if priv == nil {
		return nil, errZeroKey
	}

	id, _ := t.TransactionID()
	sig, err := crypto.Sign(id[:], priv)
	if err != nil {
		return nil, core.NewError(core.ErrKeyLibrary,
			"failed to sign transaction", err)
	}
	t.signature = sig

	log.Debugf("Signed transaction %v", id)
	return t.Bytes()
}

// Signature returns the signature, or nil when unsigned.
func (t *Transaction) Signature() []byte {
	return append([]byte(nil), t.signature...)
}

// Signer recovers the address that signed the transaction.
func (t *Transaction) Signer() (Address, error) {
	if t.signature == nil {
		return Address{}, core.Errorf(core.ErrInvalidInput,
			"transaction is not signed")
	}
	id, _ := t.TransactionID()
	pub, err := crypto.SigToPub(id[:], t.signature)
	if err != nil {
		return Address{}, core.NewError(core.ErrKeyLibrary,
			"failed to recover signer", err)
	}

	var k PublicKey
	copy(k.point[:], crypto.FromECDSAPub(pub))
	return k.Address(Standard)
}

// Bytes returns the protocol buffer encoding of the transaction.
func (t *Transaction) Bytes() ([]byte, error) {
	b := appendBytesField(nil, 1, t.raw)
	if t.signature != nil {
		b = appendBytesField(b, 2, t.signature)
	}
	return b, nil
}

// TransactionID returns the SHA-256 hash of the raw data.
func (t *Transaction) TransactionID() (TransactionID, error) {
	var id TransactionID
	copy(id[:], hashes.SHA256(t.raw))
	return id, nil
}

// String returns the id of the transaction.
func (t *Transaction) String() string {
	id, _ := t.TransactionID()
	return fmt.Sprintf("tron transaction %v", id)
}

// appendBytesField appends a length delimited field, omitted when empty.
func appendBytesField(b []byte, num protowire.Number, v []byte) []byte {
	if len(v) == 0 {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, v)
}

// appendVarintField appends a varint field, omitted when zero.
func appendVarintField(b []byte, num protowire.Number, v uint64) []byte {
	if v == 0 {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, v)
}
