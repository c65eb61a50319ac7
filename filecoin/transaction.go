// Copyright (c) 2024 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package filecoin

import (
	"bytes"

	"github.com/btcsuite/chainwallet/core"
	"github.com/fxamacker/cbor/v2"
	"github.com/ipfs/go-cid"
	"github.com/multiformats/go-multihash"
)

// TransactionID is the content identifier of a serialized message: a
// version 1 DAG-CBOR CID with a Blake2b-256 multihash.
type TransactionID = cid.Cid

// cidBuilder builds the identifiers of messages.
var cidBuilder = cid.V1Builder{
	Codec:  cid.DagCBOR,
	MhType: multihash.BLAKE2B_MIN + 31,
}

var (
	encMode cbor.EncMode
	decMode cbor.DecMode
)

func init() {
	opts := cbor.CoreDetEncOptions()
	opts.NilContainers = cbor.NilContainerAsEmpty

	var err error
	if encMode, err = opts.EncMode(); err != nil {
		panic(err)
	}
	if decMode, err = (cbor.DecOptions{}).DecMode(); err != nil {
		panic(err)
	}
}

// message is the wire form of an unsigned message, a 10 element CBOR
// array.
type message struct {
	_          struct{} `cbor:",toarray"`
	Version    uint64
	To         []byte
	From       []byte
	Nonce      uint64
	Value      []byte
	GasLimit   int64
	GasFeeCap  []byte
	GasPremium []byte
	Method     uint64
	Params     []byte
}

// signedMessage is the wire form of a signed message, the encoded message
// and the signature in a two element CBOR array.
type signedMessage struct {
	_         struct{} `cbor:",toarray"`
	Message   cbor.RawMessage
	Signature []byte
}

// TransactionParameters are the fields of a message.
type TransactionParameters struct {
	Version    uint64
	To         Address
	From       Address
	Sequence   uint64
	Value      Amount
	GasLimit   int64
	GasFeeCap  Amount
	GasPremium Amount
	Method     uint64
	Params     []byte
}

// Transaction is a Filecoin message and, once signed, its signature.
type Transaction struct {
	params    TransactionParameters
	signature *Signature
}

// NewTransaction returns the unsigned message described by params.
func NewTransaction(params *TransactionParameters) (*Transaction, error) {
	if params.GasLimit <= 0 {
		return nil, core.Errorf(core.ErrInvalidGas,
			"gas limit must be positive, got %d", params.GasLimit)
	}
	if params.To.IsZero() {
		return nil, core.Errorf(core.ErrInvalidOutput,
			"message has no recipient")
	}
	if params.From.IsZero() {
		return nil, core.Errorf(core.ErrInvalidInput,
			"message has no sender")
	}

	p := *params
	p.Params = append([]byte(nil), params.Params...)
	return &Transaction{params: p}, nil
}

// FromBytes decodes a serialized message, signed or unsigned.  Addresses
// are decoded for net, which the wire form does not carry.
func FromBytes(b []byte, net Network) (*Transaction, error) {
	if len(b) == 0 {
		return nil, core.Errorf(core.ErrSerialization, "empty message")
	}

	raw := b
	var sig *Signature
	if b[0] == 0x82 {
		var sm signedMessage
		if err := decMode.Unmarshal(b, &sm); err != nil {
			return nil, core.NewError(core.ErrSerialization,
				"malformed signed message", err)
		}
		s, err := ParseSignature(sm.Signature)
		if err != nil {
			return nil, err
		}
		raw, sig = sm.Message, &s
	}

	var m message
	if err := decMode.Unmarshal(raw, &m); err != nil {
		return nil, core.NewError(core.ErrSerialization,
			"malformed message", err)
	}

	params, err := m.parameters(net)
	if err != nil {
		return nil, err
	}
	tx, err := NewTransaction(params)
	if err != nil {
		return nil, err
	}
	tx.signature = sig
	return tx, nil
}

func (m *message) parameters(net Network) (*TransactionParameters, error) {
	to, err := AddressFromBytes(m.To, net)
	if err != nil {
		return nil, err
	}
	from, err := AddressFromBytes(m.From, net)
	if err != nil {
		return nil, err
	}
	value, err := amountFromBigintBytes(m.Value)
	if err != nil {
		return nil, err
	}
	feeCap, err := amountFromBigintBytes(m.GasFeeCap)
	if err != nil {
		return nil, err
	}
	premium, err := amountFromBigintBytes(m.GasPremium)
	if err != nil {
		return nil, err
	}
	return &TransactionParameters{
		Version:    m.Version,
		To:         to,
		From:       from,
		Sequence:   m.Nonce,
		Value:      value,
		GasLimit:   m.GasLimit,
		GasFeeCap:  feeCap,
		GasPremium: premium,
		Method:     m.Method,
		Params:     m.Params,
	}, nil
}

// Parameters returns a copy of the message fields.
func (tx *Transaction) Parameters() TransactionParameters {
	p := tx.params
	p.Params = append([]byte(nil), tx.params.Params...)
	return p
}

// Message returns the CBOR encoding of the unsigned message.
func (tx *Transaction) Message() ([]byte, error) {
	p := &tx.params
	b, err := encMode.Marshal(&message{
		Version:    p.Version,
		To:         p.To.Bytes(),
		From:       p.From.Bytes(),
		Nonce:      p.Sequence,
		Value:      p.Value.bigintBytes(),
		GasLimit:   p.GasLimit,
		GasFeeCap:  p.GasFeeCap.bigintBytes(),
		GasPremium: p.GasPremium.bigintBytes(),
		Method:     p.Method,
		Params:     p.Params,
	})
	if err != nil {
		return nil, core.NewError(core.ErrSerialization,
			"failed to encode message", err)
	}
	return b, nil
}

// MessageID returns the CID of the unsigned message.
func (tx *Transaction) MessageID() (TransactionID, error) {
	b, err := tx.Message()
	if err != nil {
		return cid.Undef, err
	}
	return sum(b)
}

// SigningBytes returns the bytes a signature commits to: the binary CID of
// the unsigned message.
func (tx *Transaction) SigningBytes() ([]byte, error) {
	id, err := tx.MessageID()
	if err != nil {
		return nil, err
	}
	return id.Bytes(), nil
}

// SignWithPrivateKey signs the message with key and returns the signed
// message.  A key whose address does not match a key based sender is
// rejected.
func (tx *Transaction) SignWithPrivateKey(key PrivateKey) ([]byte, error) {
	if tx.signature != nil {
		return nil, core.Errorf(core.ErrAlreadySigned,
			"message is already signed")
	}

	from := tx.params.From
	if from.protocol == SECP256K1 || from.protocol == BLS {
		addr, err := key.Address(Standard)
		if err != nil {
			return nil, err
		}
		if !bytes.Equal(addr.Bytes(), from.Bytes()) {
			return nil, core.Errorf(core.ErrKeyMismatch,
				"key of %v can not sign for sender %v", addr, from)
		}
	}

	msg, err := tx.SigningBytes()
	if err != nil {
		return nil, err
	}
	sig, err := Sign(key, msg)
	if err != nil {
		return nil, err
	}
	tx.signature = &sig

	log.Debugf("Signed message from %v with %v key", from, key.typ)
	return tx.Bytes()
}

// Signature returns the signature of the message, or nil when unsigned.
func (tx *Transaction) Signature() *Signature {
	if tx.signature == nil {
		return nil
	}
	s := *tx.signature
	s.Data = append([]byte(nil), s.Data...)
	return &s
}

// Verify checks the signature of a signed message against its sender.
func (tx *Transaction) Verify() error {
	if tx.signature == nil {
		return core.Errorf(core.ErrKeyMismatch, "message is not signed")
	}
	msg, err := tx.SigningBytes()
	if err != nil {
		return err
	}
	return tx.signature.VerifyAddress(tx.params.From, msg)
}

// Bytes returns the CBOR encoding of the message, wrapped with its
// signature once signed.
func (tx *Transaction) Bytes() ([]byte, error) {
	msg, err := tx.Message()
	if err != nil || tx.signature == nil {
		return msg, err
	}

	b, err := encMode.Marshal(&signedMessage{
		Message:   msg,
		Signature: tx.signature.Bytes(),
	})
	if err != nil {
		return nil, core.NewError(core.ErrSerialization,
			"failed to encode signed message", err)
	}
	return b, nil
}

// TransactionID returns the CID of the serialized message, which covers
// the signature once signed.
func (tx *Transaction) TransactionID() (TransactionID, error) {
	b, err := tx.Bytes()
	if err != nil {
		return cid.Undef, err
	}
	return sum(b)
}

func sum(b []byte) (TransactionID, error) {
	id, err := cidBuilder.Sum(b)
	if err != nil {
		return cid.Undef, core.NewError(core.ErrSerialization,
			"failed to compute message cid", err)
	}
	return id, nil
}
