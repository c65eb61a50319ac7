// Copyright (c) 2013-2024 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package bitcoin

import (
	"bytes"
	"fmt"

	"github.com/btcsuite/btcd/btcec/v2/ecdsa"
	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/btcsuite/btcd/txscript"
	"github.com/btcsuite/btcd/wire"
	"github.com/btcsuite/chainwallet/core"
	"github.com/btcsuite/chainwallet/core/hashes"
	"github.com/btcsuite/chainwallet/internal/txrules"
	secpecdsa "github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
)

// TransactionID is the hash of a transaction's non-witness serialization.
type TransactionID = chainhash.Hash

// Input spends a previous transaction output.
type Input struct {
	// OutPoint names the output being spent.
	OutPoint wire.OutPoint

	// PrevScript is the locking script of the output being spent.  It
	// must pay to a public key hash, a witness key hash or a script hash.
	PrevScript []byte

	// Amount is the value of the output being spent.
	Amount Amount

	// RedeemScript is the witness program a script hash output commits
	// to.  It may be left empty when the input is signed with
	// SignWithPrivateKey, which derives it from the key.
	RedeemScript []byte

	// Sequence is the input sequence number.
	Sequence uint32

	// SigHash is the signature hash type the input is signed with.
	SigHash SignatureHash
}

// NewInput returns an input spending output index of transaction txid, paid
// to addr.  The input is final and signed with SigHashAll.
func NewInput(txid string, index uint32, addr Address,
	amount Amount) (Input, error) {

	hash, err := chainhash.NewHashFromStr(txid)
	if err != nil {
		return Input{}, core.NewError(core.ErrInvalidInput,
			fmt.Sprintf("invalid transaction id %q", txid), err)
	}
	script, err := addr.ScriptPubKey()
	if err != nil {
		return Input{}, err
	}
	return Input{
		OutPoint:   *wire.NewOutPoint(hash, index),
		PrevScript: script,
		Amount:     amount,
		Sequence:   wire.MaxTxInSequenceNum,
		SigHash:    SigHashAll,
	}, nil
}

// Output is a transaction output.
type Output struct {
	// Address is the destination of the output.  It is the zero value
	// for data carrier outputs.
	Address Address

	// Amount is the value of the output.
	Amount Amount

	// PkScript is the locking script of the output.
	PkScript []byte
}

// NewOutput returns an output paying amount to addr.
func NewOutput(addr Address, amount Amount) (Output, error) {
	script, err := addr.ScriptPubKey()
	if err != nil {
		return Output{}, err
	}
	return Output{Address: addr, Amount: amount, PkScript: script}, nil
}

// NewDataOutput returns a zero value OP_RETURN output carrying data.
func NewDataOutput(data []byte) (Output, error) {
	script, err := txscript.NullDataScript(data)
	if err != nil {
		return Output{}, core.NewError(core.ErrInvalidOutput,
			"invalid data output", err)
	}
	return Output{PkScript: script}, nil
}

// TransactionParameters describe a transaction to build.
type TransactionParameters struct {
	Version  int32
	Inputs   []Input
	Outputs  []Output
	LockTime uint32
}

// State is the signing state of a transaction.
type State uint8

// These constants define the signing states of a transaction.
const (
	Unsigned State = iota
	PartiallySigned
	Signed
)

// String returns the name of the state.
func (s State) String() string {
	switch s {
	case Unsigned:
		return "unsigned"
	case PartiallySigned:
		return "partially signed"
	case Signed:
		return "signed"
	default:
		return fmt.Sprintf("Unknown State (%d)", uint8(s))
	}
}

// scriptClass is the kind of output an input spends.
type scriptClass uint8

const (
	pubKeyHashClass scriptClass = iota
	witnessPubKeyHashClass
	scriptHashClass
)

// Transaction is a Bitcoin transaction under construction.  Each input is
// signed exactly once, after which the transaction can not be changed.
type Transaction struct {
	inputs  []Input
	outputs []Output
	classes []scriptClass
	signed  []bool
	tx      *wire.MsgTx

	// sigHashes caches the BIP-143 midstate.  It only commits to
	// outpoints, sequences and outputs, which never change after
	// construction.
	sigHashes *txscript.TxSigHashes
}

var _ core.Transaction[PrivateKey, TransactionID] = (*Transaction)(nil)

// NewTransaction validates params and returns the unsigned transaction they
// describe.
func NewTransaction(params TransactionParameters) (*Transaction, error) {
	if len(params.Inputs) == 0 {
		return nil, core.Errorf(core.ErrInvalidInput,
			"transaction has no inputs")
	}
	if len(params.Outputs) == 0 {
		return nil, core.Errorf(core.ErrInvalidOutput,
			"transaction has no outputs")
	}

	t := &Transaction{
		inputs:  make([]Input, len(params.Inputs)),
		outputs: make([]Output, len(params.Outputs)),
		classes: make([]scriptClass, len(params.Inputs)),
		signed:  make([]bool, len(params.Inputs)),
		tx:      wire.NewMsgTx(params.Version),
	}
	t.tx.LockTime = params.LockTime
	copy(t.inputs, params.Inputs)
	copy(t.outputs, params.Outputs)

	for i, in := range t.inputs {
		class, err := checkInput(&in)
		if err != nil {
			return nil, core.NewError(core.ErrInvalidInput,
				fmt.Sprintf("input %d", i), err)
		}
		t.classes[i] = class

		txIn := wire.NewTxIn(&in.OutPoint, nil, nil)
		txIn.Sequence = in.Sequence
		t.tx.AddTxIn(txIn)
	}

	for i, out := range t.outputs {
		txOut := wire.NewTxOut(int64(out.Amount), out.PkScript)
		err := txrules.CheckOutput(txOut, txrules.DefaultRelayFeePerKb)
		if err != nil {
			return nil, core.NewError(core.ErrInvalidOutput,
				fmt.Sprintf("output %d", i), err)
		}
		t.tx.AddTxOut(txOut)
	}
	t.sigHashes = txscript.NewTxSigHashes(t.tx, t.PrevOutputFetcher())

	log.Debugf("Built transaction with %d %s and %d %s",
		len(t.inputs), pickNoun(len(t.inputs), "input", "inputs"),
		len(t.outputs), pickNoun(len(t.outputs), "output", "outputs"))

	return t, nil
}

// checkInput validates an input and classifies the script it spends.
func checkInput(in *Input) (scriptClass, error) {
	if err := in.SigHash.Validate(); err != nil {
		return 0, err
	}
	if in.Amount < 0 || in.Amount > btcutil.MaxSatoshi {
		return 0, core.Errorf(core.ErrAmountOutOfBounds,
			"amount %v out of range", in.Amount)
	}

	switch {
	case txscript.IsPayToPubKeyHash(in.PrevScript):
		return pubKeyHashClass, nil

	case txscript.IsPayToWitnessPubKeyHash(in.PrevScript):
		return witnessPubKeyHashClass, nil

	case txscript.IsPayToScriptHash(in.PrevScript):
		if len(in.RedeemScript) == 0 {
			return scriptHashClass, nil
		}
		if !txscript.IsPayToWitnessPubKeyHash(in.RedeemScript) {
			return 0, core.Errorf(core.ErrInvalidInput,
				"redeem script is not a witness key hash program")
		}
		if !bytes.Equal(hashes.Hash160(in.RedeemScript),
			scriptHash(in.PrevScript)) {

			return 0, core.Errorf(core.ErrInvalidInput,
				"redeem script does not match script hash")
		}
		return scriptHashClass, nil

	default:
		return 0, core.Errorf(core.ErrInvalidInput,
			"unsupported previous output script %x", in.PrevScript)
	}
}

// scriptHash returns the hash committed to by a P2SH script.
func scriptHash(script []byte) []byte {
	return script[2:22]
}

// keyHash returns the key hash input idx pays to, if it is known without a
// key.
func (t *Transaction) keyHash(idx int) ([]byte, error) {
	in := &t.inputs[idx]
	switch t.classes[idx] {
	case pubKeyHashClass:
		return in.PrevScript[3:23], nil
	case witnessPubKeyHashClass:
		return in.PrevScript[2:22], nil
	default:
		if len(in.RedeemScript) == 0 {
			return nil, core.Errorf(core.ErrInvalidInput,
				"input %d requires a redeem script", idx)
		}
		return in.RedeemScript[2:22], nil
	}
}

// matches returns whether input idx pays to pub and, for script hash
// inputs, the redeem script it is spent with.
func (t *Transaction) matches(idx int, pub PublicKey) (bool, []byte) {
	keyHash := pub.keyHash()
	in := &t.inputs[idx]

	switch t.classes[idx] {
	case pubKeyHashClass:
		return bytes.Equal(in.PrevScript[3:23], keyHash), nil

	case witnessPubKeyHashClass:
		return pub.compressed &&
			bytes.Equal(in.PrevScript[2:22], keyHash), nil

	default:
		if !pub.compressed {
			return false, nil
		}
		redeem := witnessKeyHashScript(keyHash)
		if !bytes.Equal(hashes.Hash160(redeem),
			scriptHash(in.PrevScript)) {

			return false, nil
		}
		return true, redeem
	}
}

// digest returns the signature digest of input idx, whose key hash is
// keyHash.
func (t *Transaction) digest(idx int, keyHash []byte) ([]byte, error) {
	in := &t.inputs[idx]
	if t.classes[idx] == pubKeyHashClass {
		return calcSignatureHash(in.PrevScript, false, in.SigHash,
			t.sigHashes, t.tx, idx, in.Amount)
	}
	return calcSignatureHash(witnessKeyHashScript(keyHash), true,
		in.SigHash, t.sigHashes, t.tx, idx, in.Amount)
}

// SignatureDigest returns the digest input idx is signed over.  Inputs
// spending script hash outputs need their redeem script set.
func (t *Transaction) SignatureDigest(idx int) ([]byte, error) {
	if idx < 0 || idx >= len(t.inputs) {
		return nil, core.Errorf(core.ErrInvalidInput,
			"input index %d out of range", idx)
	}
	keyHash, err := t.keyHash(idx)
	if err != nil {
		return nil, err
	}
	return t.digest(idx, keyHash)
}

// SignDigest signs digest with key using deterministic ECDSA.  It returns
// the DER encoded low-S signature along with the recovery identifier of
// the signing public key.
func SignDigest(key PrivateKey, digest []byte) ([]byte, byte, error) {
	if len(digest) != chainhash.HashSize {
		return nil, 0, core.Errorf(core.ErrInvalidByteLength,
			"digest must be %d bytes, got %d", chainhash.HashSize,
			len(digest))
	}
	if key.net == nil {
		return nil, 0, errZeroKey
	}

	priv := key.ecKey()
	defer priv.Zero()

	sig := ecdsa.Sign(priv, digest)

	// The compact signature is produced from the same RFC-6979 nonce, so
	// it carries the recovery identifier of sig in its header byte.
	compact := secpecdsa.SignCompact(priv, digest, false)
	recoveryID := compact[0] - 27

	return sig.Serialize(), recoveryID, nil
}

// SignWithPrivateKey signs every unsigned input that pays to key and
// returns the serialized transaction.
func (t *Transaction) SignWithPrivateKey(key PrivateKey) ([]byte, error) {
	if t.State() == Signed {
		return nil, core.Errorf(core.ErrAlreadySigned,
			"all inputs are already signed")
	}
	if key.net == nil {
		return nil, errZeroKey
	}

	pub := key.PublicKey()
	var numSigned int
	for idx := range t.inputs {
		if t.signed[idx] {
			continue
		}
		ok, redeem := t.matches(idx, pub)
		if !ok {
			continue
		}

		digest, err := t.digest(idx, pub.keyHash())
		if err != nil {
			return nil, err
		}
		sig, _, err := SignDigest(key, digest)
		if err != nil {
			return nil, err
		}
		sig = append(sig, byte(t.inputs[idx].SigHash))
		if err := t.attach(idx, sig, pub.Serialize(), redeem); err != nil {
			return nil, err
		}
		numSigned++
	}
	if numSigned == 0 {
		return nil, core.Errorf(core.ErrKeyMismatch,
			"no unsigned input pays to key %v", pub)
	}

	log.Debugf("Signed %d %s, transaction is %v", numSigned,
		pickNoun(numSigned, "input", "inputs"), t.State())

	return t.Bytes()
}

// AttachSignature attaches a signature made by an external signer to input
// idx.  sig is the DER encoded signature followed by the signature hash
// type byte.
func (t *Transaction) AttachSignature(idx int, sig []byte, pub PublicKey) error {
	if idx < 0 || idx >= len(t.inputs) {
		return core.Errorf(core.ErrInvalidInput,
			"input index %d out of range", idx)
	}
	if t.signed[idx] {
		return core.Errorf(core.ErrAlreadySigned,
			"input %d is already signed", idx)
	}
	if len(sig) < 2 {
		return core.Errorf(core.ErrInvalidByteLength,
			"signature too short")
	}

	hashType := SignatureHash(sig[len(sig)-1])
	if hashType != t.inputs[idx].SigHash {
		return core.Errorf(core.ErrInvalidInput, "signature hash type "+
			"%v does not match input policy %v", hashType,
			t.inputs[idx].SigHash)
	}
	parsed, err := ecdsa.ParseDERSignature(sig[:len(sig)-1])
	if err != nil {
		return core.NewError(core.ErrKeyLibrary, "invalid signature", err)
	}

	ok, redeem := t.matches(idx, pub)
	if !ok {
		return core.Errorf(core.ErrKeyMismatch,
			"input %d does not pay to key %v", idx, pub)
	}
	digest, err := t.digest(idx, pub.keyHash())
	if err != nil {
		return err
	}
	if !parsed.Verify(digest, pub.ecKey()) {
		return core.Errorf(core.ErrKeyMismatch,
			"signature for input %d does not verify", idx)
	}

	return t.attach(idx, sig, pub.Serialize(), redeem)
}

// attach assembles the unlocking script and witness of input idx.
func (t *Transaction) attach(idx int, sig, pubKey, redeem []byte) error {
	txIn := t.tx.TxIn[idx]

	switch t.classes[idx] {
	case pubKeyHashClass:
		script, err := txscript.NewScriptBuilder().
			AddData(sig).AddData(pubKey).Script()
		if err != nil {
			return core.NewError(core.ErrSerialization,
				"failed to build signature script", err)
		}
		txIn.SignatureScript = script

	case witnessPubKeyHashClass:
		txIn.Witness = wire.TxWitness{sig, pubKey}

	default:
		script, err := txscript.NewScriptBuilder().
			AddData(redeem).Script()
		if err != nil {
			return core.NewError(core.ErrSerialization,
				"failed to build signature script", err)
		}
		txIn.SignatureScript = script
		txIn.Witness = wire.TxWitness{sig, pubKey}
	}

	t.signed[idx] = true
	return nil
}

// State returns the signing state of the transaction.
func (t *Transaction) State() State {
	var n int
	for _, signed := range t.signed {
		if signed {
			n++
		}
	}
	switch n {
	case 0:
		return Unsigned
	case len(t.signed):
		return Signed
	default:
		return PartiallySigned
	}
}

// Bytes returns the serialized transaction, in the witness encoding when
// any input carries a witness.
func (t *Transaction) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	buf.Grow(t.tx.SerializeSize())
	if err := t.tx.Serialize(&buf); err != nil {
		return nil, core.NewError(core.ErrSerialization,
			"failed to serialize transaction", err)
	}
	return buf.Bytes(), nil
}

// TransactionID returns the transaction id.
func (t *Transaction) TransactionID() (TransactionID, error) {
	return t.tx.TxHash(), nil
}

// WitnessHash returns the hash of the witness serialization, which equals
// the transaction id when no input carries a witness.
func (t *Transaction) WitnessHash() TransactionID {
	return t.tx.WitnessHash()
}

// Fee returns the difference between the input and output amounts.
func (t *Transaction) Fee() (Amount, error) {
	var in, out []Amount
	for _, i := range t.inputs {
		in = append(in, i.Amount)
	}
	for _, o := range t.outputs {
		out = append(out, o.Amount)
	}
	totalIn, err := AddAmounts(in...)
	if err != nil {
		return 0, err
	}
	totalOut, err := AddAmounts(out...)
	if err != nil {
		return 0, err
	}
	if totalOut > totalIn {
		return 0, core.Errorf(core.ErrAmountOutOfBounds,
			"outputs %v exceed inputs %v", totalOut, totalIn)
	}
	return totalIn - totalOut, nil
}

// MsgTx returns a copy of the wire transaction.
func (t *Transaction) MsgTx() *wire.MsgTx {
	return t.tx.Copy()
}

// PrevOutputFetcher returns the previous outputs spent by the transaction,
// as needed to execute its scripts.
func (t *Transaction) PrevOutputFetcher() *txscript.MultiPrevOutFetcher {
	fetcher := txscript.NewMultiPrevOutFetcher(nil)
	for _, in := range t.inputs {
		fetcher.AddPrevOut(in.OutPoint, &wire.TxOut{
			Value:    int64(in.Amount),
			PkScript: in.PrevScript,
		})
	}
	return fetcher
}
