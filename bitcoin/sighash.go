// Copyright (c) 2013-2024 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package bitcoin

import (
	"fmt"

	"github.com/btcsuite/btcd/txscript"
	"github.com/btcsuite/btcd/wire"
	"github.com/btcsuite/chainwallet/core"
)

// SignatureHash selects the parts of a transaction a signature commits to.
type SignatureHash uint32

// These constants are the signature hash types allowed by consensus.
const (
	SigHashAll          SignatureHash = 0x1
	SigHashNone         SignatureHash = 0x2
	SigHashSingle       SignatureHash = 0x3
	SigHashAnyOneCanPay SignatureHash = 0x80

	SigHashAllAnyOneCanPay    = SigHashAll | SigHashAnyOneCanPay
	SigHashNoneAnyOneCanPay   = SigHashNone | SigHashAnyOneCanPay
	SigHashSingleAnyOneCanPay = SigHashSingle | SigHashAnyOneCanPay
)

var sigHashStrings = map[SignatureHash]string{
	SigHashAll:                "SIGHASH_ALL",
	SigHashNone:               "SIGHASH_NONE",
	SigHashSingle:             "SIGHASH_SINGLE",
	SigHashAllAnyOneCanPay:    "SIGHASH_ALL|SIGHASH_ANYONECANPAY",
	SigHashNoneAnyOneCanPay:   "SIGHASH_NONE|SIGHASH_ANYONECANPAY",
	SigHashSingleAnyOneCanPay: "SIGHASH_SINGLE|SIGHASH_ANYONECANPAY",
}

// String returns the name of the signature hash type.
func (h SignatureHash) String() string {
	if s, ok := sigHashStrings[h]; ok {
		return s
	}
	return fmt.Sprintf("Unknown SignatureHash (%#x)", uint32(h))
}

// Validate returns an ErrInvalidInput error unless h is one of the six
// consensus signature hash types.
func (h SignatureHash) Validate() error {
	if _, ok := sigHashStrings[h]; !ok {
		return core.Errorf(core.ErrInvalidInput,
			"invalid signature hash type %#x", uint32(h))
	}
	return nil
}

// calcSignatureHash returns the digest input idx of tx is signed over.
// Key hash inputs use the legacy algorithm with subScript as the script
// code.  Witness inputs use BIP-143 with subScript as the version 0 witness
// key hash program they spend.
func calcSignatureHash(subScript []byte, witness bool, hashType SignatureHash,
	sigHashes *txscript.TxSigHashes, tx *wire.MsgTx, idx int,
	amount Amount) ([]byte, error) {

	var (
		digest []byte
		err    error
	)
	if witness {
		digest, err = txscript.CalcWitnessSigHash(subScript, sigHashes,
			txscript.SigHashType(hashType), tx, idx, int64(amount))
	} else {
		digest, err = txscript.CalcSignatureHash(subScript,
			txscript.SigHashType(hashType), tx, idx)
	}
	if err != nil {
		return nil, core.NewError(core.ErrInvalidInput,
			fmt.Sprintf("unable to compute signature hash of input %d",
				idx), err)
	}
	return digest, nil
}
