// Copyright (c) 2024 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package omni

import (
	"bytes"
	"encoding/binary"

	"github.com/btcsuite/btcd/txscript"
	"github.com/btcsuite/chainwallet/core"
)

// Marker prefixes every Omni Layer class C payload.
var Marker = []byte("omni")

const (
	// TypeSimpleSend is the transaction type of a simple send.
	TypeSimpleSend uint16 = 0

	// simpleSendSize is the size of a simple send payload: marker,
	// version, type, property and amount.
	simpleSendSize = 4 + 2 + 2 + 4 + 8
)

// Well known property identifiers.
const (
	PropertyOmni     uint32 = 1
	PropertyTestOmni uint32 = 2
	PropertyTetherUS uint32 = 31
)

// SimpleSend transfers an amount of a single property to the reference
// output of the transaction carrying it.
type SimpleSend struct {
	Version    uint16
	PropertyID uint32
	Amount     Amount
}

// Payload returns the class C payload of the send.  All integers are big
// endian.
func (s SimpleSend) Payload() []byte {
	payload := make([]byte, 0, simpleSendSize)
	payload = append(payload, Marker...)
	payload = binary.BigEndian.AppendUint16(payload, s.Version)
	payload = binary.BigEndian.AppendUint16(payload, TypeSimpleSend)
	payload = binary.BigEndian.AppendUint32(payload, s.PropertyID)
	return binary.BigEndian.AppendUint64(payload, uint64(s.Amount.Units()))
}

// ParseSimpleSend decodes a simple send from an OP_RETURN script or its bare
// payload.  Whether the property is divisible is not part of the payload
// and is supplied by the caller.
func ParseSimpleSend(b []byte, divisible bool) (SimpleSend, error) {
	if txscript.GetScriptClass(b) == txscript.NullDataTy {
		pushes, err := txscript.PushedData(b)
		if err != nil || len(pushes) != 1 {
			return SimpleSend{}, core.Errorf(core.ErrSerialization,
				"malformed data carrier script")
		}
		b = pushes[0]
	}

	if len(b) != simpleSendSize {
		return SimpleSend{}, core.Errorf(core.ErrInvalidByteLength,
			"simple send payload must be %d bytes, got %d",
			simpleSendSize, len(b))
	}
	if !bytes.Equal(b[:len(Marker)], Marker) {
		return SimpleSend{}, core.Errorf(core.ErrInvalidPrefix,
			"payload does not start with the omni marker")
	}
	b = b[len(Marker):]

	version := binary.BigEndian.Uint16(b[0:2])
	if typ := binary.BigEndian.Uint16(b[2:4]); typ != TypeSimpleSend {
		return SimpleSend{}, core.Errorf(core.ErrSerialization,
			"transaction type %d is not a simple send", typ)
	}
	amount, err := NewAmountFromUnits(int64(binary.BigEndian.Uint64(b[8:16])),
		divisible)
	if err != nil {
		return SimpleSend{}, err
	}

	return SimpleSend{
		Version:    version,
		PropertyID: binary.BigEndian.Uint32(b[4:8]),
		Amount:     amount,
	}, nil
}
