// Copyright (c) 2024 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package core

import (
	"errors"
	"fmt"
)

// ErrorCode identifies a kind of error.
type ErrorCode int

// These constants are used to identify a specific Error.
const (
	// ErrInvalidByteLength indicates that decoded key, address or
	// signature bytes do not have the length the chain expects.
	ErrInvalidByteLength ErrorCode = iota

	// ErrInvalidCharacterLength indicates that an encoded string has the
	// wrong number of characters.
	ErrInvalidCharacterLength

	// ErrInvalidChecksum indicates that the checksum embedded in an
	// encoded key or address does not match the one computed over its
	// payload.  The description carries the expected and found values.
	ErrInvalidChecksum

	// ErrInvalidNetwork indicates that an encoded key or address belongs
	// to a network other than the requested one, or to no known network.
	ErrInvalidNetwork

	// ErrInvalidPrefix indicates an unrecognized key prefix, such as an
	// unknown key family tag or WIF version byte.
	ErrInvalidPrefix

	// ErrUnsupportedFormat indicates that a chain does not support the
	// requested address format.
	ErrUnsupportedFormat

	// ErrKeyLibrary indicates that the underlying elliptic curve library
	// rejected a key.  The Err field carries the library error when one
	// exists.
	ErrKeyLibrary

	// ErrKeyMismatch indicates that a key, signature or address of one
	// key family was used where another was required.
	ErrKeyMismatch

	// ErrInvalidEncoding indicates a string that is not valid in its
	// encoding at all, such as characters outside the Base58 or Bech32
	// alphabets, mixed-case Bech32 or malformed hex.
	ErrInvalidEncoding

	// ErrInvalidAddressPrefix indicates that an address prefix matches no
	// known network and format.
	ErrInvalidAddressPrefix

	// ErrInvalidVersionBytes indicates an unsupported address version,
	// such as a witness version other than zero.
	ErrInvalidVersionBytes

	// ErrUnsupportedDerivationPath indicates that an address format can
	// not be derived from the material given, for example a script-hash
	// address from a bare public key.
	ErrUnsupportedDerivationPath

	// ErrInvalidAmount indicates a malformed amount string, or one that is
	// not a whole number of base units.
	ErrInvalidAmount

	// ErrAmountOutOfBounds indicates that an amount, or the result of an
	// arithmetic operation on amounts, is not representable or exceeds
	// the chain's supply bounds.
	ErrAmountOutOfBounds

	// ErrInvalidGas indicates an invalid gas configuration, such as a
	// non-positive gas limit.
	ErrInvalidGas

	// ErrSerialization indicates a failure to encode or decode a
	// transaction.
	ErrSerialization

	// ErrInvalidSignatureType indicates an unrecognized signature scheme
	// discriminant.
	ErrInvalidSignatureType

	// ErrInvalidInput indicates a malformed transaction input, or a
	// reference to an input index that does not exist.
	ErrInvalidInput

	// ErrInvalidOutput indicates a transaction output rejected by policy.
	ErrInvalidOutput

	// ErrAlreadySigned indicates an attempt to attach a second signature
	// to an input or message that is already signed.
	ErrAlreadySigned

	// lastErr is used for testing, making it possible to iterate over
	// the error codes in order to check that they all have proper
	// translations in errorCodeStrings.
	lastErr
)

// Map of ErrorCode values back to their constant names for pretty printing.
var errorCodeStrings = map[ErrorCode]string{
	ErrInvalidByteLength:         "ErrInvalidByteLength",
	ErrInvalidCharacterLength:    "ErrInvalidCharacterLength",
	ErrInvalidChecksum:           "ErrInvalidChecksum",
	ErrInvalidNetwork:            "ErrInvalidNetwork",
	ErrInvalidPrefix:             "ErrInvalidPrefix",
	ErrUnsupportedFormat:         "ErrUnsupportedFormat",
	ErrKeyLibrary:                "ErrKeyLibrary",
	ErrKeyMismatch:               "ErrKeyMismatch",
	ErrInvalidEncoding:           "ErrInvalidEncoding",
	ErrInvalidAddressPrefix:      "ErrInvalidAddressPrefix",
	ErrInvalidVersionBytes:       "ErrInvalidVersionBytes",
	ErrUnsupportedDerivationPath: "ErrUnsupportedDerivationPath",
	ErrInvalidAmount:             "ErrInvalidAmount",
	ErrAmountOutOfBounds:         "ErrAmountOutOfBounds",
	ErrInvalidGas:                "ErrInvalidGas",
	ErrSerialization:             "ErrSerialization",
	ErrInvalidSignatureType:      "ErrInvalidSignatureType",
	ErrInvalidInput:              "ErrInvalidInput",
	ErrInvalidOutput:             "ErrInvalidOutput",
	ErrAlreadySigned:             "ErrAlreadySigned",
}

// String returns the ErrorCode as a human-readable name.
func (e ErrorCode) String() string {
	if s := errorCodeStrings[e]; s != "" {
		return s
	}
	return fmt.Sprintf("Unknown ErrorCode (%d)", int(e))
}

// Error provides a single type for errors that can happen while handling
// keys, addresses, amounts and transactions of any chain.  The caller can
// use type assertions (or errors.As) to determine the specific kind of
// failure through the ErrorCode field.
type Error struct {
	ErrorCode   ErrorCode // Describes the kind of error
	Description string    // Human readable description of the issue
	Err         error     // Underlying error
}

// Error satisfies the error interface and prints human-readable errors.
func (e Error) Error() string {
	if e.Err != nil {
		return e.Description + ": " + e.Err.Error()
	}
	return e.Description
}

// Unwrap returns the underlying error, if any.
func (e Error) Unwrap() error {
	return e.Err
}

// NewError creates an Error given a set of arguments.
func NewError(c ErrorCode, desc string, err error) Error {
	return Error{ErrorCode: c, Description: desc, Err: err}
}

// Errorf creates an Error with a formatted description and no underlying
// error.
func Errorf(c ErrorCode, format string, args ...interface{}) Error {
	return Error{ErrorCode: c, Description: fmt.Sprintf(format, args...)}
}

// IsError returns whether the error is an Error with a matching error code.
func IsError(err error, code ErrorCode) bool {
	var e Error
	return errors.As(err, &e) && e.ErrorCode == code
}

// ChecksumError returns an ErrInvalidChecksum error reporting the expected
// and found checksum bytes.
func ChecksumError(expected, found []byte) Error {
	return Errorf(ErrInvalidChecksum, "invalid checksum: "+
		"{ expected: %x, found: %x }", expected, found)
}
