// Copyright (c) 2024 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package core

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

// TestErrorCodeStringer tests that all error codes have a text
// representation and that the text representation is still correct.
func TestErrorCodeStringer(t *testing.T) {
	tests := []struct {
		in   ErrorCode
		want string
	}{
		{ErrInvalidByteLength, "ErrInvalidByteLength"},
		{ErrInvalidCharacterLength, "ErrInvalidCharacterLength"},
		{ErrInvalidChecksum, "ErrInvalidChecksum"},
		{ErrInvalidNetwork, "ErrInvalidNetwork"},
		{ErrInvalidPrefix, "ErrInvalidPrefix"},
		{ErrUnsupportedFormat, "ErrUnsupportedFormat"},
		{ErrKeyLibrary, "ErrKeyLibrary"},
		{ErrKeyMismatch, "ErrKeyMismatch"},
		{ErrInvalidEncoding, "ErrInvalidEncoding"},
		{ErrInvalidAddressPrefix, "ErrInvalidAddressPrefix"},
		{ErrInvalidVersionBytes, "ErrInvalidVersionBytes"},
		{ErrUnsupportedDerivationPath, "ErrUnsupportedDerivationPath"},
		{ErrInvalidAmount, "ErrInvalidAmount"},
		{ErrAmountOutOfBounds, "ErrAmountOutOfBounds"},
		{ErrInvalidGas, "ErrInvalidGas"},
		{ErrSerialization, "ErrSerialization"},
		{ErrInvalidSignatureType, "ErrInvalidSignatureType"},
		{ErrInvalidInput, "ErrInvalidInput"},
		{ErrInvalidOutput, "ErrInvalidOutput"},
		{ErrAlreadySigned, "ErrAlreadySigned"},
		{0xffff, "Unknown ErrorCode (65535)"},
	}

	require.Equal(t, int(lastErr), len(tests)-1,
		"wrong number of errorCodeStrings")

	for i, test := range tests {
		require.Equal(t, test.want, test.in.String(), "String #%d", i)
	}
}

// TestError tests the error output and unwrapping of the Error type.
func TestError(t *testing.T) {
	inner := errors.New("bad point")

	err := NewError(ErrKeyLibrary, "invalid public key", inner)
	require.Equal(t, "invalid public key: bad point", err.Error())
	require.ErrorIs(t, err, inner)

	wrapped := fmt.Errorf("parse: %w", err)
	require.True(t, IsError(wrapped, ErrKeyLibrary))
	require.False(t, IsError(wrapped, ErrKeyMismatch))
	require.False(t, IsError(inner, ErrKeyLibrary))

	sumErr := ChecksumError([]byte{1, 2, 3, 4}, []byte{5, 6, 7, 8})
	require.Equal(t, "invalid checksum: { expected: 01020304, "+
		"found: 05060708 }", sumErr.Error())
	require.True(t, IsError(sumErr, ErrInvalidChecksum))
}
