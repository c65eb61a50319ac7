// Copyright (c) 2024 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

// Package zero clears secret key material from memory once it is no longer
// needed, such as the decoded bytes of a parsed key string.
package zero

// Bytes sets all bytes in the passed slice to zero.
func Bytes(b []byte) {
	clear(b)
}

// Bytea32 clears the 32-byte array by filling it with the zero value.  This
// is used for scalars copied out of decoded key strings.
func Bytea32(b *[32]byte) {
	*b = [32]byte{}
}
