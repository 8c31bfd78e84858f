// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"fmt"
	"io"
)

// MaxVarStringLen is the upper bound on a VarStr's byte length this node
// will accept, guarding against a peer claiming an absurd length and
// exhausting memory before the read even fails.
const MaxVarStringLen = 1024 * 1024

// ErrVarStringTooLong is returned when a VarStr claims a length larger than
// MaxVarStringLen.
var ErrVarStringTooLong = fmt.Errorf("varstr length exceeds maximum of %d bytes", MaxVarStringLen)

// ReadVarString reads a VarInt length prefix followed by that many raw
// bytes and returns them as a string.
func ReadVarString(r io.Reader) (string, error) {
	length, err := ReadVarInt(r)
	if err != nil {
		return "", err
	}
	if length > MaxVarStringLen {
		return "", ErrVarStringTooLong
	}

	buf := make([]byte, length)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", err
	}
	return string(buf), nil
}

// WriteVarString writes s as a VarInt length prefix followed by its raw
// bytes.
func WriteVarString(w io.Writer, s string) error {
	if err := WriteVarInt(w, uint64(len(s))); err != nil {
		return err
	}
	_, err := w.Write([]byte(s))
	return err
}

// VarStringSerializeSize returns the number of bytes WriteVarString would
// emit for s.
func VarStringSerializeSize(s string) int {
	return VarIntSerializeSize(uint64(len(s))) + len(s)
}
