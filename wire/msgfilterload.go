// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"encoding/binary"
	"fmt"
	"io"
)

// maxFilterLoadSize is BIP0037's cap on a bloom filter's byte length.
const maxFilterLoadSize = 36000

// maxFilterAddDataSize is BIP0037's cap on a single filteradd data element.
const maxFilterAddDataSize = 520

// MsgFilterLoad installs a bloom filter on the connection for transaction
// relay. This node parses and serializes the message but never evaluates
// the filter itself — Merkle-tree and script matching are out of scope.
type MsgFilterLoad struct {
	Filter    []byte
	HashFuncs uint32
	Tweak     uint32
	Flags     byte
}

func (m *MsgFilterLoad) Command() string { return CmdFilterLoad }

func (m *MsgFilterLoad) MaxPayloadLength(pver uint32) uint32 {
	return uint32(VarIntSerializeSize(maxFilterLoadSize)) + maxFilterLoadSize + 4 + 4 + 1
}

func (m *MsgFilterLoad) BtcEncode(w io.Writer, pver uint32) error {
	if len(m.Filter) > maxFilterLoadSize {
		return errFilterTooLarge
	}
	if err := WriteVarInt(w, uint64(len(m.Filter))); err != nil {
		return err
	}
	if _, err := w.Write(m.Filter); err != nil {
		return err
	}

	var buf [9]byte
	binary.LittleEndian.PutUint32(buf[0:4], m.HashFuncs)
	binary.LittleEndian.PutUint32(buf[4:8], m.Tweak)
	buf[8] = m.Flags
	_, err := w.Write(buf[:])
	return err
}

func (m *MsgFilterLoad) BtcDecode(r io.Reader, pver uint32) error {
	length, err := ReadVarInt(r)
	if err != nil {
		return err
	}
	if length > maxFilterLoadSize {
		return errFilterTooLarge
	}
	filter := make([]byte, length)
	if _, err := io.ReadFull(r, filter); err != nil {
		return err
	}
	m.Filter = filter

	var buf [9]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return err
	}
	m.HashFuncs = binary.LittleEndian.Uint32(buf[0:4])
	m.Tweak = binary.LittleEndian.Uint32(buf[4:8])
	m.Flags = buf[8]
	return nil
}

var errFilterTooLarge = fmt.Errorf("filterload filter exceeds the maximum of %d bytes", maxFilterLoadSize)
