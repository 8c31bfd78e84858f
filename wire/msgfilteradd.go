// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"fmt"
	"io"
)

// MsgFilterAdd adds a single data element to the peer's bloom filter.
type MsgFilterAdd struct {
	Data []byte
}

func (m *MsgFilterAdd) Command() string { return CmdFilterAdd }

func (m *MsgFilterAdd) MaxPayloadLength(pver uint32) uint32 {
	return uint32(VarIntSerializeSize(maxFilterAddDataSize)) + maxFilterAddDataSize
}

func (m *MsgFilterAdd) BtcEncode(w io.Writer, pver uint32) error {
	if len(m.Data) > maxFilterAddDataSize {
		return errFilterAddTooLarge
	}
	if err := WriteVarInt(w, uint64(len(m.Data))); err != nil {
		return err
	}
	_, err := w.Write(m.Data)
	return err
}

func (m *MsgFilterAdd) BtcDecode(r io.Reader, pver uint32) error {
	length, err := ReadVarInt(r)
	if err != nil {
		return err
	}
	if length > maxFilterAddDataSize {
		return errFilterAddTooLarge
	}
	data := make([]byte, length)
	if _, err := io.ReadFull(r, data); err != nil {
		return err
	}
	m.Data = data
	return nil
}

var errFilterAddTooLarge = fmt.Errorf("filteradd data exceeds the maximum of %d bytes", maxFilterAddDataSize)
