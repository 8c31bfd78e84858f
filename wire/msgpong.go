// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"encoding/binary"
	"io"
)

// MsgPong echoes the nonce of a ping to prove liveness.
type MsgPong struct {
	Nonce uint64
}

func (m *MsgPong) Command() string                    { return CmdPong }
func (m *MsgPong) MaxPayloadLength(pver uint32) uint32 { return 8 }

func (m *MsgPong) BtcEncode(w io.Writer, pver uint32) error {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], m.Nonce)
	_, err := w.Write(buf[:])
	return err
}

func (m *MsgPong) BtcDecode(r io.Reader, pver uint32) error {
	var buf [8]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return err
	}
	m.Nonce = binary.LittleEndian.Uint64(buf[:])
	return nil
}
