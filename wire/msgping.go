// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"encoding/binary"
	"io"
)

// MsgPing carries a nonce that the recipient must echo back in a pong.
type MsgPing struct {
	Nonce uint64
}

func (m *MsgPing) Command() string                    { return CmdPing }
func (m *MsgPing) MaxPayloadLength(pver uint32) uint32 { return 8 }

func (m *MsgPing) BtcEncode(w io.Writer, pver uint32) error {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], m.Nonce)
	_, err := w.Write(buf[:])
	return err
}

func (m *MsgPing) BtcDecode(r io.Reader, pver uint32) error {
	var buf [8]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return err
	}
	m.Nonce = binary.LittleEndian.Uint64(buf[:])
	return nil
}
