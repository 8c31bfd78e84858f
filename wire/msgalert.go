// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import "io"

// MsgAlert carries the legacy network alert payload: a signed, opaque
// serialized alert blob. The alert system was retired network-wide and
// this node only parses/serializes the envelope; it never acts on alert
// content.
type MsgAlert struct {
	Payload   []byte
	Signature []byte
}

func (m *MsgAlert) Command() string { return CmdAlert }

func (m *MsgAlert) MaxPayloadLength(pver uint32) uint32 {
	return uint32(VarIntSerializeSize(MaxVarStringLen))*2 + MaxVarStringLen*2
}

func (m *MsgAlert) BtcEncode(w io.Writer, pver uint32) error {
	if err := WriteVarInt(w, uint64(len(m.Payload))); err != nil {
		return err
	}
	if _, err := w.Write(m.Payload); err != nil {
		return err
	}
	if err := WriteVarInt(w, uint64(len(m.Signature))); err != nil {
		return err
	}
	_, err := w.Write(m.Signature)
	return err
}

func (m *MsgAlert) BtcDecode(r io.Reader, pver uint32) error {
	payloadLen, err := ReadVarInt(r)
	if err != nil {
		return err
	}
	if payloadLen > MaxVarStringLen {
		return ErrVarStringTooLong
	}
	payload := make([]byte, payloadLen)
	if _, err := io.ReadFull(r, payload); err != nil {
		return err
	}
	m.Payload = payload

	sigLen, err := ReadVarInt(r)
	if err != nil {
		return err
	}
	if sigLen > MaxVarStringLen {
		return ErrVarStringTooLong
	}
	sig := make([]byte, sigLen)
	if _, err := io.ReadFull(r, sig); err != nil {
		return err
	}
	m.Signature = sig
	return nil
}
