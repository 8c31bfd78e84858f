// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"io"

	"github.com/toole-brendan/spv-node/chaincfg/chainhash"
)

// RejectCode represents a numeric reason code carried in a reject message.
type RejectCode uint8

const (
	RejectMalformed       RejectCode = 0x01
	RejectInvalid         RejectCode = 0x10
	RejectObsolete        RejectCode = 0x11
	RejectDuplicate       RejectCode = 0x12
	RejectNonStandard     RejectCode = 0x40
	RejectDust            RejectCode = 0x41
	RejectInsufficientFee RejectCode = 0x42
	RejectCheckpoint      RejectCode = 0x43
)

// MsgReject tells a peer why one of its messages was rejected. This node
// sends one when a headers batch fails chain validation.
type MsgReject struct {
	// Cmd is the command name of the rejected message (e.g. "headers").
	Cmd string

	// Code classifies the rejection reason.
	Code RejectCode

	// Reason is a human-readable explanation.
	Reason string

	// Hash is present only when Cmd is "tx" or "block"; this node's
	// only use of MsgReject is for "headers" rejects, so Hash is the
	// zero value whenever Cmd != CmdTx/CmdBlock.
	Hash chainhash.Hash
}

func (m *MsgReject) Command() string { return CmdReject }

func (m *MsgReject) MaxPayloadLength(pver uint32) uint32 {
	return uint32(VarStringSerializeSize(string(make([]byte, CommandSize)))) + 1 +
		uint32(VarStringSerializeSize(string(make([]byte, MaxVarStringLen)))) + chainhash.HashSize
}

func (m *MsgReject) BtcEncode(w io.Writer, pver uint32) error {
	if err := WriteVarString(w, m.Cmd); err != nil {
		return err
	}
	if _, err := w.Write([]byte{byte(m.Code)}); err != nil {
		return err
	}
	if err := WriteVarString(w, m.Reason); err != nil {
		return err
	}
	if m.Cmd == CmdTx || m.Cmd == CmdBlock {
		if _, err := w.Write(m.Hash[:]); err != nil {
			return err
		}
	}
	return nil
}

func (m *MsgReject) BtcDecode(r io.Reader, pver uint32) error {
	cmd, err := ReadVarString(r)
	if err != nil {
		return err
	}
	m.Cmd = cmd

	var codeBuf [1]byte
	if _, err := io.ReadFull(r, codeBuf[:]); err != nil {
		return err
	}
	m.Code = RejectCode(codeBuf[0])

	reason, err := ReadVarString(r)
	if err != nil {
		return err
	}
	m.Reason = reason

	if m.Cmd == CmdTx || m.Cmd == CmdBlock {
		if _, err := io.ReadFull(r, m.Hash[:]); err != nil {
			return err
		}
	}
	return nil
}
