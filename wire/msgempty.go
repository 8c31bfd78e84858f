// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import "io"

// MsgVerAck acknowledges a version message; it carries no payload.
type MsgVerAck struct{}

func (m *MsgVerAck) Command() string                          { return CmdVerAck }
func (m *MsgVerAck) MaxPayloadLength(pver uint32) uint32       { return 0 }
func (m *MsgVerAck) BtcEncode(w io.Writer, pver uint32) error  { return nil }
func (m *MsgVerAck) BtcDecode(r io.Reader, pver uint32) error  { return nil }

// MsgGetAddr requests a list of known active peers; it carries no payload.
type MsgGetAddr struct{}

func (m *MsgGetAddr) Command() string                         { return CmdGetAddr }
func (m *MsgGetAddr) MaxPayloadLength(pver uint32) uint32      { return 0 }
func (m *MsgGetAddr) BtcEncode(w io.Writer, pver uint32) error { return nil }
func (m *MsgGetAddr) BtcDecode(r io.Reader, pver uint32) error { return nil }

// MsgMemPool requests the peer's mempool transaction inventory; it carries
// no payload. This node never answers one usefully (it keeps no mempool)
// but still parses and serializes it.
type MsgMemPool struct{}

func (m *MsgMemPool) Command() string                         { return CmdMemPool }
func (m *MsgMemPool) MaxPayloadLength(pver uint32) uint32      { return 0 }
func (m *MsgMemPool) BtcEncode(w io.Writer, pver uint32) error { return nil }
func (m *MsgMemPool) BtcDecode(r io.Reader, pver uint32) error { return nil }

// MsgFilterClear clears a previously loaded bloom filter; it carries no
// payload.
type MsgFilterClear struct{}

func (m *MsgFilterClear) Command() string                         { return CmdFilterClear }
func (m *MsgFilterClear) MaxPayloadLength(pver uint32) uint32      { return 0 }
func (m *MsgFilterClear) BtcEncode(w io.Writer, pver uint32) error { return nil }
func (m *MsgFilterClear) BtcDecode(r io.Reader, pver uint32) error { return nil }

// MsgSendHeaders signals a preference for header announcements over inv
// announcements; it carries no payload.
type MsgSendHeaders struct{}

func (m *MsgSendHeaders) Command() string                         { return CmdSendHeaders }
func (m *MsgSendHeaders) MaxPayloadLength(pver uint32) uint32      { return 0 }
func (m *MsgSendHeaders) BtcEncode(w io.Writer, pver uint32) error { return nil }
func (m *MsgSendHeaders) BtcDecode(r io.Reader, pver uint32) error { return nil }
