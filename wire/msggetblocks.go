// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"encoding/binary"
	"io"

	"github.com/toole-brendan/spv-node/chaincfg/chainhash"
)

// MsgGetBlocks requests an inv of block hashes starting after the first
// locator hash the peer recognizes, up to HashStop (or 500 blocks).
type MsgGetBlocks struct {
	ProtocolVersion    uint32
	BlockLocatorHashes []*chainhash.Hash
	HashStop           chainhash.Hash
}

func (m *MsgGetBlocks) Command() string { return CmdGetBlocks }

func (m *MsgGetBlocks) MaxPayloadLength(pver uint32) uint32 {
	return 4 + uint32(VarIntSerializeSize(MaxInvEntries)) + MaxInvEntries*chainhash.HashSize + chainhash.HashSize
}

// AddBlockLocatorHash appends a locator hash, rejecting it past
// MaxInvEntries.
func (m *MsgGetBlocks) AddBlockLocatorHash(hash *chainhash.Hash) error {
	if len(m.BlockLocatorHashes)+1 > MaxInvEntries {
		return errMaxEntries(m.Command())
	}
	m.BlockLocatorHashes = append(m.BlockLocatorHashes, hash)
	return nil
}

func (m *MsgGetBlocks) BtcEncode(w io.Writer, pver uint32) error {
	if len(m.BlockLocatorHashes) > MaxInvEntries {
		return errMaxEntries(m.Command())
	}

	var verBuf [4]byte
	binary.LittleEndian.PutUint32(verBuf[:], m.ProtocolVersion)
	if _, err := w.Write(verBuf[:]); err != nil {
		return err
	}

	if err := WriteVarInt(w, uint64(len(m.BlockLocatorHashes))); err != nil {
		return err
	}
	for _, hash := range m.BlockLocatorHashes {
		if _, err := w.Write(hash[:]); err != nil {
			return err
		}
	}

	_, err := w.Write(m.HashStop[:])
	return err
}

func (m *MsgGetBlocks) BtcDecode(r io.Reader, pver uint32) error {
	var verBuf [4]byte
	if _, err := io.ReadFull(r, verBuf[:]); err != nil {
		return err
	}
	m.ProtocolVersion = binary.LittleEndian.Uint32(verBuf[:])

	count, err := ReadVarIntCapped(r)
	if err != nil {
		return err
	}

	locator := make([]*chainhash.Hash, 0, count)
	for i := uint64(0); i < count; i++ {
		var hash chainhash.Hash
		if _, err := io.ReadFull(r, hash[:]); err != nil {
			return err
		}
		locator = append(locator, &hash)
	}
	m.BlockLocatorHashes = locator

	_, err = io.ReadFull(r, m.HashStop[:])
	return err
}
