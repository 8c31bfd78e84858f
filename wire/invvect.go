// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"encoding/binary"
	"io"

	"github.com/toole-brendan/spv-node/chaincfg/chainhash"
)

// InvType represents the type of an inventory vector.
type InvType uint32

const (
	InvTypeError InvType = iota
	InvTypeTx
	InvTypeBlock
	InvTypeFilteredBlock
	InvTypeCmpctBlock
)

// InvVectLen is the wire size of a single inventory vector: a 4-byte type
// followed by a 32-byte hash.
const InvVectLen = 4 + chainhash.HashSize

// InvVect identifies a single advertised object, either a transaction or a
// block, by type and hash.
type InvVect struct {
	Type InvType
	Hash chainhash.Hash
}

func writeInvVect(w io.Writer, iv *InvVect) error {
	var buf [InvVectLen]byte
	binary.LittleEndian.PutUint32(buf[0:4], uint32(iv.Type))
	copy(buf[4:], iv.Hash[:])
	_, err := w.Write(buf[:])
	return err
}

func readInvVect(r io.Reader, iv *InvVect) error {
	var buf [InvVectLen]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return err
	}
	iv.Type = InvType(binary.LittleEndian.Uint32(buf[0:4]))
	copy(iv.Hash[:], buf[4:])
	return nil
}

func writeInvList(w io.Writer, command string, list []*InvVect) error {
	if len(list) > MaxInvEntries {
		return errMaxEntries(command)
	}
	if err := WriteVarInt(w, uint64(len(list))); err != nil {
		return err
	}
	for _, iv := range list {
		if err := writeInvVect(w, iv); err != nil {
			return err
		}
	}
	return nil
}

func readInvList(r io.Reader) ([]*InvVect, error) {
	count, err := ReadVarIntCapped(r)
	if err != nil {
		return nil, err
	}
	list := make([]*InvVect, 0, count)
	for i := uint64(0); i < count; i++ {
		iv := &InvVect{}
		if err := readInvVect(r, iv); err != nil {
			return nil, err
		}
		list = append(list, iv)
	}
	return list, nil
}

func invListMaxPayload() uint32 {
	return uint32(VarIntSerializeSize(MaxInvEntries)) + MaxInvEntries*InvVectLen
}
