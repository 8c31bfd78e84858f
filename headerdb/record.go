// Copyright (c) 2015-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package headerdb

import (
	"bytes"
	"encoding/binary"
	"fmt"

	"github.com/toole-brendan/spv-node/wire"
)

// recordLen is the fixed on-disk size of a BlockHeaderRecord: height(4) +
// txn_count(4) + header(80) + file_index(4) + file_offset(4).
const recordLen = 4 + 4 + wire.BlockHeaderLen + 4 + 4

// BlockHeaderRecord is the persisted representation of a single chain
// node. FileIndex and FileOffset are reserved for a future block-body
// store and always zero for header-only sync.
//
// IsOrphan is deliberately not a field here: whether a record sits on the
// active chain is a property of the chain engine's current tip at query
// time, not a durable fact worth persisting redundantly alongside it.
type BlockHeaderRecord struct {
	Height     uint32
	TxnCount   uint32
	Header     wire.BlockHeader
	FileIndex  uint32
	FileOffset uint32
}

func (r *BlockHeaderRecord) serialize() ([]byte, error) {
	var buf bytes.Buffer
	var scratch [4]byte

	binary.LittleEndian.PutUint32(scratch[:], r.Height)
	buf.Write(scratch[:])
	binary.LittleEndian.PutUint32(scratch[:], r.TxnCount)
	buf.Write(scratch[:])

	if err := r.Header.Serialize(&buf); err != nil {
		return nil, err
	}

	binary.LittleEndian.PutUint32(scratch[:], r.FileIndex)
	buf.Write(scratch[:])
	binary.LittleEndian.PutUint32(scratch[:], r.FileOffset)
	buf.Write(scratch[:])

	return buf.Bytes(), nil
}

func deserializeRecord(data []byte) (*BlockHeaderRecord, error) {
	if len(data) != recordLen {
		return nil, fmt.Errorf("headerdb: corrupt record: want %d bytes, got %d", recordLen, len(data))
	}

	r := &BlockHeaderRecord{
		Height:   binary.LittleEndian.Uint32(data[0:4]),
		TxnCount: binary.LittleEndian.Uint32(data[4:8]),
	}

	headerEnd := 8 + wire.BlockHeaderLen
	if err := r.Header.Deserialize(bytes.NewReader(data[8:headerEnd])); err != nil {
		return nil, fmt.Errorf("headerdb: decoding header: %w", err)
	}

	r.FileIndex = binary.LittleEndian.Uint32(data[headerEnd : headerEnd+4])
	r.FileOffset = binary.LittleEndian.Uint32(data[headerEnd+4 : headerEnd+8])
	return r, nil
}
