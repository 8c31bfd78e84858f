// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"bytes"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"
)

// block100000HeaderHex is the 80-byte header of mainnet block 100000, a
// well-known header fixture.
const block100000HeaderHex = "0100000050120119172a610421a6c3011dd330d9df07b63616c2cc1f1cd00200000000006657a9252aacd5c0b2940996ecff952228c3067cc38d4885efb5a4ac4247e9f337221b4d4c86041b0f2b5710"

const block100000HashStr = "000000000003ba27aa200b1cecaad478d2b00432346c3f1f3986da1afd33e506"

func TestBlock100000HeaderParseAndHash(t *testing.T) {
	raw, err := hex.DecodeString(block100000HeaderHex)
	require.NoError(t, err)
	require.Len(t, raw, BlockHeaderLen)

	var hdr BlockHeader
	require.NoError(t, hdr.Deserialize(bytes.NewReader(raw)))

	hash := hdr.BlockHash()
	require.Equal(t, block100000HashStr, hash.String())

	var out bytes.Buffer
	require.NoError(t, hdr.Serialize(&out))
	require.Equal(t, raw, out.Bytes())
}
