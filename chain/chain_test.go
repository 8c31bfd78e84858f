// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chain

import (
	"bytes"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/toole-brendan/spv-node/chaincfg"
	"github.com/toole-brendan/spv-node/chaincfg/chainhash"
	"github.com/toole-brendan/spv-node/wire"
)

func header(t *testing.T, rawHex string) wire.BlockHeader {
	t.Helper()
	raw, err := hex.DecodeString(rawHex)
	require.NoError(t, err)
	var h wire.BlockHeader
	require.NoError(t, h.Deserialize(bytes.NewReader(raw)))
	return h
}

// These header fixtures were mined against chaincfg.RegressionNetParams'
// genesis (A-branch at the network's normal PowLimitBits, B-branch at a
// deliberately harder target) so the reorg test exercises real
// proof-of-work checks rather than a stub.
const (
	headerA1 = "0100000006226e46111a0b59caaf126043eb5bbf28c34f3a5e332a1fc7b2b73cf188910f16a36e86f6fed5d465ff332511a0ce1a863b55d364b25a7cdaa25db19abf964801f15365ffff7f2000000000"
	headerA2 = "0100000086458add3f895e75021e14cdcddfebb1c59ef9a6c21cafe4fdfef71306eec819c8361f9b468e68c86da024270e0949ce139cb704b8d7cce586681b99f3a7ea5602f15365ffff7f2000000000"
	headerA3 = "010000004749fd04140bda8b32a5bd82227d8a85e258edd06e41e4120b1b449e6d05886d1398b376fdcce25c5a5399367e76891e85121c010ec919cc243b1a519d95bbc603f15365ffff7f2000000000"

	headerB1 = "0100000006226e46111a0b59caaf126043eb5bbf28c34f3a5e332a1fc7b2b73cf188910f5b950e77941d01cdf246d00b1ece546bc95234b77d98b44c9187e2733afa696ae9f45365ffff072028000000"
	headerB2 = "0100000069c058fe85ebf9255c50702e8510d92a0274a1588ad7141c212da218e87be601abdbc2b5cc2c7a519b72bf7a164c58ebf892ab0c2df6468213705cc2f0da8561eaf45365ffff072000000000"
	headerB3 = "0100000023ebe1ffbca00b18a7aedefbbc87966a268cef0dc9170d06fe47510840802a010cd20d37dbaa799d1d2f6f04adbab0b9e958b083f38e06512cdefadd20863f98ebf45365ffff072039000000"
	headerB4 = "01000000f4827d34e6b470b97c18725991eff102cf9befa131fcf6222f50613d75edf400239fd09dd1c48679b74cec2120cd5e448b002c728c05e9b10f2c19f298fbdd57ecf45365ffff072042000000"
)

func TestGenesisOnlyChainHeightAndLocator(t *testing.T) {
	c := New(&chaincfg.RegressionNetParams, nil, nil)
	require.Equal(t, int32(0), c.Height())

	locator := c.Locator(10)
	require.Equal(t, []chainhash.Hash{chaincfg.RegressionNetParams.GenesisHash}, locator)
}

func TestInsertRejectsBadProofOfWork(t *testing.T) {
	c := New(&chaincfg.MainNetParams, nil, nil)

	bad := chaincfg.MainNetParams.GenesisHeader
	bad.Nonce++ // almost certainly breaks the mainnet-difficulty PoW check

	result := c.Insert(bad, 0)
	require.Equal(t, Rejected, result)
	require.Equal(t, int32(0), c.Height())
}

func TestInsertQueuesOrphanThenConnects(t *testing.T) {
	c := New(&chaincfg.RegressionNetParams, nil, nil)

	a2 := header(t, headerA2)
	result := c.Insert(a2, 0)
	require.Equal(t, Pending, result)
	require.Equal(t, int32(0), c.Height())

	a1 := header(t, headerA1)
	result = c.Insert(a1, 0)
	require.Equal(t, Added, result)
	require.Equal(t, int32(2), c.Height(), "connecting A1 should pull the buffered A2 orphan in behind it")
}

func TestInsertDuplicateHeader(t *testing.T) {
	c := New(&chaincfg.RegressionNetParams, nil, nil)

	a1 := header(t, headerA1)
	require.Equal(t, Added, c.Insert(a1, 0))
	require.Equal(t, Duplicate, c.Insert(a1, 0))
}

// TestReorgEmitsCallbacksInSpecOrder covers a reorg scenario: a
// 3-block A branch is built first and becomes the active tip, then a
// harder 4-block B branch (also rooted at genesis) overtakes it. The
// callback sequence must be remove(A3), remove(A2), remove(A1), add(B1),
// add(B2), add(B3), add(B4), and the resulting height must be 4.
func TestReorgEmitsCallbacksInSpecOrder(t *testing.T) {
	var added, removed []string

	c := New(&chaincfg.RegressionNetParams,
		func(hash chainhash.Hash, height int32, h wire.BlockHeader, txnCount uint32) {
			added = append(added, hash.String())
		},
		func(hash chainhash.Hash, height int32) {
			removed = append(removed, hash.String())
		},
	)

	a1 := header(t, headerA1)
	a2 := header(t, headerA2)
	a3 := header(t, headerA3)
	require.Equal(t, Added, c.Insert(a1, 0))
	require.Equal(t, Added, c.Insert(a2, 0))
	require.Equal(t, Added, c.Insert(a3, 0))
	require.Equal(t, int32(3), c.Height())

	tipBeforeReorg := c.Tip().Hash.String()
	added = nil // the A-branch inserts are not part of the assertion below

	b1 := header(t, headerB1)
	b2 := header(t, headerB2)
	b3 := header(t, headerB3)
	b4 := header(t, headerB4)
	require.Equal(t, Added, c.Insert(b1, 0))
	require.Equal(t, Added, c.Insert(b2, 0))
	require.Equal(t, Added, c.Insert(b3, 0))
	require.Equal(t, Added, c.Insert(b4, 0))

	require.Equal(t, int32(4), c.Height())
	require.Equal(t, 3, len(removed), "should remove exactly the 3 A-branch nodes")
	require.Equal(t, []string{a3.BlockHash().String(), a2.BlockHash().String(), a1.BlockHash().String()}, removed)
	require.Equal(t, []string{b1.BlockHash().String(), b2.BlockHash().String(), b3.BlockHash().String(), b4.BlockHash().String()}, added)
	require.Equal(t, b4.BlockHash().String(), c.Tip().Hash.String())
	require.NotEqual(t, tipBeforeReorg, c.Tip().Hash.String())
}
