// Copyright (c) 2015-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package headerdb

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/toole-brendan/spv-node/chaincfg/chainhash"
	"github.com/toole-brendan/spv-node/wire"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, s.Close()) })
	return s
}

func recordAt(height uint32, nonce uint32) BlockHeaderRecord {
	return BlockHeaderRecord{
		Height: height,
		Header: wire.BlockHeader{
			Version: 1,
			Nonce:   nonce,
		},
	}
}

func TestPutThenGetRoundTrips(t *testing.T) {
	s := openTestStore(t)

	rec := recordAt(5, 42)
	var hash chainhash.Hash
	hash[0] = 0xaa

	inserted, err := s.Put(hash, rec)
	require.NoError(t, err)
	require.True(t, inserted)

	got, err := s.Get(hash)
	require.NoError(t, err)
	require.Equal(t, rec, *got)
}

func TestGetMissingReturnsErrNotFound(t *testing.T) {
	s := openTestStore(t)

	var hash chainhash.Hash
	hash[0] = 0xbb
	_, err := s.Get(hash)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestPutReportsUpdateNotInsertOnSecondCall(t *testing.T) {
	s := openTestStore(t)

	var hash chainhash.Hash
	hash[0] = 0xcc

	inserted, err := s.Put(hash, recordAt(1, 1))
	require.NoError(t, err)
	require.True(t, inserted)

	inserted, err = s.Put(hash, recordAt(1, 1))
	require.NoError(t, err)
	require.False(t, inserted, "re-inserting the same (hash, record) must be tolerated as an update, not an error")
}

func TestDelRemovesFromBothTables(t *testing.T) {
	s := openTestStore(t)

	var hash chainhash.Hash
	hash[0] = 0xdd
	_, err := s.Put(hash, recordAt(7, 1))
	require.NoError(t, err)

	removed, err := s.Del(hash)
	require.NoError(t, err)
	require.True(t, removed)

	_, err = s.Get(hash)
	require.ErrorIs(t, err, ErrNotFound)

	byHeight, err := s.GetByHeight(7)
	require.NoError(t, err)
	require.Empty(t, byHeight)

	removedAgain, err := s.Del(hash)
	require.NoError(t, err)
	require.False(t, removedAgain)
}

func TestGetByHeightReturnsAllOrphanBranches(t *testing.T) {
	s := openTestStore(t)

	var hashA, hashB chainhash.Hash
	hashA[0], hashB[0] = 0x01, 0x02

	_, err := s.Put(hashA, recordAt(100, 1))
	require.NoError(t, err)
	_, err = s.Put(hashB, recordAt(100, 2))
	require.NoError(t, err)

	records, err := s.GetByHeight(100)
	require.NoError(t, err)
	require.Len(t, records, 2)
}

func TestPutMovingHeightRetiresOldIndexEntry(t *testing.T) {
	s := openTestStore(t)

	var hash chainhash.Hash
	hash[0] = 0xee

	_, err := s.Put(hash, recordAt(1, 9))
	require.NoError(t, err)
	_, err = s.Put(hash, recordAt(2, 9))
	require.NoError(t, err)

	atOld, err := s.GetByHeight(1)
	require.NoError(t, err)
	require.Empty(t, atOld)

	atNew, err := s.GetByHeight(2)
	require.NoError(t, err)
	require.Len(t, atNew, 1)
}

func TestCursorFirstAndNextPaginate(t *testing.T) {
	s := openTestStore(t)

	const n = 5
	for i := uint32(0); i < n; i++ {
		var hash chainhash.Hash
		hash[0] = byte(i + 1)
		_, err := s.Put(hash, recordAt(i, i))
		require.NoError(t, err)
	}

	c := s.NewCursor()
	c.pageSize = 2

	require.NoError(t, c.First())
	require.Len(t, c.Records, 2)
	require.Equal(t, uint32(0), c.Records[0].Height)
	require.Equal(t, uint32(1), c.Records[1].Height)

	require.NoError(t, c.Next())
	require.Len(t, c.Records, 2)
	require.Equal(t, uint32(1), c.Records[0].Height)
	require.Equal(t, uint32(2), c.Records[1].Height)
}

func TestCursorLastReturnsMostRecentPageAscending(t *testing.T) {
	s := openTestStore(t)

	const n = 5
	for i := uint32(0); i < n; i++ {
		var hash chainhash.Hash
		hash[0] = byte(i + 1)
		_, err := s.Put(hash, recordAt(i, i))
		require.NoError(t, err)
	}

	c := s.NewCursor()
	c.pageSize = 2

	require.NoError(t, c.Last())
	require.Len(t, c.Records, 2)
	require.Equal(t, uint32(3), c.Records[0].Height)
	require.Equal(t, uint32(4), c.Records[1].Height)
}

func TestCursorMoveToJumpsDirectlyToHeight(t *testing.T) {
	s := openTestStore(t)

	for i := uint32(0); i < 10; i++ {
		var hash chainhash.Hash
		hash[0] = byte(i + 1)
		_, err := s.Put(hash, recordAt(i, i))
		require.NoError(t, err)
	}

	c := s.NewCursor()
	c.pageSize = 3
	require.NoError(t, c.MoveTo(6))
	require.Len(t, c.Records, 3)
	require.Equal(t, uint32(6), c.Records[0].Height)
}
