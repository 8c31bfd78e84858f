// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestVarIntBoundaries(t *testing.T) {
	cases := []struct {
		val     uint64
		encSize int
	}{
		{0, 1},
		{0xfc, 1},
		{0xfd, 3},
		{0xffff, 3},
		{0x10000, 5},
		{0xffffffff, 5},
		{0x100000000, 9},
		{^uint64(0), 9},
	}
	for _, c := range cases {
		var buf bytes.Buffer
		require.NoError(t, WriteVarInt(&buf, c.val))
		require.Equal(t, c.encSize, buf.Len())
		require.Equal(t, c.encSize, VarIntSerializeSize(c.val))

		got, err := ReadVarInt(&buf)
		require.NoError(t, err)
		require.Equal(t, c.val, got)
	}
}

func TestVarIntRoundTripProperty(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		val := rapid.Uint64().Draw(rt, "val")

		var buf bytes.Buffer
		require.NoError(rt, WriteVarInt(&buf, val))
		require.Equal(rt, VarIntSerializeSize(val), buf.Len())

		got, err := ReadVarInt(&buf)
		require.NoError(rt, err)
		require.Equal(rt, val, got)
	})
}

func TestReadVarIntCappedRejectsOverCap(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteVarInt(&buf, MaxInvEntries+1))
	_, err := ReadVarIntCapped(&buf)
	require.ErrorIs(t, err, ErrVarIntTooBig)
}

func TestReadVarIntCappedAcceptsAtCap(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteVarInt(&buf, MaxInvEntries))
	got, err := ReadVarIntCapped(&buf)
	require.NoError(t, err)
	require.Equal(t, uint64(MaxInvEntries), got)
}
