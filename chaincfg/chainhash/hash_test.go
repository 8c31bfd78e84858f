// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package chainhash

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHashStringRoundTrip(t *testing.T) {
	const s = "000000000019d6689c085ae165831e934ff763ae46a2a6c172b3f1b60a8ce26f"
	h, err := NewHashFromStr(s)
	require.NoError(t, err)
	require.Equal(t, s, h.String())
}

func TestHashIsEqual(t *testing.T) {
	a := DoubleHashH([]byte("a"))
	b := DoubleHashH([]byte("a"))
	c := DoubleHashH([]byte("b"))

	require.True(t, a.IsEqual(&b))
	require.False(t, a.IsEqual(&c))

	var nilHash *Hash
	require.True(t, nilHash.IsEqual(nil))
	require.False(t, a.IsEqual(nil))
}

func TestHashSetBytesInvalidLength(t *testing.T) {
	var h Hash
	err := h.SetBytes([]byte{1, 2, 3})
	require.Error(t, err)
}

func TestDecodeRejectsOversizedString(t *testing.T) {
	var h Hash
	long := make([]byte, MaxHashStringSize+2)
	for i := range long {
		long[i] = '0'
	}
	err := Decode(&h, string(long))
	require.ErrorIs(t, err, ErrHashStrSize)
}
