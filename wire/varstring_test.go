// Copyright (c) 2013-2016 The btcsuite developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestVarStringRoundTripProperty(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		s := rapid.StringN(0, 256, -1).Draw(rt, "s")

		var buf bytes.Buffer
		require.NoError(rt, WriteVarString(&buf, s))
		require.Equal(rt, VarStringSerializeSize(s), buf.Len())

		got, err := ReadVarString(&buf)
		require.NoError(rt, err)
		require.Equal(rt, s, got)
	})
}

func TestVarStringRejectsOversizedLength(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteVarInt(&buf, MaxVarStringLen+1))
	_, err := ReadVarString(&buf)
	require.ErrorIs(t, err, ErrVarStringTooLong)
}

func TestVarStringEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteVarString(&buf, ""))
	got, err := ReadVarString(&buf)
	require.NoError(t, err)
	require.Equal(t, "", got)
}

func TestVarStringLongUserAgent(t *testing.T) {
	s := "/" + strings.Repeat("x", 255) + ":1.0.0/"
	var buf bytes.Buffer
	require.NoError(t, WriteVarString(&buf, s))
	got, err := ReadVarString(&buf)
	require.NoError(t, err)
	require.Equal(t, s, got)
}
