// Copyright 2024 The Storepass Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package envelope

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"storepass.io/storeerr"
)

func TestSealOpenRoundTrip(t *testing.T) {
	plaintext := []byte("<revelationdata dataversion=\"1\" />")
	sealed, err := Seal(plaintext, "correct horse battery staple")
	require.NoError(t, err)

	assert.Equal(t, []byte{'r', 'v', 'l', 0x00}, sealed[0:4])
	assert.Equal(t, byte(0x02), sealed[4])

	got, err := Open(sealed, "correct horse battery staple")
	require.NoError(t, err)
	assert.Equal(t, plaintext, got)
}

func TestSealTwiceDiffers(t *testing.T) {
	plaintext := []byte("<revelationdata dataversion=\"1\" />")
	a, err := Seal(plaintext, "pw")
	require.NoError(t, err)
	b, err := Seal(plaintext, "pw")
	require.NoError(t, err)
	assert.NotEqual(t, a, b, "salt and IV must be fresh per seal")
}

func TestOpenWrongPassword(t *testing.T) {
	sealed, err := Seal([]byte("<revelationdata dataversion=\"1\" />"), "right")
	require.NoError(t, err)
	_, err = Open(sealed, "wrong")
	require.Error(t, err)
	assert.True(t, storeerr.Is(storeerr.WrongPassword, err))
}

func TestOpenHeaderIncomplete(t *testing.T) {
	_, err := Open(make([]byte, 11), "pw")
	require.Error(t, err)
	assert.True(t, storeerr.Is(storeerr.HeaderIncomplete, err))
}

func TestOpenSaltIncomplete(t *testing.T) {
	_, err := Open(make([]byte, 15), "pw")
	require.Error(t, err)
	assert.True(t, storeerr.Is(storeerr.SaltIncomplete, err))
}

func TestOpenIVIncomplete(t *testing.T) {
	_, err := Open(make([]byte, 25), "pw")
	require.Error(t, err)
	assert.True(t, storeerr.Is(storeerr.IVIncomplete, err))
}

func TestOpenMisalignedNoCiphertext(t *testing.T) {
	_, err := Open(make([]byte, 36), "pw")
	require.Error(t, err)
	assert.True(t, storeerr.Is(storeerr.Misaligned, err))
}

func TestOpenMisalignedPartialBlock(t *testing.T) {
	_, err := Open(make([]byte, 36+15), "pw")
	require.Error(t, err)
	assert.True(t, storeerr.Is(storeerr.Misaligned, err))
}

func TestOpenInvalidMagic(t *testing.T) {
	sealed, err := Seal([]byte("<revelationdata dataversion=\"1\" />"), "pw")
	require.NoError(t, err)
	sealed[0] = 'x'
	_, err = Open(sealed, "pw")
	require.Error(t, err)
	assert.True(t, storeerr.Is(storeerr.InvalidMagic, err))
}

func TestOpenUnsupportedEnvelopeVersion(t *testing.T) {
	sealed, err := Seal([]byte("<revelationdata dataversion=\"1\" />"), "pw")
	require.NoError(t, err)
	sealed[4] = 0x01
	_, err = Open(sealed, "pw")
	require.Error(t, err)
	assert.True(t, storeerr.Is(storeerr.UnsupportedEnvelopeVersion, err))
}

func TestOpenNonZeroPaddingByte5(t *testing.T) {
	sealed, err := Seal([]byte("<revelationdata dataversion=\"1\" />"), "pw")
	require.NoError(t, err)
	sealed[5] = 0x01
	_, err = Open(sealed, "pw")
	require.Error(t, err)
	assert.True(t, storeerr.Is(storeerr.NonZeroPadding, err))
}

func TestOpenNonZeroPaddingReservedRange(t *testing.T) {
	sealed, err := Seal([]byte("<revelationdata dataversion=\"1\" />"), "pw")
	require.NoError(t, err)
	sealed[10] = 0x01
	_, err = Open(sealed, "pw")
	require.Error(t, err)
	assert.True(t, storeerr.Is(storeerr.NonZeroPadding, err))
}

func TestPKCS7PadUnpad(t *testing.T) {
	for n := 0; n < 40; n++ {
		data := bytes.Repeat([]byte{0x5a}, n)
		padded := padPKCS7(data)
		assert.Equal(t, 0, len(padded)%blockSize)
		got, err := unpadPKCS7(padded)
		require.NoError(t, err)
		assert.Equal(t, data, got)
	}
}
