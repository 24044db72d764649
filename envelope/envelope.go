// Copyright 2024 The Storepass Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package envelope implements the Revelation v2 on-disk file format:
// the fixed-layout header (magic, salt, IV) and the zlib+PKCS7+AES-CBC
// cryptographic pipeline wrapped around the XML payload produced by
// package rvlxml. It is grounded on original_source/storepass/storage.py's
// _parse_header/read_plain/write_plain, translated byte-for-byte.
package envelope

import (
	"bytes"
	"compress/zlib"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha1"
	"crypto/sha256"
	"fmt"
	"hash"
	"io"
	"unicode/utf8"

	"golang.org/x/crypto/pbkdf2"
	"storepass.io/storeerr"
)

// newSHA1 is passed to pbkdf2.Key: Revelation v2 derives its AES key
// with PBKDF2-HMAC-SHA1, not SHA-256.
func newSHA1() hash.Hash { return sha1.New() }

const (
	magicSize     = 4
	headerSize    = 36
	saltSize      = 8
	ivSize        = 16
	pbkdf2Iters   = 12000
	pbkdf2KeyLen  = 32
	envelopeVer   = 0x02
	blockSize     = 16
)

var magic = [magicSize]byte{'r', 'v', 'l', 0x00}

// Seal runs the write-side cryptographic pipeline of §4.6.2 over
// plaintext (UTF-8 XML) and returns a complete on-disk file, including
// a fresh random salt and IV.
func Seal(plaintext []byte, passphrase string) ([]byte, error) {
	const op = "envelope.Seal"

	var compressed bytes.Buffer
	zw := zlib.NewWriter(&compressed)
	if _, err := zw.Write(plaintext); err != nil {
		return nil, storeerr.E(op, storeerr.CompressError, err)
	}
	if err := zw.Close(); err != nil {
		return nil, storeerr.E(op, storeerr.CompressError, err)
	}

	padded := padPKCS7(compressed.Bytes())
	sum := sha256.Sum256(padded)
	decrypted := append(sum[:], padded...)

	salt := make([]byte, saltSize)
	if _, err := rand.Read(salt); err != nil {
		return nil, storeerr.E(op, storeerr.IoError, err)
	}
	iv := make([]byte, ivSize)
	if _, err := rand.Read(iv); err != nil {
		return nil, storeerr.E(op, storeerr.IoError, err)
	}

	key := pbkdf2.Key([]byte(passphrase), salt, pbkdf2Iters, pbkdf2KeyLen, newSHA1)

	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, storeerr.E(op, storeerr.IoError, err)
	}
	if len(decrypted)%aes.BlockSize != 0 {
		return nil, storeerr.E(op, storeerr.Misaligned, fmt.Errorf("internal block %d", len(decrypted)))
	}
	ciphertext := make([]byte, len(decrypted))
	mode := cipher.NewCBCEncrypter(block, iv)
	mode.CryptBlocks(ciphertext, decrypted)

	out := make([]byte, 0, headerSize+len(ciphertext))
	out = append(out, magic[:]...)
	out = append(out, envelopeVer)
	out = append(out, 0x00)           // reserved padding, byte 5
	out = append(out, 0x00, 0x00, 0x00) // application version, ignored on read
	out = append(out, 0x00, 0x00, 0x00) // reserved padding, bytes [9:12)
	out = append(out, salt...)
	out = append(out, iv...)
	out = append(out, ciphertext...)
	return out, nil
}

// Open runs the read-side cryptographic pipeline of §4.6.3, returning
// the decompressed UTF-8 XML plaintext.
func Open(data []byte, passphrase string) ([]byte, error) {
	const op = "envelope.Open"

	if len(data) < 12 {
		return nil, storeerr.E(op, storeerr.HeaderIncomplete,
			fmt.Errorf("got %d bytes, want at least 12", len(data)))
	}
	if len(data) < 20 {
		return nil, storeerr.E(op, storeerr.SaltIncomplete,
			fmt.Errorf("got %d salt bytes, want 8", len(data)-12))
	}
	if len(data) < headerSize {
		return nil, storeerr.E(op, storeerr.IVIncomplete,
			fmt.Errorf("got %d iv bytes, want 16", len(data)-20))
	}

	ciphertext := data[headerSize:]
	if len(ciphertext) == 0 || len(ciphertext)%blockSize != 0 {
		return nil, storeerr.E(op, storeerr.Misaligned, fmt.Errorf("ciphertext length %d", len(ciphertext)))
	}

	if !bytes.Equal(data[0:magicSize], magic[:]) {
		return nil, storeerr.E(op, storeerr.InvalidMagic, fmt.Errorf("found % x", data[0:magicSize]))
	}
	if data[4] != envelopeVer {
		return nil, storeerr.E(op, storeerr.UnsupportedEnvelopeVersion, fmt.Errorf("found 0x%02x", data[4]))
	}
	if data[5] != 0x00 {
		return nil, storeerr.E(op, storeerr.NonZeroPadding, fmt.Errorf("byte [5:6) = 0x%02x", data[5]))
	}
	for _, b := range data[9:12] {
		if b != 0x00 {
			return nil, storeerr.E(op, storeerr.NonZeroPadding, fmt.Errorf("bytes [9:12) = % x", data[9:12]))
		}
	}

	salt := data[12:20]
	iv := data[20:headerSize]

	key := pbkdf2.Key([]byte(passphrase), salt, pbkdf2Iters, pbkdf2KeyLen, newSHA1)
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, storeerr.E(op, storeerr.IoError, err)
	}
	decrypted := make([]byte, len(ciphertext))
	mode := cipher.NewCBCDecrypter(block, iv)
	mode.CryptBlocks(decrypted, ciphertext)

	if len(decrypted) < sha256.Size {
		return nil, storeerr.E(op, storeerr.WrongPassword, fmt.Errorf("decrypted block too short"))
	}
	wantSum := decrypted[:sha256.Size]
	padded := decrypted[sha256.Size:]

	// Checked before unpadding: this hash doubles as the password
	// check (§4.6.3), and a wrong passphrase must report
	// WrongPassword rather than a padding error.
	gotSum := sha256.Sum256(padded)
	if !bytes.Equal(wantSum, gotSum[:]) {
		return nil, storeerr.E(op, storeerr.WrongPassword)
	}

	unpadded, err := unpadPKCS7(padded)
	if err != nil {
		return nil, err
	}
	if len(unpadded) == 0 {
		return nil, storeerr.E(op, storeerr.EmptyCompressed)
	}

	zr, err := zlib.NewReader(bytes.NewReader(unpadded))
	if err != nil {
		return nil, storeerr.E(op, storeerr.DecompressError, err)
	}
	defer zr.Close()
	plaintext, err := io.ReadAll(zr)
	if err != nil {
		return nil, storeerr.E(op, storeerr.DecompressError, err)
	}

	if !utf8.Valid(plaintext) {
		return nil, storeerr.E(op, storeerr.Utf8Error, fmt.Errorf("payload is not valid UTF-8"))
	}

	return plaintext, nil
}

// padPKCS7 appends pad = 16 - (len%16) copies of byte(pad), so pad is
// always in [1,16]: the padding length is never zero, even when data
// is already block-aligned.
func padPKCS7(data []byte) []byte {
	pad := blockSize - (len(data) % blockSize)
	out := make([]byte, len(data)+pad)
	copy(out, data)
	for i := len(data); i < len(out); i++ {
		out[i] = byte(pad)
	}
	return out
}

// unpadPKCS7 validates and strips the trailing padding produced by
// padPKCS7, checked before decompression per §4.6.3's note.
func unpadPKCS7(data []byte) ([]byte, error) {
	const op = "envelope.Open"
	if len(data) == 0 {
		return nil, storeerr.E(op, storeerr.EmptyCompressed)
	}
	p := int(data[len(data)-1])
	if p > blockSize || p == 0 {
		return nil, storeerr.E(op, storeerr.BadPaddingLength, fmt.Errorf("padding length %d", p))
	}
	if p > len(data) {
		return nil, storeerr.E(op, storeerr.BadPaddingLength, fmt.Errorf("padding length %d exceeds data", p))
	}
	for _, b := range data[len(data)-p:] {
		if int(b) != p {
			return nil, storeerr.E(op, storeerr.BadPaddingBytes,
				fmt.Errorf("expected %d, found %d", p, b))
		}
	}
	return data[:len(data)-p], nil
}
