package pathspec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type decodeTest struct {
	path string
	want []string
}

var goodDecodeTests = []decodeTest{
	{"", []string{""}},
	{"a", []string{"a"}},
	{"a/b", []string{"a", "b"}},
	{"a/b/c", []string{"a", "b", "c"}},
	{"", []string{""}},
	{"/", []string{"", ""}},
	{`a\/b`, []string{"a/b"}},
	{`a\\b`, []string{`a\b`}},
	{`a\\/b`, []string{`a\`, "b"}},
}

func TestDecode(t *testing.T) {
	for _, test := range goodDecodeTests {
		got, err := Decode(test.path)
		require.NoError(t, err, test.path)
		assert.Equal(t, test.want, got, test.path)
	}
}

func TestDecodeInvalidEscape(t *testing.T) {
	_, err := Decode(`a\xb`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid escape sequence")
}

func TestDecodeIncompleteEscape(t *testing.T) {
	_, err := Decode(`a\`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "incomplete escape sequence")
}

func TestEncodeRoundTrip(t *testing.T) {
	for _, test := range goodDecodeTests {
		got, err := Decode(test.path)
		require.NoError(t, err)
		reencoded := Encode(got)
		redecoded, err := Decode(reencoded)
		require.NoError(t, err)
		assert.Equal(t, got, redecoded)
	}
}

func TestEncode(t *testing.T) {
	assert.Equal(t, `a\/b`, Encode([]string{"a/b"}))
	assert.Equal(t, `a\\b`, Encode([]string{`a\b`}))
	assert.Equal(t, "a/b/c", Encode([]string{"a", "b", "c"}))
}
