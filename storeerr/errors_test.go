package storeerr

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorString(t *testing.T) {
	err := E("model.Add", Duplicate, Path("a/b"))
	assert.Equal(t, "model.Add: a/b: duplicate entry", err.Error())
}

func TestErrorWraps(t *testing.T) {
	cause := errors.New("boom")
	err := E("storage.write_plain", IoError, cause)
	var se *Error
	assert.True(t, errors.As(err, &se))
	assert.Equal(t, cause, errors.Unwrap(err))
}

func TestIs(t *testing.T) {
	err := E("tree.Lookup", NotFound)
	assert.True(t, Is(NotFound, err))
	assert.False(t, Is(Duplicate, err))
	assert.False(t, Is(NotFound, errors.New("plain")))
}
