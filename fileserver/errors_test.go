package fileserver

import (
	"errors"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorWrapsCause(t *testing.T) {
	err := Error(KindNotFound, fs.ErrNotExist)

	assert.True(t, errors.Is(err, fs.ErrNotExist))
	assert.Equal(t, KindNotFound, KindOf(err))
	assert.NotEmpty(t, err.ID)
	assert.NotEmpty(t, err.Trace)
	assert.Contains(t, err.Error(), "not found")
}

func TestErrorPreservesExistingHandlerError(t *testing.T) {
	inner := Errorf(KindForbidden, "escape attempt")
	outer := Error(KindUnreadable, inner)

	assert.Equal(t, KindForbidden, outer.Kind, "rewrapping must not change the kind")
	assert.Equal(t, inner.ID, outer.ID)
}

func TestKindOfPlainError(t *testing.T) {
	assert.Equal(t, KindTransient, KindOf(errors.New("boom")),
		"unknown errors fail closed as transient")
}

func TestKindStrings(t *testing.T) {
	for kind, want := range map[Kind]string{
		KindForbidden:  "forbidden",
		KindNotFound:   "not found",
		KindUnreadable: "unreadable",
		KindTransient:  "transient io",
	} {
		assert.Equal(t, want, kind.String())
	}
}

func TestRandStringLengthAndCharset(t *testing.T) {
	s := randString(9)
	require.Len(t, s, 9)
	for _, r := range s {
		assert.Contains(t, "abcdefghijkmnpqrstuvwxyz0123456789", string(r))
	}
	assert.Empty(t, randString(0))
}
