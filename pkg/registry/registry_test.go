package registry

import (
	"testing"

	"github.com/arthur-debert/kassemble/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {
	reg := New[string, int]()

	require.NoError(t, reg.Register("b", 1))
	require.NoError(t, reg.Register("a", 2))

	err := reg.Register("", 3)
	assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))

	err = reg.Register("b", 4)
	assert.True(t, errors.IsErrorCode(err, errors.ErrAlreadyExists))

	assert.Equal(t, []string{"b", "a"}, reg.Keys())
	assert.Equal(t, []int{1, 2}, reg.Values())
	assert.Equal(t, 2, reg.Count())
}

func TestPutKeepsPosition(t *testing.T) {
	reg := New[string, string]()

	assert.False(t, reg.Put("first", "1"))
	assert.False(t, reg.Put("second", "2"))
	assert.True(t, reg.Put("first", "one"))

	assert.Equal(t, []string{"first", "second"}, reg.Keys())
	assert.Equal(t, []string{"one", "2"}, reg.Values())
}

func TestGet(t *testing.T) {
	reg := New[string, int]()
	reg.Put("x", 42)

	got, err := reg.Get("x")
	require.NoError(t, err)
	assert.Equal(t, 42, got)
	assert.True(t, reg.Has("x"))

	_, err = reg.Get("y")
	assert.True(t, errors.IsErrorCode(err, errors.ErrNotFound))
	assert.False(t, reg.Has("y"))

	assert.Equal(t, 42, MustGet(reg, "x"))
	assert.Panics(t, func() { MustGet(reg, "y") })
}

func TestKeysAreCopies(t *testing.T) {
	reg := New[string, int]()
	reg.Put("a", 1)

	keys := reg.Keys()
	keys[0] = "mutated"
	assert.Equal(t, []string{"a"}, reg.Keys())
}
