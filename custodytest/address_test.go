package custodytest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRandomAddr(t *testing.T) {
	a, b := RandomAddr(t), RandomAddr(t)
	require.NoError(t, a.Validate())
	assert.False(t, a.Equals(b))
}

func TestNamedAddr(t *testing.T) {
	assert.Equal(t, NamedAddr("alice"), NamedAddr("alice"))
	assert.NotEqual(t, NamedAddr("alice"), NamedAddr("bob"))
	assert.Equal(t, NamedAddr("alice"), ParseAddress(t, NamedAddr("alice").String()))
}

func TestSequenceID(t *testing.T) {
	assert.Equal(t, []byte{0, 0, 0, 0, 0, 0, 0, 1}, SequenceID(1))
	assert.Equal(t, []byte{0, 0, 0, 0, 0, 0, 1, 0}, SequenceID(256))
}
