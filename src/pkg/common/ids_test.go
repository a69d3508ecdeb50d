package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPageIdentitySerializedSize(t *testing.T) {
	p := PageIdentity{FileID: 7, PageID: 42}

	b, err := p.MarshalBinary()
	require.NoError(t, err)
	assert.Equal(t, SerializedPageIdentitySize, len(b))
	assert.Equal(t, []byte{0, 0, 0, 0, 0, 0, 0, 7, 0, 0, 0, 0, 0, 0, 0, 42}, b)
}

func TestPageIdentityString(t *testing.T) {
	p := PageIdentity{FileID: 1, PageID: 3}
	assert.Equal(t, "(file=1, page=3)", p.String())
}
