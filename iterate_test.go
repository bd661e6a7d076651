package dstring_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vkngwrapper/arsenal/dstring"
)

func TestCodepointIterator(t *testing.T) {
	s := dstring.New("Hé😀")
	defer s.Release()

	iter := s.Codepoints()

	require.True(t, iter.HasNext())
	cp, ok := iter.Next()
	require.True(t, ok)
	require.Equal(t, 'H', cp)

	cp, ok = iter.Next()
	require.True(t, ok)
	require.Equal(t, 'é', cp)

	cp, ok = iter.Next()
	require.True(t, ok)
	require.Equal(t, '😀', cp)

	require.False(t, iter.HasNext())
	_, ok = iter.Next()
	require.False(t, ok)
}

func TestCodepointIteratorStopsAtTruncatedTail(t *testing.T) {
	// "é" is 0xC3 0xA9; keep the lead byte and drop the continuation.
	s := dstring.NewFromBytes([]byte{'a', 0xC3})
	defer s.Release()

	iter := s.Codepoints()

	cp, ok := iter.Next()
	require.True(t, ok)
	require.Equal(t, 'a', cp)

	// A malformed tail still has bytes remaining but yields nothing.
	require.True(t, iter.HasNext())
	_, ok = iter.Next()
	require.False(t, ok)
}

func TestCodepointIteratorReplacesInvalidLead(t *testing.T) {
	s := dstring.NewFromBytes([]byte{0xFF, 'b'})
	defer s.Release()

	iter := s.Codepoints()

	cp, ok := iter.Next()
	require.True(t, ok)
	require.Equal(t, '�', cp)

	cp, ok = iter.Next()
	require.True(t, ok)
	require.Equal(t, 'b', cp)
}

func TestCodepointLen(t *testing.T) {
	s := dstring.New("héllo wörld")
	defer s.Release()

	require.Equal(t, 13, s.Len())
	require.Equal(t, 11, s.CodepointLen())

	empty := dstring.New("")
	defer empty.Release()
	require.Equal(t, 0, empty.CodepointLen())
}

func TestCodepointAt(t *testing.T) {
	s := dstring.New("héllo")
	defer s.Release()

	cp, ok := s.CodepointAt(1)
	require.True(t, ok)
	require.Equal(t, 'é', cp)

	cp, ok = s.CodepointAt(4)
	require.True(t, ok)
	require.Equal(t, 'o', cp)

	_, ok = s.CodepointAt(5)
	require.False(t, ok)
	_, ok = s.CodepointAt(-1)
	require.False(t, ok)
}

func TestCodepointsOnZeroString(t *testing.T) {
	var s dstring.String

	iter := s.Codepoints()
	require.False(t, iter.HasNext())
	_, ok := iter.Next()
	require.False(t, ok)
	require.Equal(t, 0, s.CodepointLen())
}
