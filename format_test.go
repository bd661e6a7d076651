package dstring_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vkngwrapper/arsenal/dstring"
)

func TestSprintf(t *testing.T) {
	s := dstring.Sprintf("%s has %d items (%.1f%%)", "cart", 3, 99.5)
	defer s.Release()

	require.Equal(t, "cart has 3 items (99.5%)", s.String())
	require.Equal(t, 1, s.RefCount())
}

func TestAllocatorSprintf(t *testing.T) {
	a := dstring.NewAllocator(nil, dstring.CreateOptions{})

	s := a.Sprintf("block %d", 7)
	require.Equal(t, "block 7", s.String())

	var stats dstring.Statistics
	stats.Clear()
	a.AddStatistics(&stats)
	require.Equal(t, 1, stats.BlockCount)

	s.Release()
	require.NoError(t, a.Destroy())
}

func TestQuoteJSON(t *testing.T) {
	s := dstring.New(`say "hi"` + "\n")
	defer s.Release()

	quoted := s.QuoteJSON()
	defer quoted.Release()
	require.Equal(t, `"say \"hi\"\n"`, quoted.String())
}

func TestUnquoteJSON(t *testing.T) {
	s := dstring.New(`"say \"hi\"\n"`)
	defer s.Release()

	unquoted, err := s.UnquoteJSON()
	require.NoError(t, err)
	defer unquoted.Release()
	require.Equal(t, "say \"hi\"\n", unquoted.String())
}

func TestUnquoteJSONRoundTrip(t *testing.T) {
	s := dstring.New("tabs\tand\nnewlines and \\ backslashes")
	defer s.Release()

	quoted := s.QuoteJSON()
	defer quoted.Release()

	back, err := quoted.UnquoteJSON()
	require.NoError(t, err)
	defer back.Release()
	require.True(t, back.Equal(s))
}

func TestUnquoteJSONRejectsNonString(t *testing.T) {
	for _, input := range []string{"not json", "42", `{"a":1}`, `"unterminated`} {
		s := dstring.New(input)

		_, err := s.UnquoteJSON()
		require.Error(t, err, "input %q", input)

		s.Release()
	}
}
