package dstring_test

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vkngwrapper/arsenal/dstring"
)

func TestAllocatorStatistics(t *testing.T) {
	a := dstring.NewAllocator(nil, dstring.CreateOptions{})

	s := a.NewString("Hello")
	alias := s.Retain()

	var stats dstring.Statistics
	stats.Clear()
	a.AddStatistics(&stats)
	require.Equal(t, 1, stats.BlockCount)
	require.Equal(t, 6, stats.BlockBytes)
	require.Equal(t, 2, stats.HandleCount)

	alias.Release()
	s.Release()

	stats.Clear()
	a.AddStatistics(&stats)
	require.Equal(t, 0, stats.BlockCount)
	require.Equal(t, 0, stats.BlockBytes)
	require.Equal(t, 0, stats.HandleCount)

	require.NoError(t, a.Destroy())
}

func TestAllocatorDetailedStatistics(t *testing.T) {
	a := dstring.NewAllocator(nil, dstring.CreateOptions{BuilderCapacity: 4})

	b := a.NewBuilder()
	b.Append("grow past four bytes")

	snap := b.Snapshot()
	b.Append("!")
	snap.Release()

	s := b.ToString()
	s.Release()

	var detailed dstring.DetailedStatistics
	detailed.Clear()
	a.AddDetailedStatistics(&detailed)

	require.Equal(t, 0, detailed.BlockCount)
	require.Positive(t, detailed.AllocationCount)
	require.Positive(t, detailed.GrowCount)
	require.Equal(t, 1, detailed.CopyOnWriteCount)
	require.Equal(t, 1, detailed.ShrinkCount)

	require.NoError(t, a.Destroy())
}

func TestAllocatorDetailedStatisticsAccumulate(t *testing.T) {
	a := dstring.NewAllocator(nil, dstring.CreateOptions{})

	s := a.NewString("abc")
	defer s.Release()

	var detailed dstring.DetailedStatistics
	detailed.Clear()
	a.AddDetailedStatistics(&detailed)
	a.AddDetailedStatistics(&detailed)

	// Add sums into the target rather than overwriting it.
	require.Equal(t, 2, detailed.BlockCount)
	require.Equal(t, 2, detailed.AllocationCount)
}

func TestBuildStatsString(t *testing.T) {
	a := dstring.NewAllocator(nil, dstring.CreateOptions{})

	s := a.NewString("stats")

	summary := a.BuildStatsString(false)
	require.Contains(t, summary, `"BlockCount":1`)
	require.Contains(t, summary, `"BlockBytes":6`)
	require.Contains(t, summary, `"HandleCount":1`)
	require.NotContains(t, summary, "AllocationCount")

	detailed := a.BuildStatsString(true)
	require.Contains(t, detailed, `"AllocationCount":1`)
	require.Contains(t, detailed, `"CopyOnWriteCount":0`)

	s.Release()
	require.NoError(t, a.Destroy())
}

func TestAllocatorDestroyReportsLeaks(t *testing.T) {
	a := dstring.NewAllocator(nil, dstring.CreateOptions{})

	leaked := a.NewString("never released")

	err := a.Destroy()
	require.Error(t, err)
	require.Contains(t, err.Error(), "1 live block")

	leaked.Release()
	require.NoError(t, a.Destroy())
}

func TestConcurrentRetainRelease(t *testing.T) {
	a := dstring.NewAllocator(nil, dstring.CreateOptions{
		Flags: dstring.CreateAtomicRefCounts,
	})

	s := a.NewString(strings.Repeat("payload ", 16))

	const goroutines = 8
	const iterations = 1000

	var wg sync.WaitGroup
	wg.Add(goroutines)
	for g := 0; g < goroutines; g++ {
		go func() {
			defer wg.Done()
			for i := 0; i < iterations; i++ {
				alias := s.Retain()
				_ = alias.Len()
				alias.Release()
			}
		}()
	}
	wg.Wait()

	require.Equal(t, 1, s.RefCount())
	s.Release()
	require.NoError(t, a.Destroy())
}

func TestCreateFlagsString(t *testing.T) {
	require.Equal(t, "CreateAtomicRefCounts", dstring.CreateAtomicRefCounts.String())
	require.Equal(t, "0", dstring.CreateFlags(0).String())
}
