package intern_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/vkngwrapper/arsenal/dstring"
	"github.com/vkngwrapper/arsenal/dstring/intern"
)

func TestInternSharesOneBlock(t *testing.T) {
	a := dstring.NewAllocator(nil, dstring.CreateOptions{})
	pool := intern.NewPool(a, false)

	first := pool.Intern("shared content")
	second := pool.Intern("shared content")

	require.True(t, first.Is(second))
	// Pool's reference plus the two handed out.
	require.Equal(t, 3, first.RefCount())
	require.Equal(t, int64(1), pool.Hits())
	require.Equal(t, int64(1), pool.Misses())

	first.Release()
	second.Release()
	pool.Destroy()
	require.NoError(t, a.Destroy())
}

func TestInternDistinctContent(t *testing.T) {
	pool := intern.NewPool(nil, false)
	defer pool.Destroy()

	x := pool.Intern("one")
	y := pool.Intern("two")
	defer x.Release()
	defer y.Release()

	require.False(t, x.Is(y))
	require.Equal(t, 2, pool.Len())
	require.True(t, pool.Contains("one"))
	require.False(t, pool.Contains("three"))
}

func TestInternSurvivesCallerRelease(t *testing.T) {
	pool := intern.NewPool(nil, false)
	defer pool.Destroy()

	s := pool.Intern("kept by pool")
	s.Release()

	again := pool.Intern("kept by pool")
	defer again.Release()
	require.Equal(t, "kept by pool", again.String())
	require.Equal(t, int64(1), pool.Hits())
}

func TestDestroyKeepsHandedOutHandlesAlive(t *testing.T) {
	a := dstring.NewAllocator(nil, dstring.CreateOptions{})
	pool := intern.NewPool(a, false)

	s := pool.Intern("outlives the pool")
	pool.Destroy()

	require.Equal(t, "outlives the pool", s.String())
	require.Equal(t, 1, s.RefCount())
	require.Equal(t, 0, pool.Len())

	s.Release()
	require.NoError(t, a.Destroy())
}

func TestInternConcurrent(t *testing.T) {
	a := dstring.NewAllocator(nil, dstring.CreateOptions{
		Flags: dstring.CreateAtomicRefCounts,
	})
	pool := intern.NewPool(a, true)

	const goroutines = 8
	const distinct = 32

	var wg sync.WaitGroup
	wg.Add(goroutines)
	for g := 0; g < goroutines; g++ {
		go func() {
			defer wg.Done()
			for i := 0; i < distinct; i++ {
				s := pool.Intern(fmt.Sprintf("value-%d", i))
				s.Release()
			}
		}()
	}
	wg.Wait()

	require.Equal(t, distinct, pool.Len())
	require.Equal(t, int64(distinct), pool.Misses())
	require.Equal(t, int64(goroutines*distinct-distinct), pool.Hits())

	pool.Destroy()
	require.NoError(t, a.Destroy())
}
